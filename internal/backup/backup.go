// Package backup copies the store file aside before destructive operations.
// Backup success is a precondition, not a best effort: callers destroy only
// after receiving an explicit success (or skip) result.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Result reports the outcome of a backup. Skipped is true when there was
// nothing to back up (no store file yet) or backups are disabled by
// configuration.
type Result struct {
	Source      string
	Destination string
	Bytes       int64
	Skipped     bool
}

// File copies src into dir under a timestamped name and verifies the copied
// size against the source. A missing source yields a skipped result, not an
// error; any copy failure is an error and the caller must not proceed to
// destroy.
func File(src, dir string) (*Result, error) {
	info, err := os.Stat(src)
	if os.IsNotExist(err) {
		return &Result{Source: src, Skipped: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", src, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir %s: %w", dir, err)
	}

	stamp := time.Now().UTC().Format("20060102T150405Z")
	dst := filepath.Join(dir, fmt.Sprintf("%s.%s.bak", filepath.Base(src), stamp))

	in, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", dst, err)
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return nil, fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dst)
		return nil, fmt.Errorf("sync %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return nil, fmt.Errorf("close %s: %w", dst, err)
	}
	if n != info.Size() {
		os.Remove(dst)
		return nil, fmt.Errorf("short copy of %s: %d of %d bytes", src, n, info.Size())
	}

	return &Result{Source: src, Destination: dst, Bytes: n}, nil
}
