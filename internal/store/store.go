// Package store exposes the entity collections through an explicit object
// that is passed by reference to whatever layer needs it. Reads and writes
// are keyed by collection and id; constraint failures surface as typed
// errors and are never repaired here.
package store

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"erp-datastore/internal/apperrors"
	"erp-datastore/internal/model"
)

// maxParentDepth bounds the ChartOfAccount parent walk.
const maxParentDepth = 1000

// Store wraps one database handle. It is synchronous per call and assumes no
// concurrent writers.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// New returns a store over the given handle.
func New(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

// DB exposes the underlying handle for schema-level operations.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Get loads the record of the given kind by id into out.
func (s *Store) Get(kind model.Kind, id string, out interface{}) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownKind, kind)
	}
	err := s.db.Table(kind.Table()).Where("id = ?", id).First(out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %q: %w", kind, id, apperrors.ErrNotFound)
	}
	return err
}

// Exists reports whether a record of the given kind exists with the id.
func (s *Store) Exists(kind model.Kind, id string) (bool, error) {
	if !kind.Valid() {
		return false, fmt.Errorf("%w: %q", apperrors.ErrUnknownKind, kind)
	}
	var n int64
	if err := s.db.Table(kind.Table()).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the number of rows in the collection.
func (s *Store) Count(kind model.Kind) (int64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", apperrors.ErrUnknownKind, kind)
	}
	var n int64
	err := s.db.Table(kind.Table()).Count(&n).Error
	return n, err
}

// Put inserts a record into the named collection. The record's concrete type
// must match the kind. ChartOfAccount parents are checked against the forest
// invariant and Transaction references against the kind registry before the
// insert reaches the database.
func (s *Store) Put(kind model.Kind, rec interface{}) error {
	if err := s.checkKind(kind, rec); err != nil {
		return err
	}
	if err := s.validate(rec); err != nil {
		return err
	}
	if err := s.db.Create(rec).Error; err != nil {
		return s.translate(kind, rec, err)
	}
	return nil
}

// Update applies explicit field assignments to the record with the given id.
// UpdatedAt refreshes as part of the same write.
func (s *Store) Update(kind model.Kind, id string, fields map[string]interface{}) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownKind, kind)
	}
	if kind == model.KindChartOfAccount {
		if parent, ok := fields["parent_id"]; ok {
			if err := s.checkParentChain(id, parent); err != nil {
				return err
			}
		}
	}
	if kind == model.KindTransaction {
		if err := s.checkReferenceFields(id, fields); err != nil {
			return err
		}
	}

	rec, err := model.NewRecord(kind)
	if err != nil {
		return err
	}
	res := s.db.Model(rec).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return s.translate(kind, nil, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, apperrors.ErrNotFound)
	}
	return nil
}

// Remove physically deletes the record with the given id. Deletion of a row
// still referenced elsewhere is rejected, not cascaded.
func (s *Store) Remove(kind model.Kind, id string) error {
	rec, err := model.NewRecord(kind)
	if err != nil {
		return err
	}
	res := s.db.Where("id = ?", id).Delete(rec)
	if res.Error != nil {
		return s.translate(kind, nil, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, apperrors.ErrNotFound)
	}
	return nil
}

func (s *Store) checkKind(kind model.Kind, rec interface{}) error {
	actual, ok := model.KindOf(rec)
	if !ok {
		return fmt.Errorf("%w: %T", apperrors.ErrUnknownKind, rec)
	}
	if actual != kind {
		return fmt.Errorf("record type %T does not belong to collection %q", rec, kind)
	}
	return nil
}

// validate runs the store-level checks the database cannot express.
func (s *Store) validate(rec interface{}) error {
	switch r := rec.(type) {
	case *model.ChartOfAccount:
		if r.ParentID != nil {
			return s.checkParentChain(r.ID, *r.ParentID)
		}
	case *model.Transaction:
		return s.checkReference(r.ReferenceKind, r.ReferenceID)
	}
	return nil
}

// checkParentChain rejects a parent assignment that would close a cycle in
// the account tree.
func (s *Store) checkParentChain(accountID string, parent interface{}) error {
	parentID, ok := parentIDString(parent)
	if !ok {
		return nil
	}
	cycleErr := &apperrors.ConstraintViolation{
		Entity: model.KindChartOfAccount.Table(),
		Field:  "parent_id",
		Kind:   apperrors.ConstraintCycle,
	}

	current := parentID
	seen := map[string]bool{}
	for depth := 0; depth < maxParentDepth; depth++ {
		if accountID != "" && current == accountID {
			return cycleErr
		}
		if seen[current] {
			return cycleErr
		}
		seen[current] = true

		var row struct{ ParentID *string }
		err := s.db.Table(model.KindChartOfAccount.Table()).
			Select("parent_id").
			Where("id = ?", current).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // dangling parent is the foreign key's problem
			}
			return err
		}
		if row.ParentID == nil {
			return nil
		}
		current = *row.ParentID
	}
	return cycleErr
}

// checkReference validates the tagged reference pair against the registry of
// known entity kinds and resolves the id.
func (s *Store) checkReference(kind model.Kind, id string) error {
	if kind == "" && id == "" {
		return nil
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: transaction reference kind %q", apperrors.ErrUnknownKind, kind)
	}
	if id == "" {
		return &apperrors.ConstraintViolation{
			Entity: model.KindTransaction.Table(),
			Field:  "reference_id",
			Kind:   apperrors.ConstraintNotNull,
		}
	}
	ok, err := s.Exists(kind, id)
	if err != nil {
		return err
	}
	if !ok {
		return &apperrors.ConstraintViolation{
			Entity: model.KindTransaction.Table(),
			Field:  "reference_id",
			Kind:   apperrors.ConstraintForeignKey,
		}
	}
	return nil
}

func (s *Store) checkReferenceFields(id string, fields map[string]interface{}) error {
	kindVal, kindSet := fields["reference_kind"]
	idVal, idSet := fields["reference_id"]
	if !kindSet && !idSet {
		return nil
	}

	var current model.Transaction
	if err := s.Get(model.KindTransaction, id, &current); err != nil {
		return err
	}
	kind := current.ReferenceKind
	refID := current.ReferenceID
	if kindSet {
		kind = model.Kind(fmt.Sprint(kindVal))
	}
	if idSet {
		refID = fmt.Sprint(idVal)
	}
	return s.checkReference(kind, refID)
}

func parentIDString(parent interface{}) (string, bool) {
	switch v := parent.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case *string:
		if v == nil {
			return "", false
		}
		return *v, *v != ""
	default:
		return "", false
	}
}
