// erpctl is the maintenance tool for the ERP store: recreate (destructive),
// seed, check, export and import. Each run opens one exclusive connection,
// performs its operations synchronously and releases the connection on every
// exit path.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"erp-datastore/internal/backup"
	"erp-datastore/internal/model"
	"erp-datastore/internal/schema"
	"erp-datastore/internal/seed"
	"erp-datastore/internal/store"
	"erp-datastore/pkg/config"
	"erp-datastore/pkg/database"
	"erp-datastore/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}

	// Initialize logger with config
	if err := logger.InitLogger(&logger.LogConfig{Level: cfg.Log.Level, Environment: cfg.App.Env}); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	log := logger.GetLogger()
	defer log.Sync()

	command := os.Args[1]
	args := os.Args[2:]

	if err := run(command, args, cfg, log); err != nil {
		log.Error("command failed", zap.String("command", command), zap.Error(err))
		os.Exit(1)
	}
}

func run(command string, args []string, cfg *config.Config, log *zap.Logger) error {
	switch command {
	case "recreate":
		return runRecreate(args, cfg, log)
	case "seed":
		return runSeed(cfg, log)
	case "check":
		return runCheck(cfg, log)
	case "export":
		return runExport(args, cfg, log)
	case "import":
		return runImport(args, cfg, log)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: erpctl <command> [flags]

commands:
  recreate   back up, DESTROY and re-initialize the store, then provision
             defaults (requires --force)
  seed       insert one sample fixture per entity kind (idempotent)
  check      print row counts per entity and whether an admin user exists
  export     write a JSON snapshot of the store (--file)
  import     load a JSON snapshot into the store (--file)`)
}

// open connects to the configured store and asserts referential integrity
// before any data-mutating operation.
func open(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(database.Config{
		Driver:          cfg.DB.Driver,
		Path:            cfg.DB.Path,
		DSN:             cfg.DB.GetDSN(),
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		LogLevel:        cfg.DB.LogLevel,
	})
	if err != nil {
		return nil, err
	}
	if err := database.EnableReferentialIntegrity(db); err != nil {
		database.Close(db)
		return nil, err
	}
	return db, nil
}

// runRecreate backs up any existing store file, destroys the store,
// re-initializes the schema and provisions defaults. This is destructive and
// non-recoverable beyond the backup it takes; it refuses to run without
// --force.
func runRecreate(args []string, cfg *config.Config, log *zap.Logger) error {
	flags := flag.NewFlagSet("recreate", flag.ContinueOnError)
	force := flags.Bool("force", false, "confirm the destructive recreate")
	skipBackup := flags.Bool("skip-backup", false, "explicitly skip the pre-destroy backup")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if !*force {
		return fmt.Errorf("recreate destroys the existing store; re-run with --force to confirm")
	}

	if cfg.DB.Driver == database.DriverSQLite || cfg.DB.Driver == "" {
		// Backup is a precondition of destruction: the file is only removed
		// after an explicit success or skip.
		if *skipBackup || cfg.Backup.Skip {
			log.Warn("pre-destroy backup explicitly skipped")
		} else {
			result, err := backup.File(cfg.DB.Path, cfg.Backup.Dir)
			if err != nil {
				return fmt.Errorf("backup failed, store left untouched: %w", err)
			}
			if result.Skipped {
				log.Info("no existing store file, nothing to back up", zap.String("path", cfg.DB.Path))
			} else {
				log.Info("store backed up",
					zap.String("destination", result.Destination),
					zap.Int64("bytes", result.Bytes))
			}
		}
		if err := os.Remove(cfg.DB.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove store file: %w", err)
		}
	}

	db, err := open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.DB.Driver == database.DriverPostgres {
		log.Warn("dropping all entity tables", zap.String("db_name", cfg.DB.DBName))
		if err := schema.Drop(db); err != nil {
			return err
		}
	}

	if err := schema.Initialize(db); err != nil {
		return err
	}
	log.Info("schema initialized")

	s := store.New(db, log)
	if err := seed.ProvisionDefaults(s, provisionOptions(cfg), log); err != nil {
		return err
	}
	log.Info("defaults provisioned", zap.String("mode", cfg.Provision.Mode))
	return nil
}

// runSeed inserts one fixture row per entity kind, idempotent by fixed
// identifier.
func runSeed(cfg *config.Config, log *zap.Logger) error {
	db, err := open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := schema.Initialize(db); err != nil {
		return err
	}

	s := store.New(db, log)
	opts := provisionOptions(cfg)
	if err := seed.ProvisionDefaults(s, opts, log); err != nil {
		return err
	}

	created, skipped := 0, 0
	for _, fixture := range seed.MinimalFixtures(opts) {
		ok, err := seed.SeedSample(s, fixture.Kind, fixture.ID, fixture.Record)
		if err != nil {
			return err
		}
		if ok {
			created++
		} else {
			skipped++
		}
	}
	log.Info("fixtures seeded", zap.Int("created", created), zap.Int("skipped", skipped))
	return nil
}

// runCheck prints row counts per entity and whether the default admin user
// exists.
func runCheck(cfg *config.Config, log *zap.Logger) error {
	db, err := open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	counts, err := schema.Summarize(db)
	if err != nil {
		return err
	}
	for _, kind := range model.Kinds() {
		fmt.Printf("%-20s %d\n", kind.Table(), counts[kind])
	}

	hasAdmin, err := seed.AdminExists(store.New(db, log))
	if err != nil {
		return err
	}
	fmt.Printf("admin user present: %v\n", hasAdmin)
	if !hasAdmin {
		log.Warn("no user carries the admin role; run recreate or seed")
	}
	return nil
}

func runExport(args []string, cfg *config.Config, log *zap.Logger) error {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	file := flags.String("file", "erp-export.json", "snapshot destination")
	if err := flags.Parse(args); err != nil {
		return err
	}

	db, err := open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	out, err := os.Create(*file)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer out.Close()

	if err := store.New(db, log).Export(out); err != nil {
		return err
	}
	log.Info("snapshot written", zap.String("file", *file))
	return nil
}

func runImport(args []string, cfg *config.Config, log *zap.Logger) error {
	flags := flag.NewFlagSet("import", flag.ContinueOnError)
	file := flags.String("file", "erp-export.json", "snapshot source")
	if err := flags.Parse(args); err != nil {
		return err
	}

	db, err := open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := schema.Initialize(db); err != nil {
		return err
	}

	in, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("open snapshot file: %w", err)
	}
	defer in.Close()

	return store.New(db, log).Import(in)
}

func provisionOptions(cfg *config.Config) seed.Options {
	return seed.Options{
		Mode:          cfg.Provision.Mode,
		CompanyID:     cfg.Provision.CompanyID,
		CompanyName:   cfg.Provision.CompanyName,
		Currency:      cfg.Provision.Currency,
		Timezone:      cfg.Provision.Timezone,
		Country:       cfg.Provision.Country,
		AdminID:       cfg.Provision.AdminID,
		AdminUsername: cfg.Provision.AdminUsername,
		AdminEmail:    cfg.Provision.AdminEmail,
		AdminName:     cfg.Provision.AdminName,
		AdminPassword: cfg.Provision.AdminPassword,
	}
}
