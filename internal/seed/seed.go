// Package seed owns baseline provisioning (default company + admin user) and
// idempotent sample fixtures for smoke testing. Provisioning and fixtures
// are distinct: the former is a bootstrap invariant, the latter test data.
package seed

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"erp-datastore/internal/apperrors"
	"erp-datastore/internal/model"
	"erp-datastore/internal/store"
)

// Provisioning idempotence policies. Strict checks the well-known
// identifiers; Semantic checks whether any company / any admin-role user
// already exists, regardless of id.
const (
	ModeStrict   = "strict"
	ModeSemantic = "semantic"
)

// Options configures default-row provisioning.
type Options struct {
	Mode          string
	CompanyID     string
	CompanyName   string
	Currency      string
	Timezone      string
	Country       string
	AdminID       string
	AdminUsername string
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// ProvisionDefaults inserts at most one default company and one
// administrative user with a hashed password. Re-running against an already
// provisioned store is a no-op; a store whose well-known identifiers are
// occupied by conflicting rows fails with ErrAlreadyProvisioned (strict mode
// only — semantic mode treats any admin as sufficient).
func ProvisionDefaults(s *store.Store, opts Options, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	switch opts.Mode {
	case ModeStrict, "":
		return provisionStrict(s, opts, log)
	case ModeSemantic:
		return provisionSemantic(s, opts, log)
	default:
		return fmt.Errorf("unknown provisioning mode %q", opts.Mode)
	}
}

func provisionStrict(s *store.Store, opts Options, log *zap.Logger) error {
	var company model.Company
	err := s.Get(model.KindCompany, opts.CompanyID, &company)
	switch {
	case err == nil:
		if company.Name != opts.CompanyName {
			return fmt.Errorf("company id %q holds %q, expected %q: %w",
				opts.CompanyID, company.Name, opts.CompanyName, apperrors.ErrAlreadyProvisioned)
		}
		log.Debug("default company already present", zap.String("id", opts.CompanyID))
	case isNotFound(err):
		if err := s.Put(model.KindCompany, defaultCompany(opts)); err != nil {
			return fmt.Errorf("provision company: %w", err)
		}
		log.Info("default company created", zap.String("id", opts.CompanyID))
	default:
		return err
	}

	var admin model.User
	err = s.Get(model.KindUser, opts.AdminID, &admin)
	switch {
	case err == nil:
		if admin.Username != opts.AdminUsername || !admin.IsAdmin() {
			return fmt.Errorf("user id %q is not the expected admin: %w",
				opts.AdminID, apperrors.ErrAlreadyProvisioned)
		}
		log.Debug("default admin already present", zap.String("id", opts.AdminID))
		return nil
	case isNotFound(err):
		user, err := defaultAdmin(opts)
		if err != nil {
			return err
		}
		if err := s.Put(model.KindUser, user); err != nil {
			return fmt.Errorf("provision admin: %w", err)
		}
		log.Info("default admin created", zap.String("id", opts.AdminID))
		return nil
	default:
		return err
	}
}

func provisionSemantic(s *store.Store, opts Options, log *zap.Logger) error {
	companies, err := s.Count(model.KindCompany)
	if err != nil {
		return err
	}
	if companies == 0 {
		if err := s.Put(model.KindCompany, defaultCompany(opts)); err != nil {
			return fmt.Errorf("provision company: %w", err)
		}
		log.Info("default company created", zap.String("id", opts.CompanyID))
	} else {
		log.Debug("a company already exists, skipping default company")
	}

	hasAdmin, err := AdminExists(s)
	if err != nil {
		return err
	}
	if hasAdmin {
		log.Debug("an admin user already exists, skipping default admin")
		return nil
	}
	user, err := defaultAdmin(opts)
	if err != nil {
		return err
	}
	if err := s.Put(model.KindUser, user); err != nil {
		return fmt.Errorf("provision admin: %w", err)
	}
	log.Info("default admin created", zap.String("id", opts.AdminID))
	return nil
}

// AdminExists reports whether any user carries the admin role.
func AdminExists(s *store.Store) (bool, error) {
	var n int64
	err := s.DB().Table(model.KindUser.Table()).
		Where("roles LIKE ?", `%"`+model.RoleAdmin+`"%`).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SeedSample inserts a single record into the named collection under an
// explicit identifier, skipping insertion when a record with that id already
// exists. The skip is an intentional no-op, not an error. It returns whether
// a row was created.
func SeedSample(s *store.Store, kind model.Kind, id string, rec interface{}) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("seed %s: fixture id must not be empty", kind)
	}
	exists, err := s.Exists(kind, id)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := s.Put(kind, rec); err != nil {
		return false, fmt.Errorf("seed %s %q: %w", kind, id, err)
	}
	return true, nil
}

func defaultCompany(opts Options) *model.Company {
	return &model.Company{
		ID:       opts.CompanyID,
		Name:     opts.CompanyName,
		Currency: opts.Currency,
		Timezone: opts.Timezone,
		Country:  opts.Country,
		Settings: model.SettingsMap{},
	}
}

func defaultAdmin(opts Options) (*model.User, error) {
	user := &model.User{
		ID:       opts.AdminID,
		Username: opts.AdminUsername,
		Email:    opts.AdminEmail,
		Name:     opts.AdminName,
		IsActive: true,
		Roles:    model.StringList{model.RoleAdmin},
		Settings: model.SettingsMap{},
	}
	if opts.CompanyID != "" {
		companyID := opts.CompanyID
		user.CompanyID = &companyID
	}
	if err := user.SetPassword(opts.AdminPassword); err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return user, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
