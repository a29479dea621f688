// Package schema owns creation and inspection of the entity tables: creation
// order follows foreign-key dependencies, and a store whose existing
// structure does not match is refused rather than destroyed. Destruction is
// the maintenance CLI's job and is gated there.
package schema

import (
	"fmt"

	"gorm.io/gorm"

	"erp-datastore/internal/apperrors"
	"erp-datastore/internal/model"
)

// signatureColumns maps each entity kind to a column that identifies its
// expected shape. A present table missing its signature column is treated as
// a foreign structure, not ours.
var signatureColumns = map[model.Kind]string{
	model.KindCompany:         "currency",
	model.KindUser:            "username",
	model.KindPartner:         "is_supplier",
	model.KindProduct:         "sku",
	model.KindWorkCenter:      "efficiency",
	model.KindProject:         "budget",
	model.KindTask:            "priority",
	model.KindProductionOrder: "order_number",
	model.KindPurchaseOrder:   "order_number",
	model.KindChartOfAccount:  "code",
	model.KindWorkOrder:       "planned_hours",
	model.KindTransaction:     "transaction_number",
}

// Initialize creates all entity tables in dependency order. A store that
// already holds a partial or mismatched top-level structure fails with
// ErrSchemaConflict; a store that already matches is migrated additively,
// which is a no-op on an up-to-date schema.
func Initialize(db *gorm.DB) error {
	migrator := db.Migrator()

	var present, absent []model.Kind
	for _, kind := range model.Kinds() {
		if migrator.HasTable(kind.Table()) {
			present = append(present, kind)
		} else {
			absent = append(absent, kind)
		}
	}

	if len(present) > 0 && len(absent) > 0 {
		return fmt.Errorf("%w: tables %v exist but %v are missing",
			apperrors.ErrSchemaConflict, tableNames(present), tableNames(absent))
	}

	for _, kind := range present {
		rec, err := model.NewRecord(kind)
		if err != nil {
			return err
		}
		col := signatureColumns[kind]
		if !migrator.HasColumn(rec, col) {
			return fmt.Errorf("%w: table %s has no %s column",
				apperrors.ErrSchemaConflict, kind.Table(), col)
		}
	}

	if err := db.AutoMigrate(model.Migrations()...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Drop removes all entity tables in reverse dependency order. Destructive
// and non-recoverable; callers take their own backup first.
func Drop(db *gorm.DB) error {
	kinds := model.Kinds()
	for i := len(kinds) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(kinds[i].Table()); err != nil {
			return fmt.Errorf("drop table %s: %w", kinds[i].Table(), err)
		}
	}
	return nil
}

// Summarize returns the row count per entity kind, for diagnostic reporting.
func Summarize(db *gorm.DB) (map[model.Kind]int64, error) {
	counts := make(map[model.Kind]int64, len(model.Kinds()))
	for _, kind := range model.Kinds() {
		var n int64
		if err := db.Table(kind.Table()).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", kind.Table(), err)
		}
		counts[kind] = n
	}
	return counts, nil
}

func tableNames(kinds []model.Kind) []string {
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k.Table())
	}
	return out
}
