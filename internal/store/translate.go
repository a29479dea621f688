package store

import (
	"errors"

	"gorm.io/gorm"

	"erp-datastore/internal/apperrors"
	"erp-datastore/internal/model"
)

// translate maps driver errors onto the shared taxonomy. When the record
// that triggered the failure is available, the offending field is identified
// by probing its unique columns and foreign keys; otherwise Field stays
// empty.
func (s *Store) translate(kind model.Kind, rec interface{}, err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperrors.ConstraintViolation{
			Entity: kind.Table(),
			Field:  s.findDuplicateField(kind, rec),
			Kind:   apperrors.ConstraintUnique,
			Err:    err,
		}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &apperrors.ConstraintViolation{
			Entity: kind.Table(),
			Field:  s.findDanglingField(rec),
			Kind:   apperrors.ConstraintForeignKey,
			Err:    err,
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.ErrNotFound
	default:
		return err
	}
}

// findDuplicateField probes each unique column of the record for an existing
// row carrying the same value.
func (s *Store) findDuplicateField(kind model.Kind, rec interface{}) string {
	for column, value := range uniqueValues(rec) {
		var n int64
		err := s.db.Table(kind.Table()).Where(column+" = ?", value).Count(&n).Error
		if err == nil && n > 0 {
			return column
		}
	}
	return ""
}

// findDanglingField probes each foreign key of the record for a missing
// target row.
func (s *Store) findDanglingField(rec interface{}) string {
	for _, ref := range foreignKeyRefs(rec) {
		if ref.id == nil || *ref.id == "" {
			continue
		}
		ok, err := s.Exists(ref.kind, *ref.id)
		if err == nil && !ok {
			return ref.column
		}
	}
	return ""
}

// uniqueValues returns the unique-column values of a record, keyed by column
// name.
func uniqueValues(rec interface{}) map[string]string {
	switch r := rec.(type) {
	case *model.User:
		return map[string]string{"username": r.Username, "email": r.Email}
	case *model.Product:
		return map[string]string{"sku": r.SKU}
	case *model.ProductionOrder:
		return map[string]string{"order_number": r.OrderNumber}
	case *model.PurchaseOrder:
		return map[string]string{"order_number": r.OrderNumber}
	case *model.ChartOfAccount:
		return map[string]string{"code": r.Code}
	case *model.Transaction:
		return map[string]string{"transaction_number": r.TransactionNumber}
	default:
		return nil
	}
}

// fkRef names one foreign-key column of a record together with its target
// collection and the value it carries.
type fkRef struct {
	column string
	kind   model.Kind
	id     *string
}

func strRef(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// foreignKeyRefs enumerates the foreign keys of a record.
func foreignKeyRefs(rec interface{}) []fkRef {
	switch r := rec.(type) {
	case *model.User:
		return []fkRef{{"company_id", model.KindCompany, r.CompanyID}}
	case *model.Partner:
		return []fkRef{{"company_id", model.KindCompany, r.CompanyID}}
	case *model.Product:
		return []fkRef{{"company_id", model.KindCompany, r.CompanyID}}
	case *model.WorkCenter:
		return []fkRef{{"company_id", model.KindCompany, r.CompanyID}}
	case *model.Project:
		return []fkRef{
			{"company_id", model.KindCompany, r.CompanyID},
			{"manager_id", model.KindUser, r.ManagerID},
			{"customer_id", model.KindPartner, r.CustomerID},
		}
	case *model.Task:
		return []fkRef{
			{"company_id", model.KindCompany, r.CompanyID},
			{"assignee_id", model.KindUser, r.AssigneeID},
			{"project_id", model.KindProject, r.ProjectID},
		}
	case *model.ProductionOrder:
		return []fkRef{
			{"company_id", model.KindCompany, r.CompanyID},
			{"product_id", model.KindProduct, strRef(r.ProductID)},
		}
	case *model.PurchaseOrder:
		return []fkRef{
			{"company_id", model.KindCompany, r.CompanyID},
			{"supplier_id", model.KindPartner, strRef(r.SupplierID)},
		}
	case *model.ChartOfAccount:
		return []fkRef{
			{"company_id", model.KindCompany, r.CompanyID},
			{"parent_id", model.KindChartOfAccount, r.ParentID},
		}
	case *model.WorkOrder:
		return []fkRef{
			{"company_id", model.KindCompany, r.CompanyID},
			{"production_order_id", model.KindProductionOrder, strRef(r.ProductionOrderID)},
			{"work_center_id", model.KindWorkCenter, strRef(r.WorkCenterID)},
		}
	case *model.Transaction:
		return []fkRef{
			{"company_id", model.KindCompany, r.CompanyID},
			{"created_by_id", model.KindUser, r.CreatedByID},
		}
	default:
		return nil
	}
}
