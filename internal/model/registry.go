package model

import (
	"fmt"

	"erp-datastore/internal/apperrors"
)

// Kind names an entity collection. It doubles as the tag of polymorphic
// references (Transaction.ReferenceKind).
type Kind string

const (
	KindCompany         Kind = "company"
	KindUser            Kind = "user"
	KindPartner         Kind = "partner"
	KindProduct         Kind = "product"
	KindWorkCenter      Kind = "work_center"
	KindProject         Kind = "project"
	KindTask            Kind = "task"
	KindProductionOrder Kind = "production_order"
	KindPurchaseOrder   Kind = "purchase_order"
	KindChartOfAccount  Kind = "chart_of_account"
	KindWorkOrder       Kind = "work_order"
	KindTransaction     Kind = "transaction"
)

// kindInfo ties a kind to its table and a fresh-record constructor.
type kindInfo struct {
	table string
	new   func() interface{}
}

// registry lists every known kind. Iteration order is not meaningful here;
// use Kinds for dependency-ordered traversal.
var registry = map[Kind]kindInfo{
	KindCompany:         {"companies", func() interface{} { return &Company{} }},
	KindUser:            {"users", func() interface{} { return &User{} }},
	KindPartner:         {"partners", func() interface{} { return &Partner{} }},
	KindProduct:         {"products", func() interface{} { return &Product{} }},
	KindWorkCenter:      {"work_centers", func() interface{} { return &WorkCenter{} }},
	KindProject:         {"projects", func() interface{} { return &Project{} }},
	KindTask:            {"tasks", func() interface{} { return &Task{} }},
	KindProductionOrder: {"production_orders", func() interface{} { return &ProductionOrder{} }},
	KindPurchaseOrder:   {"purchase_orders", func() interface{} { return &PurchaseOrder{} }},
	KindChartOfAccount:  {"chart_of_accounts", func() interface{} { return &ChartOfAccount{} }},
	KindWorkOrder:       {"work_orders", func() interface{} { return &WorkOrder{} }},
	KindTransaction:     {"transactions", func() interface{} { return &Transaction{} }},
}

// Kinds returns all entity kinds in foreign-key dependency order: entities
// with no references first, entities referencing multiple priors last.
func Kinds() []Kind {
	return []Kind{
		KindCompany,
		KindUser,
		KindPartner,
		KindProduct,
		KindWorkCenter,
		KindProject,
		KindTask,
		KindProductionOrder,
		KindPurchaseOrder,
		KindChartOfAccount,
		KindWorkOrder,
		KindTransaction,
	}
}

// Migrations returns prototype records in dependency order, suitable for
// AutoMigrate.
func Migrations() []interface{} {
	kinds := Kinds()
	out := make([]interface{}, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, registry[k].new())
	}
	return out
}

// Valid reports whether the kind is registered.
func (k Kind) Valid() bool {
	_, ok := registry[k]
	return ok
}

// Table returns the table name backing the kind.
func (k Kind) Table() string {
	return registry[k].table
}

// NewRecord returns a zero record of the kind, or an error for unknown kinds.
func NewRecord(k Kind) (interface{}, error) {
	info, ok := registry[k]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownKind, k)
	}
	return info.new(), nil
}

// KindOf resolves the kind of a record by its concrete type.
func KindOf(rec interface{}) (Kind, bool) {
	switch rec.(type) {
	case *Company:
		return KindCompany, true
	case *User:
		return KindUser, true
	case *Partner:
		return KindPartner, true
	case *Product:
		return KindProduct, true
	case *WorkCenter:
		return KindWorkCenter, true
	case *Project:
		return KindProject, true
	case *Task:
		return KindTask, true
	case *ProductionOrder:
		return KindProductionOrder, true
	case *PurchaseOrder:
		return KindPurchaseOrder, true
	case *ChartOfAccount:
		return KindChartOfAccount, true
	case *WorkOrder:
		return KindWorkOrder, true
	case *Transaction:
		return KindTransaction, true
	default:
		return "", false
	}
}
