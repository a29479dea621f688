package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"erp-datastore/internal/model"
)

// Fixture is one sample record under a fixed identifier, distinct from the
// provisioning defaults.
type Fixture struct {
	Kind   model.Kind
	ID     string
	Record interface{}
}

// Well-known fixture identifiers, one per entity kind.
const (
	FixturePartnerID         = "fixture-partner"
	FixtureProductID         = "fixture-product"
	FixtureWorkCenterID      = "fixture-work-center"
	FixtureProjectID         = "fixture-project"
	FixtureTaskID            = "fixture-task"
	FixtureProductionOrderID = "fixture-production-order"
	FixturePurchaseOrderID   = "fixture-purchase-order"
	FixtureAccountID         = "fixture-account"
	FixtureWorkOrderID       = "fixture-work-order"
	FixtureTransactionID     = "fixture-transaction"
)

// MinimalFixtures returns one sample record per entity kind (beyond the
// provisioned company and admin), in foreign-key dependency order. The
// records reference the provisioning defaults and each other, so seeding
// them exercises every relationship in the schema.
func MinimalFixtures(opts Options) []Fixture {
	companyID := opts.CompanyID
	adminID := opts.AdminID
	now := time.Now().UTC().Truncate(time.Second)
	due := now.AddDate(0, 0, 14)

	return []Fixture{
		{model.KindPartner, FixturePartnerID, &model.Partner{
			ID:         FixturePartnerID,
			Name:       "Acme Supplies Ltd",
			Type:       model.PartnerTypeBoth,
			Email:      "contact@acme-supplies.example",
			Phone:      "+1 555 0100",
			City:       "Springfield",
			Country:    "US",
			IsCustomer: true,
			IsSupplier: true,
			TaxID:      "US-0100",
			CompanyID:  &companyID,
		}},
		{model.KindProduct, FixtureProductID, &model.Product{
			ID:        FixtureProductID,
			Name:      "Steel Bracket",
			SKU:       "SKU-0001",
			Category:  "hardware",
			Price:     decimal.RequireFromString("12.50"),
			Cost:      decimal.RequireFromString("7.10"),
			Quantity:  100,
			Unit:      "pcs",
			IsActive:  true,
			CompanyID: &companyID,
		}},
		{model.KindWorkCenter, FixtureWorkCenterID, &model.WorkCenter{
			ID:         FixtureWorkCenterID,
			Name:       "Assembly Line 1",
			Capacity:   8,
			Efficiency: 1.0,
			CompanyID:  &companyID,
		}},
		{model.KindProject, FixtureProjectID, &model.Project{
			ID:         FixtureProjectID,
			Name:       "Warehouse Expansion",
			Status:     model.ProjectStatusActive,
			StartDate:  &now,
			Budget:     decimal.RequireFromString("25000"),
			CompanyID:  &companyID,
			ManagerID:  &adminID,
			CustomerID: strPtr(FixturePartnerID),
		}},
		{model.KindTask, FixtureTaskID, &model.Task{
			ID:         FixtureTaskID,
			Title:      "Order racking",
			Status:     model.TaskStatusTodo,
			Priority:   model.TaskPriorityHigh,
			DueDate:    &due,
			CompanyID:  &companyID,
			AssigneeID: &adminID,
			ProjectID:  strPtr(FixtureProjectID),
		}},
		{model.KindProductionOrder, FixtureProductionOrderID, &model.ProductionOrder{
			ID:          FixtureProductionOrderID,
			OrderNumber: "MO-0001",
			Quantity:    50,
			Status:      model.ProductionOrderStatusPlanned,
			CompanyID:   &companyID,
			ProductID:   FixtureProductID,
		}},
		{model.KindPurchaseOrder, FixturePurchaseOrderID, &model.PurchaseOrder{
			ID:          FixturePurchaseOrderID,
			OrderNumber: "PO-0001",
			OrderDate:   &now,
			Status:      model.PurchaseOrderStatusDraft,
			Subtotal:    decimal.RequireFromString("355.00"),
			Tax:         decimal.RequireFromString("35.50"),
			Total:       decimal.RequireFromString("390.50"),
			CompanyID:   &companyID,
			SupplierID:  FixturePartnerID,
		}},
		{model.KindChartOfAccount, FixtureAccountID, &model.ChartOfAccount{
			ID:        FixtureAccountID,
			Code:      "1000",
			Name:      "Cash",
			Type:      model.AccountTypeAsset,
			IsActive:  true,
			CompanyID: &companyID,
		}},
		{model.KindWorkOrder, FixtureWorkOrderID, &model.WorkOrder{
			ID:                FixtureWorkOrderID,
			Description:       "Assemble brackets",
			Status:            "pending",
			PlannedHours:      16,
			CompanyID:         &companyID,
			ProductionOrderID: FixtureProductionOrderID,
			WorkCenterID:      FixtureWorkCenterID,
		}},
		{model.KindTransaction, FixtureTransactionID, &model.Transaction{
			ID:                FixtureTransactionID,
			TransactionNumber: "TXN-0001",
			Type:              "purchase",
			Amount:            decimal.RequireFromString("390.50"),
			Date:              &now,
			ReferenceKind:     model.KindPurchaseOrder,
			ReferenceID:       FixturePurchaseOrderID,
			Status:            model.TransactionStatusPending,
			CompanyID:         &companyID,
			CreatedByID:       &adminID,
		}},
	}
}

func strPtr(s string) *string {
	return &s
}
