package store

import (
	"encoding/json"
	"fmt"
	"io"

	"go.uber.org/zap"

	"erp-datastore/internal/model"
)

// Snapshot is the JSON shape of a full store export. Collections appear in
// foreign-key dependency order so a snapshot can be imported front to back.
type Snapshot struct {
	Companies        []model.Company         `json:"companies"`
	Users            []model.User            `json:"users"`
	Partners         []model.Partner         `json:"partners"`
	Products         []model.Product         `json:"products"`
	WorkCenters      []model.WorkCenter      `json:"work_centers"`
	Projects         []model.Project         `json:"projects"`
	Tasks            []model.Task            `json:"tasks"`
	ProductionOrders []model.ProductionOrder `json:"production_orders"`
	PurchaseOrders   []model.PurchaseOrder   `json:"purchase_orders"`
	ChartOfAccounts  []model.ChartOfAccount  `json:"chart_of_accounts"`
	WorkOrders       []model.WorkOrder       `json:"work_orders"`
	Transactions     []model.Transaction     `json:"transactions"`
}

// Export writes a JSON snapshot of every collection. Exporting is an
// explicit operation with its own trigger; nothing exports as a side effect
// of mutation.
func (s *Store) Export(w io.Writer) error {
	var snap Snapshot
	for _, dst := range []interface{}{
		&snap.Companies, &snap.Users, &snap.Partners, &snap.Products,
		&snap.WorkCenters, &snap.Projects, &snap.Tasks, &snap.ProductionOrders,
		&snap.PurchaseOrders, &snap.ChartOfAccounts, &snap.WorkOrders,
		&snap.Transactions,
	} {
		if err := s.db.Find(dst).Error; err != nil {
			return fmt.Errorf("export: %w", err)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&snap); err != nil {
		return fmt.Errorf("export: encode snapshot: %w", err)
	}
	s.log.Info("store exported",
		zap.Int("companies", len(snap.Companies)),
		zap.Int("users", len(snap.Users)))
	return nil
}

// Import loads a JSON snapshot, inserting records in dependency order.
// Records whose id already exists are skipped; every insert passes the same
// validation as a direct Put.
func (s *Store) Import(r io.Reader) error {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("import: decode snapshot: %w", err)
	}

	created, skipped := 0, 0
	imp := func(kind model.Kind, id string, rec interface{}) error {
		if id == "" {
			return fmt.Errorf("import: %s record without id", kind)
		}
		exists, err := s.Exists(kind, id)
		if err != nil {
			return err
		}
		if exists {
			skipped++
			return nil
		}
		if err := s.Put(kind, rec); err != nil {
			return fmt.Errorf("import %s %q: %w", kind, id, err)
		}
		created++
		return nil
	}

	for i := range snap.Companies {
		if err := imp(model.KindCompany, snap.Companies[i].ID, &snap.Companies[i]); err != nil {
			return err
		}
	}
	for i := range snap.Users {
		if err := imp(model.KindUser, snap.Users[i].ID, &snap.Users[i]); err != nil {
			return err
		}
	}
	for i := range snap.Partners {
		if err := imp(model.KindPartner, snap.Partners[i].ID, &snap.Partners[i]); err != nil {
			return err
		}
	}
	for i := range snap.Products {
		if err := imp(model.KindProduct, snap.Products[i].ID, &snap.Products[i]); err != nil {
			return err
		}
	}
	for i := range snap.WorkCenters {
		if err := imp(model.KindWorkCenter, snap.WorkCenters[i].ID, &snap.WorkCenters[i]); err != nil {
			return err
		}
	}
	for i := range snap.Projects {
		if err := imp(model.KindProject, snap.Projects[i].ID, &snap.Projects[i]); err != nil {
			return err
		}
	}
	for i := range snap.Tasks {
		if err := imp(model.KindTask, snap.Tasks[i].ID, &snap.Tasks[i]); err != nil {
			return err
		}
	}
	for i := range snap.ProductionOrders {
		if err := imp(model.KindProductionOrder, snap.ProductionOrders[i].ID, &snap.ProductionOrders[i]); err != nil {
			return err
		}
	}
	for i := range snap.PurchaseOrders {
		if err := imp(model.KindPurchaseOrder, snap.PurchaseOrders[i].ID, &snap.PurchaseOrders[i]); err != nil {
			return err
		}
	}
	for _, acct := range orderAccountsParentFirst(snap.ChartOfAccounts) {
		if err := imp(model.KindChartOfAccount, acct.ID, acct); err != nil {
			return err
		}
	}
	for i := range snap.WorkOrders {
		if err := imp(model.KindWorkOrder, snap.WorkOrders[i].ID, &snap.WorkOrders[i]); err != nil {
			return err
		}
	}
	for i := range snap.Transactions {
		if err := imp(model.KindTransaction, snap.Transactions[i].ID, &snap.Transactions[i]); err != nil {
			return err
		}
	}

	s.log.Info("store imported", zap.Int("created", created), zap.Int("skipped", skipped))
	return nil
}

// orderAccountsParentFirst arranges accounts so parents precede children.
// Accounts whose parent is outside the snapshot keep their position; cycles
// in the input simply leave the remainder in original order for Put to
// reject.
func orderAccountsParentFirst(accounts []model.ChartOfAccount) []*model.ChartOfAccount {
	inSnap := make(map[string]*model.ChartOfAccount, len(accounts))
	for i := range accounts {
		inSnap[accounts[i].ID] = &accounts[i]
	}

	ordered := make([]*model.ChartOfAccount, 0, len(accounts))
	placed := make(map[string]bool, len(accounts))
	for len(ordered) < len(accounts) {
		progressed := false
		for i := range accounts {
			a := &accounts[i]
			if placed[a.ID] {
				continue
			}
			if a.ParentID != nil {
				if _, ok := inSnap[*a.ParentID]; ok && !placed[*a.ParentID] {
					continue
				}
			}
			ordered = append(ordered, a)
			placed[a.ID] = true
			progressed = true
		}
		if !progressed {
			for i := range accounts {
				if !placed[accounts[i].ID] {
					ordered = append(ordered, &accounts[i])
					placed[accounts[i].ID] = true
				}
			}
		}
	}
	return ordered
}
