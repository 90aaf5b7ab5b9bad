package service_test

import (
	"database/sql"
	"sort"
	"strings"
	"time"

	"go-product-inventory/internal/model"
	"go-product-inventory/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeTxRunner runs the transaction body directly; the mocks below ignore
// the tx handle.
type fakeTxRunner struct{}

func (fakeTxRunner) Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error {
	return fc(nil)
}

type mockProductRepo struct {
	byID map[uuid.UUID]*model.Product

	createErr error
	saveErr   error
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{byID: make(map[uuid.UUID]*model.Product)}
}

func (m *mockProductRepo) Create(tx *gorm.DB, product *model.Product) error {
	if m.createErr != nil {
		return m.createErr
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	stored := *product
	m.byID[product.ID] = &stored
	return nil
}

func (m *mockProductRepo) FindAll(filter repository.ProductFilter) ([]model.Product, error) {
	var products []model.Product
	for _, p := range m.byID {
		if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && p.Category != filter.Category {
			continue
		}
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (m *mockProductRepo) Search(name, category string, limit int) ([]model.Product, error) {
	var products []model.Product
	for _, p := range m.byID {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			continue
		}
		if category != "" && category != "all" &&
			!strings.Contains(strings.ToLower(p.Category), strings.ToLower(category)) {
			continue
		}
		products = append(products, *p)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

func (m *mockProductRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *p
	return &found, nil
}

func (m *mockProductRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return m.FindByID(id)
}

func (m *mockProductRepo) FindByName(name string) (*model.Product, error) {
	for _, p := range m.byID {
		if p.Name == name {
			found := *p
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProductRepo) Save(tx *gorm.DB, product *model.Product) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	product.UpdatedAt = time.Now()
	stored := *product
	m.byID[product.ID] = &stored
	return nil
}

func (m *mockProductRepo) Delete(id uuid.UUID) (int64, error) {
	if _, ok := m.byID[id]; !ok {
		return 0, nil
	}
	delete(m.byID, id)
	return 1, nil
}

func (m *mockProductRepo) GetOverviewStats() (*repository.OverviewStats, error) {
	stats := &repository.OverviewStats{}
	for _, p := range m.byID {
		stats.TotalProducts++
		if p.Stock > 0 {
			stats.InStock++
		} else {
			stats.OutOfStock++
		}
	}
	return stats, nil
}

type mockHistoryRepo struct {
	entries []model.InventoryHistory

	createErr error
}

func (m *mockHistoryRepo) Create(tx *gorm.DB, entry *model.InventoryHistory) error {
	if m.createErr != nil {
		return m.createErr
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockHistoryRepo) FindByProduct(productID uuid.UUID, limit int) ([]model.InventoryHistory, error) {
	var entries []model.InventoryHistory
	for _, e := range m.entries {
		if e.ProductID == productID {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ChangeDate.After(entries[j].ChangeDate)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (m *mockHistoryRepo) GetStockMovement(startDate, endDate time.Time) ([]repository.StockMovementData, error) {
	byDate := make(map[string]*repository.StockMovementData)
	for _, e := range m.entries {
		if e.ChangeDate.Before(startDate) || e.ChangeDate.After(endDate) {
			continue
		}
		date := e.ChangeDate.Format("2006-01-02")
		data, ok := byDate[date]
		if !ok {
			data = &repository.StockMovementData{Date: date}
			byDate[date] = data
		}
		if e.NewQuantity > e.OldQuantity {
			data.Increased += e.NewQuantity - e.OldQuantity
		} else {
			data.Decreased += e.OldQuantity - e.NewQuantity
		}
	}

	var results []repository.StockMovementData
	for _, data := range byDate {
		results = append(results, *data)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })
	return results, nil
}
