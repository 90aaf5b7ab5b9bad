package repository

import (
	"time"

	"go-product-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementData for chart data, one row per day with ledger entries
type StockMovementData struct {
	Date      string `json:"date"`
	Increased int    `json:"increased"`
	Decreased int    `json:"decreased"`
}

type HistoryRepository interface {
	Create(tx *gorm.DB, entry *model.InventoryHistory) error
	FindByProduct(productID uuid.UUID, limit int) ([]model.InventoryHistory, error)
	GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error)
}

type historyRepo struct {
	db *gorm.DB
}

func NewHistoryRepo(db *gorm.DB) HistoryRepository {
	return &historyRepo{db}
}

// Create accepts a *gorm.DB (tx) so the append commits atomically with the
// stock write it records
func (r *historyRepo) Create(tx *gorm.DB, entry *model.InventoryHistory) error {
	return tx.Create(entry).Error
}

func (r *historyRepo) FindByProduct(productID uuid.UUID, limit int) ([]model.InventoryHistory, error) {
	entries := make([]model.InventoryHistory, 0)
	err := r.db.
		Where("product_id = ?", productID).
		Order("change_date DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (r *historyRepo) GetStockMovement(startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	// to_char keeps the date column a plain YYYY-MM-DD string when scanned
	rows, err := r.db.Model(&model.InventoryHistory{}).
		Select(`
			to_char(change_date, 'YYYY-MM-DD') as date,
			COALESCE(SUM(CASE WHEN new_quantity > old_quantity THEN new_quantity - old_quantity ELSE 0 END), 0) as increased,
			COALESCE(SUM(CASE WHEN old_quantity > new_quantity THEN old_quantity - new_quantity ELSE 0 END), 0) as decreased
		`).
		Where("change_date BETWEEN ? AND ?", startDate, endDate).
		Group("to_char(change_date, 'YYYY-MM-DD')").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Increased, &data.Decreased); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, nil
}
