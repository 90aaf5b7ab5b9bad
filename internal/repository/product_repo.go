package repository

import (
	"go-product-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter narrows FindAll. Name is a case-insensitive substring
// match; Category is an exact match, with "" or "all" meaning unfiltered.
type ProductFilter struct {
	Name     string
	Category string
}

// OverviewStats for the stats endpoint
type OverviewStats struct {
	TotalProducts int64 `json:"total_products"`
	InStock       int64 `json:"in_stock"`
	OutOfStock    int64 `json:"out_of_stock"`
}

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	Search(name, category string, limit int) ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	Delete(id uuid.UUID) (int64, error)
	GetOverviewStats() (*OverviewStats, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// Create accepts a *gorm.DB (tx) so the insert can run inside the same
// transaction as the initial-stock history entry
func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	q := r.db.Model(&model.Product{})
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" && filter.Category != "all" {
		q = q.Where("category = ?", filter.Category)
	}

	products := make([]model.Product, 0)
	err := q.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) Search(name, category string, limit int) ([]model.Product, error) {
	q := r.db.Model(&model.Product{})
	if name != "" {
		q = q.Where("name ILIKE ?", "%"+name+"%")
	}
	if category != "" && category != "all" {
		q = q.Where("category ILIKE ?", "%"+category+"%")
	}

	products := make([]model.Product, 0)
	err := q.Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

// FindByIDForUpdate takes a FOR UPDATE row lock for the remainder of the
// transaction; callers must pass the transaction handle.
func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "name = ?", name).Error
	return &product, err
}

// Save accepts a *gorm.DB (tx) so stock writes stay inside the transaction
// that also appends the history entry
func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	return tx.Save(product).Error
}

// Delete hard-deletes the product and reports rows affected so callers can
// distinguish "not found" from success. History rows are left untouched.
func (r *productRepo) Delete(id uuid.UUID) (int64, error) {
	result := r.db.Delete(&model.Product{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *productRepo) GetOverviewStats() (*OverviewStats, error) {
	var stats OverviewStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.Product{}).Where("stock > 0").Count(&stats.InStock).Error; err != nil {
		return nil, err
	}
	stats.OutOfStock = stats.TotalProducts - stats.InStock

	return &stats, nil
}
