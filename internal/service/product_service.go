package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-product-inventory/internal/model"
	"go-product-inventory/internal/repository"
	"go-product-inventory/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrDuplicateName   = errors.New("product name already exists")
	ErrProductNotFound = errors.New("product not found")
	ErrSearchParams    = fmt.Errorf("%w: provide a search term or select a category", ErrValidation)
)

const (
	historyLimit = 50
	searchLimit  = 100
)

// TxRunner runs a function inside a database transaction.
// *gorm.DB satisfies it directly.
type TxRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// Actor identifies the session user that a history entry is attributed to.
// A zero Actor falls back to the "system"/"System" sentinel.
type Actor struct {
	ID   string
	Name string
}

func (a Actor) orSystem() Actor {
	if a.ID == "" {
		a.ID = model.SystemUserID
	}
	if a.Name == "" {
		a.Name = model.SystemUserName
	}
	return a
}

type CreateProductRequest struct {
	Name     string `json:"name" validate:"required"`
	Unit     string `json:"unit" validate:"required"`
	Category string `json:"category" validate:"required"`
	Brand    string `json:"brand" validate:"required"`
	Stock    int    `json:"stock" validate:"gte=0"`
	Image    string `json:"image"`
}

func (r *CreateProductRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Unit = strings.TrimSpace(r.Unit)
	r.Category = strings.TrimSpace(r.Category)
	r.Brand = strings.TrimSpace(r.Brand)
}

// UpdateProductRequest is a partial update: nil fields are left untouched.
type UpdateProductRequest struct {
	Name     *string `json:"name"`
	Unit     *string `json:"unit"`
	Category *string `json:"category"`
	Brand    *string `json:"brand"`
	Stock    *int    `json:"stock" validate:"omitempty,gte=0"`
	Image    *string `json:"image"`
}

// normalize trims the text fields and rejects present-but-empty ones; a
// partial update may omit a required field but never blank it.
func (r *UpdateProductRequest) normalize() error {
	for name, f := range map[string]*string{
		"name":     r.Name,
		"unit":     r.Unit,
		"category": r.Category,
		"brand":    r.Brand,
	} {
		if f == nil {
			continue
		}
		*f = strings.TrimSpace(*f)
		if *f == "" {
			return fmt.Errorf("%w: field '%s' must not be empty", ErrValidation, name)
		}
	}
	return nil
}

type ProductService interface {
	CreateProduct(req *CreateProductRequest, actor Actor) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actor Actor) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	GetProduct(id uuid.UUID) (*model.Product, error)
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	SearchProducts(name, category string) ([]model.Product, error)
	GetHistory(productID uuid.UUID) ([]model.InventoryHistory, error)
}

type productService struct {
	productRepo repository.ProductRepository
	historyRepo repository.HistoryRepository
	tx          TxRunner
}

func NewProductService(pRepo repository.ProductRepository, hRepo repository.HistoryRepository, tx TxRunner) ProductService {
	return &productService{
		productRepo: pRepo,
		historyRepo: hRepo,
		tx:          tx,
	}
}

func (s *productService) CreateProduct(req *CreateProductRequest, actor Actor) (*model.Product, error) {
	req.normalize()
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	// Pre-check for the friendly 409; the unique index on name is the
	// authoritative guard under concurrency.
	existing, _ := s.productRepo.FindByName(req.Name)
	if existing != nil && existing.ID != uuid.Nil {
		return nil, ErrDuplicateName
	}

	product := &model.Product{
		Name:     req.Name,
		Unit:     req.Unit,
		Category: req.Category,
		Brand:    req.Brand,
		Stock:    req.Stock,
		Status:   model.DeriveStatus(req.Stock),
		Image:    req.Image,
	}

	actor = actor.orSystem()

	err := s.tx.Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(tx, product); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateName
			}
			return err
		}
		// Initial stock is a one-time (old=0, new=stock) entry. Nothing is
		// recorded for products created empty.
		if product.Stock > 0 {
			entry := &model.InventoryHistory{
				ProductID:   product.ID,
				OldQuantity: 0,
				NewQuantity: product.Stock,
				ChangeDate:  time.Now(),
				UserID:      actor.ID,
				UserName:    actor.Name,
			}
			return s.historyRepo.Create(tx, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actor Actor) (*model.Product, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
	}

	actor = actor.orSystem()

	var updated *model.Product
	err := s.tx.Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		oldStock := existing.Stock

		if req.Name != nil && *req.Name != existing.Name {
			dup, _ := s.productRepo.FindByName(*req.Name)
			if dup != nil && dup.ID != uuid.Nil {
				return ErrDuplicateName
			}
			existing.Name = *req.Name
		}
		if req.Unit != nil {
			existing.Unit = *req.Unit
		}
		if req.Category != nil {
			existing.Category = *req.Category
		}
		if req.Brand != nil {
			existing.Brand = *req.Brand
		}
		if req.Image != nil {
			existing.Image = *req.Image
		}
		if req.Stock != nil {
			existing.Stock = *req.Stock
			// Recomputed unconditionally, even when stock is unchanged.
			existing.Status = model.DeriveStatus(*req.Stock)
		}

		// The ledger append precedes the product write; inside the
		// transaction both commit or neither does.
		if req.Stock != nil && *req.Stock != oldStock {
			entry := &model.InventoryHistory{
				ProductID:   existing.ID,
				OldQuantity: oldStock,
				NewQuantity: *req.Stock,
				ChangeDate:  time.Now(),
				UserID:      actor.ID,
				UserName:    actor.Name,
			}
			if err := s.historyRepo.Create(tx, entry); err != nil {
				return err
			}
		}

		if err := s.productRepo.Save(tx, existing); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateName
			}
			return err
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteProduct removes the product only. History entries stay behind as an
// audit trail of what happened.
func (s *productService) DeleteProduct(id uuid.UUID) error {
	rows, err := s.productRepo.Delete(id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.FindAll(filter)
}

func (s *productService) SearchProducts(name, category string) ([]model.Product, error) {
	if name == "" && category == "" {
		return nil, ErrSearchParams
	}
	return s.productRepo.Search(name, category, searchLimit)
}

func (s *productService) GetHistory(productID uuid.UUID) ([]model.InventoryHistory, error) {
	return s.historyRepo.FindByProduct(productID, historyLimit)
}
