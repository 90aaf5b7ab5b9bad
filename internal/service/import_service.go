package service

import (
	"errors"
	"fmt"

	"go-product-inventory/internal/repository"
	"go-product-inventory/pkg/csvutil"
)

// SkippedDraft is a draft that was not persisted, with the reason why.
type SkippedDraft struct {
	csvutil.Draft
	Reason string `json:"reason"`
}

type ImportResult struct {
	Added      int                   `json:"added"`
	Skipped    int                   `json:"skipped"`
	Duplicates []SkippedDraft        `json:"duplicates"`
	Rejected   []csvutil.RejectedRow `json:"rejected,omitempty"`
}

type ImportExportService interface {
	ImportCSV(csvText string, actor Actor) (*ImportResult, error)
	ExportCSV() (string, error)
}

type importExportService struct {
	productService ProductService
	productRepo    repository.ProductRepository
}

func NewImportExportService(ps ProductService, pRepo repository.ProductRepository) ImportExportService {
	return &importExportService{
		productService: ps,
		productRepo:    pRepo,
	}
}

// ImportCSV loads every accepted draft through the regular create path, so
// initial-stock ledger entries and status derivation apply to imports too.
// One row's duplicate or validation failure never aborts the batch; storage
// failures do.
func (s *importExportService) ImportCSV(csvText string, actor Actor) (*ImportResult, error) {
	parsed, err := csvutil.ParseProducts(csvText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	result := &ImportResult{
		Duplicates: []SkippedDraft{},
		Rejected:   parsed.Rejected,
		Skipped:    len(parsed.Rejected),
	}

	for _, draft := range parsed.Accepted {
		req := &CreateProductRequest{
			Name:     draft.Name,
			Unit:     draft.Unit,
			Category: draft.Category,
			Brand:    draft.Brand,
			Stock:    draft.Stock,
			Image:    draft.Image,
		}

		_, err := s.productService.CreateProduct(req, actor)
		switch {
		case err == nil:
			result.Added++
		case errors.Is(err, ErrDuplicateName):
			result.Skipped++
			result.Duplicates = append(result.Duplicates, SkippedDraft{Draft: draft, Reason: "Product name already exists"})
		case errors.Is(err, ErrValidation):
			result.Skipped++
			result.Duplicates = append(result.Duplicates, SkippedDraft{Draft: draft, Reason: "Validation error"})
		default:
			return nil, err
		}
	}

	return result, nil
}

func (s *importExportService) ExportCSV() (string, error) {
	products, err := s.productRepo.FindAll(repository.ProductFilter{})
	if err != nil {
		return "", err
	}
	return csvutil.GenerateProducts(products)
}
