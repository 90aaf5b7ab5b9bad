package csvutil

import (
	"fmt"
	"strconv"
	"strings"

	"go-product-inventory/internal/model"

	"github.com/gocarina/gocsv"
)

// productRow mirrors the CSV schema: name,unit,category,brand,stock,status,image.
// Stock rides as a string so one malformed value rejects only its own row
// instead of failing the whole file.
type productRow struct {
	Name     string `csv:"name"`
	Unit     string `csv:"unit"`
	Category string `csv:"category"`
	Brand    string `csv:"brand"`
	Stock    string `csv:"stock"`
	Status   string `csv:"status"` // advisory only, always recomputed from stock
	Image    string `csv:"image"`
}

// Draft is a parsed-but-not-yet-persisted candidate product record.
type Draft struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Stock    int    `json:"stock"`
	Image    string `json:"image"`
}

// RejectedRow reports a per-row parse failure. Row numbering is 1-based and
// excludes the header line.
type RejectedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type ParseResult struct {
	Accepted []Draft
	Rejected []RejectedRow
}

func init() {
	// A header missing any required column fails the whole file instead of
	// silently zero-filling the fields.
	gocsv.FailIfUnmatchedStructTags = true
}

// ParseProducts converts CSV text into product drafts. Malformed rows land in
// Rejected; structural failures (missing columns, unparseable text, empty
// file) return an error and abort the batch.
func ParseProducts(text string) (*ParseResult, error) {
	var rows []productRow
	if err := gocsv.UnmarshalString(text, &rows); err != nil {
		return nil, fmt.Errorf("invalid CSV file: %w", err)
	}

	result := &ParseResult{}
	for i, row := range rows {
		rowNum := i + 1

		draft := Draft{
			Name:     strings.TrimSpace(row.Name),
			Unit:     strings.TrimSpace(row.Unit),
			Category: strings.TrimSpace(row.Category),
			Brand:    strings.TrimSpace(row.Brand),
			Image:    strings.TrimSpace(row.Image),
		}
		if draft.Name == "" || draft.Unit == "" || draft.Category == "" || draft.Brand == "" {
			result.Rejected = append(result.Rejected, RejectedRow{Row: rowNum, Reason: "missing required fields"})
			continue
		}

		if stockText := strings.TrimSpace(row.Stock); stockText != "" {
			n, err := strconv.Atoi(stockText)
			if err != nil || n < 0 {
				result.Rejected = append(result.Rejected, RejectedRow{Row: rowNum, Reason: "invalid stock value"})
				continue
			}
			draft.Stock = n
		}

		result.Accepted = append(result.Accepted, draft)
	}

	return result, nil
}

// GenerateProducts flattens products into CSV text, header row first.
func GenerateProducts(products []model.Product) (string, error) {
	rows := make([]productRow, len(products))
	for i, p := range products {
		rows[i] = productRow{
			Name:     p.Name,
			Unit:     p.Unit,
			Category: p.Category,
			Brand:    p.Brand,
			Stock:    strconv.Itoa(p.Stock),
			Status:   string(p.Status),
			Image:    p.Image,
		}
	}
	return gocsv.MarshalString(&rows)
}
