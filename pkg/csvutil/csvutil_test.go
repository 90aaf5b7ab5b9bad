package csvutil

import (
	"strings"
	"testing"

	"go-product-inventory/internal/model"

	"github.com/stretchr/testify/require"
)

func TestParseProducts(t *testing.T) {
	t.Run("AcceptsWellFormedRows", func(t *testing.T) {
		csvText := strings.Join([]string{
			"name,unit,category,brand,stock,status,image",
			"Laptop,pcs,Electronics,Acme,5,In Stock,http://img/laptop.png",
			"Mouse,pcs,Accessories,Acme,0,Out of Stock,",
		}, "\n")

		result, err := ParseProducts(csvText)
		require.NoError(t, err)
		require.Empty(t, result.Rejected)
		require.Len(t, result.Accepted, 2)

		require.Equal(t, Draft{
			Name:     "Laptop",
			Unit:     "pcs",
			Category: "Electronics",
			Brand:    "Acme",
			Stock:    5,
			Image:    "http://img/laptop.png",
		}, result.Accepted[0])
	})

	t.Run("TrimsWhitespace", func(t *testing.T) {
		csvText := strings.Join([]string{
			"name,unit,category,brand,stock,status,image",
			" Laptop , pcs , Electronics , Acme , 5 ,, ",
		}, "\n")

		result, err := ParseProducts(csvText)
		require.NoError(t, err)
		require.Len(t, result.Accepted, 1)
		require.Equal(t, "Laptop", result.Accepted[0].Name)
		require.Equal(t, 5, result.Accepted[0].Stock)
	})

	t.Run("RejectsRowWithMissingRequiredField", func(t *testing.T) {
		csvText := strings.Join([]string{
			"name,unit,category,brand,stock,status,image",
			"Laptop,,Electronics,Acme,5,,",
			"Mouse,pcs,Accessories,Acme,1,,",
		}, "\n")

		result, err := ParseProducts(csvText)
		require.NoError(t, err)
		require.Len(t, result.Accepted, 1)
		require.Len(t, result.Rejected, 1)
		require.Equal(t, 1, result.Rejected[0].Row)
		require.Equal(t, "missing required fields", result.Rejected[0].Reason)
	})

	t.Run("RejectsRowWithBadStock", func(t *testing.T) {
		csvText := strings.Join([]string{
			"name,unit,category,brand,stock,status,image",
			"Laptop,pcs,Electronics,Acme,lots,,",
			"Mouse,pcs,Accessories,Acme,-3,,",
		}, "\n")

		result, err := ParseProducts(csvText)
		require.NoError(t, err)
		require.Empty(t, result.Accepted)
		require.Len(t, result.Rejected, 2)
		require.Equal(t, "invalid stock value", result.Rejected[0].Reason)
	})

	t.Run("EmptyStockDefaultsToZero", func(t *testing.T) {
		csvText := strings.Join([]string{
			"name,unit,category,brand,stock,status,image",
			"Laptop,pcs,Electronics,Acme,,,",
		}, "\n")

		result, err := ParseProducts(csvText)
		require.NoError(t, err)
		require.Len(t, result.Accepted, 1)
		require.Equal(t, 0, result.Accepted[0].Stock)
	})

	t.Run("StatusColumnIsAdvisoryOnly", func(t *testing.T) {
		// a nonsense status value never rejects a row
		csvText := strings.Join([]string{
			"name,unit,category,brand,stock,status,image",
			"Laptop,pcs,Electronics,Acme,5,garbage,",
		}, "\n")

		result, err := ParseProducts(csvText)
		require.NoError(t, err)
		require.Len(t, result.Accepted, 1)
	})

	t.Run("MissingColumnFailsTheFile", func(t *testing.T) {
		csvText := strings.Join([]string{
			"name,unit,category,brand",
			"Laptop,pcs,Electronics,Acme",
		}, "\n")

		_, err := ParseProducts(csvText)
		require.Error(t, err)
	})

	t.Run("EmptyFileFails", func(t *testing.T) {
		_, err := ParseProducts("")
		require.Error(t, err)
	})
}

func TestGenerateProducts(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		products := []model.Product{
			{Name: "Laptop", Unit: "pcs", Category: "Electronics", Brand: "Acme", Stock: 5, Status: model.StatusInStock, Image: "http://img/laptop.png"},
			{Name: "Mouse", Unit: "pcs", Category: "Accessories", Brand: "Acme", Stock: 0, Status: model.StatusOutOfStock},
		}

		csvText, err := GenerateProducts(products)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(csvText), "\n")
		require.Len(t, lines, 3)
		require.Equal(t, "name,unit,category,brand,stock,status,image", lines[0])

		parsed, err := ParseProducts(csvText)
		require.NoError(t, err)
		require.Empty(t, parsed.Rejected)
		require.Len(t, parsed.Accepted, 2)

		for i, p := range products {
			require.Equal(t, Draft{
				Name:     p.Name,
				Unit:     p.Unit,
				Category: p.Category,
				Brand:    p.Brand,
				Stock:    p.Stock,
				Image:    p.Image,
			}, parsed.Accepted[i])
		}

		// serializing the re-parsed drafts yields the same text, status
		// excluded since it is recomputed downstream
		regenerated := make([]model.Product, len(parsed.Accepted))
		for i, d := range parsed.Accepted {
			regenerated[i] = model.Product{
				Name:     d.Name,
				Unit:     d.Unit,
				Category: d.Category,
				Brand:    d.Brand,
				Stock:    d.Stock,
				Status:   model.DeriveStatus(d.Stock),
				Image:    d.Image,
			}
		}
		csvText2, err := GenerateProducts(regenerated)
		require.NoError(t, err)
		require.Equal(t, csvText, csvText2)
	})
}
