package service_test

import (
	"testing"

	"go-product-inventory/internal/service"

	"github.com/stretchr/testify/require"
)

func TestStatsService(t *testing.T) {
	t.Run("OverviewAgreesWithDerivedStatus", func(t *testing.T) {
		productRepo := newMockProductRepo()
		historyRepo := &mockHistoryRepo{}
		productService := service.NewProductService(productRepo, historyRepo, fakeTxRunner{})
		statsService := service.NewStatsService(productRepo, historyRepo)

		_, err := productService.CreateProduct(createReq("Laptop", 5), service.Actor{})
		require.NoError(t, err)
		_, err = productService.CreateProduct(createReq("Mouse", 0), service.Actor{})
		require.NoError(t, err)

		stats, err := statsService.GetOverview()
		require.NoError(t, err)
		require.EqualValues(t, 2, stats.TotalProducts)
		require.EqualValues(t, 1, stats.InStock)
		require.EqualValues(t, 1, stats.OutOfStock)
	})

	t.Run("StockMovementSumsLedgerDeltas", func(t *testing.T) {
		productRepo := newMockProductRepo()
		historyRepo := &mockHistoryRepo{}
		productService := service.NewProductService(productRepo, historyRepo, fakeTxRunner{})
		statsService := service.NewStatsService(productRepo, historyRepo)

		product, err := productService.CreateProduct(createReq("Laptop", 5), service.Actor{})
		require.NoError(t, err)
		_, err = productService.UpdateProduct(product.ID, &service.UpdateProductRequest{Stock: intPtr(2)}, service.Actor{})
		require.NoError(t, err)

		data, err := statsService.GetStockMovement(7)
		require.NoError(t, err)
		require.Len(t, data, 1)
		require.Equal(t, 5, data[0].Increased)
		require.Equal(t, 3, data[0].Decreased)
	})
}
