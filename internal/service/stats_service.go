package service

import (
	"time"

	"go-product-inventory/internal/repository"
)

type StatsService interface {
	GetOverview() (*repository.OverviewStats, error)
	GetStockMovement(days int) ([]repository.StockMovementData, error)
}

type statsService struct {
	productRepo repository.ProductRepository
	historyRepo repository.HistoryRepository
}

func NewStatsService(pRepo repository.ProductRepository, hRepo repository.HistoryRepository) StatsService {
	return &statsService{productRepo: pRepo, historyRepo: hRepo}
}

func (s *statsService) GetOverview() (*repository.OverviewStats, error) {
	return s.productRepo.GetOverviewStats()
}

func (s *statsService) GetStockMovement(days int) ([]repository.StockMovementData, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.historyRepo.GetStockMovement(startDate, endDate)
}
