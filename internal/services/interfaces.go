package services

import (
	"context"

	"psxlens/internal/models"
)

// CompanyFetcher is the scraping contract the services depend on. The
// production implementation is the PSX scraper client; tests substitute a
// mock.
type CompanyFetcher interface {
	FetchCompany(ctx context.Context, url string) (*models.CompanyRecord, error)
	FetchStockList(ctx context.Context, index string) ([]models.StockListItem, error)
}

// AnalysisServicer defines the contract for stock analysis business logic.
type AnalysisServicer interface {
	AnalyzeStock(ctx context.Context, url string) (*models.StockReport, error)
	CompareStocks(ctx context.Context, urlA, urlB string) (*models.ComparisonReport, error)
}

// StockListServicer defines the contract for index constituent listings.
// The bool result reports whether the list came from the local cache.
type StockListServicer interface {
	GetStocks(ctx context.Context, index string) ([]models.StockListItem, bool, error)
}
