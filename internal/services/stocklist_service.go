package services

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "psxlens/internal/errors"
	"psxlens/internal/logger"
	"psxlens/internal/models"
	"psxlens/internal/validator"
)

// stockListService serves index constituent lists with a database cache.
type stockListService struct {
	db      *gorm.DB
	fetcher CompanyFetcher
	ttl     time.Duration
}

// NewStockListService creates a new StockListServicer. Lists are cached in
// db for ttl; a stale list is re-scraped on the next request.
func NewStockListService(db *gorm.DB, fetcher CompanyFetcher, ttl time.Duration) StockListServicer {
	return &stockListService{db: db, fetcher: fetcher, ttl: ttl}
}

// GetStocks returns the constituents of an index, sorted by symbol. The bool
// result is true when the list was served from the cache.
func (s *stockListService) GetStocks(ctx context.Context, index string) ([]models.StockListItem, bool, error) {
	if !validator.IsValidIndex(index) {
		return nil, false, apperrors.ErrInvalidIndex
	}

	if stocks := s.cachedList(index); stocks != nil {
		return stocks, true, nil
	}

	fetched, err := s.fetcher.FetchStockList(ctx, index)
	if err != nil {
		return nil, false, mapFetchError(err)
	}

	sort.Slice(fetched, func(i, j int) bool { return fetched[i].Symbol < fetched[j].Symbol })
	s.storeList(index, fetched)
	return fetched, false, nil
}

// cachedList returns the cached constituents when the cache is fresh, or nil.
func (s *stockListService) cachedList(index string) []models.StockListItem {
	var entries []models.StockListEntry
	cutoff := time.Now().Add(-s.ttl)
	err := s.db.
		Where("index_name = ? AND fetched_at > ?", index, cutoff).
		Order("symbol asc").
		Find(&entries).Error
	if err != nil {
		logger.Get().Warnw("stock list cache lookup failed", "index", index, "error", err)
		return nil
	}
	if len(entries) == 0 {
		return nil
	}

	stocks := make([]models.StockListItem, len(entries))
	for i, e := range entries {
		stocks[i] = models.StockListItem{Symbol: e.Symbol, Name: e.Name}
	}
	return stocks
}

// storeList replaces the cached rows for an index. Failures are logged and
// ignored: the fetched list is still returned to the caller.
func (s *stockListService) storeList(index string, stocks []models.StockListItem) {
	if len(stocks) == 0 {
		return
	}

	now := time.Now()
	entries := make([]models.StockListEntry, len(stocks))
	for i, stock := range stocks {
		entries[i] = models.StockListEntry{
			IndexName: index,
			Symbol:    stock.Symbol,
			Name:      stock.Name,
			FetchedAt: now,
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("index_name = ?", index).Delete(&models.StockListEntry{}).Error; err != nil {
			return err
		}
		return tx.Create(&entries).Error
	})
	if err != nil {
		logger.Get().Warnw("failed to cache stock list", "index", index, "error", err)
	}
}
