package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"psxlens/internal/engine"
	apperrors "psxlens/internal/errors"
	"psxlens/internal/logger"
	"psxlens/internal/models"
	"psxlens/internal/scraper"
)

// analysisService handles single-stock analysis and two-stock comparison.
type analysisService struct {
	db          *gorm.DB
	fetcher     CompanyFetcher
	analyzer    *engine.Analyzer
	comparator  *engine.Comparator
	snapshotTTL time.Duration
}

// NewAnalysisService creates a new AnalysisServicer. Scraped company pages
// are cached in db for snapshotTTL so repeated requests for the same symbol
// do not hammer PSX.
func NewAnalysisService(db *gorm.DB, fetcher CompanyFetcher, snapshotTTL time.Duration) AnalysisServicer {
	return &analysisService{
		db:          db,
		fetcher:     fetcher,
		analyzer:    engine.NewAnalyzer(),
		comparator:  engine.NewComparator(),
		snapshotTTL: snapshotTTL,
	}
}

// AnalyzeStock scrapes one company page and attaches the engine's verdict.
func (s *analysisService) AnalyzeStock(ctx context.Context, url string) (*models.StockReport, error) {
	record, err := s.fetchRecord(ctx, url)
	if err != nil {
		return nil, err
	}
	return s.buildReport(record)
}

// CompareStocks scrapes both company pages concurrently, analyzes each, and
// runs the head-to-head comparison.
func (s *analysisService) CompareStocks(ctx context.Context, urlA, urlB string) (*models.ComparisonReport, error) {
	if scraper.ExtractSymbol(urlA) == scraper.ExtractSymbol(urlB) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cannot compare a stock with itself")
	}

	var (
		wg      sync.WaitGroup
		records [2]*models.CompanyRecord
		errs    [2]error
	)
	for i, url := range []string{urlA, urlB} {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			records[i], errs[i] = s.fetchRecord(ctx, url)
		}(i, url)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	reportA, err := s.buildReport(records[0])
	if err != nil {
		return nil, err
	}
	reportB, err := s.buildReport(records[1])
	if err != nil {
		return nil, err
	}

	return &models.ComparisonReport{
		StockA:     reportA,
		StockB:     reportB,
		Comparison: *s.comparator.Compare(records[0], records[1]),
	}, nil
}

// buildReport runs the analyzer over a record.
func (s *analysisService) buildReport(record *models.CompanyRecord) (*models.StockReport, error) {
	analysis, err := s.analyzer.Analyze(record)
	if err != nil {
		if errors.Is(err, engine.ErrMalformedRecord) {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &models.StockReport{
		CompanyRecord: *record,
		Analysis:      *analysis,
	}, nil
}

// fetchRecord returns the company record for a URL, consulting the snapshot
// cache first. Cache failures are logged and ignored: the cache is an
// optimization, never a source of errors.
func (s *analysisService) fetchRecord(ctx context.Context, url string) (*models.CompanyRecord, error) {
	symbol := scraper.ExtractSymbol(url)

	if record := s.cachedRecord(symbol); record != nil {
		return record, nil
	}

	record, err := s.fetcher.FetchCompany(ctx, url)
	if err != nil {
		return nil, mapFetchError(err)
	}

	s.storeSnapshot(symbol, record)
	return record, nil
}

// cachedRecord returns a fresh cached record for the symbol, or nil.
func (s *analysisService) cachedRecord(symbol string) *models.CompanyRecord {
	var snapshot models.CompanySnapshot
	cutoff := time.Now().Add(-s.snapshotTTL)
	err := s.db.Where("symbol = ? AND fetched_at > ?", symbol, cutoff).First(&snapshot).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Get().Warnw("snapshot cache lookup failed", "symbol", symbol, "error", err)
		}
		return nil
	}

	var record models.CompanyRecord
	if err := json.Unmarshal(snapshot.Payload, &record); err != nil {
		logger.Get().Warnw("discarding corrupt snapshot", "symbol", symbol, "error", err)
		return nil
	}
	return &record
}

// storeSnapshot replaces the cached snapshot for a symbol.
func (s *analysisService) storeSnapshot(symbol string, record *models.CompanyRecord) {
	payload, err := json.Marshal(record)
	if err != nil {
		logger.Get().Warnw("failed to encode snapshot", "symbol", symbol, "error", err)
		return
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("symbol = ?", symbol).Delete(&models.CompanySnapshot{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.CompanySnapshot{
			Symbol:    symbol,
			Payload:   payload,
			FetchedAt: time.Now(),
		}).Error
	})
	if err != nil {
		logger.Get().Warnw("failed to store snapshot", "symbol", symbol, "error", err)
	}
}

// mapFetchError translates scraper sentinels into API errors.
func mapFetchError(err error) error {
	switch {
	case errors.Is(err, scraper.ErrSymbolNotFound):
		return apperrors.Wrap(apperrors.ErrCompanyNotFound, err)
	case errors.Is(err, scraper.ErrUpstream):
		return apperrors.Wrap(apperrors.ErrUpstreamUnavailable, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}
