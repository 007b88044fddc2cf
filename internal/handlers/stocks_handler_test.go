package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "psxlens/internal/errors"
	"psxlens/internal/models"
	"psxlens/internal/services"
)

// --- mock service ---

type mockStockListService struct {
	getStocksFn func(ctx context.Context, index string) ([]models.StockListItem, bool, error)
}

func (m *mockStockListService) GetStocks(ctx context.Context, index string) ([]models.StockListItem, bool, error) {
	if m.getStocksFn != nil {
		return m.getStocksFn(ctx, index)
	}
	return []models.StockListItem{}, false, nil
}

var _ services.StockListServicer = (*mockStockListService)(nil)

func setupStockListRouter(handler *StockListHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/stocks", handler.GetStocks)
	return r
}

// --- tests ---

func TestStockListHandler_GetStocks(t *testing.T) {
	t.Run("returns 200 with stocks", func(t *testing.T) {
		svc := &mockStockListService{
			getStocksFn: func(_ context.Context, index string) ([]models.StockListItem, bool, error) {
				if index != "KSE30" {
					t.Errorf("expected index KSE30, got %s", index)
				}
				return []models.StockListItem{
					{Symbol: "ENGRO", Name: "Engro Corporation"},
					{Symbol: "HBL", Name: "Habib Bank Limited"},
				}, true, nil
			},
		}
		r := setupStockListRouter(NewStockListHandler(svc))

		rec := doRequest(r, "GET", "/api/stocks?index=KSE30", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["index"] != "KSE30" {
			t.Errorf("expected index KSE30, got %v", result["index"])
		}
		if result["cached"] != true {
			t.Error("expected cached true")
		}
		stocks := result["stocks"].([]interface{})
		if len(stocks) != 2 {
			t.Fatalf("expected 2 stocks, got %d", len(stocks))
		}
		first := stocks[0].(map[string]interface{})
		if first["symbol"] != "ENGRO" {
			t.Errorf("expected first symbol ENGRO, got %v", first["symbol"])
		}
	})

	t.Run("defaults to KSE100", func(t *testing.T) {
		var gotIndex string
		svc := &mockStockListService{
			getStocksFn: func(_ context.Context, index string) ([]models.StockListItem, bool, error) {
				gotIndex = index
				return []models.StockListItem{}, false, nil
			},
		}
		r := setupStockListRouter(NewStockListHandler(svc))

		rec := doRequest(r, "GET", "/api/stocks", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotIndex != "KSE100" {
			t.Errorf("expected default index KSE100, got %s", gotIndex)
		}
	})

	t.Run("returns 400 for unknown index", func(t *testing.T) {
		svc := &mockStockListService{
			getStocksFn: func(_ context.Context, _ string) ([]models.StockListItem, bool, error) {
				return nil, false, apperrors.ErrInvalidIndex
			},
		}
		r := setupStockListRouter(NewStockListHandler(svc))

		rec := doRequest(r, "GET", "/api/stocks?index=NASDAQ", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INDEX")
	})

	t.Run("returns 502 when PSX is down", func(t *testing.T) {
		svc := &mockStockListService{
			getStocksFn: func(_ context.Context, _ string) ([]models.StockListItem, bool, error) {
				return nil, false, apperrors.ErrUpstreamUnavailable
			},
		}
		r := setupStockListRouter(NewStockListHandler(svc))

		rec := doRequest(r, "GET", "/api/stocks", "")

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UPSTREAM_UNAVAILABLE")
	})
}
