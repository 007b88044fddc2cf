package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "psxlens/internal/errors"
	"psxlens/internal/models"
	"psxlens/internal/services"
	"psxlens/internal/validator"
)

// --- mock services ---

type mockAnalysisService struct {
	analyzeStockFn  func(ctx context.Context, url string) (*models.StockReport, error)
	compareStocksFn func(ctx context.Context, urlA, urlB string) (*models.ComparisonReport, error)
}

func (m *mockAnalysisService) AnalyzeStock(ctx context.Context, url string) (*models.StockReport, error) {
	if m.analyzeStockFn != nil {
		return m.analyzeStockFn(ctx, url)
	}
	return &models.StockReport{}, nil
}

func (m *mockAnalysisService) CompareStocks(ctx context.Context, urlA, urlB string) (*models.ComparisonReport, error) {
	if m.compareStocksFn != nil {
		return m.compareStocksFn(ctx, urlA, urlB)
	}
	return &models.ComparisonReport{}, nil
}

var _ services.AnalysisServicer = (*mockAnalysisService)(nil)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func setupAnalysisRouter(handler *AnalysisHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/analyze", handler.Analyze)
	r.POST("/api/compare", handler.Compare)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

// --- tests ---

func TestAnalysisHandler_Analyze(t *testing.T) {
	t.Run("returns 200 with report", func(t *testing.T) {
		svc := &mockAnalysisService{
			analyzeStockFn: func(_ context.Context, url string) (*models.StockReport, error) {
				report := &models.StockReport{
					Analysis: models.Analysis{
						FinancialHealth: "Strong",
						RiskLevel:       "Low",
						SummaryPoints:   []string{"Consistently profitable."},
					},
				}
				report.Company = models.CompanyInfo{Symbol: "HBL", Name: "Habib Bank Limited"}
				return report, nil
			},
		}
		r := setupAnalysisRouter(NewAnalysisHandler(svc))

		rec := doRequest(r, "POST", "/api/analyze", `{"url":"https://dps.psx.com.pk/company/HBL"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		company := result["company"].(map[string]interface{})
		if company["symbol"] != "HBL" {
			t.Errorf("expected symbol HBL, got %v", company["symbol"])
		}
		analysis := result["analysis"].(map[string]interface{})
		if analysis["financial_health"] != "Strong" {
			t.Errorf("expected Strong health, got %v", analysis["financial_health"])
		}
	})

	t.Run("returns 400 for non-PSX url", func(t *testing.T) {
		r := setupAnalysisRouter(NewAnalysisHandler(&mockAnalysisService{}))

		rec := doRequest(r, "POST", "/api/analyze", `{"url":"https://example.com/company/HBL"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 for missing url", func(t *testing.T) {
		r := setupAnalysisRouter(NewAnalysisHandler(&mockAnalysisService{}))

		rec := doRequest(r, "POST", "/api/analyze", `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when company not found", func(t *testing.T) {
		svc := &mockAnalysisService{
			analyzeStockFn: func(_ context.Context, _ string) (*models.StockReport, error) {
				return nil, apperrors.ErrCompanyNotFound
			},
		}
		r := setupAnalysisRouter(NewAnalysisHandler(svc))

		rec := doRequest(r, "POST", "/api/analyze", `{"url":"https://dps.psx.com.pk/company/NOPE"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "COMPANY_NOT_FOUND")
	})

	t.Run("returns 502 when PSX is down", func(t *testing.T) {
		svc := &mockAnalysisService{
			analyzeStockFn: func(_ context.Context, _ string) (*models.StockReport, error) {
				return nil, apperrors.ErrUpstreamUnavailable
			},
		}
		r := setupAnalysisRouter(NewAnalysisHandler(svc))

		rec := doRequest(r, "POST", "/api/analyze", `{"url":"https://dps.psx.com.pk/company/HBL"}`)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UPSTREAM_UNAVAILABLE")
	})
}

func TestAnalysisHandler_Compare(t *testing.T) {
	t.Run("returns 200 with comparison", func(t *testing.T) {
		svc := &mockAnalysisService{
			compareStocksFn: func(_ context.Context, urlA, urlB string) (*models.ComparisonReport, error) {
				a := &models.StockReport{}
				a.Company = models.CompanyInfo{Symbol: "HBL"}
				b := &models.StockReport{}
				b.Company = models.CompanyInfo{Symbol: "ENGRO"}
				return &models.ComparisonReport{
					StockA: a,
					StockB: b,
					Comparison: models.ComparisonResult{
						Metrics: []models.ComparisonMetric{},
						ScoreA:  4,
						ScoreB:  2,
						Verdict: "HBL is clearly ahead, winning 4 of 7 categories.",
					},
				}, nil
			},
		}
		r := setupAnalysisRouter(NewAnalysisHandler(svc))

		rec := doRequest(r, "POST", "/api/compare",
			`{"url_a":"https://dps.psx.com.pk/company/HBL","url_b":"https://dps.psx.com.pk/company/ENGRO"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		comparison := result["comparison"].(map[string]interface{})
		if comparison["score_a"] != float64(4) {
			t.Errorf("expected score_a 4, got %v", comparison["score_a"])
		}
		if comparison["verdict"] == "" {
			t.Error("expected a verdict")
		}
	})

	t.Run("returns 400 when one url is invalid", func(t *testing.T) {
		r := setupAnalysisRouter(NewAnalysisHandler(&mockAnalysisService{}))

		rec := doRequest(r, "POST", "/api/compare",
			`{"url_a":"https://dps.psx.com.pk/company/HBL","url_b":"not-a-url"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 when comparing a stock with itself", func(t *testing.T) {
		svc := &mockAnalysisService{
			compareStocksFn: func(_ context.Context, _, _ string) (*models.ComparisonReport, error) {
				return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cannot compare a stock with itself")
			},
		}
		r := setupAnalysisRouter(NewAnalysisHandler(svc))

		rec := doRequest(r, "POST", "/api/compare",
			`{"url_a":"https://dps.psx.com.pk/company/HBL","url_b":"https://dps.psx.com.pk/company/HBL"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
