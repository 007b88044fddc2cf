package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "psxlens/internal/errors"
	"psxlens/internal/services"
)

// AnalysisHandler handles stock analysis and comparison requests.
type AnalysisHandler struct {
	analysisService services.AnalysisServicer
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService services.AnalysisServicer) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// AnalyzeRequest represents the request payload for analyzing one stock.
type AnalyzeRequest struct {
	URL string `json:"url" binding:"required,psx_company_url"`
}

// CompareRequest represents the request payload for comparing two stocks.
type CompareRequest struct {
	URLA string `json:"url_a" binding:"required,psx_company_url"`
	URLB string `json:"url_b" binding:"required,psx_company_url"`
}

// Analyze scrapes a PSX company page and returns the record with the
// engine's plain-language verdict.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"url must be a PSX company page like https://dps.psx.com.pk/company/HBL"))
		return
	}

	report, err := h.analysisService.AnalyzeStock(c.Request.Context(), req.URL)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Compare scrapes two PSX company pages and returns both analyzed records
// plus the head-to-head comparison.
func (h *AnalysisHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"url_a and url_b must both be PSX company pages like https://dps.psx.com.pk/company/HBL"))
		return
	}

	report, err := h.analysisService.CompareStocks(c.Request.Context(), req.URLA, req.URLB)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
