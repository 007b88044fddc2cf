package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"psxlens/internal/services"
)

// StockListHandler handles index constituent listing requests.
type StockListHandler struct {
	stockService services.StockListServicer
}

// NewStockListHandler creates a new StockListHandler.
func NewStockListHandler(stockService services.StockListServicer) *StockListHandler {
	return &StockListHandler{stockService: stockService}
}

// GetStocks lists the constituents of a PSX index. The index comes from the
// "index" query parameter and defaults to KSE100.
func (h *StockListHandler) GetStocks(c *gin.Context) {
	index := c.DefaultQuery("index", "KSE100")

	stocks, cached, err := h.stockService.GetStocks(c.Request.Context(), index)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"index":  index,
		"stocks": stocks,
		"cached": cached,
	})
}
