package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psxlens/internal/logger"
	"psxlens/internal/models"
)

// FetchStockList scrapes the constituents of a PSX index ("KSE100",
// "KSE30"), or every listed equity for "ALL".
func (c *Client) FetchStockList(ctx context.Context, index string) ([]models.StockListItem, error) {
	url := c.baseURL + "/indices/" + index
	if index == "ALL" {
		url = c.baseURL + "/listings"
	}
	logger.Get().Infow("scraping stock list", "index", index)

	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		return nil, err
	}

	stocks := parseStockList(doc)
	if len(stocks) == 0 {
		return nil, fmt.Errorf("%w: no constituents found for %q", ErrUpstream, index)
	}
	return stocks, nil
}

// parseStockList reads symbol and company name from the constituents table.
func parseStockList(doc *goquery.Document) []models.StockListItem {
	var stocks []models.StockListItem
	doc.Find("table.tbl tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		symbol := strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text()))
		name := strings.TrimSpace(cells.Eq(1).Text())
		if symbol == "" || name == "" {
			return
		}
		stocks = append(stocks, models.StockListItem{Symbol: symbol, Name: name})
	})
	return stocks
}
