// Package scraper fetches and parses company pages from the PSX Data
// Portal. All data for a company lives on one server-rendered HTML page.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psxlens/internal/config"
	"psxlens/internal/logger"
	"psxlens/internal/models"
)

// Sentinel errors for the service layer to map onto API errors.
var (
	// ErrSymbolNotFound means the portal has no page for the symbol.
	ErrSymbolNotFound = errors.New("company not found on PSX")
	// ErrUpstream means PSX could not be reached or answered abnormally.
	ErrUpstream = errors.New("PSX is unreachable")
)

// Client scrapes the PSX Data Portal.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

// New creates a scraper Client from the application configuration.
func New(cfg *config.Config) *Client {
	return &Client{
		http: &http.Client{
			Timeout: cfg.RequestTimeout,
			// The portal redirects unknown company paths; surface the
			// redirect status instead of following it.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL:   strings.TrimRight(cfg.PSXBaseURL, "/"),
		userAgent: cfg.UserAgent,
	}
}

// FetchCompany scrapes one company page into a structured record.
func (c *Client) FetchCompany(ctx context.Context, url string) (*models.CompanyRecord, error) {
	symbol := ExtractSymbol(url)
	logger.Get().Infow("scraping company page", "symbol", symbol)

	doc, err := c.fetchDocument(ctx, url)
	if err != nil {
		if errors.Is(err, ErrSymbolNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrSymbolNotFound, symbol)
		}
		return nil, err
	}

	// An error page renders without the quote header.
	if doc.Find(".quote__name").Length() == 0 {
		return nil, fmt.Errorf("%w: no company data for %q; the symbol may be invalid", ErrSymbolNotFound, symbol)
	}

	return parseCompanyDocument(doc, symbol), nil
}

// fetchDocument performs the HTTP GET and parses the response body.
func (c *Client) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrSymbolNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing response: %v", ErrUpstream, err)
	}
	return doc, nil
}

// ExtractSymbol pulls the stock symbol from a company page URL.
func ExtractSymbol(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	return strings.ToUpper(trimmed)
}
