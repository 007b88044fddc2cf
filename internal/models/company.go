// Package models defines the structured company record scraped from the PSX
// Data Portal and the engine output types built from it.
//
// Every numeric field on a scraped record is a pointer: the portal frequently
// omits figures, and an absent value must stay distinguishable from a
// reported zero. Downstream classification treats nil as "unknown", never 0.
package models

// CompanyInfo identifies the listed company.
type CompanyInfo struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Sector        string  `json:"sector"`
	Description   string  `json:"description"`
	CEO           *string `json:"ceo,omitempty"`
	Chairman      *string `json:"chairman,omitempty"`
	Secretary     *string `json:"secretary,omitempty"`
	Website       *string `json:"website,omitempty"`
	Auditor       *string `json:"auditor,omitempty"`
	FiscalYearEnd *string `json:"fiscal_year_end,omitempty"`
}

// PriceData holds the current quote and derived trading figures.
type PriceData struct {
	Current            *float64 `json:"current"`
	Change             *float64 `json:"change"`
	ChangePercent      *float64 `json:"change_percent"`
	Open               *float64 `json:"open"`
	High               *float64 `json:"high"`
	Low                *float64 `json:"low"`
	Volume             *int64   `json:"volume"`
	DayRangeLow        *float64 `json:"day_range_low"`
	DayRangeHigh       *float64 `json:"day_range_high"`
	Week52High         *float64 `json:"week52_high"`
	Week52Low          *float64 `json:"week52_low"`
	LDCP               *float64 `json:"ldcp"`
	PERatio            *float64 `json:"pe_ratio"`
	YearChangePercent  *float64 `json:"year_change_percent"`
	YTDChangePercent   *float64 `json:"ytd_change_percent"`
	CircuitBreakerLow  *float64 `json:"circuit_breaker_low"`
	CircuitBreakerHigh *float64 `json:"circuit_breaker_high"`
}

// EquityData describes the company's share structure.
type EquityData struct {
	MarketCapThousands *float64 `json:"market_cap_thousands"`
	TotalShares        *int64   `json:"total_shares"`
	FreeFloatShares    *int64   `json:"free_float_shares"`
	FreeFloatPercent   *float64 `json:"free_float_percent"`
}

// FinancialYear is one reported financial period, annual ("2024") or
// quarterly ("Q3 2025").
type FinancialYear struct {
	Period         string   `json:"period"`
	Sales          *float64 `json:"sales"`
	TotalIncome    *float64 `json:"total_income"`
	ProfitAfterTax *float64 `json:"profit_after_tax"`
	EPS            *float64 `json:"eps"`
}

// RatioYear is one year of reported ratios. Entries are ordered most recent
// first, matching the portal's table layout.
type RatioYear struct {
	Year            string   `json:"year"`
	NetProfitMargin *float64 `json:"net_profit_margin"`
	EPSGrowth       *float64 `json:"eps_growth"`
	PEG             *float64 `json:"peg"`
}

// PayoutRecord is one dividend payout announcement.
type PayoutRecord struct {
	Date             *string `json:"date"`
	FinancialResults *string `json:"financial_results"`
	Details          *string `json:"details"`
	BookClosure      *string `json:"book_closure"`
}

// IndexPoint is one market index reading from the page header ticker.
type IndexPoint struct {
	Name          string   `json:"name"`
	Value         *float64 `json:"value"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"change_percent"`
}

// CompanyRecord aggregates everything scraped from a single company page.
// It is an immutable value as far as the engine is concerned: analysis and
// comparison read it and never write to it.
type CompanyRecord struct {
	Company             CompanyInfo     `json:"company"`
	Price               PriceData       `json:"price"`
	Equity              EquityData      `json:"equity"`
	FinancialsAnnual    []FinancialYear `json:"financials_annual"`
	FinancialsQuarterly []FinancialYear `json:"financials_quarterly"`
	Ratios              []RatioYear     `json:"ratios"`
	Payouts             []PayoutRecord  `json:"payouts"`
	Indices             []IndexPoint    `json:"indices"`
}

// StockListItem is one entry in an index constituents list.
type StockListItem struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}
