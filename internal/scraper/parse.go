package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psxlens/internal/models"
)

// parseCompanyDocument extracts the full company record from a parsed PSX
// company page. Sections that are missing from the page yield zero-valued
// structs or empty slices, never errors: the engine treats absent values as
// unknown.
func parseCompanyDocument(doc *goquery.Document, symbol string) *models.CompanyRecord {
	annual, quarterly := parseFinancials(doc)
	return &models.CompanyRecord{
		Company:             parseProfile(doc, symbol),
		Price:               parseQuote(doc),
		Equity:              parseEquity(doc),
		FinancialsAnnual:    annual,
		FinancialsQuarterly: quarterly,
		Ratios:              parseRatios(doc),
		Payouts:             parsePayouts(doc),
		Indices:             parseIndices(doc),
	}
}

// statValue finds a stats_item by label substring and returns its value text.
func statValue(sel *goquery.Selection, label string) string {
	var value string
	sel.Find(".stats_item").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		lbl := strings.TrimSpace(item.Find(".stats_label").First().Text())
		if lbl == "" || !strings.Contains(strings.ToLower(lbl), strings.ToLower(label)) {
			return true
		}
		value = strings.TrimSpace(item.Find(".stats_value").First().Text())
		return false
	})
	return value
}

// statRange finds a stats_item by label substring and returns the low/high
// bounds from its numRange data attributes.
func statRange(sel *goquery.Selection, label string) (low, high *float64) {
	sel.Find(".stats_item").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		lbl := strings.ToUpper(strings.TrimSpace(item.Find(".stats_label").First().Text()))
		if !strings.Contains(lbl, strings.ToUpper(label)) {
			return true
		}
		nr := item.Find(".numRange").First()
		if nr.Length() > 0 {
			low = parseFloat(nr.AttrOr("data-low", ""))
			high = parseFloat(nr.AttrOr("data-high", ""))
		}
		return false
	})
	return low, high
}

// parseQuote reads the #quote section: current price, day change, and the
// REG tab statistics.
func parseQuote(doc *goquery.Document) models.PriceData {
	quote := doc.Find("#quote").First()
	if quote.Length() == 0 {
		return models.PriceData{}
	}

	price := models.PriceData{}

	if el := quote.Find(".quote__close").First(); el.Length() > 0 {
		text := strings.TrimSpace(el.Text())
		text = strings.ReplaceAll(text, "Rs.", "")
		text = strings.ReplaceAll(text, "Rs", "")
		price.Current = parseFloat(text)
	}

	if change := quote.Find(".quote__change").First(); change.Length() > 0 {
		price.Change = parseFloat(change.Find(".change__value").First().Text())
		pct := strings.Trim(strings.TrimSpace(change.Find(".change__percent").First().Text()), "() ")
		price.ChangePercent = parseFloat(pct)
	}

	reg := quote.Find(`.tabs__panel[data-name="REG"]`).First()
	if reg.Length() == 0 {
		return price
	}

	price.Open = parseFloat(statValue(reg, "Open"))
	price.High = parseFloat(statValue(reg, "High"))
	price.Low = parseFloat(statValue(reg, "Low"))
	price.Volume = parseInt(statValue(reg, "Volume"))
	price.LDCP = parseFloat(statValue(reg, "LDCP"))
	price.PERatio = parseFloat(statValue(reg, "P/E Ratio"))
	price.Week52Low, price.Week52High = statRange(reg, "52-WEEK")
	price.DayRangeLow, price.DayRangeHigh = statRange(reg, "DAY RANGE")
	price.CircuitBreakerLow, price.CircuitBreakerHigh = statRange(reg, "CIRCUIT BREAKER")
	price.YearChangePercent = parseFloat(statValue(reg, "1-Year Change"))
	price.YTDChangePercent = parseFloat(statValue(reg, "YTD Change"))

	return price
}

// parseProfile reads the company identity from the quote header and the
// #profile section.
func parseProfile(doc *goquery.Document, symbol string) models.CompanyInfo {
	info := models.CompanyInfo{Symbol: symbol}

	info.Name = strings.TrimSpace(doc.Find(".quote__name").First().Text())
	if info.Name == "" {
		info.Name = symbol
	}
	info.Sector = strings.TrimSpace(doc.Find(".quote__sector").First().Text())
	if info.Sector == "" {
		info.Sector = "Unknown"
	}

	profile := doc.Find("#profile").First()
	if profile.Length() == 0 {
		return info
	}

	info.Description = strings.TrimSpace(profile.Find(".profile__item--decription p").First().Text())

	profile.Find(".profile__item--people .tbl tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		name := strings.TrimSpace(cells.Eq(0).Text())
		role := strings.ToLower(strings.TrimSpace(cells.Eq(1).Text()))
		switch {
		case strings.Contains(role, "ceo"):
			info.CEO = &name
		case strings.Contains(role, "chairman"):
			info.Chairman = &name
		case strings.Contains(role, "secretary"):
			info.Secretary = &name
		}
	})

	profile.Find(".profile__item .item__head").Each(func(_ int, head *goquery.Selection) {
		headText := strings.ToUpper(strings.TrimSpace(head.Text()))
		next := head.NextAllFiltered("p").First()
		if next.Length() == 0 {
			return
		}
		switch {
		case strings.Contains(headText, "WEBSITE"):
			text := strings.TrimSpace(next.Find("a").First().Text())
			if text == "" {
				text = strings.TrimSpace(next.Text())
			}
			info.Website = &text
		case strings.Contains(headText, "AUDITOR"):
			text := strings.TrimSpace(next.Text())
			info.Auditor = &text
		case strings.Contains(headText, "FISCAL YEAR"):
			text := strings.TrimSpace(next.Text())
			info.FiscalYearEnd = &text
		}
	})

	return info
}

// parseEquity reads the #equity section share-structure stats.
func parseEquity(doc *goquery.Document) models.EquityData {
	equity := doc.Find("#equity").First()
	if equity.Length() == 0 {
		return models.EquityData{}
	}

	data := models.EquityData{}
	equity.Find(".stats_item").Each(func(_ int, item *goquery.Selection) {
		label := strings.ToUpper(strings.TrimSpace(item.Find(".stats_label").First().Text()))
		value := strings.TrimSpace(item.Find(".stats_value").First().Text())
		switch {
		case strings.Contains(label, "MARKET CAP"):
			data.MarketCapThousands = parseFloat(value)
		case strings.Contains(label, "FREE FLOAT"):
			if strings.Contains(value, "%") {
				data.FreeFloatPercent = parseFloat(value)
			} else {
				data.FreeFloatShares = parseInt(value)
			}
		case strings.Contains(label, "SHARES"):
			data.TotalShares = parseInt(value)
		}
	})
	return data
}

// parseFinancialsTable converts a financials table into period entries.
// Columns are periods; rows are line items.
func parseFinancialsTable(table *goquery.Selection) []models.FinancialYear {
	var periods []string
	table.Find("thead tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		if i == 0 {
			// Row-label column.
			return
		}
		periods = append(periods, strings.TrimSpace(th.Text()))
	})
	if len(periods) == 0 {
		return nil
	}

	entries := make([]models.FinancialYear, len(periods))
	for i, p := range periods {
		entries[i] = models.FinancialYear{Period: p}
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text()))
		for i := range periods {
			if i+1 >= cells.Length() {
				break
			}
			value := cells.Eq(i + 1).Text()
			switch {
			case strings.Contains(label, "SALES") && !strings.Contains(label, "TOTAL"):
				entries[i].Sales = parseFloat(value)
			case strings.Contains(label, "TOTAL INCOME"):
				entries[i].TotalIncome = parseFloat(value)
			case strings.Contains(label, "PROFIT AFTER"):
				entries[i].ProfitAfterTax = parseFloat(value)
			case label == "EPS":
				entries[i].EPS = parseFloat(value)
			}
		}
	})

	return entries
}

// parseFinancials reads the #financials section's Annual and Quarterly tabs.
func parseFinancials(doc *goquery.Document) (annual, quarterly []models.FinancialYear) {
	doc.Find("#financials .tabs__panel").Each(func(_ int, panel *goquery.Selection) {
		table := panel.Find("table.tbl").First()
		if table.Length() == 0 {
			return
		}
		switch panel.AttrOr("data-name", "") {
		case "Annual":
			annual = parseFinancialsTable(table)
		case "Quarterly":
			quarterly = parseFinancialsTable(table)
		}
	})
	return annual, quarterly
}

// parseRatios reads the #ratios table into ratio-year entries, most recent
// first (the portal's column order).
func parseRatios(doc *goquery.Document) []models.RatioYear {
	table := doc.Find("#ratios table.tbl").First()
	if table.Length() == 0 {
		return nil
	}

	var years []string
	table.Find("thead tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		if i == 0 {
			return
		}
		years = append(years, strings.TrimSpace(th.Text()))
	})
	if len(years) == 0 {
		return nil
	}

	entries := make([]models.RatioYear, len(years))
	for i, y := range years {
		entries[i] = models.RatioYear{Year: y}
	}

	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text()))
		for i := range years {
			if i+1 >= cells.Length() {
				break
			}
			value := cells.Eq(i + 1).Text()
			switch {
			case strings.Contains(label, "NET PROFIT MARGIN"):
				entries[i].NetProfitMargin = parseFloat(value)
			case strings.Contains(label, "EPS GROWTH"):
				entries[i].EPSGrowth = parseFloat(value)
			case strings.Contains(label, "PEG"):
				entries[i].PEG = parseFloat(value)
			}
		}
	})

	return entries
}

// parsePayouts reads the #payouts dividend history table.
func parsePayouts(doc *goquery.Document) []models.PayoutRecord {
	table := doc.Find("#payouts table.tbl").First()
	if table.Length() == 0 {
		return nil
	}

	var payouts []models.PayoutRecord
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		cell := func(i int) *string {
			if i >= cells.Length() {
				return nil
			}
			text := strings.TrimSpace(cells.Eq(i).Text())
			return &text
		}
		payouts = append(payouts, models.PayoutRecord{
			Date:             cell(0),
			FinancialResults: cell(1),
			Details:          cell(2),
			BookClosure:      cell(3),
		})
	})
	return payouts
}

// tickerChange matches ticker change text like "+123.45 (+1.23%)".
var tickerChange = regexp.MustCompile(`([+-]?[\d,.]+)\s*\(([+-]?[\d,.]+)%?\)`)

// parseIndices reads the market index readings from the page header ticker.
func parseIndices(doc *goquery.Document) []models.IndexPoint {
	var indices []models.IndexPoint
	doc.Find(".ticker .ticker__item").Each(func(_ int, item *goquery.Selection) {
		name := strings.TrimSpace(item.Find(".ticker__name").First().Text())
		value := parseFloat(item.Find(".ticker__value").First().Text())
		if name == "" || value == nil {
			return
		}

		point := models.IndexPoint{Name: name, Value: value}
		if m := tickerChange.FindStringSubmatch(strings.TrimSpace(item.Find(".ticker__change").First().Text())); m != nil {
			point.Change = parseFloat(m[1])
			point.ChangePercent = parseFloat(m[2])
		}
		indices = append(indices, point)
	})
	return indices
}
