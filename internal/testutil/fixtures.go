package testutil

import "psxlens/internal/models"

// Float returns a pointer to v, for populating nullable record fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int64) *int64 { return &v }

// Str returns a pointer to s.
func Str(s string) *string { return &s }

// EmptyRecord builds a well-formed record with every value absent.
func EmptyRecord() *models.CompanyRecord {
	return &models.CompanyRecord{}
}

// HealthyRecord builds a record for a profitable, dividend-paying company:
// cheap valuation, healthy margins, strong growth, yearly payout cadence.
func HealthyRecord(symbol string) *models.CompanyRecord {
	return &models.CompanyRecord{
		Company: models.CompanyInfo{
			Name:   symbol + " Limited",
			Symbol: symbol,
			Sector: "Fertilizer",
		},
		Price: models.PriceData{
			Current:           Float(145.50),
			PERatio:           Float(12.0),
			YearChangePercent: Float(18.4),
		},
		Equity: models.EquityData{
			FreeFloatPercent: Float(45.0),
		},
		FinancialsAnnual: []models.FinancialYear{
			{Period: "2024", ProfitAfterTax: Float(5200), EPS: Float(14.2)},
			{Period: "2023", ProfitAfterTax: Float(4100), EPS: Float(11.8)},
			{Period: "2022", ProfitAfterTax: Float(3600), EPS: Float(10.1)},
		},
		Ratios: []models.RatioYear{
			{Year: "2024", NetProfitMargin: Float(18.0), EPSGrowth: Float(14.0)},
			{Year: "2023", NetProfitMargin: Float(16.5), EPSGrowth: Float(9.0)},
		},
		Payouts: []models.PayoutRecord{
			{Date: Str("Mar 15, 2024"), Details: Str("Final Cash Dividend 60%")},
			{Date: Str("Mar 20, 2023"), Details: Str("Final Cash Dividend 55%")},
			{Date: Str("Mar 18, 2022"), Details: Str("Final Cash Dividend 50%")},
		},
	}
}

// StrugglingRecord builds a record for an expensive, loss-trending company
// with no dividend history.
func StrugglingRecord(symbol string) *models.CompanyRecord {
	return &models.CompanyRecord{
		Company: models.CompanyInfo{
			Name:   symbol + " Limited",
			Symbol: symbol,
			Sector: "Technology",
		},
		Price: models.PriceData{
			Current:           Float(30.25),
			PERatio:           Float(30.0),
			YearChangePercent: Float(-48.0),
		},
		Equity: models.EquityData{
			FreeFloatPercent: Float(20.0),
		},
		FinancialsAnnual: []models.FinancialYear{
			{Period: "2024", ProfitAfterTax: Float(-300), EPS: Float(-0.8)},
			{Period: "2023", ProfitAfterTax: Float(450), EPS: Float(1.1)},
		},
		Ratios: []models.RatioYear{
			{Year: "2024", NetProfitMargin: Float(8.0), EPSGrowth: Float(-3.0)},
			{Year: "2023", NetProfitMargin: Float(9.5), EPSGrowth: Float(-1.0)},
		},
	}
}
