package engine

import (
	"errors"
	"fmt"
	"strings"

	"psxlens/internal/models"
)

// InsufficientData is the label every Analysis field falls back to when the
// record carries no usable signal for it.
const InsufficientData = "insufficient data"

// maxSummaryPoints caps the observation list so a non-expert reader is not
// overwhelmed.
const maxSummaryPoints = 6

// ErrMalformedRecord is returned when a record violates the basic shape
// contract (e.g. a financial period with no label). Missing values are fine;
// unlabeled entries are not.
var ErrMalformedRecord = errors.New("malformed company record")

// Analyzer turns one company record into an Analysis verdict. It holds no
// state; the zero value is ready to use.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// Analyze runs the rule-based analysis. It only fails for records violating
// the basic shape; a record with every value absent still yields a valid
// Analysis with insufficient-data labels and no summary points.
func (a *Analyzer) Analyze(record *models.CompanyRecord) (*models.Analysis, error) {
	if err := ValidateRecord(record); err != nil {
		return nil, err
	}

	if !hasAnySignal(record) {
		return &models.Analysis{
			BusinessVerdict: InsufficientData,
			FinancialHealth: InsufficientData,
			DividendStatus:  InsufficientData,
			Valuation:       InsufficientData,
			RiskLevel:       RiskUnknown.String(),
			SummaryPoints:   []string{},
		}, nil
	}

	peRating := RatePE(record.Price.PERatio)
	margin := latestMargin(record.Ratios)
	growth := latestGrowth(record.Ratios)
	marginRating := RateMargin(margin)
	growthRating := RateGrowth(growth)
	dividends := RateDividends(record.Payouts)
	health := RateFinancialHealth(marginRating, growthRating)
	risk := RateRisk(growthRating, dividends, record.Price.YearChangePercent, len(record.Payouts) > 0)

	return &models.Analysis{
		BusinessVerdict: businessVerdict(record.FinancialsAnnual, record.Ratios),
		FinancialHealth: health.String(),
		DividendStatus:  dividendStatus(dividends, record.Payouts),
		Valuation:       valuationText(peRating, record.Price.PERatio),
		RiskLevel:       risk.String(),
		SummaryPoints:   summaryPoints(record, peRating, dividends),
	}, nil
}

// ValidateRecord checks the basic record shape: every financial period and
// ratio year must carry a label. It does not require any values to be
// present.
func ValidateRecord(record *models.CompanyRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrMalformedRecord)
	}
	for i, f := range record.FinancialsAnnual {
		if strings.TrimSpace(f.Period) == "" {
			return fmt.Errorf("%w: annual financial entry %d has no period label", ErrMalformedRecord, i)
		}
	}
	for i, f := range record.FinancialsQuarterly {
		if strings.TrimSpace(f.Period) == "" {
			return fmt.Errorf("%w: quarterly financial entry %d has no period label", ErrMalformedRecord, i)
		}
	}
	for i, r := range record.Ratios {
		if strings.TrimSpace(r.Year) == "" {
			return fmt.Errorf("%w: ratio entry %d has no year label", ErrMalformedRecord, i)
		}
	}
	return nil
}

// hasAnySignal reports whether the record carries at least one input the
// rules can act on.
func hasAnySignal(record *models.CompanyRecord) bool {
	if record.Price.PERatio != nil || record.Price.YearChangePercent != nil {
		return true
	}
	if record.Equity.FreeFloatPercent != nil {
		return true
	}
	if len(record.Payouts) > 0 {
		return true
	}
	for _, f := range record.FinancialsAnnual {
		if f.Sales != nil || f.TotalIncome != nil || f.ProfitAfterTax != nil || f.EPS != nil {
			return true
		}
	}
	for _, r := range record.Ratios {
		if r.NetProfitMargin != nil || r.EPSGrowth != nil || r.PEG != nil {
			return true
		}
	}
	return false
}

func valuationText(rating PERating, pe *float64) string {
	switch rating {
	case PECheap:
		return fmt.Sprintf("Looks cheap: a P/E of %.2f is below %.0f, so the price is low relative to what the company earns.", *pe, cheapPEMax)
	case PEFair:
		return fmt.Sprintf("Fairly valued: a P/E of %.2f sits in the typical %.0f-%.0f band.", *pe, cheapPEMax, expensivePEMin)
	case PEExpensive:
		return fmt.Sprintf("Looks expensive: a P/E of %.2f is above %.0f, so investors are paying a premium for each rupee of earnings.", *pe, expensivePEMin)
	default:
		if pe != nil {
			return fmt.Sprintf("Valuation undetermined: a P/E of %.2f at or below zero means the company is currently losing money.", *pe)
		}
		return "Valuation undetermined: no price/earnings ratio was reported."
	}
}

func dividendStatus(record DividendRecord, payouts []models.PayoutRecord) string {
	switch record {
	case DividendConsistent:
		if date := latestPayoutDate(payouts); date != "" {
			return fmt.Sprintf("Pays dividends on a regular schedule; the most recent payout was announced on %s.", date)
		}
		return "Pays dividends on a regular schedule."
	case DividendIrregular:
		return fmt.Sprintf("Has paid dividends %d time(s) recently, but without a steady schedule.", len(payouts))
	default:
		return "No dividend payouts on record; this stock is not returning regular income to shareholders."
	}
}

// latestPayoutDate returns the most recent parseable payout date, formatted
// for display, or "" when none parse.
func latestPayoutDate(payouts []models.PayoutRecord) string {
	var best string
	var found bool
	for _, p := range payouts {
		if p.Date == nil {
			continue
		}
		t, ok := parsePayoutDate(*p.Date)
		if !ok {
			continue
		}
		if !found {
			best, found = t.Format("Jan 2, 2006"), true
			continue
		}
		if prev, _ := parsePayoutDate(best); t.After(prev) {
			best = t.Format("Jan 2, 2006")
		}
	}
	return best
}

// businessVerdict judges the core business from profit consistency and the
// average margin across reported years.
func businessVerdict(financials []models.FinancialYear, ratios []models.RatioYear) string {
	profits := collectProfits(financials)
	margins := collectMargins(ratios)
	if len(profits) == 0 && len(margins) == 0 {
		return InsufficientData
	}

	allProfitable := true
	for _, p := range profits {
		if p <= 0 {
			allProfitable = false
			break
		}
	}

	var avgMargin float64
	if len(margins) > 0 {
		for _, m := range margins {
			avgMargin += m
		}
		avgMargin /= float64(len(margins))
	}

	switch {
	case !allProfitable:
		return "A weak core business: the company posted losses in recent years."
	case avgMargin > 20:
		return fmt.Sprintf("A strong core business: consistently profitable with an average net margin of %.1f%%.", avgMargin)
	case avgMargin > 10:
		return fmt.Sprintf("A moderate core business: profitable each year, with an average net margin of %.1f%%.", avgMargin)
	default:
		return "A moderate core business: profitable in recent years, though margins are thin."
	}
}

func collectProfits(financials []models.FinancialYear) []float64 {
	out := make([]float64, 0, len(financials))
	for _, f := range financials {
		if f.ProfitAfterTax != nil {
			out = append(out, *f.ProfitAfterTax)
		}
	}
	return out
}

func collectMargins(ratios []models.RatioYear) []float64 {
	out := make([]float64, 0, len(ratios))
	for _, r := range ratios {
		if r.NetProfitMargin != nil {
			out = append(out, *r.NetProfitMargin)
		}
	}
	return out
}
