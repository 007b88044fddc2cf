// Package engine is the decision core: pure, stateless functions that turn a
// scraped company record into plain-language judgments. Nothing here does
// I/O, holds state, or mutates its inputs, so every call is independent and
// safe to run concurrently.
package engine

import (
	"sort"
	"strings"
	"time"

	"psxlens/internal/models"
)

// Classification thresholds. These bands back both the single-stock analysis
// and the comparison badges, so they are defined exactly once.
const (
	// P/E bands: below cheapPEMax is cheap, above expensivePEMin is
	// expensive, the closed band in between is fair.
	cheapPEMax       = 15.0
	expensivePEMin   = 25.0
	healthyMarginMin = 15.0
	lowMarginMax     = 5.0
	strongGrowthMin  = 10.0

	// A 1-year move beyond this magnitude counts as a high price swing
	// for risk purposes.
	highSwingPercent = 40.0

	// A payout cadence is "consistent" once there are at least this many
	// dated payouts with no gap longer than maxPayoutGap between
	// consecutive ones (roughly 15 months, i.e. no skipped year).
	consistentPayoutMin = 3
	maxPayoutGap        = 460 * 24 * time.Hour
)

// PERating classifies a price/earnings ratio.
type PERating int

const (
	PENotAvailable PERating = iota
	PECheap
	PEFair
	PEExpensive
)

// RatePE classifies a P/E ratio. A missing or non-positive ratio carries no
// valuation signal (a negative P/E just means the company is loss-making).
func RatePE(pe *float64) PERating {
	switch {
	case pe == nil || *pe <= 0:
		return PENotAvailable
	case *pe < cheapPEMax:
		return PECheap
	case *pe <= expensivePEMin:
		return PEFair
	default:
		return PEExpensive
	}
}

// MarginRating classifies a net profit margin percentage.
type MarginRating int

const (
	MarginUnknown MarginRating = iota
	MarginHealthy
	MarginAverage
	MarginLow
)

// RateMargin classifies the latest net profit margin.
func RateMargin(margin *float64) MarginRating {
	switch {
	case margin == nil:
		return MarginUnknown
	case *margin >= healthyMarginMin:
		return MarginHealthy
	case *margin >= lowMarginMax:
		return MarginAverage
	default:
		return MarginLow
	}
}

// GrowthRating classifies an EPS growth percentage.
type GrowthRating int

const (
	GrowthUnknown GrowthRating = iota
	GrowthStrong
	GrowthStable
	GrowthDeclining
)

// RateGrowth classifies the latest EPS growth figure.
func RateGrowth(growth *float64) GrowthRating {
	switch {
	case growth == nil:
		return GrowthUnknown
	case *growth >= strongGrowthMin:
		return GrowthStrong
	case *growth >= 0:
		return GrowthStable
	default:
		return GrowthDeclining
	}
}

// RiskLevel is a ranked risk classification. Rank order matters: a lower
// rank is less risky, and RiskUnknown never wins a comparison.
type RiskLevel int

const (
	RiskUnknown RiskLevel = iota
	RiskLow
	RiskModerate
	RiskHigh
)

// String returns the normalized output label.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "Low"
	case RiskModerate:
		return "Moderate"
	case RiskHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// DividendRecord is a ranked dividend-reliability classification. Higher
// rank is a better track record.
type DividendRecord int

const (
	DividendNone DividendRecord = iota
	DividendIrregular
	DividendConsistent
)

// String returns the lowercase wire label.
func (d DividendRecord) String() string {
	switch d {
	case DividendConsistent:
		return "consistent"
	case DividendIrregular:
		return "irregular"
	default:
		return "none"
	}
}

// payoutDateLayouts covers the date formats seen on PSX payout tables.
var payoutDateLayouts = []string{
	"Jan 2, 2006",
	"2 Jan 2006",
	"2006-01-02",
	"02/01/2006",
}

func parsePayoutDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range payoutDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RateDividends classifies the payout history. "Consistent" requires a
// recognizable regular cadence: at least consistentPayoutMin dated payouts
// with no gap longer than maxPayoutGap between consecutive ones. Payouts
// whose dates cannot be parsed still count as a track record, just not a
// regular one.
func RateDividends(payouts []models.PayoutRecord) DividendRecord {
	if len(payouts) == 0 {
		return DividendNone
	}

	dates := make([]time.Time, 0, len(payouts))
	for _, p := range payouts {
		if p.Date == nil {
			continue
		}
		if t, ok := parsePayoutDate(*p.Date); ok {
			dates = append(dates, t)
		}
	}
	if len(dates) < consistentPayoutMin {
		return DividendIrregular
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) > maxPayoutGap {
			return DividendIrregular
		}
	}
	return DividendConsistent
}

// RateRisk combines the earnings trend, dividend track record, and the
// 1-year price swing into a single risk level. Declining earnings with no
// dividend cushion and a violent price move is High; stable-or-growing
// earnings backed by consistent dividends is Low; no usable signal at all is
// Unknown; everything else lands in Moderate.
func RateRisk(growth GrowthRating, dividends DividendRecord, yearChange *float64, hasPayoutData bool) RiskLevel {
	if growth == GrowthUnknown && yearChange == nil && !hasPayoutData {
		return RiskUnknown
	}

	highSwing := yearChange != nil && (*yearChange > highSwingPercent || *yearChange < -highSwingPercent)
	if growth == GrowthDeclining && dividends == DividendNone && highSwing {
		return RiskHigh
	}
	if (growth == GrowthStable || growth == GrowthStrong) && dividends == DividendConsistent {
		return RiskLow
	}
	return RiskModerate
}

// FinancialHealth is the combined margin/growth classification.
type FinancialHealth int

const (
	HealthUnknown FinancialHealth = iota
	HealthStrong
	HealthModerate
	HealthAtRisk
)

// String returns the output label.
func (h FinancialHealth) String() string {
	switch h {
	case HealthStrong:
		return "Strong"
	case HealthModerate:
		return "Moderate"
	case HealthAtRisk:
		return "At Risk"
	default:
		return InsufficientData
	}
}

// RateFinancialHealth combines the margin and growth classifications: both
// favorable earns the top label, either unfavorable the bottom one, and a
// mixed read lands in the middle.
func RateFinancialHealth(margin MarginRating, growth GrowthRating) FinancialHealth {
	if margin == MarginUnknown && growth == GrowthUnknown {
		return HealthUnknown
	}
	if margin == MarginLow || growth == GrowthDeclining {
		return HealthAtRisk
	}
	if margin == MarginHealthy && growth == GrowthStrong {
		return HealthStrong
	}
	return HealthModerate
}

// latestRatio returns the most recent ratio year, nil when none exist.
// Ratio tables are ordered most recent first.
func latestRatio(ratios []models.RatioYear) *models.RatioYear {
	if len(ratios) == 0 {
		return nil
	}
	return &ratios[0]
}

func latestMargin(ratios []models.RatioYear) *float64 {
	if r := latestRatio(ratios); r != nil {
		return r.NetProfitMargin
	}
	return nil
}

func latestGrowth(ratios []models.RatioYear) *float64 {
	if r := latestRatio(ratios); r != nil {
		return r.EPSGrowth
	}
	return nil
}
