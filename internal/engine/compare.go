package engine

import (
	"fmt"
	"strings"

	"psxlens/internal/models"
)

// AbsentPolicy controls how a metric is scored when exactly one side has
// data. The historical behavior rewards the side that reported a figure;
// callers who do not want missing data to decide a metric can opt into ties.
type AbsentPolicy int

const (
	// AbsentLoses awards the metric to the side that has data.
	AbsentLoses AbsentPolicy = iota
	// AbsentTies scores the metric as a tie when either side lacks data.
	AbsentTies
)

// Comparator evaluates the fixed seven-metric head-to-head catalog. It is
// pure and safe for concurrent use.
type Comparator struct {
	policy AbsentPolicy
}

// NewComparator creates a Comparator with the default AbsentLoses policy.
func NewComparator() *Comparator { return &Comparator{policy: AbsentLoses} }

// NewComparatorWithPolicy creates a Comparator with an explicit absent-data
// policy.
func NewComparatorWithPolicy(policy AbsentPolicy) *Comparator {
	return &Comparator{policy: policy}
}

// resolved is one side's value for a metric. ord is the ordering key used to
// decide the winner; nil means this side cannot win the metric (no data, or
// a non-positive P/E). wire is the raw value for the response, display the
// formatted string.
type resolved struct {
	wire    interface{}
	display string
	ord     *float64
}

// metricDef is one entry in the catalog: how to resolve a side's value,
// which direction wins, and how to phrase the outcome.
type metricDef struct {
	label       string
	description string
	lowerBetter bool
	resolve     func(rec *models.CompanyRecord) resolved
	explain     func(w models.Winner, symA, symB string, a, b resolved) string
}

// metricCatalog is the full comparison in display order. The order is part
// of the wire contract; re-ordering or adding metrics is a change here, not
// in the comparison loop.
var metricCatalog = []metricDef{
	{
		label:       "P/E Ratio (Price to Earnings)",
		description: "Lower means cheaper relative to earnings",
		lowerBetter: true,
		resolve:     resolvePE,
		explain:     explainPE,
	},
	{
		label:       "Net Profit Margin",
		description: "Higher means company keeps more profit",
		resolve: func(rec *models.CompanyRecord) resolved {
			return numericValue(latestMargin(rec.Ratios), fmtPlainPercent)
		},
		explain: explainMargin,
	},
	{
		label:       "EPS Growth",
		description: "Higher means per-share profit is growing faster",
		resolve: func(rec *models.CompanyRecord) resolved {
			return numericValue(latestGrowth(rec.Ratios), fmtSignedPercent)
		},
		explain: explainGrowth,
	},
	{
		label:       "1-Year Price Change",
		description: "Higher means better stock price performance",
		resolve: func(rec *models.CompanyRecord) resolved {
			return numericValue(rec.Price.YearChangePercent, fmtSignedPercent)
		},
		explain: explainYearChange,
	},
	{
		label:       "Free Float (Liquidity)",
		description: "Higher means easier to buy and sell",
		resolve: func(rec *models.CompanyRecord) resolved {
			return numericValue(rec.Equity.FreeFloatPercent, fmtPlainPercent)
		},
		explain: explainFreeFloat,
	},
	{
		label:       "Risk Level",
		description: "Lower risk is generally better",
		lowerBetter: true,
		resolve:     resolveRisk,
		explain:     explainRisk,
	},
	{
		label:       "Dividend Track Record",
		description: "Consistent dividends are better for income",
		resolve:     resolveDividends,
		explain:     explainDividends,
	},
}

// Compare evaluates both records against the metric catalog and aggregates
// the result. Swapping the inputs exactly swaps every winner and both
// scores.
func (c *Comparator) Compare(a, b *models.CompanyRecord) *models.ComparisonResult {
	symA := displaySymbol(a)
	symB := displaySymbol(b)

	metrics := make([]models.ComparisonMetric, 0, len(metricCatalog))
	scoreA, scoreB := 0, 0
	for _, def := range metricCatalog {
		ra := def.resolve(a)
		rb := def.resolve(b)
		winner := c.decide(def, ra, rb)
		switch winner {
		case models.WinnerA:
			scoreA++
		case models.WinnerB:
			scoreB++
		}
		metrics = append(metrics, models.ComparisonMetric{
			Label:       def.label,
			Description: def.description,
			ValueA:      ra.wire,
			ValueB:      rb.wire,
			DisplayA:    ra.display,
			DisplayB:    rb.display,
			Winner:      winner,
			Explanation: def.explain(winner, symA, symB, ra, rb),
		})
	}

	return &models.ComparisonResult{
		Metrics: metrics,
		ScoreA:  scoreA,
		ScoreB:  scoreB,
		Verdict: buildVerdict(metrics, scoreA, scoreB, symA, symB),
	}
}

// decide picks the winner for one metric. Equality is exact: the source
// precision is the only tolerance.
func (c *Comparator) decide(def metricDef, a, b resolved) models.Winner {
	switch {
	case a.ord == nil && b.ord == nil:
		return models.WinnerTie
	case a.ord == nil:
		if c.policy == AbsentTies {
			return models.WinnerTie
		}
		return models.WinnerB
	case b.ord == nil:
		if c.policy == AbsentTies {
			return models.WinnerTie
		}
		return models.WinnerA
	}

	if *a.ord == *b.ord {
		return models.WinnerTie
	}
	aBetter := *a.ord > *b.ord
	if def.lowerBetter {
		aBetter = !aBetter
	}
	if aBetter {
		return models.WinnerA
	}
	return models.WinnerB
}

// displaySymbol falls back to a placeholder so a record with missing
// identity still compares cleanly.
func displaySymbol(rec *models.CompanyRecord) string {
	if rec == nil {
		return "Unknown"
	}
	if sym := strings.TrimSpace(rec.Company.Symbol); sym != "" {
		return sym
	}
	if name := strings.TrimSpace(rec.Company.Name); name != "" {
		return name
	}
	return "Unknown"
}

// --- value resolution ---

func numericValue(v *float64, format func(float64) string) resolved {
	if v == nil {
		return resolved{display: "N/A"}
	}
	return resolved{wire: *v, display: format(*v), ord: v}
}

// resolvePE keeps a reported non-positive P/E on the wire but strips its
// ordering key: a loss-making side cannot win the valuation metric.
func resolvePE(rec *models.CompanyRecord) resolved {
	pe := rec.Price.PERatio
	if pe == nil {
		return resolved{display: "N/A"}
	}
	r := resolved{wire: *pe, display: fmtRatio(*pe)}
	if *pe > 0 {
		r.ord = pe
	}
	return r
}

func resolveRisk(rec *models.CompanyRecord) resolved {
	growth := RateGrowth(latestGrowth(rec.Ratios))
	dividends := RateDividends(rec.Payouts)
	risk := RateRisk(growth, dividends, rec.Price.YearChangePercent, len(rec.Payouts) > 0)
	if risk == RiskUnknown {
		return resolved{display: "N/A"}
	}
	rank := float64(risk)
	return resolved{wire: strings.ToLower(risk.String()), display: risk.String(), ord: &rank}
}

func resolveDividends(rec *models.CompanyRecord) resolved {
	record := RateDividends(rec.Payouts)
	rank := float64(record)
	label := record.String()
	return resolved{wire: label, display: capitalize(label), ord: &rank}
}

// --- formatting ---

func fmtRatio(v float64) string { return fmt.Sprintf("%.2f", v) }

func fmtPlainPercent(v float64) string { return fmt.Sprintf("%.2f%%", v) }

func fmtSignedPercent(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.2f%%", v)
	}
	return fmt.Sprintf("%.2f%%", v)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// --- explanations ---

func explainPE(w models.Winner, symA, symB string, a, b resolved) string {
	switch {
	case a.wire == nil && b.wire == nil:
		return "P/E data is not available for either stock."
	case a.wire == nil:
		return fmt.Sprintf("P/E data is only available for %s.", symB)
	case b.wire == nil:
		return fmt.Sprintf("P/E data is only available for %s.", symA)
	}

	aValid := a.ord != nil
	bValid := b.ord != nil
	switch {
	case aValid && bValid:
		if w == models.WinnerTie {
			return fmt.Sprintf("Both stocks trade at the same P/E of %s.", a.display)
		}
		winSym, winVal, loseSym, loseVal := pick(w, symA, symB, a, b)
		return fmt.Sprintf("%s's P/E of %s is lower than %s's %s, making it cheaper relative to its earnings.", winSym, winVal.display, loseSym, loseVal.display)
	case aValid:
		return fmt.Sprintf("%s is loss-making (negative P/E), while %s is profitable.", symB, symA)
	case bValid:
		return fmt.Sprintf("%s is loss-making (negative P/E), while %s is profitable.", symA, symB)
	default:
		return "Both stocks have non-positive P/E ratios (loss-making)."
	}
}

func explainMargin(w models.Winner, symA, symB string, a, b resolved) string {
	if msg, done := explainAbsent("Net profit margin data", symA, symB, a, b); done {
		return msg
	}
	if w == models.WinnerTie {
		return fmt.Sprintf("Both stocks have an identical net profit margin of %s.", a.display)
	}
	winSym, winVal, _, loseVal := pick(w, symA, symB, a, b)
	return fmt.Sprintf("%s keeps more of its revenue as profit (%s vs %s).", winSym, winVal.display, loseVal.display)
}

func explainGrowth(w models.Winner, symA, symB string, a, b resolved) string {
	if msg, done := explainAbsent("EPS growth data", symA, symB, a, b); done {
		return msg
	}
	if w == models.WinnerTie {
		return fmt.Sprintf("Both stocks report the same EPS growth of %s.", a.display)
	}
	winSym, winVal, loseSym, loseVal := pick(w, symA, symB, a, b)
	if loseVal.wire.(float64) < 0 && winVal.wire.(float64) > 0 {
		return fmt.Sprintf("%s's per-share earnings are growing (%s) while %s's are shrinking (%s).", winSym, winVal.display, loseSym, loseVal.display)
	}
	return fmt.Sprintf("%s's per-share earnings are growing faster (%s vs %s).", winSym, winVal.display, loseVal.display)
}

func explainYearChange(w models.Winner, symA, symB string, a, b resolved) string {
	if msg, done := explainAbsent("1-year price change data", symA, symB, a, b); done {
		return msg
	}
	if w == models.WinnerTie {
		return fmt.Sprintf("Both stocks moved %s over the past year.", a.display)
	}
	winSym, winVal, _, loseVal := pick(w, symA, symB, a, b)
	return fmt.Sprintf("%s's stock price performed better over the past year (%s vs %s).", winSym, winVal.display, loseVal.display)
}

func explainFreeFloat(w models.Winner, symA, symB string, a, b resolved) string {
	if msg, done := explainAbsent("Free float data", symA, symB, a, b); done {
		return msg
	}
	if w == models.WinnerTie {
		return fmt.Sprintf("Both stocks have an identical free float of %s.", a.display)
	}
	winSym, winVal, _, loseVal := pick(w, symA, symB, a, b)
	return fmt.Sprintf("%s is easier to trade thanks to a higher free float (%s vs %s).", winSym, winVal.display, loseVal.display)
}

func explainRisk(w models.Winner, symA, symB string, a, b resolved) string {
	switch {
	case a.ord == nil && b.ord == nil:
		return "Risk cannot be assessed for either stock."
	case a.ord == nil:
		return fmt.Sprintf("Risk can only be assessed for %s.", symB)
	case b.ord == nil:
		return fmt.Sprintf("Risk can only be assessed for %s.", symA)
	}
	if w == models.WinnerTie {
		return fmt.Sprintf("Both stocks carry a similar level of risk (%s).", a.display)
	}
	winSym, winVal, _, loseVal := pick(w, symA, symB, a, b)
	return fmt.Sprintf("%s carries less overall risk (%s vs %s).", winSym, winVal.display, loseVal.display)
}

func explainDividends(w models.Winner, symA, symB string, a, b resolved) string {
	if w == models.WinnerTie {
		if a.wire == "none" {
			return "Neither stock pays dividends."
		}
		return fmt.Sprintf("Both stocks have a similar dividend track record (%s).", a.display)
	}
	winSym, _, loseSym, loseVal := pick(w, symA, symB, a, b)
	if loseVal.wire == "none" {
		return fmt.Sprintf("%s pays dividends, %s does not.", winSym, loseSym)
	}
	return fmt.Sprintf("%s has a more reliable dividend history.", winSym)
}

// explainAbsent handles the missing-data cases shared by the numeric
// metrics. done is false when both sides have data.
func explainAbsent(dataName, symA, symB string, a, b resolved) (string, bool) {
	switch {
	case a.wire == nil && b.wire == nil:
		return fmt.Sprintf("%s is not available for either stock.", dataName), true
	case a.wire == nil:
		return fmt.Sprintf("%s is only available for %s.", dataName, symB), true
	case b.wire == nil:
		return fmt.Sprintf("%s is only available for %s.", dataName, symA), true
	}
	return "", false
}

// pick orients the two sides around the winner. Only call when the winner is
// a or b.
func pick(w models.Winner, symA, symB string, a, b resolved) (winSym string, winVal resolved, loseSym string, loseVal resolved) {
	if w == models.WinnerA {
		return symA, a, symB, b
	}
	return symB, b, symA, a
}

// --- verdict ---

// buildVerdict phrases the overall outcome. The strength of the language
// scales with the score margin, and an unequal score always names at least
// one metric that tipped the balance.
func buildVerdict(metrics []models.ComparisonMetric, scoreA, scoreB int, symA, symB string) string {
	if scoreA == scoreB {
		return fmt.Sprintf("%s and %s are evenly matched, each winning %d of %d metrics. The better pick depends on what matters most to you as an investor.",
			symA, symB, scoreA, len(metrics))
	}

	leadSym, trailSym := symA, symB
	leadScore := scoreA
	leadWinner := models.WinnerA
	trailWinner := models.WinnerB
	if scoreB > scoreA {
		leadSym, trailSym = symB, symA
		leadScore = scoreB
		leadWinner, trailWinner = models.WinnerB, models.WinnerA
	}

	leadWins := winningLabels(metrics, leadWinner)
	trailWins := winningLabels(metrics, trailWinner)

	margin := scoreA - scoreB
	if margin < 0 {
		margin = -margin
	}

	if margin >= 3 {
		lead := fmt.Sprintf("%s is clearly ahead, winning %d of %d metrics including %s.",
			leadSym, leadScore, len(metrics), joinLabels(leadWins, 3))
		if len(trailWins) > 0 {
			return fmt.Sprintf("%s However, %s is stronger in %s.", lead, trailSym, joinLabels(trailWins, 3))
		}
		return fmt.Sprintf("%s %s did not lead in any metric.", lead, trailSym)
	}

	return fmt.Sprintf("%s narrowly edges out %s, %d metrics to %d; its lead in %s tipped the balance, but the gap is small.",
		leadSym, trailSym, leadScore, min(scoreA, scoreB), joinLabels(leadWins, 2))
}

func winningLabels(metrics []models.ComparisonMetric, w models.Winner) []string {
	var labels []string
	for _, m := range metrics {
		if m.Winner == w {
			labels = append(labels, strings.ToLower(m.Label))
		}
	}
	return labels
}

// joinLabels renders up to limit labels as a readable list.
func joinLabels(labels []string, limit int) string {
	if len(labels) == 0 {
		return ""
	}
	if len(labels) > limit {
		labels = labels[:limit]
	}
	if len(labels) == 1 {
		return labels[0]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " and " + labels[len(labels)-1]
}
