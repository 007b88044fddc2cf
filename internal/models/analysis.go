package models

// Analysis is the plain-language verdict for a single stock. It is built
// fresh on every call and never mutated afterwards.
type Analysis struct {
	BusinessVerdict string   `json:"business_verdict"`
	FinancialHealth string   `json:"financial_health"`
	DividendStatus  string   `json:"dividend_status"`
	Valuation       string   `json:"valuation"`
	RiskLevel       string   `json:"risk_level"`
	SummaryPoints   []string `json:"summary_points"`
}

// Winner marks which side of a comparison metric came out ahead.
type Winner string

const (
	WinnerA   Winner = "a"
	WinnerB   Winner = "b"
	WinnerTie Winner = "tie"
)

// ComparisonMetric is one head-to-head metric. Values are numeric for ratio
// metrics and string labels for categorical ones; nil means no data on that
// side.
type ComparisonMetric struct {
	Label       string      `json:"label"`
	Description string      `json:"description"`
	ValueA      interface{} `json:"value_a"`
	ValueB      interface{} `json:"value_b"`
	DisplayA    string      `json:"display_a"`
	DisplayB    string      `json:"display_b"`
	Winner      Winner      `json:"winner"`
	Explanation string      `json:"explanation"`
}

// ComparisonResult holds all seven metrics in display order plus the
// aggregate score and the overall verdict. Metrics not won by either side
// are ties, so ScoreA + ScoreB + ties always equals len(Metrics).
type ComparisonResult struct {
	Metrics []ComparisonMetric `json:"metrics"`
	ScoreA  int                `json:"score_a"`
	ScoreB  int                `json:"score_b"`
	Verdict string             `json:"verdict"`
}

// StockReport is the full analyze response: the scraped record with the
// engine's verdict attached.
type StockReport struct {
	CompanyRecord
	Analysis Analysis `json:"analysis"`
}

// ComparisonReport is the full compare response: both analyzed stocks plus
// the head-to-head result.
type ComparisonReport struct {
	StockA     *StockReport     `json:"stock_a"`
	StockB     *StockReport     `json:"stock_b"`
	Comparison ComparisonResult `json:"comparison"`
}
