package engine

import (
	"strings"
	"testing"

	"psxlens/internal/models"
	"psxlens/internal/testutil"
)

func tieCount(result *models.ComparisonResult) int {
	ties := 0
	for _, m := range result.Metrics {
		if m.Winner == models.WinnerTie {
			ties++
		}
	}
	return ties
}

func TestCompareCatalogShape(t *testing.T) {
	result := NewComparator().Compare(testutil.HealthyRecord("ENGROH"), testutil.StrugglingRecord("TECHX"))

	if len(result.Metrics) != 7 {
		t.Fatalf("expected 7 metrics, got %d", len(result.Metrics))
	}

	wantOrder := []string{
		"P/E Ratio (Price to Earnings)",
		"Net Profit Margin",
		"EPS Growth",
		"1-Year Price Change",
		"Free Float (Liquidity)",
		"Risk Level",
		"Dividend Track Record",
	}
	for i, label := range wantOrder {
		if result.Metrics[i].Label != label {
			t.Errorf("metric %d: expected %q, got %q", i, label, result.Metrics[i].Label)
		}
	}

	if result.ScoreA+result.ScoreB+tieCount(result) != 7 {
		t.Errorf("scores plus ties must equal 7: score_a=%d score_b=%d ties=%d",
			result.ScoreA, result.ScoreB, tieCount(result))
	}
}

func TestCompareStrongVersusWeak(t *testing.T) {
	// A: P/E 12 (cheap), margin 18% (healthy), EPS growth +14% (strong).
	// B: P/E 30 (expensive), margin 8% (average), EPS growth -3% (declining).
	a := testutil.HealthyRecord("ENGROH")
	b := testutil.StrugglingRecord("TECHX")

	result := NewComparator().Compare(a, b)

	for i := 0; i < 3; i++ {
		if result.Metrics[i].Winner != models.WinnerA {
			t.Errorf("metric %q: expected a to win, got %q", result.Metrics[i].Label, result.Metrics[i].Winner)
		}
	}
	if result.ScoreA < 3 {
		t.Errorf("expected score_a >= 3, got %d", result.ScoreA)
	}
	if !strings.Contains(result.Verdict, "ENGROH") {
		t.Errorf("verdict should name the leader, got %q", result.Verdict)
	}
}

func TestCompareMirrorSymmetry(t *testing.T) {
	a := testutil.HealthyRecord("ENGROH")
	b := testutil.StrugglingRecord("TECHX")
	// Leave one side blank on a metric so the default-win path is mirrored too.
	b.Equity.FreeFloatPercent = nil

	forward := NewComparator().Compare(a, b)
	backward := NewComparator().Compare(b, a)

	if forward.ScoreA != backward.ScoreB || forward.ScoreB != backward.ScoreA {
		t.Errorf("scores did not swap: forward %d-%d, backward %d-%d",
			forward.ScoreA, forward.ScoreB, backward.ScoreA, backward.ScoreB)
	}

	for i := range forward.Metrics {
		fw := forward.Metrics[i].Winner
		bw := backward.Metrics[i].Winner
		switch fw {
		case models.WinnerA:
			if bw != models.WinnerB {
				t.Errorf("metric %d: forward a-win should mirror to b-win, got %q", i, bw)
			}
		case models.WinnerB:
			if bw != models.WinnerA {
				t.Errorf("metric %d: forward b-win should mirror to a-win, got %q", i, bw)
			}
		default:
			if bw != models.WinnerTie {
				t.Errorf("metric %d: tie should mirror to tie, got %q", i, bw)
			}
		}
		if forward.Metrics[i].DisplayA != backward.Metrics[i].DisplayB {
			t.Errorf("metric %d: display_a should mirror to display_b", i)
		}
	}
}

func TestCompareExactTies(t *testing.T) {
	t.Run("identical_free_float", func(t *testing.T) {
		a := testutil.HealthyRecord("AAAA")
		b := testutil.HealthyRecord("BBBB")
		a.Equity.FreeFloatPercent = testutil.Float(25.0)
		b.Equity.FreeFloatPercent = testutil.Float(25.0)

		result := NewComparator().Compare(a, b)

		ff := result.Metrics[4]
		if ff.Winner != models.WinnerTie {
			t.Errorf("expected free float tie, got %q", ff.Winner)
		}
		if result.ScoreA != 0 || result.ScoreB != 0 {
			t.Errorf("identical records should tie every metric, got %d-%d", result.ScoreA, result.ScoreB)
		}
	})

	t.Run("near_equal_values_are_not_ties", func(t *testing.T) {
		a := testutil.HealthyRecord("AAAA")
		b := testutil.HealthyRecord("BBBB")
		a.Equity.FreeFloatPercent = testutil.Float(25.0)
		b.Equity.FreeFloatPercent = testutil.Float(25.5)

		result := NewComparator().Compare(a, b)
		if result.Metrics[4].Winner != models.WinnerB {
			t.Errorf("expected b to win on the higher float, got %q", result.Metrics[4].Winner)
		}
	})
}

func TestCompareDividendTrackRecord(t *testing.T) {
	a := testutil.HealthyRecord("NOPAY")
	a.Payouts = nil
	b := testutil.HealthyRecord("PAYER")

	result := NewComparator().Compare(a, b)

	div := result.Metrics[6]
	if div.ValueA != "none" {
		t.Errorf("expected a's dividend value none, got %v", div.ValueA)
	}
	if div.ValueB != "consistent" {
		t.Errorf("expected b's dividend value consistent, got %v", div.ValueB)
	}
	if div.Winner != models.WinnerB {
		t.Errorf("expected b to win dividends, got %q", div.Winner)
	}
	if !strings.Contains(div.Explanation, "PAYER pays dividends") {
		t.Errorf("expected the explanation to name the payer, got %q", div.Explanation)
	}
}

func TestCompareAbsentData(t *testing.T) {
	t.Run("absent_on_both_sides_is_a_tie", func(t *testing.T) {
		a := testutil.EmptyRecord()
		b := testutil.EmptyRecord()

		result := NewComparator().Compare(a, b)

		pe := result.Metrics[0]
		if pe.Winner != models.WinnerTie {
			t.Errorf("expected tie, got %q", pe.Winner)
		}
		if pe.DisplayA != "N/A" || pe.DisplayB != "N/A" {
			t.Errorf("expected N/A displays, got %q / %q", pe.DisplayA, pe.DisplayB)
		}
	})

	t.Run("present_side_wins_by_default", func(t *testing.T) {
		a := testutil.HealthyRecord("HASPE")
		b := testutil.HealthyRecord("NOPE")
		b.Price.PERatio = nil

		result := NewComparator().Compare(a, b)

		pe := result.Metrics[0]
		if pe.Winner != models.WinnerA {
			t.Errorf("expected a to win by default, got %q", pe.Winner)
		}
		if !strings.Contains(pe.Explanation, "only available for HASPE") {
			t.Errorf("expected the explanation to flag the missing side, got %q", pe.Explanation)
		}
	})

	t.Run("absent_ties_policy", func(t *testing.T) {
		a := testutil.HealthyRecord("HASPE")
		b := testutil.HealthyRecord("NOPE")
		b.Price.PERatio = nil

		result := NewComparatorWithPolicy(AbsentTies).Compare(a, b)

		if result.Metrics[0].Winner != models.WinnerTie {
			t.Errorf("expected tie under AbsentTies, got %q", result.Metrics[0].Winner)
		}
	})
}

func TestCompareLossMakingPE(t *testing.T) {
	a := testutil.HealthyRecord("PROFIT")
	b := testutil.HealthyRecord("LOSSY")
	b.Price.PERatio = testutil.Float(-3.4)

	result := NewComparator().Compare(a, b)

	pe := result.Metrics[0]
	if pe.Winner != models.WinnerA {
		t.Errorf("expected the profitable side to win, got %q", pe.Winner)
	}
	if pe.DisplayB != "-3.40" {
		t.Errorf("a reported negative P/E should still display, got %q", pe.DisplayB)
	}
	if !strings.Contains(pe.Explanation, "loss-making") {
		t.Errorf("expected a loss-making explanation, got %q", pe.Explanation)
	}
}

func TestCompareMissingIdentity(t *testing.T) {
	a := testutil.HealthyRecord("ENGROH")
	a.Company.Symbol = ""
	a.Company.Name = ""
	b := testutil.StrugglingRecord("TECHX")

	result := NewComparator().Compare(a, b)

	if len(result.Metrics) != 7 {
		t.Fatalf("expected 7 metrics, got %d", len(result.Metrics))
	}
	if !strings.Contains(result.Verdict, "Unknown") {
		t.Errorf("verdict should fall back to the Unknown placeholder, got %q", result.Verdict)
	}
}

func TestCompareVerdictLanguage(t *testing.T) {
	t.Run("wide_margin_is_decisive", func(t *testing.T) {
		result := NewComparator().Compare(testutil.HealthyRecord("ENGROH"), testutil.StrugglingRecord("TECHX"))

		if result.ScoreA-result.ScoreB < 3 {
			t.Fatalf("fixture should produce a wide margin, got %d-%d", result.ScoreA, result.ScoreB)
		}
		if !strings.Contains(result.Verdict, "clearly ahead") {
			t.Errorf("expected decisive language, got %q", result.Verdict)
		}
	})

	t.Run("even_match_is_hedged", func(t *testing.T) {
		result := NewComparator().Compare(testutil.HealthyRecord("AAAA"), testutil.HealthyRecord("BBBB"))

		if result.ScoreA != result.ScoreB {
			t.Fatalf("identical fixtures should tie, got %d-%d", result.ScoreA, result.ScoreB)
		}
		if !strings.Contains(result.Verdict, "evenly matched") {
			t.Errorf("expected hedged language, got %q", result.Verdict)
		}
	})
}
