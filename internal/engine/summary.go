package engine

import (
	"fmt"
	"math"

	"psxlens/internal/models"
)

// summaryPoints builds the plain-English observation list. Points are
// appended in a fixed priority order (profitability, margin, growth,
// valuation, free float, dividends, price trend) and capped at
// maxSummaryPoints. Each point states one underlying fact; rules whose
// inputs are absent contribute nothing.
func summaryPoints(record *models.CompanyRecord, peRating PERating, dividends DividendRecord) []string {
	points := make([]string, 0, maxSummaryPoints)

	// Profitability across reported years.
	if profits := collectProfits(record.FinancialsAnnual); len(profits) > 0 {
		lossYears := 0
		for _, p := range profits {
			if p <= 0 {
				lossYears++
			}
		}
		if lossYears == 0 {
			points = append(points, fmt.Sprintf("The company has been consistently profitable for the past %d years.", len(profits)))
		} else {
			points = append(points, fmt.Sprintf("The company had losses in %d out of the last %d years, which raises some concern.", lossYears, len(profits)))
		}
	}

	// Latest net profit margin.
	if margin := latestMargin(record.Ratios); margin != nil {
		m := *margin
		switch {
		case m > 50:
			points = append(points, fmt.Sprintf("Net profit margin is very high (%.0f%%), meaning most of what they earn becomes profit.", m))
		case m > 20:
			points = append(points, fmt.Sprintf("Net profit margin of %.0f%% is strong - the company keeps a good chunk of its revenue as profit.", m))
		case m > 10:
			points = append(points, fmt.Sprintf("Net profit margin of %.0f%% is moderate - typical for many industries.", m))
		default:
			points = append(points, fmt.Sprintf("Net profit margin of %.0f%% is relatively thin, meaning they keep very little of each rupee earned.", m))
		}
	}

	// Latest EPS growth.
	if growth := latestGrowth(record.Ratios); growth != nil {
		g := *growth
		switch {
		case g > 50:
			points = append(points, fmt.Sprintf("Earnings per share grew by %.0f%% recently - a very strong jump.", g))
		case g > 0:
			points = append(points, fmt.Sprintf("Earnings per share grew by %.1f%% recently, showing the company is increasing what each share earns.", g))
		case g < -10:
			points = append(points, fmt.Sprintf("Earnings per share dropped by %.1f%% recently, meaning each share earned less than before.", math.Abs(g)))
		default:
			points = append(points, "Earnings per share have been roughly stable.")
		}
	}

	// Valuation.
	if pe := record.Price.PERatio; pe != nil {
		switch peRating {
		case PEExpensive:
			points = append(points, fmt.Sprintf("P/E ratio of %.1f means the stock is relatively expensive compared to its earnings - investors are paying a premium.", *pe))
		case PECheap:
			points = append(points, fmt.Sprintf("P/E ratio of %.1f suggests the stock is cheap relative to earnings - it could be a good value.", *pe))
		case PEFair:
			points = append(points, fmt.Sprintf("P/E ratio of %.1f suggests the stock is reasonably priced for what the company earns.", *pe))
		default:
			points = append(points, "The company currently has a non-positive P/E ratio, meaning it is losing money.")
		}
	}

	// Free float / liquidity.
	if ff := record.Equity.FreeFloatPercent; ff != nil {
		switch {
		case *ff >= 70:
			points = append(points, fmt.Sprintf("Free float of %.0f%% means the stock is highly liquid - easy to buy and sell on the market.", *ff))
		case *ff >= 30:
			points = append(points, fmt.Sprintf("Free float of %.0f%% provides reasonable liquidity for trading.", *ff))
		default:
			points = append(points, fmt.Sprintf("Free float is only %.0f%%, meaning most shares are held by insiders and it may be harder to trade.", *ff))
		}
	}

	// Dividends.
	if len(record.Payouts) > 0 {
		if dividends == DividendConsistent {
			points = append(points, fmt.Sprintf("The company has paid dividends %d time(s) recently on a steady schedule - a positive sign for investors seeking regular income.", len(record.Payouts)))
		} else {
			points = append(points, fmt.Sprintf("The company has paid dividends %d time(s) recently, though not on a steady schedule.", len(record.Payouts)))
		}
	} else {
		points = append(points, "No recent dividend history was found, so this stock is not paying regular returns to shareholders.")
	}

	// Year performance.
	if yc := record.Price.YearChangePercent; yc != nil {
		if *yc > 0 {
			points = append(points, fmt.Sprintf("The stock price is up %.1f%% over the past year.", *yc))
		} else if *yc < 0 {
			points = append(points, fmt.Sprintf("The stock price is down %.1f%% over the past year.", math.Abs(*yc)))
		}
	}

	// Pad with a sector note rather than returning a near-empty list for a
	// sparse but non-empty record.
	if len(points) < 4 && record.Company.Name != "" {
		points = append(points, fmt.Sprintf("%s operates in the %s sector.", record.Company.Name, record.Company.Sector))
	}

	if len(points) > maxSummaryPoints {
		points = points[:maxSummaryPoints]
	}
	return points
}
