package scraper

import (
	"regexp"
	"strconv"
	"strings"
)

// parenNegative matches parenthesised negatives like (4.74) or (2.40%).
var parenNegative = regexp.MustCompile(`^\(([0-9,.%\s]+)\)$`)

var numberCleaner = strings.NewReplacer(",", "", " ", "", "%", "")

// cleanNumber strips commas, whitespace, and percent signs from a numeric
// cell and rewrites parenthesised values as negatives. It returns "" when
// the cell is empty or a placeholder dash.
func cleanNumber(text string) string {
	text = strings.TrimSpace(text)
	if text == "" || text == "--" || text == "-" {
		return ""
	}
	if m := parenNegative.FindStringSubmatch(text); m != nil {
		text = "-" + m[1]
	}
	return numberCleaner.Replace(text)
}

// parseFloat parses a numeric cell, nil when absent or unparseable.
// Absent stays nil rather than becoming zero: the engine relies on the
// difference.
func parseFloat(text string) *float64 {
	cleaned := cleanNumber(text)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseInt parses an integer cell, nil when absent or unparseable. Values
// formatted with decimals (e.g. "1,234.00") are truncated.
func parseInt(text string) *int64 {
	cleaned := cleanNumber(text)
	if cleaned == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	v := int64(f)
	return &v
}
