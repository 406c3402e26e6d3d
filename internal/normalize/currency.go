package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyWordRe = regexp.MustCompile(`(?i)(vnd|vnđ|₫|đ)\s*`)
	nonNumericRe   = regexp.MustCompile(`[^\d,.\-]`)
)

// ParseAmount normalizes heterogeneous currency text into a decimal amount.
// It never fails: unparseable or empty input yields zero.
//
// Separator disambiguation:
//   - both '.' and ',' present: whichever occurs last is the decimal point,
//     the other is a thousands separator and is stripped;
//   - only one of them present: thousands separator when it occurs more than
//     once, or exactly once followed by a 3-digit group with a non-empty
//     leading group ("1,234"); decimal point otherwise ("12,5").
func ParseAmount(value string) decimal.Decimal {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Zero
	}
	s = currencyWordRe.ReplaceAllString(s, "")
	s = nonNumericRe.ReplaceAllString(s, "")
	if s == "" || s == "-" {
		return decimal.Zero
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")
	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		if isThousandsSeparated(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	case hasDot:
		if isThousandsSeparated(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func isThousandsSeparated(s, sep string) bool {
	groups := strings.Split(s, sep)
	if len(groups) > 2 {
		return true
	}
	// exactly one separator: "1,234" is thousands, "12,5" is a decimal point
	return len(groups) == 2 && len(groups[1]) == 3 && len(groups[0]) > 0
}
