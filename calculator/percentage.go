package calculator

type PercentageMode string

const (
	// ModeFindPercentage computes value * percentage / 100.
	ModeFindPercentage PercentageMode = "find-percentage"
	// ModeFindValue computes what percent value is of total.
	ModeFindValue PercentageMode = "find-value"
)

func ParsePercentageMode(s string) (PercentageMode, error) {
	switch PercentageMode(s) {
	case "", ModeFindPercentage:
		return ModeFindPercentage, nil
	case ModeFindValue:
		return ModeFindValue, nil
	default:
		return "", invalid("unknown percentage mode %q", s)
	}
}

// PercentageOf returns percentage% of value, rounded to 2 decimals.
func PercentageOf(value, percentage float64) (float64, error) {
	if !finite(value, percentage) {
		return 0, invalid("value and percentage must be numbers")
	}
	return roundTo(value*percentage/100, 2), nil
}

// PercentOf returns what percent value is of total, rounded to 2 decimals.
func PercentOf(value, total float64) (float64, error) {
	if !finite(value, total) {
		return 0, invalid("value and total must be numbers")
	}
	if total == 0 {
		return 0, invalid("total must not be zero")
	}
	return roundTo(value/total*100, 2), nil
}

func Percentage(mode PercentageMode, a, b float64) (float64, error) {
	switch mode {
	case ModeFindPercentage:
		return PercentageOf(a, b)
	case ModeFindValue:
		return PercentOf(a, b)
	default:
		return 0, invalid("unknown percentage mode %q", mode)
	}
}
