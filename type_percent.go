package coinfolio

import "fmt"

// Percent is a percentage point value, like a 24h price change or an
// allocation share of the portfolio.
type Percent float64

// Equal compares with a fixed tolerance: percent values come from float
// math on quotes and are only ever displayed with two decimals.
func (p Percent) Equal(q Percent) bool {
	const tolerance = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < tolerance
}

func (p Percent) String() string { return fmt.Sprintf("%.2f%%", p) }

// SignedString renders with an explicit sign; a flat change shows as "-".
func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
