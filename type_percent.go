package household

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Percent is a value already scaled to 0-100.
type Percent float64

// ratio returns part/whole*100, or 0 when whole is zero.
func ratio(part, whole decimal.Decimal) Percent {
	if whole.IsZero() {
		return 0
	}
	return Percent(part.Div(whole).Mul(decimal.NewFromInt(100)).InexactFloat64())
}

// AsPercent accepts either a 0-1 fraction or an already scaled value:
// anything whose magnitude is above 1 is taken as a percentage.
func AsPercent(v float64) Percent {
	if math.Abs(v) > 1 {
		return Percent(v)
	}
	return Percent(v * 100)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", p)
	if res == "+0.00%" || res == "-0.00%" {
		return "-"
	}
	return res
}
