package viz

import (
	"fmt"
	"math"
)

const (
	noValue  = "—"
	infinity = "∞"
)

// FormatClock renders seconds as MM:SS.mmm. Negative or non-finite input
// renders as dashes.
func FormatClock(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "--:--.---"
	}
	ms := int64(math.Floor(seconds*1000 + 1e-6))
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, (ms/1000)%60, ms%1000)
}

// FormatValue prints v with three decimals, "—" for NaN and "∞" for +Inf.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return noValue
	case math.IsInf(v, 1):
		return infinity
	case math.IsInf(v, -1):
		return "-" + infinity
	}
	return fmt.Sprintf("%.3f", v)
}

// FormatPercent prints a relative error, "—" when undefined.
func FormatPercent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return noValue
	}
	return fmt.Sprintf("%.3f%%", v)
}
