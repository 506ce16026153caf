package coverage

import (
	"fmt"
	"strings"
)

// NoValue is rendered for a missing window or break.
const NoValue = "-"

func formatSpan(start, end int) string {
	return NormalizeMidnight(fmt.Sprintf("%02d:00-%02d:00", start, end))
}

// NormalizeMidnight rewrites a "24:00" end of day as "00:00".
func NormalizeMidnight(s string) string {
	return strings.ReplaceAll(s, "24:00", "00:00")
}

func (w Window) String() string {
	return formatSpan(w.StartHour, w.EndHour)
}

func (b BreakSlot) String() string {
	if !b.Present {
		return NoValue
	}
	return formatSpan(b.StartHour, b.EndHour)
}

// WindowLabel renders the working window, or "-" without coverage.
func (r Resolution) WindowLabel() string {
	if !r.Covered {
		return NoValue
	}
	return r.Window.String()
}

// BreakLabel renders the break, or "-" when there is none.
func (r Resolution) BreakLabel() string {
	if !r.Covered {
		return NoValue
	}
	return r.Break.String()
}
