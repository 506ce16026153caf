package coverage

import (
	"errors"
	"fmt"
)

// HoursPerDay is the number of slots in a coverage mask.
const HoursPerDay = 24

var (
	ErrMaskLength = errors.New("coverage mask must have exactly 24 slots")
	ErrMaskValue  = errors.New("coverage mask slots must be 0 or 1")
)

// Mask marks which hours of the day a shift is staffed. Index 0 is
// midnight to 1am, index 23 is 11pm to midnight.
type Mask [HoursPerDay]bool

// ParseMask builds a Mask from a slice of 0/1 integers as found in the
// coverage table file or database.
func ParseMask(hours []int) (Mask, error) {
	var m Mask
	if len(hours) != HoursPerDay {
		return m, fmt.Errorf("%w: got %d", ErrMaskLength, len(hours))
	}
	for i, v := range hours {
		switch v {
		case 0:
		case 1:
			m[i] = true
		default:
			return m, fmt.Errorf("%w: hour %d has %d", ErrMaskValue, i, v)
		}
	}
	return m, nil
}

// MaskOf returns a mask with the given hours staffed. Hours are taken mod 24.
func MaskOf(hours ...int) Mask {
	var m Mask
	for _, h := range hours {
		m[((h%HoursPerDay)+HoursPerDay)%HoursPerDay] = true
	}
	return m
}

// Ints returns the mask as 0/1 integers.
func (m Mask) Ints() []int {
	out := make([]int, HoursPerDay)
	for i, staffed := range m {
		if staffed {
			out[i] = 1
		}
	}
	return out
}

// Staffed counts the staffed hours.
func (m Mask) Staffed() int {
	n := 0
	for _, staffed := range m {
		if staffed {
			n++
		}
	}
	return n
}

// at reads the mask as an endless circular sequence.
func (m Mask) at(i int) bool {
	return m[i%HoursPerDay]
}

// Table looks up the coverage mask of a shift code.
type Table interface {
	Lookup(code string) (Mask, bool)
}

// MapTable is a Table backed by a plain map.
type MapTable map[string]Mask

func (t MapTable) Lookup(code string) (Mask, bool) {
	m, ok := t[code]
	return m, ok
}
