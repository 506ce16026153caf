package coverage

import "sync"

// Window is a contiguous span of staffed hours that may wrap past midnight.
type Window struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
	Length    int `json:"length"`
}

// BreakSlot is a one hour unstaffed gap inside a Window.
type BreakSlot struct {
	StartHour int  `json:"start_hour"`
	EndHour   int  `json:"end_hour"`
	Present   bool `json:"present"`
}

// Resolution is the derived working window and break of a shift. A
// Resolution without coverage has neither.
type Resolution struct {
	Window  Window    `json:"window"`
	Covered bool      `json:"covered"`
	Break   BreakSlot `json:"break"`
	Staffed int       `json:"staffed_hours"`
}

// ResolveMask derives the working window and the break of a mask.
//
// The window is the shortest circular span holding every staffed hour. When
// several starts give the same length the earliest hour wins. Masks with
// more than one run still get a window; it encloses the gaps between runs.
func ResolveMask(m Mask) Resolution {
	total := m.Staffed()
	if total == 0 {
		return Resolution{}
	}

	start, length := 0, HoursPerDay+1
	for s := 0; s < HoursPerDay; s++ {
		ones := 0
		for end := s; end < s+HoursPerDay; end++ {
			if m.at(end) {
				ones++
			}
			if ones == total {
				if n := end - s + 1; n < length {
					start, length = s, n
				}
				break
			}
		}
	}

	res := Resolution{
		Window: Window{
			StartHour: start % HoursPerDay,
			EndHour:   (start + length) % HoursPerDay,
			Length:    length,
		},
		Covered: true,
		Staffed: total,
	}

	// first staffed/unstaffed/staffed triple inside the window
	for i := start; i < start+length-1; i++ {
		if m.at(i) && !m.at(i+1) && m.at(i+2) {
			gap := (i + 1) % HoursPerDay
			res.Break = BreakSlot{StartHour: gap, EndHour: (gap + 1) % HoursPerDay, Present: true}
			break
		}
	}
	return res
}

// Resolver resolves shift codes against a coverage table and memoises the
// result per code. The table must not change for the lifetime of the
// Resolver; build a new one when it does.
type Resolver struct {
	table Table

	mu    sync.RWMutex
	cache map[string]Resolution
}

func NewResolver(table Table) *Resolver {
	if table == nil {
		table = MapTable{}
	}
	return &Resolver{
		table: table,
		cache: make(map[string]Resolution),
	}
}

// Resolve returns the window and break of a shift code. Codes missing from
// the table resolve as an all-zero mask.
func (r *Resolver) Resolve(code string) Resolution {
	r.mu.RLock()
	res, ok := r.cache[code]
	r.mu.RUnlock()
	if ok {
		return res
	}

	m, _ := r.table.Lookup(code)
	res = ResolveMask(m)

	r.mu.Lock()
	r.cache[code] = res
	r.mu.Unlock()
	return res
}

// Cached reports how many shift codes have been resolved so far.
func (r *Resolver) Cached() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
