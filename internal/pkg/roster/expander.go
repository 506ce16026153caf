package roster

import (
	"fmt"
	"strings"

	"roster-service/internal/pkg/coverage"
)

const (
	// DayOff marks an agent's weekly rest day in the working window column.
	DayOff = "DSO"

	// FullTimePrefix gates the break and meal columns.
	FullTimePrefix = "Full Time"
)

// PlanRow is one line of the staffing plan.
type PlanRow struct {
	ShiftCode    string
	ContractType string
	RestDay      Weekday
	Headcount    int
	MealLabel    string
}

// Record is one agent on one day of the expanded roster.
type Record struct {
	AgentID      string `json:"agent_id"`
	ShiftCode    string `json:"shift_code"`
	ContractType string `json:"contract_type"`
	Day          string `json:"day"`
	Window       string `json:"window"`
	Break        string `json:"break"`
	Meal         string `json:"meal"`
}

// Values returns the record cells in export column order.
func (r Record) Values() []string {
	return []string{r.AgentID, r.ShiftCode, r.ContractType, r.Day, r.Window, r.Break, r.Meal}
}

// ShiftResolver resolves the window and break of a shift code.
type ShiftResolver interface {
	Resolve(code string) coverage.Resolution
}

// Expander turns plan rows into per agent, per day records.
type Expander struct {
	resolver ShiftResolver
	labels   Labels
}

func NewExpander(resolver ShiftResolver, labels Labels) *Expander {
	return &Expander{resolver: resolver, labels: labels}
}

// IsFullTime reports whether a contract type gets break and meal columns.
func IsFullTime(contractType string) bool {
	return strings.HasPrefix(contractType, FullTimePrefix)
}

// Expand emits headcount x 7 records per row, in row order, then agent
// index, then Monday to Sunday.
func (e *Expander) Expand(rows []PlanRow) []Record {
	size := 0
	for _, row := range rows {
		if row.Headcount > 0 {
			size += row.Headcount * len(Week)
		}
	}
	records := make([]Record, 0, size)

	for _, row := range rows {
		res := e.resolver.Resolve(row.ShiftCode)
		fullTime := IsFullTime(row.ContractType)

		window := coverage.NormalizeMidnight(res.WindowLabel())
		brk, meal := coverage.NoValue, coverage.NoValue
		if fullTime {
			brk = res.BreakLabel()
			meal = row.MealLabel
			if strings.TrimSpace(meal) == "" {
				meal = coverage.NoValue
			}
		}

		for i := 1; i <= row.Headcount; i++ {
			agent := fmt.Sprintf("%s-%d", row.ShiftCode, i)
			for _, day := range Week {
				rec := Record{
					AgentID:      agent,
					ShiftCode:    row.ShiftCode,
					ContractType: row.ContractType,
					Day:          e.labels.Label(day),
				}
				if day == row.RestDay {
					rec.Window, rec.Break, rec.Meal = DayOff, coverage.NoValue, coverage.NoValue
				} else {
					rec.Window, rec.Break, rec.Meal = window, brk, meal
				}
				records = append(records, rec)
			}
		}
	}
	return records
}

// Summary describes an expanded roster.
type Summary struct {
	Agents  int            `json:"agents"`
	Records int            `json:"records"`
	Working map[string]int `json:"working_per_day"`
}

// Summarize counts agents and working agents per day.
func Summarize(records []Record) Summary {
	s := Summary{Records: len(records), Working: make(map[string]int)}
	seen := make(map[string]struct{})
	for _, rec := range records {
		if _, ok := seen[rec.AgentID]; !ok {
			seen[rec.AgentID] = struct{}{}
			s.Agents++
		}
		if rec.Window != DayOff && rec.Window != coverage.NoValue {
			s.Working[rec.Day]++
		}
	}
	return s
}
