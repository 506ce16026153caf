package models

import (
	"time"

	"roster-service/internal/pkg/coverage"
	"roster-service/internal/pkg/dto/responses"
)

type ShiftCoverage struct {
	Code      string    `json:"code" bson:"code" yaml:"-"`
	Hours     []int     `json:"hours" bson:"hours" yaml:"hours"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updatedAt,omitempty" yaml:"-"`
}

func (s ShiftCoverage) Mask() (coverage.Mask, error) {
	return coverage.ParseMask(s.Hours)
}

// CoverageTable indexes coverages by shift code. Entries whose hours do not
// form a valid mask are returned in invalid and left out of the table.
func CoverageTable(coverages []ShiftCoverage) (table coverage.MapTable, invalid []string) {
	table = make(coverage.MapTable, len(coverages))
	for _, each := range coverages {
		mask, err := each.Mask()
		if err != nil {
			invalid = append(invalid, each.Code)
			continue
		}
		table[each.Code] = mask
	}
	return table, invalid
}

func ConvertIntoShiftCoverageResponse(code string, mask coverage.Mask, configured bool, resolution coverage.Resolution) responses.ShiftCoverage {
	return responses.ShiftCoverage{
		Code:         code,
		Configured:   configured,
		Hours:        mask.Ints(),
		StaffedHours: resolution.Staffed,
		Window:       resolution.WindowLabel(),
		Break:        resolution.BreakLabel(),
	}
}
