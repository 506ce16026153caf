package roster

import (
	"testing"

	"roster-service/internal/pkg/coverage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResolver() *coverage.Resolver {
	return coverage.NewResolver(coverage.MapTable{
		"FT_08:00_8": coverage.MaskOf(8, 9, 10, 11, 13, 14, 15),
		"PT_20:00_4": coverage.MaskOf(20, 21, 22, 23),
	})
}

func TestExpander_FullTimeRow(t *testing.T) {
	expander := NewExpander(testResolver(), English)

	records := expander.Expand([]PlanRow{{
		ShiftCode:    "FT_08:00_8",
		ContractType: "Full Time",
		RestDay:      Sunday,
		Headcount:    2,
		MealLabel:    "13:00-14:00",
	}})

	require.Len(t, records, 14)
	for i, rec := range records {
		agent := "FT_08:00_8-1"
		if i >= 7 {
			agent = "FT_08:00_8-2"
		}
		assert.Equal(t, agent, rec.AgentID)
		assert.Equal(t, English.Days[i%7], rec.Day)
		assert.Equal(t, "FT_08:00_8", rec.ShiftCode)
		assert.Equal(t, "Full Time", rec.ContractType)

		if rec.Day == "Sunday" {
			assert.Equal(t, Record{AgentID: agent, ShiftCode: "FT_08:00_8", ContractType: "Full Time", Day: "Sunday", Window: "DSO", Break: "-", Meal: "-"}, rec)
			continue
		}
		assert.Equal(t, "08:00-16:00", rec.Window)
		assert.Equal(t, "12:00-13:00", rec.Break)
		assert.Equal(t, "13:00-14:00", rec.Meal)
	}
}

func TestExpander_PartTimeRowHasNoBreakOrMeal(t *testing.T) {
	expander := NewExpander(testResolver(), English)

	records := expander.Expand([]PlanRow{{
		ShiftCode:    "FT_08:00_8",
		ContractType: "Part Time",
		RestDay:      Monday,
		Headcount:    1,
		MealLabel:    "13:00-14:00",
	}})

	require.Len(t, records, 7)
	assert.Equal(t, "DSO", records[0].Window)
	for _, rec := range records[1:] {
		assert.Equal(t, "08:00-16:00", rec.Window)
		assert.Equal(t, "-", rec.Break)
		assert.Equal(t, "-", rec.Meal)
	}
}

func TestExpander_WindowEndingAtMidnight(t *testing.T) {
	records := NewExpander(testResolver(), English).Expand([]PlanRow{{
		ShiftCode: "PT_20:00_4", ContractType: "Full Time", RestDay: Sunday, Headcount: 1,
	}})

	require.Len(t, records, 7)
	assert.Equal(t, "20:00-00:00", records[0].Window)
	assert.Equal(t, "-", records[0].Meal)
	for _, rec := range records {
		assert.NotContains(t, rec.Window, "24:00")
	}
}

func TestExpander_UnknownShiftCode(t *testing.T) {
	records := NewExpander(testResolver(), English).Expand([]PlanRow{{
		ShiftCode: "NOPE", ContractType: "Full Time", RestDay: Wednesday, Headcount: 1, MealLabel: "12:00-13:00",
	}})

	require.Len(t, records, 7)
	for _, rec := range records {
		if rec.Day == "Wednesday" {
			assert.Equal(t, "DSO", rec.Window)
			continue
		}
		assert.Equal(t, "-", rec.Window)
		assert.Equal(t, "-", rec.Break)
	}
}

func TestExpander_EmissionOrder(t *testing.T) {
	records := NewExpander(testResolver(), Spanish).Expand([]PlanRow{
		{ShiftCode: "B", ContractType: "Part Time", RestDay: Sunday, Headcount: 1},
		{ShiftCode: "A", ContractType: "Part Time", RestDay: Sunday, Headcount: 2},
	})

	require.Len(t, records, 21)
	assert.Equal(t, "B-1", records[0].AgentID)
	assert.Equal(t, "A-1", records[7].AgentID)
	assert.Equal(t, "A-2", records[14].AgentID)
	assert.Equal(t, "Lunes", records[14].Day)
	assert.Equal(t, "Domingo", records[20].Day)
}

func TestSummarize(t *testing.T) {
	records := NewExpander(testResolver(), English).Expand([]PlanRow{
		{ShiftCode: "FT_08:00_8", ContractType: "Full Time", RestDay: Sunday, Headcount: 2},
		{ShiftCode: "NOPE", ContractType: "Full Time", RestDay: Sunday, Headcount: 1},
	})

	summary := Summarize(records)
	assert.Equal(t, 3, summary.Agents)
	assert.Equal(t, 21, summary.Records)
	assert.Equal(t, 2, summary.Working["Monday"])
	assert.Equal(t, 0, summary.Working["Sunday"])
}

func TestRecord_Values(t *testing.T) {
	rec := Record{AgentID: "A-1", ShiftCode: "A", ContractType: "Full Time", Day: "Monday", Window: "08:00-16:00", Break: "-", Meal: "-"}
	assert.Equal(t, []string{"A-1", "A", "Full Time", "Monday", "08:00-16:00", "-", "-"}, rec.Values())
}
