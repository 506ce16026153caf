package requests

// PlanRow is one staffing plan line as received from a client or read from
// an uploaded spreadsheet.
type PlanRow struct {
	ShiftCode    string `json:"shift_code" validate:"required,max=64"`
	ContractType string `json:"contract_type" validate:"required,max=64"`
	RestDay      string `json:"rest_day" validate:"required,weekday"`
	Headcount    int    `json:"headcount" validate:"gt=0,lte=10000"`
	MealLabel    string `json:"meal_label,omitempty" validate:"max=64"`
}

type ExpandPlan struct {
	Rows []PlanRow `json:"rows" validate:"required,min=1"`
}
