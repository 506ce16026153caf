package responses

type ShiftCoverage struct {
	Code         string `json:"code"`
	Configured   bool   `json:"configured"`
	Hours        []int  `json:"hours"`
	StaffedHours int    `json:"staffed_hours"`
	Window       string `json:"window"`
	Break        string `json:"break"`
}
