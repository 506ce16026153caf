package requests

type UpsertShiftCoverage struct {
	Hours []int `json:"hours" validate:"required,len=24,dive,oneof=0 1"`
}
