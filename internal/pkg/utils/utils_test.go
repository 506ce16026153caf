package utils

import (
	"testing"

	"roster-service/internal/pkg/dto/requests"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeadcount(t *testing.T) {
	valid := map[string]int{"2": 2, " 10 ": 10, "3.0": 3, "0": 0, "-1": -1}
	for input, want := range valid {
		got, err := ParseHeadcount(input)
		assert.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "abc", "1.5", "NaN", "Inf"} {
		_, err := ParseHeadcount(input)
		assert.ErrorIs(t, err, ErrInvalidHeadcount, input)
	}
}

func TestAdminJWTRoundTrip(t *testing.T) {
	token, err := GenerateAdminJWT("ops@example.com", "secret", 1)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", claims.Subject)
	assert.Equal(t, "admin", claims.Role)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateStruct_PlanRow(t *testing.T) {
	row := requests.PlanRow{ShiftCode: "FT", ContractType: "Full Time", RestDay: "Domingo", Headcount: 1}
	assert.NoError(t, ValidateStruct(row))

	row.RestDay = "Someday"
	assert.Error(t, ValidateStruct(row))

	row.RestDay = "Sunday"
	row.Headcount = 0
	assert.Error(t, ValidateStruct(row))
}

func TestValidateStruct_Coverage(t *testing.T) {
	hours := make([]int, 24)
	assert.NoError(t, ValidateStruct(requests.UpsertShiftCoverage{Hours: hours}))

	hours[3] = 2
	assert.Error(t, ValidateStruct(requests.UpsertShiftCoverage{Hours: hours}))
	assert.Error(t, ValidateStruct(requests.UpsertShiftCoverage{Hours: hours[:5]}))
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	assert.Contains(t, id, "RSTR_SVC_")
	assert.NotEqual(t, id, GenerateRequestID())
}
