package main

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/utils"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCoverage = `shifts:
  M08: [0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 0, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0]
  N20: [0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1]
  BAD: [1, 1]
`

const testPlan = `Shift Code,Contract Type,Rest Day,Headcount,Meal
M08,Full Time,Sunday,2,13:00-14:00
N20,Part Time,Monday,1.0,
`

func newTestRunner(t *testing.T) (*runner, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "coverage.yaml", []byte(testCoverage), 0o644))
	require.NoError(t, afero.WriteFile(fs, "plan.csv", []byte(testPlan), 0o644))

	out := &bytes.Buffer{}
	return &runner{
		fs:     fs,
		out:    out,
		errOut: &bytes.Buffer{},
		now:    func() time.Time { return time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC) },
	}, out
}

func TestExpand_WritesRoster(t *testing.T) {
	r, out := newTestRunner(t)

	err := newApp(r).Run([]string{"roster", "expand", "--plan", "plan.csv", "--coverage", "coverage.yaml", "--format", "csv", "--out", "rosters"})
	require.NoError(t, err)

	target := filepath.Join("rosters", "plan_final_20240304_103000.csv")
	assert.Equal(t, target+"\n", out.String())

	body, err := afero.ReadFile(r.fs, target)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	// header plus three agents over seven days
	require.Len(t, rows, 1+3*7)

	var working, off int
	for _, row := range rows[1:] {
		if row[1] != "M08" {
			continue
		}
		if row[4] == "DSO" {
			off++
			continue
		}
		working++
		assert.Equal(t, "08:00-16:00", row[4])
		assert.Equal(t, "12:00-13:00", row[5])
	}
	assert.Equal(t, 2*6, working)
	assert.Equal(t, 2, off)
}

func TestExpand_MissingPlan(t *testing.T) {
	r, _ := newTestRunner(t)

	err := newApp(r).Run([]string{"roster", "expand", "--coverage", "coverage.yaml"})
	assert.ErrorIs(t, err, errMissingPlan)
}

func TestExpand_MalformedRow(t *testing.T) {
	r, _ := newTestRunner(t)
	require.NoError(t, afero.WriteFile(r.fs, "bad.csv", []byte("Shift Code,Contract Type,Rest Day,Headcount\nM08,Full Time,Someday,1\n"), 0o644))

	err := newApp(r).Run([]string{"roster", "expand", "--plan", "bad.csv", "--coverage", "coverage.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan row 2")
}

func TestResolve_GivenCodes(t *testing.T) {
	r, out := newTestRunner(t)

	err := newApp(r).Run([]string{"roster", "resolve", "--coverage", "coverage.yaml", "N20", "X99"})
	require.NoError(t, err)

	assert.Equal(t, "N20\t20:00-00:00\t-\nX99\t-\t-\n", out.String())
}

func TestResolve_AllCodes(t *testing.T) {
	r, out := newTestRunner(t)

	err := newApp(r).Run([]string{"roster", "resolve", "--coverage", "coverage.yaml"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"BAD\t-\t-",
		"M08\t08:00-16:00\t12:00-13:00",
		"N20\t20:00-00:00\t-",
	}, lines)
}

func TestToken(t *testing.T) {
	r, out := newTestRunner(t)

	err := newApp(r).Run([]string{"roster", "token", "--secret", "cli-secret", "--subject", "ops"})
	require.NoError(t, err)

	claims, err := utils.ParseJWT(strings.TrimSpace(out.String()), "cli-secret")
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.Equal(t, constvars.RoleAdmin, claims.Role)
}

func TestToken_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	r, _ := newTestRunner(t)

	err := newApp(r).Run([]string{"roster", "token"})
	assert.ErrorIs(t, err, errMissingSecret)
}
