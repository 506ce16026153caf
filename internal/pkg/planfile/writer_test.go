package planfile

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"roster-service/internal/pkg/roster"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sampleRecords = []roster.Record{
	{AgentID: "FT-1", ShiftCode: "FT", ContractType: "Full Time", Day: "Monday", Window: "08:00-16:00", Break: "12:00-13:00", Meal: "13:00-14:00"},
	{AgentID: "FT-1", ShiftCode: "FT", ContractType: "Full Time", Day: "Tuesday", Window: "DSO", Break: "-", Meal: "-"},
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	assert.Equal(t, "plan_final_20240309_070501.xlsx", FileName(now, FormatXLSX))
}

func TestWrite_CSV(t *testing.T) {
	doc, err := Write(sampleRecords, roster.English, FormatCSV, time.Now())
	require.NoError(t, err)
	assert.Equal(t, MIMECSV, doc.ContentType)

	rows, err := csv.NewReader(bytes.NewReader(doc.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, roster.English.Headers[:], rows[0])
	assert.Equal(t, sampleRecords[0].Values(), rows[1])
	assert.Equal(t, sampleRecords[1].Values(), rows[2])
}

func TestWrite_XLSX(t *testing.T) {
	doc, err := Write(sampleRecords, roster.Spanish, FormatXLSX, time.Now())
	require.NoError(t, err)
	assert.Equal(t, MIMEXLSX, doc.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(doc.Body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, roster.Spanish.Headers[:], rows[0])
	assert.Equal(t, sampleRecords[1].Values(), rows[2])
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	_, err := Write(sampleRecords, roster.English, "pdf", time.Now())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
