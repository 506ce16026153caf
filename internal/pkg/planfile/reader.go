// Package planfile reads staffing plans from spreadsheets and writes
// expanded rosters back out.
package planfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported plan file format")
	ErrMissingColumn     = errors.New("missing required column")
	ErrEmptyPlan         = errors.New("plan file has no header row")
)

const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Column identifies a plan field.
type Column string

const (
	ColumnShiftCode    Column = "shift_code"
	ColumnContractType Column = "contract_type"
	ColumnRestDay      Column = "rest_day"
	ColumnHeadcount    Column = "headcount"
	ColumnMeal         Column = "meal"
)

var requiredColumns = []Column{ColumnShiftCode, ColumnContractType, ColumnRestDay, ColumnHeadcount}

var columnAliases = map[string]Column{
	"horario":              ColumnShiftCode,
	"shift":                ColumnShiftCode,
	"shift code":           ColumnShiftCode,
	"tipo de contrato":     ColumnContractType,
	"contract type":        ColumnContractType,
	"día de descanso":      ColumnRestDay,
	"dia de descanso":      ColumnRestDay,
	"rest day":             ColumnRestDay,
	"personal a contratar": ColumnHeadcount,
	"headcount":            ColumnHeadcount,
	"refrigerio":           ColumnMeal,
	"meal":                 ColumnMeal,
}

// RawRow is a plan line as text, before validation. Line is the 1-based
// line number in the source file.
type RawRow struct {
	Line         int
	ShiftCode    string
	ContractType string
	RestDay      string
	Headcount    string
	MealLabel    string
}

// FormatOf returns the plan format implied by a file name.
func FormatOf(name string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")); ext {
	case FormatXLSX, FormatCSV:
		return ext, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// ReadPlan reads the first sheet of an xlsx file or a csv file.
func ReadPlan(name string, r io.Reader) ([]RawRow, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}

	var table [][]string
	switch format {
	case FormatXLSX:
		table, err = readXLSX(r)
	case FormatCSV:
		table, err = readCSV(r)
	}
	if err != nil {
		return nil, err
	}
	return parseTable(table)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyPlan
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func parseTable(table [][]string) ([]RawRow, error) {
	if len(table) == 0 {
		return nil, ErrEmptyPlan
	}

	index := make(map[Column]int)
	for i, cell := range table[0] {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
		if col, ok := columnAliases[name]; ok {
			if _, dup := index[col]; !dup {
				index[col] = i
			}
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	cell := func(row []string, col Column) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	rows := make([]RawRow, 0, len(table)-1)
	for n, row := range table[1:] {
		if isBlank(row) {
			continue
		}
		rows = append(rows, RawRow{
			Line:         n + 2,
			ShiftCode:    cell(row, ColumnShiftCode),
			ContractType: cell(row, ColumnContractType),
			RestDay:      cell(row, ColumnRestDay),
			Headcount:    cell(row, ColumnHeadcount),
			MealLabel:    cell(row, ColumnMeal),
		})
	}
	return rows, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
