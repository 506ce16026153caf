package planfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"roster-service/internal/pkg/roster"

	"github.com/xuri/excelize/v2"
)

const (
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMECSV  = "text/csv"

	sheetName = "Plan"
)

// Document is a rendered roster ready to be stored or downloaded.
type Document struct {
	FileName    string
	ContentType string
	Format      string
	Body        []byte
}

// FileName returns plan_final_<timestamp>.<format>.
func FileName(now time.Time, format string) string {
	return fmt.Sprintf("plan_final_%s.%s", now.Format("20060102_150405"), format)
}

// Write renders records in the given format with the locale's headers.
func Write(records []roster.Record, labels roster.Labels, format string, now time.Time) (*Document, error) {
	var (
		body        []byte
		contentType string
		err         error
	)
	switch format {
	case FormatXLSX:
		body, err = writeXLSX(records, labels)
		contentType = MIMEXLSX
	case FormatCSV:
		body, err = writeCSV(records, labels)
		contentType = MIMECSV
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	return &Document{
		FileName:    FileName(now, format),
		ContentType: contentType,
		Format:      format,
		Body:        body,
	}, nil
}

func writeXLSX(records []roster.Record, labels roster.Labels) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(labels.Headers))
	for i, h := range labels.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		values := rec.Values()
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeCSV(records []roster.Record, labels roster.Labels) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(labels.Headers[:]); err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := w.Write(rec.Values()); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}
