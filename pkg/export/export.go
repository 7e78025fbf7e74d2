// Package export flattens the snapshot into tabular form and writes the
// spreadsheet the user downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/karnwit/internlog/pkg/entry"
)

const (
	// Filename is the fixed export file name.
	Filename = "intern_logs.xlsx"

	// SheetName is the single worksheet holding the log rows.
	SheetName = "Logs"
)

var header = []string{"Date", "Hours", "Description", "Link"}

// Row is one flat export record. Hours stays a pointer so unrecorded hours
// export as an empty cell rather than a fabricated default.
type Row struct {
	Date        string
	Hours       *float64
	Description string
	Link        string
}

// Rows flattens the snapshot in its current order.
func Rows(snapshot []*entry.Entry) []Row {
	rows := make([]Row, 0, len(snapshot))
	for _, e := range snapshot {
		if e == nil {
			continue
		}
		rows = append(rows, Row{
			Date:        e.Date,
			Hours:       e.Hours,
			Description: e.Description,
			Link:        e.WorkLink,
		})
	}
	return rows
}

// WriteXLSX writes the snapshot as a spreadsheet at path.
func WriteXLSX(path string, snapshot []*entry.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export: rename sheet: %w", err)
	}

	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &head); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}

	for i, row := range Rows(snapshot) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
		values := []interface{}{row.Date, nil, row.Description, row.Link}
		if row.Hours != nil {
			values[1] = *row.Hours
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export: save %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes the same rows as CSV for piping into other tools.
func WriteCSV(w io.Writer, snapshot []*entry.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, row := range Rows(snapshot) {
		hours := ""
		if row.Hours != nil {
			hours = strconv.FormatFloat(*row.Hours, 'f', -1, 64)
		}
		if err := cw.Write([]string{row.Date, hours, row.Description, row.Link}); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
