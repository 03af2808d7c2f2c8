// Package report builds the multi-sheet xlsx artifact that closes a
// scrape run.
package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// SheetName is deterministic per enterprise and run date, the run date
// is fixed once at run start so every sheet of a run shares it.
func SheetName(enterprise string, date time.Time) string {
	return fmt.Sprintf("%s_%s", enterprise, date.Format(time.DateOnly))
}

type Workbook struct {
	file   *excelize.File
	sheets int
}

func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// AppendSheet adds a named sheet holding rows, one cell per value. An
// empty rows slice is valid, a failed enterprise still gets its sheet.
func (w *Workbook) AppendSheet(name string, rows [][]string) error {
	if w.sheets == 0 {
		// reuse the default sheet excelize starts with
		if err := w.file.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("append sheet %q: %w", name, err)
		}
	} else {
		if _, err := w.file.NewSheet(name); err != nil {
			return fmt.Errorf("append sheet %q: %w", name, err)
		}
	}
	w.sheets++

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell := fmt.Sprintf("A%d", i+1)
		if err := w.file.SetSheetRow(name, cell, &cells); err != nil {
			return fmt.Errorf("write row %d of sheet %q: %w", i+1, name, err)
		}
	}
	return nil
}

// SheetNames returns the sheets in append order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Rows reads a sheet back, mostly for inspection and tests.
func (w *Workbook) Rows(name string) ([][]string, error) {
	return w.file.GetRows(name)
}

func (w *Workbook) WriteFile(path string) error {
	if err := w.file.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook %q: %w", path, err)
	}
	return w.file.Close()
}

// CommentRows shapes a flat comment sequence into single-cell rows in
// the same order.
func CommentRows(comments []string) [][]string {
	rows := make([][]string, len(comments))
	for i, c := range comments {
		rows[i] = []string{c}
	}
	return rows
}
