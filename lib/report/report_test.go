package report

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSheetName(t *testing.T) {
	date := time.Date(2024, time.March, 7, 13, 45, 0, 0, time.UTC)
	require.Equal(t, "Acme_2024-03-07", SheetName("Acme", date))
}

func TestWorkbookOneSheetPerEnterprise(t *testing.T) {
	w := NewWorkbook()
	err := w.AppendSheet("Acme_2024-03-07", CommentRows([]string{"first", "second"}))
	require.NoError(t, err)
	// a failed enterprise still gets an empty sheet
	err = w.AppendSheet("Globex_2024-03-07", CommentRows(nil))
	require.NoError(t, err)

	require.Equal(t, []string{"Acme_2024-03-07", "Globex_2024-03-07"}, w.SheetNames())

	rows, err := w.Rows("Acme_2024-03-07")
	require.NoError(t, err)
	require.Equal(t, [][]string{{"first"}, {"second"}}, rows)

	rows, err = w.Rows("Globex_2024-03-07")
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestWorkbookWriteFile(t *testing.T) {
	w := NewWorkbook()
	require.NoError(t, w.AppendSheet("Acme_2024-03-07", CommentRows([]string{"only"})))

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, w.WriteFile(path))
}
