package tabular_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/moviedb/internal/domain"
	"github.com/msomdec/moviedb/internal/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadDelimited_Comma(t *testing.T) {
	in := "\xef\xbb\xbfTitle, Year ,Genre\n\"Heat\",1995,\"Crime, Drama\"\n\nAlien,1979\n"

	table, err := tabular.ReadDelimited(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"Title", "Year", "Genre"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Heat", "1995", "Crime, Drama"}, table.Rows[0])
	assert.Equal(t, []string{"Alien", "1979", ""}, table.Rows[1], "short rows are padded")
	assert.Equal(t, "Crime, Drama", table.Value(table.Rows[0], "Genre"))
	assert.Equal(t, "", table.Value(table.Rows[0], "Director"))
}

func TestReadDelimited_SniffsSemicolonAndTab(t *testing.T) {
	semi, err := tabular.ReadDelimited(strings.NewReader("Title;Rating\nHeat;8,3\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "Rating"}, semi.Columns)
	assert.Equal(t, "8,3", semi.Rows[0][1])

	tab, err := tabular.ReadDelimited(strings.NewReader("Title\tYear\nHeat\t1995\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "Year"}, tab.Columns)
}

func TestReadDelimited_Empty(t *testing.T) {
	_, err := tabular.ReadDelimited(strings.NewReader(""))
	assert.Error(t, err)
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	_, err := tabular.Open(filepath.Join(t.TempDir(), "movies.xls"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := tabular.Open(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Movie Name", "Year"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"Heat", 1995}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"Alien", 1979}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := tabular.Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Movie Name", "Year"}, table.Columns)
	assert.Equal(t, [][]string{{"Heat", "1995"}, {"Alien", "1979"}}, table.Rows)
}

func TestOpen_WorkbookDateCellsAreISO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watched.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Title", "Watched", "Year"}))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Heat"))
	require.NoError(t, f.SetCellValue(sheet, "B2", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sheet, "C2", 1995))
	require.NoError(t, f.SetCellValue(sheet, "A3", "Alien"))
	require.NoError(t, f.SetCellValue(sheet, "B3", time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue(sheet, "C3", 1979))

	custom := "dd/mm/yyyy"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &custom})
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(sheet, "A4", "Amelie"))
	require.NoError(t, f.SetCellValue(sheet, "B4", 44960))
	require.NoError(t, f.SetCellStyle(sheet, "B4", "B4", style))

	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := tabular.Open(path)
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"Heat", "2023-01-02", "1995"}, table.Rows[0])
	assert.Equal(t, []string{"Alien", "2023-12-25", "1979"}, table.Rows[1])
	assert.Equal(t, "2023-02-03", table.Value(table.Rows[2], "Watched"))
}

func TestReadDelimited_ExtraCellsDropped(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	table, err := tabular.ReadDelimited(strings.NewReader("Title,Year\nHeat,1995,extra\nAlien,1979,,\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Heat", "1995"}, {"Alien", "1979"}}, table.Rows)

	logged := buf.String()
	assert.Contains(t, logged, "dropping cells beyond the header")
	assert.Contains(t, logged, "row=1")
	assert.NotContains(t, logged, "row=2")
}
