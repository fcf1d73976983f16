package sentimento

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

// workbook writes rows, starting at A1, to the first sheet of a new workbook.
func workbook(t *testing.T, rows [][]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", cell, val); err != nil {
				t.Fatalf("SetCellValue(%s): %v", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadSpreadsheet(t *testing.T) {
	data := workbook(t, [][]string{
		{"Reviews", "Produto"},
		{"Produto ótimo, adorei!", "Celular"},
		{},
		{"Muito ruim", ""},
	})

	ds, err := ReadSpreadsheet(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadSpreadsheet: %v", err)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"reviews", "produto"}) {
		t.Errorf("Columns = %v", ds.Columns)
	}
	want := []Row{
		{Line: 2, Text: "Produto ótimo, adorei!", Product: "Celular"},
		{Line: 4, Text: "Muito ruim", Product: DefaultProduct},
	}
	if !reflect.DeepEqual(ds.Rows, want) {
		t.Errorf("Rows = %+v\nwant %+v", ds.Rows, want)
	}
}

func TestReadSpreadsheetErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want error
	}{
		{"header only", [][]string{{"Reviews"}}, ErrEmptyDataset},
		{"missing text column", [][]string{{"comentario"}, {"bom"}}, ErrMissingTextColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSpreadsheet(bytes.NewReader(workbook(t, tt.rows)))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ReadSpreadsheet(bytes.NewReader([]byte("Reviews\nbom\n"))); err == nil {
		t.Error("plain text accepted as a workbook")
	}
}

func TestOpenDatasetSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.XLSX")
	if err := os.WriteFile(path, workbook(t, [][]string{{"review"}, {"bom"}}), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := OpenDataset(path)
	if err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}
	if len(ds.Rows) != 1 || ds.Rows[0].Text != "bom" {
		t.Errorf("Rows = %+v", ds.Rows)
	}
}

func TestIsSpreadsheet(t *testing.T) {
	for name, want := range map[string]bool{
		"a.xlsx": true,
		"A.XLSX": true,
		"a.csv":  false,
		"xlsx":   false,
	} {
		if got := IsSpreadsheet(name); got != want {
			t.Errorf("IsSpreadsheet(%q) = %v, want %v", name, got, want)
		}
	}
}
