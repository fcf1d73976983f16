package sentimento

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestReadDataset(t *testing.T) {
	csv := "Reviews;Produto\n" +
		"Produto ótimo, adorei!;Celular\n" +
		";Celular\n" +
		"\"Bom; mas caro\";Fone\n" +
		"Chegou;\n"

	ds, err := ReadDataset(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if !reflect.DeepEqual(ds.Columns, []string{"reviews", "produto"}) {
		t.Errorf("Columns = %v", ds.Columns)
	}
	if !ds.HasProduct || ds.Latin1 {
		t.Errorf("HasProduct = %v, Latin1 = %v", ds.HasProduct, ds.Latin1)
	}

	want := []Row{
		{Line: 2, Text: "Produto ótimo, adorei!", Product: "Celular"},
		{Line: 3, Product: "Celular", Missing: true},
		{Line: 4, Text: "Bom; mas caro", Product: "Fone"},
		{Line: 5, Text: "Chegou", Product: DefaultProduct},
	}
	if !reflect.DeepEqual(ds.Rows, want) {
		t.Errorf("Rows = %+v\nwant %+v", ds.Rows, want)
	}
	if got := ds.Products(); !reflect.DeepEqual(got, []string{"Celular", "Fone", DefaultProduct}) {
		t.Errorf("Products = %v", got)
	}
	if got := ds.ByProduct("Celular"); len(got) != 2 {
		t.Errorf("ByProduct(Celular) returned %d rows", len(got))
	}
}

func TestReadDatasetDefaultProduct(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader("review\nbom\nruim\n"))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.HasProduct {
		t.Error("HasProduct = true without a produto column")
	}
	for _, row := range ds.Rows {
		if row.Product != DefaultProduct {
			t.Errorf("row %d product = %q, want %q", row.Line, row.Product, DefaultProduct)
		}
	}
}

func TestReadDatasetLatin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Reviews;produto\nPéssimo, não gostei;Câmera\n")
	if err != nil {
		t.Fatal(err)
	}

	ds, err := ReadDataset(strings.NewReader(encoded))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if !ds.Latin1 {
		t.Error("Latin1 = false for ISO-8859-1 input")
	}
	if ds.Rows[0].Text != "Péssimo, não gostei" || ds.Rows[0].Product != "Câmera" {
		t.Errorf("decoded row = %+v", ds.Rows[0])
	}
}

func TestReadDatasetBOM(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader("\xef\xbb\xbfReviews\nbom\n"))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.Columns[0] != "reviews" {
		t.Errorf("Columns[0] = %q", ds.Columns[0])
	}
}

func TestReadDatasetErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want error
	}{
		{"empty input", "", ErrEmptyDataset},
		{"header only", "Reviews;produto\n", ErrEmptyDataset},
		{"missing text column", "comentario;produto\nbom;TV\n", ErrMissingTextColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDataset(strings.NewReader(tt.csv))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadDatasetOptions(t *testing.T) {
	ds, err := ReadDataset(strings.NewReader("texto,item\nbom,TV\n"),
		WithSeparator(','),
		WithTextColumns("Texto"),
		WithProductColumn("item"))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.Rows[0].Text != "bom" || ds.Rows[0].Product != "TV" {
		t.Errorf("row = %+v", ds.Rows[0])
	}

	ds, err = ReadDataset(strings.NewReader("review\nbom\n"), WithDefaultProduct("Sem nome"))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	if ds.Rows[0].Product != "Sem nome" {
		t.Errorf("product = %q", ds.Rows[0].Product)
	}
}

func TestOpenDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	if err := os.WriteFile(path, []byte("Reviews\nbom\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := OpenDataset(path)
	if err != nil {
		t.Fatalf("OpenDataset: %v", err)
	}
	if len(ds.Rows) != 1 {
		t.Errorf("rows = %d", len(ds.Rows))
	}

	if _, err := OpenDataset(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReadDatasetMultilineField(t *testing.T) {
	input := "Reviews;produto\n\"bom,\nmuito bom\";TV\nruim;Fone\n"
	ds, err := ReadDataset(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}
	want := []Row{
		{Line: 2, Text: "bom,\nmuito bom", Product: "TV"},
		{Line: 4, Text: "ruim", Product: "Fone"},
	}
	if !reflect.DeepEqual(ds.Rows, want) {
		t.Errorf("Rows = %+v\nwant %+v", ds.Rows, want)
	}
}
