package sentimento

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DefaultProduct is assigned to every row of a dataset without a product column.
const DefaultProduct = "Produto Genérico"

var (
	// ErrMissingTextColumn is returned when no header names a review column.
	ErrMissingTextColumn = errors.New("o CSV deve conter ao menos a coluna 'Reviews'")
	// ErrEmptyDataset is returned when a dataset has a header but no rows.
	ErrEmptyDataset = errors.New("dataset is empty")
	// ErrDecode is returned when the input can be decoded neither as UTF-8 nor as Latin-1.
	ErrDecode = errors.New("dataset encoding could not be decoded")
)

// A DatasetOpt represents a setting that changes how a dataset is read.
//
// For example, it might accept a differently named review column:
//
//	ds, err := sentimento.ReadDataset(r, sentimento.WithTextColumns("comentario"))
type DatasetOpt func(opts *DatasetOpts)

// DatasetOpts controls dataset ingestion.
type DatasetOpts struct {
	Separator      rune     // Field separator
	TextColumns    []string // Accepted names for the review column, normalized
	ProductColumn  string   // Name of the optional grouping column, normalized
	DefaultProduct string   // Product used when ProductColumn is absent
}

// WithSeparator sets the field separator.
func WithSeparator(sep rune) DatasetOpt {
	return func(opts *DatasetOpts) {
		opts.Separator = sep
	}
}

// WithTextColumns replaces the accepted names of the review column.
func WithTextColumns(names ...string) DatasetOpt {
	return func(opts *DatasetOpts) {
		opts.TextColumns = opts.TextColumns[:0]
		for _, n := range names {
			opts.TextColumns = append(opts.TextColumns, normalizeColumn(n))
		}
	}
}

// WithProductColumn sets the name of the grouping column.
func WithProductColumn(name string) DatasetOpt {
	return func(opts *DatasetOpts) {
		opts.ProductColumn = normalizeColumn(name)
	}
}

// WithDefaultProduct sets the placeholder product name.
func WithDefaultProduct(name string) DatasetOpt {
	return func(opts *DatasetOpts) {
		opts.DefaultProduct = name
	}
}

func defaultDatasetOpts() DatasetOpts {
	return DatasetOpts{
		Separator:      ';',
		TextColumns:    []string{"reviews", "review"},
		ProductColumn:  "produto",
		DefaultProduct: DefaultProduct,
	}
}

// A Row is one review of a dataset.
type Row struct {
	Line    int    // 1-based line in the source file
	Text    string // Review text; empty when Missing
	Product string
	Missing bool // The review cell was absent or empty
}

// A Dataset is a parsed review table.
type Dataset struct {
	Columns    []string // normalized header names
	Rows       []Row
	HasProduct bool // the source carried a product column
	Latin1     bool // the source was decoded as Latin-1
}

// OpenDataset reads the dataset stored at path. Files ending in .xlsx are
// read as spreadsheets, anything else as delimited text.
func OpenDataset(path string, opts ...DatasetOpt) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	if IsSpreadsheet(path) {
		return ReadSpreadsheet(file, opts...)
	}
	return ReadDataset(file, opts...)
}

// ReadDataset parses a delimited review table. The input is read as UTF-8 and
// falls back to Latin-1 when it is not valid UTF-8.
func ReadDataset(r io.Reader, opts ...DatasetOpt) (*Dataset, error) {
	base := datasetOpts(opts)

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	content, latin1, err := decodeDataset(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = base.Separator
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// *csv.ParseError carries the source line and column
			return nil, fmt.Errorf("read dataset: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}

	ds, err := buildDataset(records, base)
	if err != nil {
		return nil, err
	}
	ds.Latin1 = latin1
	return ds, nil
}

func datasetOpts(opts []DatasetOpt) DatasetOpts {
	base := defaultDatasetOpts()
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	return base
}

// record is one source line split into fields.
type record struct {
	line   int
	fields []string
}

// buildDataset maps the header record to columns and every following record
// to a Row.
func buildDataset(records []record, base DatasetOpts) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	ds := &Dataset{}
	textIdx, productIdx := -1, -1
	for i, name := range records[0].fields {
		col := normalizeColumn(name)
		ds.Columns = append(ds.Columns, col)
		if textIdx < 0 && containsString(base.TextColumns, col) {
			textIdx = i
		}
		if productIdx < 0 && col == base.ProductColumn {
			productIdx = i
		}
	}
	if textIdx < 0 {
		return nil, fmt.Errorf("%w (colunas: %s)", ErrMissingTextColumn, strings.Join(ds.Columns, ", "))
	}
	ds.HasProduct = productIdx >= 0

	for _, rec := range records[1:] {
		row := Row{Line: rec.line, Product: base.DefaultProduct}
		if textIdx < len(rec.fields) && rec.fields[textIdx] != "" {
			row.Text = rec.fields[textIdx]
		} else {
			row.Missing = true
		}
		if ds.HasProduct && productIdx < len(rec.fields) && strings.TrimSpace(rec.fields[productIdx]) != "" {
			row.Product = rec.fields[productIdx]
		}
		ds.Rows = append(ds.Rows, row)
	}

	if len(ds.Rows) == 0 {
		return nil, ErrEmptyDataset
	}
	return ds, nil
}

// decodeDataset returns UTF-8 content, reporting whether Latin-1 was used.
func decodeDataset(raw []byte) ([]byte, bool, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return raw, false, nil
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return decoded, true, nil
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Products returns the distinct products in first-seen order.
func (ds *Dataset) Products() []string {
	seen := make(map[string]bool)
	var products []string
	for _, row := range ds.Rows {
		if seen[row.Product] {
			continue
		}
		seen[row.Product] = true
		products = append(products, row.Product)
	}
	return products
}

// ByProduct returns the rows belonging to product.
func (ds *Dataset) ByProduct(product string) []Row {
	var rows []Row
	for _, row := range ds.Rows {
		if row.Product == product {
			rows = append(rows, row)
		}
	}
	return rows
}
