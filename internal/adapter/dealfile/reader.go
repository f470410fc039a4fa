// Package dealfile reads deal batches from JSON, CSV and XLSX files.
package dealfile

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/iho/fxwarehouse/internal/adapter/http/dto"
)

// Format is a deal file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var (
	ErrUnknownFormat = errors.New("unknown deal file format")
	ErrMissingColumn = errors.New("missing column")
	ErrNoHeader      = errors.New("file has no header row")
)

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}

	return ParseFormat(ext)
}

// ReadFile opens path and reads its deals.
func ReadFile(path string, format Format, mapping Mapping) ([]dto.DealRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deal file: %w", err)
	}
	defer f.Close()

	return Read(f, format, mapping)
}

// Read reads deals from r. The mapping is ignored for JSON input.
// Values are not validated here beyond parsing; the server does that.
func Read(r io.Reader, format Format, mapping Mapping) ([]dto.DealRequest, error) {
	switch format {
	case FormatJSON:
		return readJSON(r)
	case FormatCSV:
		return readCSV(r, mapping)
	case FormatXLSX:
		return readXLSX(r, mapping)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func readJSON(r io.Reader) ([]dto.DealRequest, error) {
	var reqs []dto.DealRequest
	if err := json.NewDecoder(r).Decode(&reqs); err != nil {
		return nil, fmt.Errorf("decode json deals: %w", err)
	}

	return reqs, nil
}

func readCSV(r io.Reader, mapping Mapping) ([]dto.DealRequest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rowsToRequests(rows, mapping)
}

func readXLSX(r io.Reader, mapping Mapping) ([]dto.DealRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoHeader
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	return rowsToRequests(rows, mapping)
}

type columns struct {
	dealID, from, to, timestamp, amount int
}

func locateColumns(header []string, m Mapping) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	var missing []string
	find := func(name string) int {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	cols := columns{
		dealID:    find(m.DealUniqueID),
		from:      find(m.FromCurrency),
		to:        find(m.ToCurrency),
		timestamp: find(m.DealTimestamp),
		amount:    find(m.DealAmount),
	}
	if len(missing) > 0 {
		return columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return cols, nil
}

// rowsToRequests maps tabular rows onto requests. The first row is the header.
// Blank rows are skipped. Empty timestamp or amount cells become nil so the
// server reports them as missing.
func rowsToRequests(rows [][]string, m Mapping) ([]dto.DealRequest, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	cols, err := locateColumns(rows[0], m)
	if err != nil {
		return nil, err
	}

	reqs := make([]dto.DealRequest, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}
		line := i + 2

		req := dto.DealRequest{
			DealUniqueID: cell(row, cols.dealID),
			FromCurrency: cell(row, cols.from),
			ToCurrency:   cell(row, cols.to),
		}

		if s := cell(row, cols.timestamp); s != "" {
			ts, err := dto.ParseTimestamp(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", line, m.DealTimestamp, err)
			}
			req.DealTimestamp = &ts
		}

		if s := cell(row, cols.amount); s != "" {
			amount, err := decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: invalid amount %q", line, m.DealAmount, s)
			}
			req.DealAmount = &amount
		}

		reqs = append(reqs, req)
	}

	return reqs, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
