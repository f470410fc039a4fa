package dealfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `deal_unique_id,from_currency_iso_code,to_currency_iso_code,deal_timestamp,deal_amount
FX001,USD,EUR,2024-03-01T09:00:00Z,1000.50
FX002, GBP ,JPY,2024-03-01 10:30:00,250

FX003,CHF,USD,,
`

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "deals.json", want: FormatJSON},
		{path: "/tmp/Deals.CSV", want: FormatCSV},
		{path: "export.xlsx", want: FormatXLSX},
		{path: "deals", wantErr: true},
		{path: "deals.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_CSV(t *testing.T) {
	reqs, err := Read(strings.NewReader(sampleCSV), FormatCSV, DefaultMapping())
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	assert.Equal(t, "FX001", reqs[0].DealUniqueID)
	assert.Equal(t, "USD", reqs[0].FromCurrency)
	assert.Equal(t, "EUR", reqs[0].ToCurrency)
	require.NotNil(t, reqs[0].DealAmount)
	assert.Equal(t, "1000.5", reqs[0].DealAmount.String())
	require.NotNil(t, reqs[0].DealTimestamp)
	assert.True(t, reqs[0].DealTimestamp.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	assert.Equal(t, "GBP", reqs[1].FromCurrency, "cells are trimmed")
	assert.True(t, reqs[1].DealTimestamp.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))

	assert.Nil(t, reqs[2].DealTimestamp)
	assert.Nil(t, reqs[2].DealAmount)
}

func TestRead_CSVWithBOMAndReorderedColumns(t *testing.T) {
	data := "\ufeffdeal_amount,deal_unique_id,deal_timestamp,to_currency_iso_code,from_currency_iso_code\n" +
		"42,FX010,2024-01-02T03:04:05Z,EUR,USD\n"

	reqs, err := Read(strings.NewReader(data), FormatCSV, DefaultMapping())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "FX010", reqs[0].DealUniqueID)
	assert.Equal(t, "42", reqs[0].DealAmount.String())
}

func TestRead_CSVMissingColumn(t *testing.T) {
	data := "deal_unique_id,from_currency_iso_code,deal_amount\nFX001,USD,10\n"

	_, err := Read(strings.NewReader(data), FormatCSV, DefaultMapping())
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "to_currency_iso_code, deal_timestamp")
}

func TestRead_CSVBadValues(t *testing.T) {
	header := "deal_unique_id,from_currency_iso_code,to_currency_iso_code,deal_timestamp,deal_amount\n"

	_, err := Read(strings.NewReader(header+"FX001,USD,EUR,yesterday,10\n"), FormatCSV, DefaultMapping())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2: deal_timestamp")

	_, err = Read(strings.NewReader(header+"FX001,USD,EUR,2024-03-01T09:00:00Z,ten\n"), FormatCSV, DefaultMapping())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2: deal_amount")
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""), FormatCSV, DefaultMapping())
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestRead_JSON(t *testing.T) {
	data := `[{"deal_unique_id":"FX001","from_currency_iso_code":"USD","to_currency_iso_code":"EUR","deal_timestamp":"2024-03-01T09:00:00Z","deal_amount":"1000.50"}]`

	reqs, err := Read(strings.NewReader(data), FormatJSON, DefaultMapping())
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "FX001", reqs[0].DealUniqueID)
	assert.Equal(t, "1000.5", reqs[0].DealAmount.String())

	_, err = Read(strings.NewReader(`{"deal_unique_id":"FX001"}`), FormatJSON, DefaultMapping())
	assert.Error(t, err)
}

func TestRead_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Deal Ref", "From", "To", "Executed At", "Amount"},
		{"FX001", "USD", "EUR", "2024-03-01 09:00:00", "1000.5"},
		{"FX002", "GBP", "JPY", "2024-03-01T10:00:00Z", "250"},
	}
	for i, row := range rows {
		addr, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, addr, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	mapping := Mapping{
		DealUniqueID:  "Deal Ref",
		FromCurrency:  "From",
		ToCurrency:    "To",
		DealTimestamp: "Executed At",
		DealAmount:    "Amount",
	}

	reqs, err := Read(buf, FormatXLSX, mapping)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "FX002", reqs[1].DealUniqueID)
	assert.Equal(t, "JPY", reqs[1].ToCurrency)
	assert.Equal(t, "250", reqs[1].DealAmount.String())
	assert.True(t, reqs[0].DealTimestamp.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))
}

func TestRead_XLSXNotAWorkbook(t *testing.T) {
	_, err := Read(strings.NewReader("not a zip"), FormatXLSX, DefaultMapping())
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deals.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	reqs, err := ReadFile(path, FormatCSV, DefaultMapping())
	require.NoError(t, err)
	assert.Len(t, reqs, 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"), FormatCSV, DefaultMapping())
	assert.Error(t, err)
}
