package dealfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Mapping names the column header that carries each deal field.
type Mapping struct {
	DealUniqueID  string `yaml:"deal_unique_id"`
	FromCurrency  string `yaml:"from_currency_iso_code"`
	ToCurrency    string `yaml:"to_currency_iso_code"`
	DealTimestamp string `yaml:"deal_timestamp"`
	DealAmount    string `yaml:"deal_amount"`
}

// DefaultMapping uses the JSON field names as column headers.
func DefaultMapping() Mapping {
	return Mapping{
		DealUniqueID:  "deal_unique_id",
		FromCurrency:  "from_currency_iso_code",
		ToCurrency:    "to_currency_iso_code",
		DealTimestamp: "deal_timestamp",
		DealAmount:    "deal_amount",
	}
}

// ParseMapping reads a YAML mapping. Fields left out keep their default header.
func ParseMapping(data []byte) (Mapping, error) {
	m := DefaultMapping()
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Mapping{}, fmt.Errorf("parse mapping: %w", err)
	}
	m.fillDefaults()

	return m, nil
}

// LoadMapping reads a YAML mapping file.
func LoadMapping(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mapping{}, fmt.Errorf("read mapping file: %w", err)
	}

	return ParseMapping(data)
}

// yaml.v3 overwrites a field with an explicit empty value.
func (m *Mapping) fillDefaults() {
	def := DefaultMapping()
	if m.DealUniqueID == "" {
		m.DealUniqueID = def.DealUniqueID
	}
	if m.FromCurrency == "" {
		m.FromCurrency = def.FromCurrency
	}
	if m.ToCurrency == "" {
		m.ToCurrency = def.ToCurrency
	}
	if m.DealTimestamp == "" {
		m.DealTimestamp = def.DealTimestamp
	}
	if m.DealAmount == "" {
		m.DealAmount = def.DealAmount
	}
}
