package dealfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMapping(t *testing.T) {
	m, err := ParseMapping([]byte("deal_unique_id: Ref\ndeal_amount: \"\"\n"))
	require.NoError(t, err)

	want := DefaultMapping()
	want.DealUniqueID = "Ref"
	assert.Equal(t, want, m)
}

func TestParseMapping_Invalid(t *testing.T) {
	_, err := ParseMapping([]byte("deal_unique_id: [unclosed"))
	assert.Error(t, err)
}

func TestLoadMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "columns.yaml")
	require.NoError(t, os.WriteFile(path, []byte("from_currency_iso_code: Sell\nto_currency_iso_code: Buy\n"), 0o600))

	m, err := LoadMapping(path)
	require.NoError(t, err)
	assert.Equal(t, "Sell", m.FromCurrency)
	assert.Equal(t, "Buy", m.ToCurrency)
	assert.Equal(t, "deal_timestamp", m.DealTimestamp)

	_, err = LoadMapping(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
