package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fxwarehouse/internal/domain"
)

func TestSummaryFromDomain(t *testing.T) {
	summary := domain.Summarize("01HBATCH", []domain.ImportOutcome{
		domain.Imported("FX001"),
		domain.Rejected("FX001", domain.ReasonDuplicate),
	})

	raw, err := json.Marshal(SummaryFromDomain(summary))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"batch_id": "01HBATCH",
		"imported": 1,
		"skipped": 1,
		"errors": [{"deal_unique_id": "FX001", "reason": "duplicate"}]
	}`, string(raw))
}

func TestSummaryFromDomain_EmptyErrorsIsArray(t *testing.T) {
	raw, err := json.Marshal(SummaryFromDomain(domain.Summarize("b", nil)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"batch_id":"b","imported":0,"skipped":0,"errors":[]}`, string(raw))
}

func TestValidationSummary(t *testing.T) {
	resp := ValidationSummary([]FieldError{
		{Index: 0, DealID: "FX001", Field: "deal_amount", Message: "is required"},
		{Index: 2, DealID: "", Field: "deal_unique_id", Message: "is required"},
	})

	assert.Equal(t, 0, resp.Imported)
	assert.Equal(t, 2, resp.Skipped)
	require.Len(t, resp.Errors, 2)
	require.NotNil(t, resp.Errors[0].Index)
	assert.Equal(t, 0, *resp.Errors[0].Index)
	assert.Equal(t, 2, *resp.Errors[1].Index)
	assert.Equal(t, "deal_unique_id", resp.Errors[1].Field)
	assert.Empty(t, resp.BatchID)
}
