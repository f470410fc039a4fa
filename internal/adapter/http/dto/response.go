package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxwarehouse/internal/domain"
)

// DealResponse represents a stored deal in API responses.
type DealResponse struct {
	ID            int64           `json:"id"`
	DealUniqueID  string          `json:"deal_unique_id"`
	FromCurrency  string          `json:"from_currency_iso_code"`
	ToCurrency    string          `json:"to_currency_iso_code"`
	DealTimestamp time.Time       `json:"deal_timestamp"`
	DealAmount    decimal.Decimal `json:"deal_amount"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DealFromDomain converts a persisted deal to a response.
func DealFromDomain(d *domain.PersistedDeal) *DealResponse {
	return &DealResponse{
		ID:            d.ID,
		DealUniqueID:  d.DealID,
		FromCurrency:  d.FromCurrency,
		ToCurrency:    d.ToCurrency,
		DealTimestamp: d.DealTimestamp,
		DealAmount:    d.Amount,
		CreatedAt:     d.CreatedAt,
	}
}

// DealsFromDomain converts persisted deals to responses.
func DealsFromDomain(deals []*domain.PersistedDeal) []*DealResponse {
	result := make([]*DealResponse, len(deals))
	for i, d := range deals {
		result[i] = DealFromDomain(d)
	}
	return result
}

// DealListResponse is a page of deals.
type DealListResponse struct {
	Deals  []*DealResponse `json:"deals"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// ImportErrorResponse explains why one deal was not imported. Index and
// Field are only set for structural violations.
type ImportErrorResponse struct {
	DealUniqueID string `json:"deal_unique_id"`
	Reason       string `json:"reason"`
	Index        *int   `json:"index,omitempty"`
	Field        string `json:"field,omitempty"`
}

// ImportSummaryResponse is the result of a batch import.
type ImportSummaryResponse struct {
	BatchID  string                `json:"batch_id,omitempty"`
	Imported int                   `json:"imported"`
	Skipped  int                   `json:"skipped"`
	Errors   []ImportErrorResponse `json:"errors"`
}

// SummaryFromDomain converts an import summary to a response.
func SummaryFromDomain(s *domain.ImportSummary) *ImportSummaryResponse {
	resp := &ImportSummaryResponse{
		BatchID:  s.BatchID,
		Imported: s.Imported,
		Skipped:  s.Skipped,
		Errors:   make([]ImportErrorResponse, len(s.Errors)),
	}
	for i, e := range s.Errors {
		resp.Errors[i] = ImportErrorResponse{DealUniqueID: e.DealID, Reason: string(e.Reason)}
	}
	return resp
}

// ValidationSummary builds the response for a batch rejected by structural
// validation. Nothing is imported and Skipped counts the violations listed.
func ValidationSummary(errs []FieldError) *ImportSummaryResponse {
	resp := &ImportSummaryResponse{
		Imported: 0,
		Skipped:  len(errs),
		Errors:   make([]ImportErrorResponse, len(errs)),
	}
	for i, e := range errs {
		index := e.Index
		resp.Errors[i] = ImportErrorResponse{
			DealUniqueID: e.DealID,
			Reason:       e.Message,
			Index:        &index,
			Field:        e.Field,
		}
	}
	return resp
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
