package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fxwarehouse/internal/adapter/http/dto"
	"github.com/iho/fxwarehouse/internal/domain"
	"github.com/iho/fxwarehouse/internal/usecase"
)

// BatchIDHeader carries the ID of an import batch.
const BatchIDHeader = "X-Import-Batch-ID"

// DealImporter imports batches of deals.
type DealImporter interface {
	ImportBatch(ctx context.Context, deals []domain.Deal) *domain.ImportSummary
}

// DealService handles single-deal operations.
type DealService interface {
	CreateDeal(ctx context.Context, deal domain.Deal) (*domain.PersistedDeal, error)
	GetDeal(ctx context.Context, dealID string) (*domain.PersistedDeal, error)
	ListDeals(ctx context.Context, input usecase.ListDealsInput) ([]*domain.PersistedDeal, error)
}

// DealHandler handles deal-related HTTP requests.
type DealHandler struct {
	importer DealImporter
	deals    DealService
}

// NewDealHandler creates a new DealHandler.
func NewDealHandler(importer DealImporter, deals DealService) *DealHandler {
	return &DealHandler{importer: importer, deals: deals}
}

// Import imports a JSON array of deals. Structural violations reject the
// whole request; otherwise every deal is attempted on its own and the
// summary is returned with 200.
func (h *DealHandler) Import(w http.ResponseWriter, r *http.Request) {
	var reqs []dto.DealRequest
	if err := decodeJSON(r, &reqs); err != nil {
		writeDecodeError(w, err)
		return
	}

	if len(reqs) == 0 {
		writeError(w, http.StatusBadRequest, "empty batch", "at least one deal is required")
		return
	}

	if errs := dto.ValidateBatch(reqs); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, dto.ValidationSummary(errs))
		return
	}

	summary := h.importer.ImportBatch(r.Context(), dto.DealsToDomain(reqs))

	w.Header().Set(BatchIDHeader, summary.BatchID)
	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(summary))
}

// Create stores a single deal.
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.DealRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "invalid deal", joinFieldErrors(errs))
		return
	}

	deal, err := h.deals.CreateDeal(r.Context(), req.ToDomain())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create deal", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DealFromDomain(deal))
}

// Get retrieves a deal by its unique ID.
func (h *DealHandler) Get(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "dealID")
	if dealID == "" {
		writeError(w, http.StatusBadRequest, "missing deal ID", "")
		return
	}

	deal, err := h.deals.GetDeal(r.Context(), dealID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get deal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DealFromDomain(deal))
}

// List lists stored deals.
func (h *DealHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := domain.ValidatePagination(
		parseIntQuery(r, "limit", 0),
		parseIntQuery(r, "offset", 0),
	)

	deals, err := h.deals.ListDeals(r.Context(), usecase.ListDealsInput{Limit: limit, Offset: offset})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list deals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DealListResponse{
		Deals:  dto.DealsFromDomain(deals),
		Limit:  limit,
		Offset: offset,
	})
}

func joinFieldErrors(errs []dto.FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Field + " " + e.Message
	}
	return strings.Join(parts, "; ")
}
