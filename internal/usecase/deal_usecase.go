package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxwarehouse/internal/domain"
)

// DealUseCase handles single-deal operations.
type DealUseCase struct {
	persister *DealPersister
	dealRepo  DealRepository
	cache     Cache
	cacheTTL  time.Duration
	logger    zerolog.Logger
}

// NewDealUseCase creates a new DealUseCase. cache may be nil.
func NewDealUseCase(persister *DealPersister, dealRepo DealRepository, cache Cache, cacheTTL time.Duration, logger zerolog.Logger) *DealUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultDealCacheTTL
	}

	return &DealUseCase{
		persister: persister,
		dealRepo:  dealRepo,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// CreateDeal stores a single deal. Unlike a batch import, a duplicate is
// returned to the caller as domain.ErrDuplicateDeal.
func (uc *DealUseCase) CreateDeal(ctx context.Context, deal domain.Deal) (*domain.PersistedDeal, error) {
	persisted, err := uc.persister.Persist(ctx, deal)
	if err != nil {
		return nil, err
	}

	uc.logger.Info().Str("deal_id", deal.DealID).Int64("id", persisted.ID).Msg("deal created")

	return persisted, nil
}

// GetDeal retrieves a deal by its business key, reading through the cache.
func (uc *DealUseCase) GetDeal(ctx context.Context, dealID string) (*domain.PersistedDeal, error) {
	key := dealCacheKeyPrefix + dealID

	if cached := uc.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	deal, err := uc.dealRepo.GetByDealID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	uc.toCache(ctx, key, deal)

	return deal, nil
}

// ListDealsInput represents input for listing deals.
type ListDealsInput struct {
	Limit  int
	Offset int
}

// ListDeals lists deals with pagination.
func (uc *DealUseCase) ListDeals(ctx context.Context, input ListDealsInput) ([]*domain.PersistedDeal, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.dealRepo.List(ctx, limit, offset)
}

func (uc *DealUseCase) fromCache(ctx context.Context, key string) *domain.PersistedDeal {
	if uc.cache == nil {
		return nil
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == nil {
		return nil
	}

	var deal domain.PersistedDeal
	if err := json.Unmarshal(raw, &deal); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("dropping unreadable cache entry")
		_ = uc.cache.Delete(ctx, key)
		return nil
	}

	return &deal
}

func (uc *DealUseCase) toCache(ctx context.Context, key string, deal *domain.PersistedDeal) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(deal)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, raw, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("failed to cache deal")
	}
}
