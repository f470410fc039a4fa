package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxwarehouse/internal/domain"
)

// DealPersister stores one deal per unit of work and turns every failure
// into a rejection reason.
type DealPersister struct {
	txManager     TransactionManager
	dealRepo      DealRepository
	logger        zerolog.Logger
	recordTimeout time.Duration
}

// NewDealPersister creates a new DealPersister.
func NewDealPersister(txManager TransactionManager, dealRepo DealRepository, logger zerolog.Logger) *DealPersister {
	return &DealPersister{
		txManager:     txManager,
		dealRepo:      dealRepo,
		logger:        logger,
		recordTimeout: DefaultRecordTimeout,
	}
}

// WithRecordTimeout overrides the per-deal timeout. Non-positive values are ignored.
func (p *DealPersister) WithRecordTimeout(d time.Duration) *DealPersister {
	if d > 0 {
		p.recordTimeout = d
	}
	return p
}

// Attempt tries to import a single deal and never fails. The deal is either
// committed in its own transaction or rejected with a reason.
func (p *DealPersister) Attempt(ctx context.Context, deal domain.Deal) domain.ImportOutcome {
	_, err := p.Persist(ctx, deal)

	switch {
	case err == nil:
		p.logger.Debug().Str("deal_id", deal.DealID).Msg("deal imported")
		return domain.Imported(deal.DealID)
	case errors.Is(err, domain.ErrDuplicateDeal):
		p.logger.Warn().Str("deal_id", deal.DealID).Msg("skipping duplicate deal")
		return domain.Rejected(deal.DealID, domain.ReasonDuplicate)
	case errors.Is(err, domain.ErrDealConstraintViolation):
		p.logger.Error().Err(err).Str("deal_id", deal.DealID).Msg("storage rejected deal")
		return domain.Rejected(deal.DealID, domain.ReasonIntegrityViolation)
	default:
		p.logger.Error().Err(err).Str("deal_id", deal.DealID).Msg("unexpected error saving deal")
		return domain.Rejected(deal.DealID, domain.ReasonProcessingError)
	}
}

// Persist stores a single deal and returns it, or a typed error:
// domain.ErrDuplicateDeal, domain.ErrDealConstraintViolation or a wrapped
// storage error.
func (p *DealPersister) Persist(ctx context.Context, deal domain.Deal) (*domain.PersistedDeal, error) {
	ctx, cancel := context.WithTimeout(ctx, p.recordTimeout)
	defer cancel()

	tx, err := p.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op.
	defer tx.Rollback(ctx)

	exists, err := p.dealRepo.ExistsByDealID(ctx, tx, deal.DealID)
	if err != nil {
		return nil, fmt.Errorf("check deal existence: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateDeal
	}

	// The unique index is the real guard: a concurrent writer may insert the
	// same id between the check above and this insert.
	persisted, err := p.dealRepo.Create(ctx, tx, deal)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit deal: %w", err)
	}

	return persisted, nil
}
