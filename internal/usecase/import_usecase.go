package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/iho/fxwarehouse/internal/domain"
)

// Attempter imports one deal and reports the outcome.
type Attempter interface {
	Attempt(ctx context.Context, deal domain.Deal) domain.ImportOutcome
}

// ImportUseCase imports batches of deals with fail-soft semantics: every deal
// is attempted on its own and the batch is never aborted.
type ImportUseCase struct {
	persister Attempter
	idGen     IDGenerator
	recorder  ImportRecorder
	logger    zerolog.Logger
	workers   int
}

// ImportConfig configures an ImportUseCase.
type ImportConfig struct {
	Persister Attempter
	IDGen     IDGenerator
	Recorder  ImportRecorder // optional
	Logger    zerolog.Logger
	Workers   int // values below 2 import sequentially
}

// NewImportUseCase creates a new ImportUseCase.
func NewImportUseCase(cfg ImportConfig) *ImportUseCase {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return &ImportUseCase{
		persister: cfg.Persister,
		idGen:     cfg.IDGen,
		recorder:  cfg.Recorder,
		logger:    cfg.Logger,
		workers:   cfg.Workers,
	}
}

// ImportBatch attempts every deal and returns the summary. Errors lists
// rejected deals in input order. When the same deal ID appears more than once
// the earliest occurrence is attempted first, so it wins.
//
// Cancelling ctx stops new attempts; deals not yet attempted are reported as
// cancelled and deals already committed stay committed.
func (uc *ImportUseCase) ImportBatch(ctx context.Context, deals []domain.Deal) *domain.ImportSummary {
	batchID := uc.idGen.Generate()
	start := time.Now()

	logger := uc.logger.With().Str("batch_id", batchID).Logger()
	logger.Info().Int("deals", len(deals)).Int("workers", uc.workers).Msg("import started")

	outcomes := make([]domain.ImportOutcome, len(deals))
	if uc.workers == 1 {
		uc.importSequential(ctx, deals, outcomes)
	} else {
		uc.importConcurrent(ctx, deals, outcomes)
	}

	summary := domain.Summarize(batchID, outcomes)
	duration := time.Since(start)

	if uc.recorder != nil {
		uc.recorder.ObserveImport(summary, len(deals), duration)
	}

	logger.Info().
		Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).
		Dur("duration", duration).
		Msg("import finished")

	return summary
}

func (uc *ImportUseCase) importSequential(ctx context.Context, deals []domain.Deal, outcomes []domain.ImportOutcome) {
	for i, deal := range deals {
		outcomes[i] = uc.attempt(ctx, deal)
	}
}

// importConcurrent runs deals with different IDs in parallel. Deals sharing
// an ID stay on one goroutine in input order, which gives the same
// lowest-index-wins result as the sequential path.
func (uc *ImportUseCase) importConcurrent(ctx context.Context, deals []domain.Deal, outcomes []domain.ImportOutcome) {
	var g errgroup.Group
	g.SetLimit(uc.workers)

	for _, indexes := range groupByDealID(deals) {
		g.Go(func() error {
			for _, i := range indexes {
				outcomes[i] = uc.attempt(ctx, deals[i])
			}
			return nil
		})
	}

	_ = g.Wait()
}

func (uc *ImportUseCase) attempt(ctx context.Context, deal domain.Deal) domain.ImportOutcome {
	if ctx.Err() != nil {
		return domain.Rejected(deal.DealID, domain.ReasonCancelled)
	}
	return uc.persister.Attempt(ctx, deal)
}

// groupByDealID returns input indexes grouped by deal ID, groups ordered by
// first appearance.
func groupByDealID(deals []domain.Deal) [][]int {
	positions := make(map[string]int, len(deals))
	groups := make([][]int, 0, len(deals))

	for i, deal := range deals {
		pos, ok := positions[deal.DealID]
		if !ok {
			pos = len(groups)
			positions[deal.DealID] = pos
			groups = append(groups, nil)
		}
		groups[pos] = append(groups[pos], i)
	}

	return groups
}
