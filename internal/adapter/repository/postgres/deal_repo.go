package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/fxwarehouse/internal/domain"
	"github.com/iho/fxwarehouse/internal/infrastructure/postgres/generated"
	"github.com/iho/fxwarehouse/internal/usecase"
)

// DealRepository implements usecase.DealRepository.
type DealRepository struct {
	queries *generated.Queries
}

// NewDealRepository creates a new DealRepository.
func NewDealRepository(pool *pgxpool.Pool) *DealRepository {
	return newDealRepository(pool)
}

func newDealRepository(db generated.DBTX) *DealRepository {
	return &DealRepository{queries: generated.New(db)}
}

// ExistsByDealID reports whether a deal with the business key is committed.
func (r *DealRepository) ExistsByDealID(ctx context.Context, tx usecase.Transaction, dealID string) (bool, error) {
	queries, err := r.withTx(tx)
	if err != nil {
		return false, err
	}

	exists, err := queries.DealExists(ctx, dealID)
	if err != nil {
		return false, fmt.Errorf("check deal %s: %w", dealID, err)
	}

	return exists, nil
}

// Create inserts a deal inside tx.
func (r *DealRepository) Create(ctx context.Context, tx usecase.Transaction, deal domain.Deal) (*domain.PersistedDeal, error) {
	queries, err := r.withTx(tx)
	if err != nil {
		return nil, err
	}

	row, err := queries.CreateDeal(ctx, generated.CreateDealParams{
		DealUniqueID:        deal.DealID,
		FromCurrencyIsoCode: deal.FromCurrency,
		ToCurrencyIsoCode:   deal.ToCurrency,
		DealTimestamp:       timeToPgTimestamptz(deal.DealTimestamp),
		DealAmount:          decimalToNumeric(deal.Amount),
	})
	if err != nil {
		return nil, fmt.Errorf("insert deal %s: %w", deal.DealID, classifyError(err))
	}

	return rowToDeal(row), nil
}

// GetByDealID retrieves a committed deal by its business key.
func (r *DealRepository) GetByDealID(ctx context.Context, dealID string) (*domain.PersistedDeal, error) {
	row, err := r.queries.GetDealByUniqueID(ctx, dealID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDealNotFound
		}

		return nil, err
	}

	return rowToDeal(row), nil
}

// List returns deals ordered by storage ID.
func (r *DealRepository) List(ctx context.Context, limit, offset int) ([]*domain.PersistedDeal, error) {
	rows, err := r.queries.ListDeals(ctx, generated.ListDealsParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	deals := make([]*domain.PersistedDeal, 0, len(rows))
	for _, row := range rows {
		deals = append(deals, rowToDeal(row))
	}

	return deals, nil
}

func (r *DealRepository) withTx(tx usecase.Transaction) (*generated.Queries, error) {
	pgTx, ok := tx.(*Tx)
	if !ok {
		return nil, fmt.Errorf("unsupported transaction type %T", tx)
	}

	return r.queries.WithTx(pgTx.PgxTx()), nil
}

func rowToDeal(row generated.FxDeal) *domain.PersistedDeal {
	return &domain.PersistedDeal{
		Deal: domain.Deal{
			DealID:        row.DealUniqueID,
			FromCurrency:  row.FromCurrencyIsoCode,
			ToCurrency:    row.ToCurrencyIsoCode,
			DealTimestamp: row.DealTimestamp.Time.UTC(),
			Amount:        numericToDecimal(row.DealAmount),
		},
		ID:        row.ID,
		CreatedAt: row.CreatedAt.Time.UTC(),
	}
}

func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid || n.Int == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(n.Int, n.Exp)
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
