package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fxwarehouse/internal/domain"
	"github.com/iho/fxwarehouse/internal/usecase"
)

var dealColumns = []string{
	"id", "deal_unique_id", "from_currency_iso_code", "to_currency_iso_code",
	"deal_timestamp", "deal_amount", "created_at",
}

var dealTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleDeal() domain.Deal {
	return domain.Deal{
		DealID:        "FX001",
		FromCurrency:  "USD",
		ToCurrency:    "EUR",
		DealTimestamp: dealTime,
		Amount:        decimal.RequireFromString("1000.5000"),
	}
}

func dealRow(rows *pgxmock.Rows, id int64, deal domain.Deal) *pgxmock.Rows {
	return rows.AddRow(
		id,
		deal.DealID,
		deal.FromCurrency,
		deal.ToCurrency,
		timeToPgTimestamptz(deal.DealTimestamp),
		decimalToNumeric(deal.Amount),
		timeToPgTimestamptz(dealTime.Add(time.Hour)),
	)
}

func beginTx(t *testing.T, mock pgxmock.PgxPoolIface) usecase.Transaction {
	t.Helper()
	mock.ExpectBeginTx(readCommitted)
	tx, err := newTxManagerWithPool(mock).Begin(context.Background())
	require.NoError(t, err)
	return tx
}

func TestDealRepository_ExistsByDealID(t *testing.T) {
	mock := newMockPool(t)
	tx := beginTx(t, mock)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("FX001").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	repo := newDealRepository(mock)
	exists, err := repo.ExistsByDealID(context.Background(), tx, "FX001")

	require.NoError(t, err)
	assert.True(t, exists)
	assertExpectations(t, mock)
}

func TestDealRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	tx := beginTx(t, mock)
	deal := sampleDeal()

	mock.ExpectQuery("INSERT INTO fx_deals").
		WithArgs("FX001", "USD", "EUR", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(dealRow(pgxmock.NewRows(dealColumns), 42, deal))

	repo := newDealRepository(mock)
	persisted, err := repo.Create(context.Background(), tx, deal)

	require.NoError(t, err)
	assert.Equal(t, int64(42), persisted.ID)
	assert.Equal(t, "FX001", persisted.DealID)
	assert.True(t, persisted.Amount.Equal(deal.Amount), "amount %s", persisted.Amount)
	assert.True(t, persisted.DealTimestamp.Equal(dealTime))
	assert.False(t, persisted.CreatedAt.IsZero())
	assertExpectations(t, mock)
}

func TestDealRepository_CreateClassifiesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: domain.ErrDuplicateDeal},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}, want: domain.ErrDealConstraintViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tx := beginTx(t, mock)

			mock.ExpectQuery("INSERT INTO fx_deals").
				WithArgs("FX001", "USD", "EUR", pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(tt.err)

			_, err := newDealRepository(mock).Create(context.Background(), tx, sampleDeal())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

type foreignTx struct{}

func (foreignTx) Commit(context.Context) error   { return nil }
func (foreignTx) Rollback(context.Context) error { return nil }

func TestDealRepository_RejectsForeignTransaction(t *testing.T) {
	mock := newMockPool(t)
	repo := newDealRepository(mock)

	_, err := repo.Create(context.Background(), foreignTx{}, sampleDeal())
	assert.Error(t, err)

	_, err = repo.ExistsByDealID(context.Background(), foreignTx{}, "FX001")
	assert.Error(t, err)
}

func TestDealRepository_GetByDealID(t *testing.T) {
	mock := newMockPool(t)
	deal := sampleDeal()

	mock.ExpectQuery("WHERE deal_unique_id").
		WithArgs("FX001").
		WillReturnRows(dealRow(pgxmock.NewRows(dealColumns), 7, deal))

	got, err := newDealRepository(mock).GetByDealID(context.Background(), "FX001")

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, "EUR", got.ToCurrency)
	assertExpectations(t, mock)
}

func TestDealRepository_GetByDealIDNotFound(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectQuery("WHERE deal_unique_id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := newDealRepository(mock).GetByDealID(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrDealNotFound), "got %v", err)
}

func TestDealRepository_List(t *testing.T) {
	mock := newMockPool(t)
	first := sampleDeal()
	second := sampleDeal()
	second.DealID = "FX002"

	rows := pgxmock.NewRows(dealColumns)
	dealRow(rows, 1, first)
	dealRow(rows, 2, second)

	mock.ExpectQuery("ORDER BY id").
		WithArgs(int32(20), int32(40)).
		WillReturnRows(rows)

	deals, err := newDealRepository(mock).List(context.Background(), 20, 40)

	require.NoError(t, err)
	require.Len(t, deals, 2)
	assert.Equal(t, "FX001", deals[0].DealID)
	assert.Equal(t, "FX002", deals[1].DealID)
	assertExpectations(t, mock)
}

func TestNumericRoundTrip(t *testing.T) {
	for _, s := range []string{"0.0001", "1000.5000", "123456789012345.1234"} {
		d := decimal.RequireFromString(s)
		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Fatalf("expected %s, got %s", d, got)
		}
	}

	if !numericToDecimal(pgtype.Numeric{}).IsZero() {
		t.Fatalf("expected invalid numeric to map to zero")
	}
}
