package usecase

import (
	"context"
	"time"

	"github.com/iho/fxwarehouse/internal/domain"
)

// DealRepository defines data access for deals.
type DealRepository interface {
	// ExistsByDealID reports whether a deal with the business key is stored.
	ExistsByDealID(ctx context.Context, tx Transaction, dealID string) (bool, error)
	// Create inserts the deal. It returns domain.ErrDuplicateDeal when the
	// uniqueness constraint on the business key rejects the row and
	// domain.ErrDealConstraintViolation for other integrity failures.
	Create(ctx context.Context, tx Transaction, deal domain.Deal) (*domain.PersistedDeal, error)
	GetByDealID(ctx context.Context, dealID string) (*domain.PersistedDeal, error)
	List(ctx context.Context, limit, offset int) ([]*domain.PersistedDeal, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle. Every Begin opens an
// independent unit of work.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ImportRecorder observes finished batches.
type ImportRecorder interface {
	ObserveImport(summary *domain.ImportSummary, batchSize int, duration time.Duration)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so the request can be retried.
	Release(ctx context.Context, key string) error
}
