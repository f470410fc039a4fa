package usecase

import "time"

const (
	// DefaultRecordTimeout bounds a single deal's unit of work.
	DefaultRecordTimeout = 10 * time.Second

	// DefaultDealCacheTTL is how long a fetched deal stays in the cache.
	DefaultDealCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyInFlight is the stored value while the first request for a
	// key is still running.
	IdempotencyInFlight = "processing"

	dealCacheKeyPrefix = "deal:"
)
