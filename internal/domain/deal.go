package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal is a single FX deal as received from a client, after structural validation.
type Deal struct {
	DealTimestamp time.Time
	DealID        string
	FromCurrency  string
	ToCurrency    string
	Amount        decimal.Decimal
}

// PersistedDeal is a deal as stored, with the storage-assigned surrogate ID
// and creation time.
type PersistedDeal struct {
	Deal

	ID        int64
	CreatedAt time.Time
}
