package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidDealID   = errors.New("invalid deal unique id")
	ErrInvalidCurrency = errors.New("invalid currency code")
	ErrInvalidAmount   = errors.New("deal amount must be positive")
	ErrAmountPrecision = errors.New("deal amount exceeds allowed precision")
)

// Validation constants
const (
	MaxDealIDLength         = 100
	MaxAmountIntegerDigits  = 15
	MaxAmountFractionDigits = 4
	MinDealAmount           = "0.0001"
)

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidateDealID validates the caller-supplied business key.
func ValidateDealID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: id cannot be blank", ErrInvalidDealID)
	}

	if len([]rune(id)) > MaxDealIDLength {
		return fmt.Errorf("%w: id exceeds %d characters", ErrInvalidDealID, MaxDealIDLength)
	}

	return nil
}

// ValidateCurrencyCode checks for a 3-letter uppercase ISO code. Any
// well-formed code is accepted, there is no whitelist.
func ValidateCurrencyCode(code string) error {
	if !currencyCodeRegex.MatchString(code) {
		return fmt.Errorf("%w: %q must be a 3-letter uppercase ISO code", ErrInvalidCurrency, code)
	}

	return nil
}

// ValidateDealAmount checks sign and NUMERIC(19,4) precision.
func ValidateDealAmount(amount decimal.Decimal) error {
	if amount.LessThan(decimal.RequireFromString(MinDealAmount)) {
		return ErrInvalidAmount
	}

	if -amount.Exponent() > MaxAmountFractionDigits && !amount.Equal(amount.Truncate(MaxAmountFractionDigits)) {
		return fmt.Errorf("%w: at most %d fractional digits", ErrAmountPrecision, MaxAmountFractionDigits)
	}

	if len(amount.Truncate(0).Abs().String()) > MaxAmountIntegerDigits {
		return fmt.Errorf("%w: at most %d integer digits", ErrAmountPrecision, MaxAmountIntegerDigits)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
