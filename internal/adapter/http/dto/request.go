package dto

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/iho/fxwarehouse/internal/domain"
)

// DealRequest is a deal as received on the wire.
type DealRequest struct {
	DealUniqueID  string           `json:"deal_unique_id" validate:"required,dealid"`
	FromCurrency  string           `json:"from_currency_iso_code" validate:"required,iso4217code"`
	ToCurrency    string           `json:"to_currency_iso_code" validate:"required,iso4217code"`
	DealTimestamp *Timestamp       `json:"deal_timestamp" validate:"required"`
	DealAmount    *decimal.Decimal `json:"deal_amount" validate:"required,dealamount"`
}

// ToDomain converts a validated request into a domain deal.
func (r *DealRequest) ToDomain() domain.Deal {
	deal := domain.Deal{
		DealID:       r.DealUniqueID,
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
	}
	if r.DealTimestamp != nil {
		deal.DealTimestamp = r.DealTimestamp.Time
	}
	if r.DealAmount != nil {
		deal.Amount = *r.DealAmount
	}

	return deal
}

// DealsToDomain converts validated requests, keeping order.
func DealsToDomain(reqs []DealRequest) []domain.Deal {
	deals := make([]domain.Deal, len(reqs))
	for i := range reqs {
		deals[i] = reqs[i].ToDomain()
	}

	return deals
}

// FieldError describes one structural violation in a request.
type FieldError struct {
	Index   int
	DealID  string
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("deal %d: %s %s", e.Index, e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if ts, ok := field.Interface().(Timestamp); ok {
			return ts.Time
		}
		return nil
	}, Timestamp{})

	mustRegister(v, "dealid", func(fl validator.FieldLevel) bool {
		return domain.ValidateDealID(fl.Field().String()) == nil
	})
	mustRegister(v, "iso4217code", func(fl validator.FieldLevel) bool {
		return domain.ValidateCurrencyCode(fl.Field().String()) == nil
	})
	mustRegister(v, "dealamount", func(fl validator.FieldLevel) bool {
		amount, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return domain.ValidateDealAmount(amount) == nil
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Validate checks a single request.
func (r *DealRequest) Validate() []FieldError {
	return validateAt(0, r)
}

// ValidateBatch checks every request and returns all violations in input order.
func ValidateBatch(reqs []DealRequest) []FieldError {
	var errs []FieldError
	for i := range reqs {
		errs = append(errs, validateAt(i, &reqs[i])...)
	}

	return errs
}

func validateAt(index int, r *DealRequest) []FieldError {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Index: index, DealID: r.DealUniqueID, Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Index:   index,
			DealID:  r.DealUniqueID,
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}

	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "dealid":
		return fmt.Sprintf("must not be blank and at most %d characters", domain.MaxDealIDLength)
	case "iso4217code":
		return "must be a 3-letter uppercase ISO 4217 code"
	case "dealamount":
		return fmt.Sprintf("must be at least %s with at most %d integer and %d fractional digits",
			domain.MinDealAmount, domain.MaxAmountIntegerDigits, domain.MaxAmountFractionDigits)
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
