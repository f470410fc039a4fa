package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/fxwarehouse/internal/domain"
)

const (
	pgErrUniqueViolation = "23505"

	pgClassDataException       = "22"
	pgClassIntegrityConstraint = "23"
)

// classifyError maps PostgreSQL errors onto domain errors. Errors that are
// not constraint failures are returned unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == pgErrUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrDuplicateDeal, pgErr.ConstraintName)
	case len(pgErr.Code) == 5 && (pgErr.Code[:2] == pgClassDataException || pgErr.Code[:2] == pgClassIntegrityConstraint):
		return fmt.Errorf("%w: %s", domain.ErrDealConstraintViolation, pgErr.Message)
	default:
		return err
	}
}
