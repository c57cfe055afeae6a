package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrUnknownReference is returned when a write names a row that does not exist, or an
	// id Postgres cannot parse.
	ErrUnknownReference = errors.New("referenced row does not exist")
	// ErrDuplicate is returned when a write hits a unique index.
	ErrDuplicate = errors.New("duplicate row")
)

// Postgres SQLSTATE codes mapped to sentinels.
const (
	foreignKeyViolation       = "23503"
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

func translateWriteError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case foreignKeyViolation, invalidTextRepresentation:
		return fmt.Errorf("%w: %s", ErrUnknownReference, pqErr.Message)
	case uniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	}
	return err
}
