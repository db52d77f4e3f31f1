package database

import (
	"errors"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
	codeStringTooLong       = "22001"
)

type ErrorClass int

const (
	ErrorClassOther ErrorClass = iota
	ErrorClassUniqueViolation
	ErrorClassForeignKeyViolation
	ErrorClassConstraintViolation
)

// ClassifyError maps a driver error onto the constraint failures the stores
// turn into domain errors.
func ClassifyError(err error) ErrorClass {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ErrorClassOther
	}

	switch pqErr.Code {
	case codeUniqueViolation:
		return ErrorClassUniqueViolation
	case codeForeignKeyViolation:
		return ErrorClassForeignKeyViolation
	case codeNotNullViolation, codeCheckViolation, codeStringTooLong:
		return ErrorClassConstraintViolation
	}
	return ErrorClassOther
}

func IsUniqueViolation(err error) bool {
	return ClassifyError(err) == ErrorClassUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	return ClassifyError(err) == ErrorClassForeignKeyViolation
}

// IsConstraintViolation reports values the schema rejects: NULLs, failed
// CHECKs and strings wider than their column.
func IsConstraintViolation(err error) bool {
	return ClassifyError(err) == ErrorClassConstraintViolation
}

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCartItemExists   = errors.New("product already in cart")
	ErrInvalidValue     = errors.New("value rejected by column constraint")
)
