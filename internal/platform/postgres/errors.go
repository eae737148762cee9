package postgres

import (
	"errors"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for unique constraint breaches.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err stems from a unique constraint, which
// repositories translate into their duplicate sentinel errors. It understands
// both GORM's translated error and the raw driver error surfaced by
// database/sql code paths.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
