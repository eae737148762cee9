package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/shareit/internal/domains/bookings/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid booking input")
	// ErrItemUnavailable signals a booking attempt on an unavailable item.
	ErrItemUnavailable = errors.New("item is not available")
	// ErrNotOwner signals an approval attempt by someone other than the
	// item's owner.
	ErrNotOwner = errors.New("only the item's owner may decide a booking")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var notWaiting *domain.NotWaitingError
	if errors.As(err, &notWaiting) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, domain.ErrInvalidItemID) ||
		errors.Is(err, domain.ErrMissingDates) ||
		errors.Is(err, domain.ErrStartAfterEnd) ||
		errors.Is(err, domain.ErrStartInPast) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
