package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/shareit/internal/domains/items/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid item input")
	// ErrNotRented signals a comment attempt without a finished booking.
	ErrNotRented = errors.New("no finished booking for this item")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyDescription) ||
		errors.Is(err, domain.ErrEmptyComment) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
