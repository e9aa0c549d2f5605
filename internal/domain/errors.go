package domain

import (
	"errors"
	"fmt"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrDuplicate    = errors.New("duplicate resource")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access denied")
	ErrConflict     = errors.New("conflict with current state")

	// Batch ledger failures. All are caller-correctable; none is retryable.
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidZone       = errors.New("invalid zone")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrSameZoneTransfer  = errors.New("source and destination zone are the same")
)

// InsufficientStockError carries the numbers behind an ErrInsufficientStock so callers can
// tell the user how much is actually available.
type InsufficientStockError struct {
	ItemID    string
	Zone      string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock in %q for item %s: requested %d, available %d",
		e.Zone, e.ItemID, e.Requested, e.Available)
}

// Unwrap lets errors.Is(err, ErrInsufficientStock) match.
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
