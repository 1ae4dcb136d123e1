package domain

import "fmt"

// ValidationError reports a malformed or out-of-range input to a stock
// operation: non-positive quantities, negative prices.
type ValidationError struct {
	Op     string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.Op, e.Field, e.Reason)
}

// InsufficientStockError reports an attempt to list more units than the
// record has available.
type InsufficientStockError struct {
	RecordID  uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock on record %d: requested %d, available %d",
		e.RecordID, e.Requested, e.Available)
}
