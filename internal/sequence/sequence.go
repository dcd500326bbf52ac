// Package sequence issues strictly increasing document numbers per category.
//
// Every allocation is a single atomic increment-and-fetch executed by the
// backing store. A number handed out is never returned again, even when the
// caller fails to use it.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyCategory is returned when Allocate is called without a category.
var ErrEmptyCategory = errors.New("sequence: category required")

// Store performs the atomic counter primitive.
type Store interface {
	// Increment atomically adds one to the category counter, creating it at
	// zero when missing, and returns the new value.
	Increment(ctx context.Context, category string) (int64, error)
	// Current returns the last issued value, or zero when none was issued.
	Current(ctx context.Context, category string) (int64, error)
}

// Observer is notified after each successful allocation.
type Observer interface {
	ObserveAllocation(category string)
}

// Allocator hands out sequence numbers from a Store.
type Allocator struct {
	store    Store
	observer Observer
}

// NewAllocator constructs an Allocator. observer may be nil.
func NewAllocator(store Store, observer Observer) *Allocator {
	return &Allocator{store: store, observer: observer}
}

// Allocate returns the next number for category.
func (a *Allocator) Allocate(ctx context.Context, category string) (int64, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return 0, ErrEmptyCategory
	}
	seq, err := a.store.Increment(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("sequence: allocate %s: %w", category, err)
	}
	if a.observer != nil {
		a.observer.ObserveAllocation(category)
	}
	return seq, nil
}

// Current reports the last number issued for category.
func (a *Allocator) Current(ctx context.Context, category string) (int64, error) {
	seq, err := a.store.Current(ctx, strings.TrimSpace(category))
	if err != nil {
		return 0, fmt.Errorf("sequence: current %s: %w", category, err)
	}
	return seq, nil
}

// Format renders seq as a human-facing document number, e.g. QTN-00042.
func Format(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%05d", prefix, seq)
}
