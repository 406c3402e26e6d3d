package repository

import (
	"context"
	"errors"

	"homestay-backoffice/internal/domain"
)

// ErrNotFound is returned by Update/Delete when no row carries the booking id.
var ErrNotFound = errors.New("booking not found")

// BookingSheet is the external spreadsheet store. Rows travel in the store's
// display form (localized date text, numeric text amounts); normalization is
// the dataset's job. All operations are single-row and atomic from the
// caller's perspective; after any successful write the caller invalidates
// its dataset snapshot.
type BookingSheet interface {
	// Rows returns every data row keyed by the header row's column names.
	Rows(ctx context.Context) ([]domain.Row, error)
	// Append adds one booking row, ordered by the sheet's header row.
	Append(ctx context.Context, row domain.Row) error
	// Update replaces the row whose booking id column matches id.
	Update(ctx context.Context, id string, row domain.Row) error
	// Delete removes the row whose booking id column matches id.
	Delete(ctx context.Context, id string) error
}
