// Package repository defines the storage interface implemented by the
// postgres and sqlite backends.
package repository

import (
	"context"

	"github.com/akhalil/essam-memorial/internal/model"
)

// MaxListLimit caps how many records a single listing query may return,
// guarding against a full-table scan re-serialized on every client poll.
const MaxListLimit = 1000

// ListOptions bounds a listing query. Limit <= 0 or above MaxListLimit
// means MaxListLimit applies.
type ListOptions struct {
	Limit int
}

// Clamp returns the effective row limit for the options.
func (o ListOptions) Clamp() int {
	if o.Limit <= 0 || o.Limit > MaxListLimit {
		return MaxListLimit
	}
	return o.Limit
}

// PrayerRepository is the persistence contract for prayer records.
//
// Create assigns ID and CreatedAt on the passed record. List returns
// records ordered by CreatedAt descending. Delete returns
// apperror.ErrNotFound when no row matched the id.
type PrayerRepository interface {
	Create(ctx context.Context, prayer *model.Prayer) error
	List(ctx context.Context, opts ListOptions) ([]model.Prayer, error)
	Delete(ctx context.Context, id string) error
}
