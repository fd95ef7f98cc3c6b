// Package model defines the data structures shared across the application.
package model

import "time"

// Prayer is a single entry on the memorial prayer wall.
//
// ID and CreatedAt are assigned by the repository at insert time and are
// immutable afterwards. Name is optional; the empty string means the
// prayer was submitted anonymously. There is no update operation; a
// prayer is created once and lives until it is explicitly deleted.
type Prayer struct {
	ID        string
	Text      string
	Name      string
	CreatedAt time.Time
}
