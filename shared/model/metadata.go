package model

import "time"

// Metadata carries the bookkeeping timestamps every mutable table has.
type Metadata struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
