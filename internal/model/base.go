// Package model holds the types shared by every entity package.
package model

import "time"

// Timestamps is embedded in every persisted entity.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PaginatedResponse wraps one page of a listing.
type PaginatedResponse[T any] struct {
	Data   []T   `json:"data"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// EmptyRequest is bound by routes that take no input.
type EmptyRequest struct{}

func (EmptyRequest) Validate() error {
	return nil
}
