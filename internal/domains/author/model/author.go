package model

import "github.com/google/uuid"

// Author is the referenced entity books point at. Writes resolve it by exact name.
type Author struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}
