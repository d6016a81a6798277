package domain

import "github.com/google/uuid"

// Brand is a car manufacturer. Name is unique.
type Brand struct {
	ID   uuid.UUID
	Name string
}
