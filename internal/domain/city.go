package domain

import "github.com/google/uuid"

// City is a place students live in and trips start from or arrive at.
// The (Name, Zipcode) pair is unique.
type City struct {
	ID      uuid.UUID
	Name    string
	Zipcode string
}
