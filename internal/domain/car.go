package domain

import "github.com/google/uuid"

// Car is a vehicle a student may possess.
// Matriculation (the licence plate) is unique across all cars.
type Car struct {
	ID            uuid.UUID
	Model         string
	Matriculation string
	Seats         int
	BrandID       uuid.UUID
	BrandName     string // read-only, joined from brands
}
