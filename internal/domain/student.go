package domain

import "github.com/google/uuid"

// Student is a person who can drive trips and ride as a passenger.
// RegisteredBy is the account that created the record; it owns it.
type Student struct {
	ID           uuid.UUID
	Firstname    string
	Name         string
	Phone        string
	Email        string
	RegisteredBy uuid.UUID
	CityID       uuid.UUID
	CarID        Optional[uuid.UUID]
}

// FullName returns "Firstname Name".
func (s Student) FullName() string {
	return s.Firstname + " " + s.Name
}
