package domain

import "github.com/google/uuid"

// DriverProfile is the public profile of the student driving a trip.
type DriverProfile struct {
	ID        uuid.UUID
	Firstname string
	Name      string
	Phone     string
	Email     string
	CityName  string
	CarModel  Optional[string]
}

// PassengerTrip is a trip a student rides on, annotated with its driver's full name.
type PassengerTrip struct {
	Trip
	DriverName string
}
