package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParticipationRow is a single row in the administrative participation listing.
// It is a flat, denormalized view: one row per (trip, passenger) pair, with the
// trip fields repeated for every passenger on that trip. Trips without
// passengers contribute no rows.
type ParticipationRow struct {
	// Trip fields, repeated for every passenger on the trip.
	TripID         uuid.UUID
	StartCityName  string
	ArriveCityName string
	TravelDate     time.Time
	KmDistance     float64
	PlacesOffered  int

	// Passenger fields.
	StudentID        uuid.UUID
	StudentFirstname string
	StudentName      string
}
