// Package domain contains the core data types for the carpooling API.
// This package has no dependencies on other internal packages and is imported
// by every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TravelDateLayout is the wire format of a trip's travel timestamp.
const TravelDateLayout = "2006-01-02 15:04:05"

// DayLayout is the wire format of a calendar day used by trip search.
const DayLayout = "2006-01-02"

// Trip is a ride from one city to another, offered by a driving student
// with a fixed number of seats. Passengers are not held on the trip itself;
// they live in the participations table and are read through queries.
type Trip struct {
	ID            uuid.UUID
	DriverID      uuid.UUID
	StartCityID   uuid.UUID
	ArriveCityID  uuid.UUID
	KmDistance    float64
	TravelDate    time.Time
	PlacesOffered int
	CreatedAt     time.Time
}

// Participation is a passenger's reserved seat on a trip.
type Participation struct {
	TripID    uuid.UUID
	StudentID uuid.UUID
}

// ParseDay parses a YYYY-MM-DD calendar day in UTC.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, time.UTC)
}

// DayWindow returns the inclusive bounds [day 00:00:00, day 23:59:59] of the
// calendar day containing t.
func DayWindow(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	to = from.Add(24*time.Hour - time.Second)
	return from, to
}
