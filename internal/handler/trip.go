package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
)

// tripRequest is the body of POST /api/trips.
type tripRequest struct {
	DriveID       *uuid.UUID `json:"drive_id" validate:"required"`
	StartID       *uuid.UUID `json:"start_id" validate:"required"`
	ArriveID      *uuid.UUID `json:"arrive_id" validate:"required"`
	KmDistance    *float64   `json:"kmdistance" validate:"required,gt=0"`
	TravelDate    string     `json:"traveldate" validate:"required,datetime=2006-01-02 15:04:05"`
	PlacesOffered *int       `json:"placesoffered" validate:"required,gt=0,max=32767"`
}

// tripResponse is the wire representation of a trip.
type tripResponse struct {
	ID            uuid.UUID `json:"id"`
	DriveID       uuid.UUID `json:"drive_id"`
	StartID       uuid.UUID `json:"start_id"`
	ArriveID      uuid.UUID `json:"arrive_id"`
	KmDistance    float64   `json:"kmdistance"`
	TravelDate    string    `json:"traveldate"`
	PlacesOffered int       `json:"placesoffered"`
}

type passengerTripResponse struct {
	tripResponse
	Driver string `json:"driver"`
}

type driverResponse struct {
	ID        uuid.UUID               `json:"id"`
	Firstname string                  `json:"firstname"`
	Name      string                  `json:"name"`
	Phone     string                  `json:"phone"`
	Email     string                  `json:"email"`
	City      string                  `json:"city"`
	CarModel  domain.Optional[string] `json:"car_model"`
}

// createTrip handles POST /api/trips.
func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	travel, err := time.ParseInLocation(domain.TravelDateLayout, req.TravelDate, time.UTC)
	if err != nil {
		s.writeError(w, r, domain.ValidationError("traveldate must match %s", domain.TravelDateLayout))
		return
	}

	created, err := s.trips.Create(r.Context(), domain.Trip{
		DriverID:      *req.DriveID,
		StartCityID:   *req.StartID,
		ArriveCityID:  *req.ArriveID,
		KmDistance:    *req.KmDistance,
		TravelDate:    travel,
		PlacesOffered: *req.PlacesOffered,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// listTrips handles GET /api/trips.
func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripsToResponse(trips))
}

// getTrip handles GET /api/trips/{id}.
func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

// tripDriver handles GET /api/trips/{id}/driver.
func (s *Server) tripDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.trips.Driver(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, driverResponse{
		ID:        p.ID,
		Firstname: p.Firstname,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		City:      p.CityName,
		CarModel:  p.CarModel,
	})
}

// searchTrips handles GET /api/trips/search/{startCityId}/{arriveCityId}/{date}.
// The date stays a string here; the service reports a malformed day only
// after both cities have been resolved.
func (s *Server) searchTrips(w http.ResponseWriter, r *http.Request) {
	start, err := pathUUID(r, "startCityId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	arrive, err := pathUUID(r, "arriveCityId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	trips, err := s.trips.Search(r.Context(), start, arrive, chiParam(r, "date"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripsToResponse(trips))
}

// studentTrips handles GET /api/students/{id}/trips.
func (s *Server) studentTrips(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trips, err := s.trips.TripsOfStudent(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]passengerTripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, passengerTripResponse{tripResponse: tripToResponse(t.Trip), Driver: t.DriverName})
	}
	writeJSON(w, http.StatusOK, out)
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:            t.ID,
		DriveID:       t.DriverID,
		StartID:       t.StartCityID,
		ArriveID:      t.ArriveCityID,
		KmDistance:    t.KmDistance,
		TravelDate:    t.TravelDate.UTC().Format(domain.TravelDateLayout),
		PlacesOffered: t.PlacesOffered,
	}
}

func tripsToResponse(trips []domain.Trip) []tripResponse {
	out := make([]tripResponse, 0, len(trips))
	for _, t := range trips {
		out = append(out, tripToResponse(t))
	}
	return out
}
