package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/campusride/carpool/internal/domain"
)

// enrollRequest is the body of POST /api/participations.
type enrollRequest struct {
	StudentID *uuid.UUID `json:"student_id" validate:"required"`
	TripID    *uuid.UUID `json:"trip_id" validate:"required"`
}

type participationResponse struct {
	TripID    uuid.UUID `json:"trip_id"`
	StudentID uuid.UUID `json:"student_id"`
}

// participationRowResponse is one row of the administrative listing.
type participationRowResponse struct {
	TripID           uuid.UUID `json:"trip_id"`
	StartCity        string    `json:"start_city"`
	ArriveCity       string    `json:"arrive_city"`
	TravelDate       string    `json:"traveldate"`
	KmDistance       float64   `json:"kmdistance"`
	PlacesOffered    int       `json:"placesoffered"`
	StudentID        uuid.UUID `json:"student_id"`
	StudentFirstname string    `json:"student_firstname"`
	StudentName      string    `json:"student_name"`
}

// csvHeaders is the first row of the CSV listing; it matches the JSON field names.
var csvHeaders = []string{
	"trip_id", "start_city", "arrive_city", "traveldate", "kmdistance", "placesoffered",
	"student_id", "student_firstname", "student_name",
}

// enroll handles POST /api/participations.
func (s *Server) enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	p, err := s.participations.Enroll(r.Context(), *req.StudentID, *req.TripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, participationResponse{TripID: p.TripID, StudentID: p.StudentID})
}

// listParticipations handles GET /api/participations.
// It returns one row per (trip, passenger) pair. Use ?format=csv to receive
// CSV; the default is JSON. ?trip_id= and ?student_id= narrow the rows.
func (s *Server) listParticipations(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		s.writeError(w, r, domain.ValidationError("format must be json or csv"))
		return
	}

	tripID, err := queryUUID(r, "trip_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	studentID, err := queryUUID(r, "student_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows, err := s.participations.List(r.Context(), tripID, studentID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]participationRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ParticipationRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail, so Write errors are ignored.
	_ = cw.Write(csvHeaders)
	for _, row := range rows {
		_ = cw.Write(rowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="participations.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func rowToResponse(r domain.ParticipationRow) participationRowResponse {
	return participationRowResponse{
		TripID:           r.TripID,
		StartCity:        r.StartCityName,
		ArriveCity:       r.ArriveCityName,
		TravelDate:       r.TravelDate.UTC().Format(domain.TravelDateLayout),
		KmDistance:       r.KmDistance,
		PlacesOffered:    r.PlacesOffered,
		StudentID:        r.StudentID,
		StudentFirstname: r.StudentFirstname,
		StudentName:      r.StudentName,
	}
}

func rowToCSVRecord(r domain.ParticipationRow) []string {
	return []string{
		r.TripID.String(),
		r.StartCityName,
		r.ArriveCityName,
		r.TravelDate.UTC().Format(domain.TravelDateLayout),
		strconv.FormatFloat(r.KmDistance, 'f', -1, 64),
		strconv.Itoa(r.PlacesOffered),
		r.StudentID.String(),
		r.StudentFirstname,
		r.StudentName,
	}
}
