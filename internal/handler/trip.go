package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/planner"
)

// TripResponse is the wire shape of a trip without its cards.
type TripResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Budget      *float64           `json:"budget"`
	Days        int                `json:"days"`
	CardCount   int                `json:"card_count"`
	Active      bool               `json:"active"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// WorkspaceResponse is the body of GET /workspace.
type WorkspaceResponse struct {
	ActiveTripID uuid.UUID      `json:"active_trip_id"`
	Trips        []TripResponse `json:"trips"`
}

// Pagination describes the page of a list response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripListResponse is the body of GET /trips.
type TripListResponse struct {
	Data       []TripResponse `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// CreateTripRequest is the body of POST /trips. Omitted dates default to today.
type CreateTripRequest struct {
	Name        string              `json:"name"`
	Destination string              `json:"destination"`
	StartDate   *openapi_types.Date `json:"start_date,omitempty"`
	EndDate     *openapi_types.Date `json:"end_date,omitempty"`
	Budget      *float64            `json:"budget,omitempty"`
}

// UpdateTripFieldRequest is the body of PATCH /trips/{tripId}.
// Value may be a JSON string, a number (for budget) or null (clears the budget).
type UpdateTripFieldRequest struct {
	Field planner.TripField `json:"field"`
	Value json.RawMessage   `json:"value"`
}

// GetWorkspace handles GET /workspace.
func (s *Server) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws := s.planner.Workspace(r.Context())
	resp := WorkspaceResponse{ActiveTripID: ws.ActiveTripID, Trips: make([]TripResponse, len(ws.Trips))}
	for i, t := range ws.Trips {
		resp.Trips[i] = tripToResponse(t, ws.ActiveTripID)
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid format for parameter page: %v", errBadRequest, err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: invalid format for parameter limit: %v", errBadRequest, err))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total := s.planner.ListTrips(r.Context(), params)
	active := s.planner.Workspace(r.Context()).ActiveTripID

	data := make([]TripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t, active)
	}
	writeJSON(w, http.StatusOK, TripListResponse{
		Data:       data,
		Pagination: Pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// CreateTrip handles POST /trips. The new trip becomes the active one.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}

	meta := domain.TripMeta{Name: body.Name, Destination: body.Destination, Budget: body.Budget}
	if body.StartDate != nil {
		meta.StartDate = body.StartDate.Time
	}
	if body.EndDate != nil {
		meta.EndDate = body.EndDate.Time
	}

	created, err := s.planner.CreateTrip(r.Context(), meta)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created, created.ID))
}

// GetTrip handles GET /trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	trip, err := s.planner.GetTrip(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip, s.planner.Workspace(r.Context()).ActiveTripID))
}

// UpdateTripField handles PATCH /trips/{tripId}.
func (s *Server) UpdateTripField(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body UpdateTripFieldRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	value, err := fieldValue(body.Value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	trip, err := s.planner.UpdateTripField(r.Context(), id, body.Field, value)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip, s.planner.Workspace(r.Context()).ActiveTripID))
}

// DeleteTrip handles DELETE /trips/{tripId}.
// Deleting the only remaining trip answers 409.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.planner.DeleteTrip(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectTrip handles POST /trips/{tripId}/select.
func (s *Server) SelectTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.planner.SelectTrip(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.GetWorkspace(w, r)
}

// --- mapping helpers --------------------------------------------------------

// fieldValue flattens a JSON string, number or null into the text form
// the planner parses. null and a missing value both become "".
func fieldValue(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: malformed value: %v", errBadRequest, err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("%w: value must be a string, number or null", errBadRequest)
	}
	return n.String(), nil
}

// tripToResponse converts a domain.Trip into its wire shape.
func tripToResponse(t domain.Trip, active uuid.UUID) TripResponse {
	return TripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Destination: t.Destination,
		StartDate:   openapi_types.Date{Time: t.StartDate},
		EndDate:     openapi_types.Date{Time: t.EndDate},
		Budget:      t.Budget,
		Days:        t.Days(),
		CardCount:   len(t.Cards),
		Active:      t.ID == active,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
