package handler

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/board"
	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/planner"
	"github.com/pkordes/tripcanvas/internal/service"
)

// BoardResponse is a trip's board: cards, the geometry of their connections
// and the interaction state. Nil pointers mean "none".
type BoardResponse struct {
	TripID         uuid.UUID      `json:"trip_id"`
	ConnectingFrom *uuid.UUID     `json:"connecting_from"`
	Dragging       *uuid.UUID     `json:"dragging"`
	Selected       *uuid.UUID     `json:"selected"`
	Zoom           float64        `json:"zoom"`
	View           planner.View   `json:"view"`
	Cards          []domain.Card  `json:"cards"`
	Threads        []board.Thread `json:"threads"`
}

// UpdateBoardRequest is the body of PUT /trips/{tripId}/board.
// At least one field must be set.
type UpdateBoardRequest struct {
	Zoom *float64      `json:"zoom,omitempty"`
	View *planner.View `json:"view,omitempty"`
}

// GetBoard handles GET /trips/{tripId}/board.
func (s *Server) GetBoard(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.planner.Board(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boardToResponse(view))
}

// UpdateBoard handles PUT /trips/{tripId}/board. Zoom is clamped to
// [0.5, 2.0]; view must be "board" or "timeline". Both apply or neither does.
func (s *Server) UpdateBoard(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body UpdateBoardRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	if body.Zoom == nil && body.View == nil {
		s.writeError(w, r, fmt.Errorf("%w: zoom or view is required", errBadRequest))
		return
	}

	view, err := s.planner.UpdateBoard(r.Context(), tripID, body.Zoom, body.View)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boardToResponse(view))
}

// GetTimeline handles GET /trips/{tripId}/timeline.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cards, err := s.planner.Timeline(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(cards))
}

// GetBudget handles GET /trips/{tripId}/budget.
func (s *Server) GetBudget(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summary, err := s.planner.Budget(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summary.Categories = nonNil(summary.Categories)
	writeJSON(w, http.StatusOK, summary)
}

// GetBalance handles GET /trips/{tripId}/balance.
func (s *Server) GetBalance(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	balance, err := s.planner.Balance(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

func boardToResponse(v service.BoardView) BoardResponse {
	resp := BoardResponse{
		TripID:  v.TripID,
		Zoom:    v.State.Zoom,
		View:    v.State.View,
		Cards:   nonNil(v.Cards),
		Threads: nonNil(v.Threads),
	}
	if from, ok := v.State.Connect.Source(); ok {
		resp.ConnectingFrom = &from
	}
	if id := v.State.Dragging; id != uuid.Nil {
		resp.Dragging = &id
	}
	if id := v.State.Selected; id != uuid.Nil {
		resp.Selected = &id
	}
	return resp
}
