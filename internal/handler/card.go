package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/service"
)

// DragEndRequest is the body of POST /trips/{tripId}/cards/{cardId}/drag-end.
// The delta is in screen pixels; the planner divides it by the board zoom.
type DragEndRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// cardBody is the request body of card writes. It accepts a full card
// document so clients can send back what they read; id and connections are
// ignored because the path names the card and connections change only
// through the connect event.
type cardBody struct {
	domain.CardInput
	ID          json.RawMessage `json:"id,omitempty"`
	Connections json.RawMessage `json:"connections,omitempty"`
}

// ListCards handles GET /trips/{tripId}/cards.
func (s *Server) ListCards(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cards, err := s.planner.ListCards(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(cards))
}

// CreateCard handles POST /trips/{tripId}/cards.
// Missing type-specific fields default to empty values; only the type is required.
func (s *Server) CreateCard(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body cardBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	card, err := s.planner.CreateCard(r.Context(), tripID, body.CardInput)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, card)
}

// UpdateCard handles PUT /trips/{tripId}/cards/{cardId}.
// The body replaces every field; the card type cannot change.
func (s *Server) UpdateCard(w http.ResponseWriter, r *http.Request) {
	tripID, cardID, err := tripAndCard(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body cardBody
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	card, err := s.planner.UpdateCard(r.Context(), tripID, cardID, body.CardInput)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// DeleteCard handles DELETE /trips/{tripId}/cards/{cardId}.
// Connections from other cards to the deleted one are left in place.
func (s *Server) DeleteCard(w http.ResponseWriter, r *http.Request) {
	tripID, cardID, err := tripAndCard(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.planner.DeleteCard(r.Context(), tripID, cardID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ConnectCard handles POST /trips/{tripId}/cards/{cardId}/connect.
// The first click starts a connection, the second completes it.
func (s *Server) ConnectCard(w http.ResponseWriter, r *http.Request) {
	s.cardEvent(w, r, s.planner.Connect)
}

// DragStart handles POST /trips/{tripId}/cards/{cardId}/drag-start.
func (s *Server) DragStart(w http.ResponseWriter, r *http.Request) {
	s.cardEvent(w, r, s.planner.DragStart)
}

// SelectCard handles POST /trips/{tripId}/cards/{cardId}/select.
func (s *Server) SelectCard(w http.ResponseWriter, r *http.Request) {
	s.cardEvent(w, r, s.planner.Select)
}

// ClearSelection handles DELETE /trips/{tripId}/selection.
func (s *Server) ClearSelection(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := s.planner.Select(r.Context(), tripID, uuid.Nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boardToResponse(view))
}

// DragEnd handles POST /trips/{tripId}/cards/{cardId}/drag-end.
func (s *Server) DragEnd(w http.ResponseWriter, r *http.Request) {
	tripID, cardID, err := tripAndCard(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body DragEndRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	card, err := s.planner.DragEnd(r.Context(), tripID, cardID, domain.Position{X: body.DX, Y: body.DY})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

// cardEvent binds both path IDs, feeds them to fn and answers with the
// resulting board.
func (s *Server) cardEvent(w http.ResponseWriter, r *http.Request,
	fn func(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error),
) {
	tripID, cardID, err := tripAndCard(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	view, err := fn(r.Context(), tripID, cardID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, boardToResponse(view))
}

// nonNil keeps empty collections encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
