package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/board"
)

// PackingResponse is the body of the packing checklist endpoints.
type PackingResponse struct {
	Items    []board.PackingItem `json:"items"`
	Progress int                 `json:"progress"`
}

// AddPackingItemRequest is the body of POST /trips/{tripId}/packing.
type AddPackingItemRequest struct {
	Text string `json:"text"`
}

// AddTipRequest is the body of POST /trips/{tripId}/tips.
type AddTipRequest struct {
	Content string `json:"content"`
}

// AddMoodboardItemRequest is the body of POST /trips/{tripId}/moodboard.
type AddMoodboardItemRequest struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// ---- packing ---------------------------------------------------------------

// GetPacking handles GET /trips/{tripId}/packing.
func (s *Server) GetPacking(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.planner.Packing(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packingResponse(items))
}

// AddPackingItem handles POST /trips/{tripId}/packing.
func (s *Server) AddPackingItem(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body AddPackingItemRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.planner.AddPackingItem(r.Context(), tripID, body.Text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// TogglePackingItem handles POST /trips/{tripId}/packing/{itemId}/toggle.
// It answers with the whole checklist so the progress is current.
func (s *Server) TogglePackingItem(w http.ResponseWriter, r *http.Request) {
	tripID, itemID, err := tripAndItem(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.planner.TogglePackingItem(r.Context(), tripID, itemID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, packingResponse(items))
}

// RemovePackingItem handles DELETE /trips/{tripId}/packing/{itemId}.
func (s *Server) RemovePackingItem(w http.ResponseWriter, r *http.Request) {
	s.removeItem(w, r, s.planner.RemovePackingItem)
}

func packingResponse(items []board.PackingItem) PackingResponse {
	return PackingResponse{Items: nonNil(items), Progress: board.PackingProgress(items)}
}

// ---- tips ------------------------------------------------------------------

// ListTips handles GET /trips/{tripId}/tips.
func (s *Server) ListTips(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	tips, err := s.planner.Tips(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(tips))
}

// AddTip handles POST /trips/{tripId}/tips.
func (s *Server) AddTip(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body AddTipRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	tip, err := s.planner.AddTip(r.Context(), tripID, body.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tip)
}

// RemoveTip handles DELETE /trips/{tripId}/tips/{itemId}.
// Suggested tips cannot be removed (422).
func (s *Server) RemoveTip(w http.ResponseWriter, r *http.Request) {
	s.removeItem(w, r, s.planner.RemoveTip)
}

// ---- moodboard -------------------------------------------------------------

// ListMoodboard handles GET /trips/{tripId}/moodboard.
func (s *Server) ListMoodboard(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.planner.Moodboard(r.Context(), tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// AddMoodboardItem handles POST /trips/{tripId}/moodboard.
func (s *Server) AddMoodboardItem(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripId")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var body AddMoodboardItemRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	item, err := s.planner.AddMoodboardItem(r.Context(), tripID, body.URL, body.Title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// RemoveMoodboardItem handles DELETE /trips/{tripId}/moodboard/{itemId}.
func (s *Server) RemoveMoodboardItem(w http.ResponseWriter, r *http.Request) {
	s.removeItem(w, r, s.planner.RemoveMoodboardItem)
}

// removeItem runs a delete addressed by tripId and itemId and answers 204.
func (s *Server) removeItem(w http.ResponseWriter, r *http.Request,
	remove func(ctx context.Context, tripID uuid.UUID, itemID string) error,
) {
	tripID, itemID, err := tripAndItem(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := remove(r.Context(), tripID, itemID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
