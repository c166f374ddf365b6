package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcanvas/internal/board"
	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/handler"
)

// ---- packing ---------------------------------------------------------------

func TestAddPackingItem_returns201(t *testing.T) {
	tripID := uuid.New()
	var gotText string
	h := newHTTPHandler(&mockPlanner{
		addPackingItem: func(_ context.Context, id uuid.UUID, text string) (board.PackingItem, error) {
			assert.Equal(t, tripID, id)
			gotText = text
			return board.PackingItem{ID: "p1", Text: text}, nil
		},
	})

	rec := do(h, http.MethodPost, boardPath(tripID, "packing"), bytesOf(`{"text":"Umbrella"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Umbrella", gotText)
	var item board.PackingItem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
	assert.Equal(t, "p1", item.ID)
	assert.False(t, item.Checked)
}

func TestAddPackingItem_blankText_returns422(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		addPackingItem: func(context.Context, uuid.UUID, string) (board.PackingItem, error) {
			return board.PackingItem{}, fmt.Errorf("%w: packing item text is required", domain.ErrValidation)
		},
	})

	rec := do(h, http.MethodPost, boardPath(uuid.New(), "packing"), bytesOf(`{"text":""}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "packing item text is required", decodeError(t, rec).Error.Message)
}

func TestTogglePackingItem_returnsChecklistWithProgress(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		togglePackingItem: func(_ context.Context, _ uuid.UUID, itemID string) ([]board.PackingItem, error) {
			items := board.PackingList(3)
			for i := range items {
				items[i].Checked = items[i].ID == itemID
			}
			return items, nil
		},
	})

	rec := do(h, http.MethodPost, boardPath(uuid.New(), "packing/item-4/toggle"), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.PackingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Items[4].Checked)
	assert.Equal(t, 10, body.Progress)
}

func TestTogglePackingItem_unknownItem_returns404(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		togglePackingItem: func(_ context.Context, _ uuid.UUID, itemID string) ([]board.PackingItem, error) {
			return nil, fmt.Errorf("packing item %s: %w", itemID, domain.ErrNotFound)
		},
	})

	rec := do(h, http.MethodPost, boardPath(uuid.New(), "packing/item-99/toggle"), nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "packing item item-99 not found", decodeError(t, rec).Error.Message)
}

func TestRemovePackingItem_returns204(t *testing.T) {
	var removed string
	h := newHTTPHandler(&mockPlanner{
		removePackingItem: func(_ context.Context, _ uuid.UUID, itemID string) error {
			removed = itemID
			return nil
		},
	})

	rec := do(h, http.MethodDelete, boardPath(uuid.New(), "packing/item-2"), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "item-2", removed)
}

// ---- tips ------------------------------------------------------------------

func TestListTips_emptyEncodesEmptyArray(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		tips: func(context.Context, uuid.UUID) ([]board.Tip, error) { return nil, nil },
	})

	rec := do(h, http.MethodGet, boardPath(uuid.New(), "tips"), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestAddTip_unknownField_returns422(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{})

	rec := do(h, http.MethodPost, boardPath(uuid.New(), "tips"), bytesOf(`{"text":"wrong key"}`))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAddTip_returns201(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		addTip: func(_ context.Context, _ uuid.UUID, content string) (board.Tip, error) {
			return board.Tip{ID: "t1", Content: content}, nil
		},
	})

	rec := do(h, http.MethodPost, boardPath(uuid.New(), "tips"), bytesOf(`{"content":"Cash only at temples"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"t1","content":"Cash only at temples","auto":false}`, rec.Body.String())
}

func TestRemoveTip_suggestion_returns422(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		removeTip: func(_ context.Context, _ uuid.UUID, id string) error {
			return fmt.Errorf("%w: tip %s is a suggestion and cannot be removed", domain.ErrValidation, id)
		},
	})

	rec := do(h, http.MethodDelete, boardPath(uuid.New(), "tips/auto-0"), nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "tip auto-0 is a suggestion and cannot be removed", decodeError(t, rec).Error.Message)
}

// ---- moodboard -------------------------------------------------------------

func TestAddMoodboardItem_returns201(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		addMoodboardItem: func(_ context.Context, _ uuid.UUID, url, title string) (board.MoodboardItem, error) {
			return board.MoodboardItem{ID: "m1", Kind: board.MoodKindOf(url), URL: url, Title: title}, nil
		},
	})

	rec := do(h, http.MethodPost, boardPath(uuid.New(), "moodboard"),
		bytesOf(`{"url":"https://example.com/fuji.jpg","title":"Fuji"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":"m1","type":"image","url":"https://example.com/fuji.jpg","title":"Fuji"}`, rec.Body.String())
}

func TestRemoveMoodboardItem_returns204(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		removeMoodboardItem: func(context.Context, uuid.UUID, string) error { return nil },
	})

	rec := do(h, http.MethodDelete, boardPath(uuid.New(), "moodboard/m1"), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestExtras_invalidTripID_returns422(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{})

	for _, target := range []string{"/trips/nope/tips", "/trips/nope/moodboard", "/trips/nope/packing/item-0/toggle"} {
		method := http.MethodGet
		if target == "/trips/nope/packing/item-0/toggle" {
			method = http.MethodPost
		}
		rec := do(h, method, target, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, target)
	}
}
