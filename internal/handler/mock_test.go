package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcanvas/internal/board"
	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/handler"
	"github.com/pkordes/tripcanvas/internal/planner"
	"github.com/pkordes/tripcanvas/internal/service"
)

// mockPlanner is a test double for handler.Planner.
// Set only the method fields your test needs.
type mockPlanner struct {
	workspace       func(ctx context.Context) planner.Workspace
	listTrips       func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int)
	getTrip         func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	createTrip      func(ctx context.Context, meta domain.TripMeta) (domain.Trip, error)
	updateTripField func(ctx context.Context, id uuid.UUID, field planner.TripField, value string) (domain.Trip, error)
	selectTrip      func(ctx context.Context, id uuid.UUID) error
	deleteTrip      func(ctx context.Context, id uuid.UUID) error

	listCards   func(ctx context.Context, tripID uuid.UUID) ([]domain.Card, error)
	createCard  func(ctx context.Context, tripID uuid.UUID, in domain.CardInput) (domain.Card, error)
	updateCard  func(ctx context.Context, tripID, cardID uuid.UUID, in domain.CardInput) (domain.Card, error)
	deleteCard  func(ctx context.Context, tripID, cardID uuid.UUID) error
	connect     func(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error)
	dragStart   func(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error)
	dragEnd     func(ctx context.Context, tripID, cardID uuid.UUID, delta domain.Position) (domain.Card, error)
	selectCard  func(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error)
	updateBoard func(ctx context.Context, tripID uuid.UUID, zoom *float64, view *planner.View) (service.BoardView, error)

	board    func(ctx context.Context, tripID uuid.UUID) (service.BoardView, error)
	timeline func(ctx context.Context, tripID uuid.UUID) ([]domain.Card, error)
	budget   func(ctx context.Context, tripID uuid.UUID) (board.BudgetSummary, error)
	balance  func(ctx context.Context, tripID uuid.UUID) (board.Balance, error)
	export   func(ctx context.Context) []domain.ExportRow

	packing             func(ctx context.Context, tripID uuid.UUID) ([]board.PackingItem, error)
	togglePackingItem   func(ctx context.Context, tripID uuid.UUID, itemID string) ([]board.PackingItem, error)
	addPackingItem      func(ctx context.Context, tripID uuid.UUID, text string) (board.PackingItem, error)
	removePackingItem   func(ctx context.Context, tripID uuid.UUID, itemID string) error
	tips                func(ctx context.Context, tripID uuid.UUID) ([]board.Tip, error)
	addTip              func(ctx context.Context, tripID uuid.UUID, content string) (board.Tip, error)
	removeTip           func(ctx context.Context, tripID uuid.UUID, tipID string) error
	moodboard           func(ctx context.Context, tripID uuid.UUID) ([]board.MoodboardItem, error)
	addMoodboardItem    func(ctx context.Context, tripID uuid.UUID, url, title string) (board.MoodboardItem, error)
	removeMoodboardItem func(ctx context.Context, tripID uuid.UUID, itemID string) error
}

func (m *mockPlanner) Workspace(ctx context.Context) planner.Workspace { return m.workspace(ctx) }
func (m *mockPlanner) ListTrips(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int) {
	return m.listTrips(ctx, p)
}
func (m *mockPlanner) GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getTrip(ctx, id)
}
func (m *mockPlanner) CreateTrip(ctx context.Context, meta domain.TripMeta) (domain.Trip, error) {
	return m.createTrip(ctx, meta)
}
func (m *mockPlanner) UpdateTripField(ctx context.Context, id uuid.UUID, f planner.TripField, v string) (domain.Trip, error) {
	return m.updateTripField(ctx, id, f, v)
}
func (m *mockPlanner) SelectTrip(ctx context.Context, id uuid.UUID) error { return m.selectTrip(ctx, id) }
func (m *mockPlanner) DeleteTrip(ctx context.Context, id uuid.UUID) error { return m.deleteTrip(ctx, id) }
func (m *mockPlanner) ListCards(ctx context.Context, tripID uuid.UUID) ([]domain.Card, error) {
	return m.listCards(ctx, tripID)
}
func (m *mockPlanner) CreateCard(ctx context.Context, tripID uuid.UUID, in domain.CardInput) (domain.Card, error) {
	return m.createCard(ctx, tripID, in)
}
func (m *mockPlanner) UpdateCard(ctx context.Context, tripID, cardID uuid.UUID, in domain.CardInput) (domain.Card, error) {
	return m.updateCard(ctx, tripID, cardID, in)
}
func (m *mockPlanner) DeleteCard(ctx context.Context, tripID, cardID uuid.UUID) error {
	return m.deleteCard(ctx, tripID, cardID)
}
func (m *mockPlanner) Connect(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error) {
	return m.connect(ctx, tripID, cardID)
}
func (m *mockPlanner) DragStart(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error) {
	return m.dragStart(ctx, tripID, cardID)
}
func (m *mockPlanner) DragEnd(ctx context.Context, tripID, cardID uuid.UUID, d domain.Position) (domain.Card, error) {
	return m.dragEnd(ctx, tripID, cardID, d)
}
func (m *mockPlanner) Select(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error) {
	return m.selectCard(ctx, tripID, cardID)
}
func (m *mockPlanner) UpdateBoard(ctx context.Context, tripID uuid.UUID, zoom *float64, view *planner.View) (service.BoardView, error) {
	return m.updateBoard(ctx, tripID, zoom, view)
}
func (m *mockPlanner) Board(ctx context.Context, tripID uuid.UUID) (service.BoardView, error) {
	return m.board(ctx, tripID)
}
func (m *mockPlanner) Timeline(ctx context.Context, tripID uuid.UUID) ([]domain.Card, error) {
	return m.timeline(ctx, tripID)
}
func (m *mockPlanner) Budget(ctx context.Context, tripID uuid.UUID) (board.BudgetSummary, error) {
	return m.budget(ctx, tripID)
}
func (m *mockPlanner) Balance(ctx context.Context, tripID uuid.UUID) (board.Balance, error) {
	return m.balance(ctx, tripID)
}
func (m *mockPlanner) Packing(ctx context.Context, tripID uuid.UUID) ([]board.PackingItem, error) {
	return m.packing(ctx, tripID)
}
func (m *mockPlanner) Export(ctx context.Context) []domain.ExportRow { return m.export(ctx) }
func (m *mockPlanner) TogglePackingItem(ctx context.Context, tripID uuid.UUID, itemID string) ([]board.PackingItem, error) {
	return m.togglePackingItem(ctx, tripID, itemID)
}
func (m *mockPlanner) AddPackingItem(ctx context.Context, tripID uuid.UUID, text string) (board.PackingItem, error) {
	return m.addPackingItem(ctx, tripID, text)
}
func (m *mockPlanner) RemovePackingItem(ctx context.Context, tripID uuid.UUID, itemID string) error {
	return m.removePackingItem(ctx, tripID, itemID)
}
func (m *mockPlanner) Tips(ctx context.Context, tripID uuid.UUID) ([]board.Tip, error) {
	return m.tips(ctx, tripID)
}
func (m *mockPlanner) AddTip(ctx context.Context, tripID uuid.UUID, content string) (board.Tip, error) {
	return m.addTip(ctx, tripID, content)
}
func (m *mockPlanner) RemoveTip(ctx context.Context, tripID uuid.UUID, tipID string) error {
	return m.removeTip(ctx, tripID, tipID)
}
func (m *mockPlanner) Moodboard(ctx context.Context, tripID uuid.UUID) ([]board.MoodboardItem, error) {
	return m.moodboard(ctx, tripID)
}
func (m *mockPlanner) AddMoodboardItem(ctx context.Context, tripID uuid.UUID, url, title string) (board.MoodboardItem, error) {
	return m.addMoodboardItem(ctx, tripID, url, title)
}
func (m *mockPlanner) RemoveMoodboardItem(ctx context.Context, tripID uuid.UUID, itemID string) error {
	return m.removeMoodboardItem(ctx, tripID, itemID)
}

// compile-time check: mockPlanner must satisfy handler.Planner.
var _ handler.Planner = (*mockPlanner)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into the chi router.
// This mirrors how main.go wires it in production, minus middleware.
func newHTTPHandler(p handler.Planner) http.Handler {
	return handler.NewServer(p, nil).Routes()
}

// do sends a request through h and returns the recorder.
func do(h http.Handler, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func tripFixture() domain.Trip {
	budget := 2500.0
	cost := 320.0
	return domain.Trip{
		ID:          uuid.New(),
		Name:        "Spring in Kyoto",
		Destination: "Kyoto",
		StartDate:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		Budget:      &budget,
		Cards: []domain.Card{{
			ID:       uuid.New(),
			Position: domain.DefaultPosition,
			Title:    "Ryokan",
			Cost:     &cost,
			Details:  domain.Stay{CheckIn: "2026-04-01", CheckOut: "2026-04-04", Location: "Gion"},
		}},
		CreatedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
}

// workspaceOf returns a workspace func with trips active on the first one.
func workspaceOf(trips ...domain.Trip) func(context.Context) planner.Workspace {
	return func(context.Context) planner.Workspace {
		return planner.NewWorkspace(trips, uuid.Nil)
	}
}

func bytesOf(s string) *bytes.Buffer {
	return bytes.NewBufferString(s)
}

func doRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
