// Package service contains the business logic for the TripCanvas planner.
// PlannerService owns the live workspace, validates inputs, applies every
// event atomically and writes changed trips through to the store.
// No SQL lives here; the service depends on the repo interface, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/board"
	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/metrics"
	"github.com/pkordes/tripcanvas/internal/planner"
	"github.com/pkordes/tripcanvas/internal/repo"
)

// PlannerService serialises planner events. Each event runs under one lock
// against a complete workspace snapshot; the resulting workspace is written
// to the store (when one is configured) before it replaces the current one,
// so readers never observe a half-applied or unsaved change.
type PlannerService struct {
	mu          sync.Mutex
	ws          planner.Workspace
	interaction map[uuid.UUID]planner.Interaction
	extras      map[uuid.UUID]planner.Extras

	store    repo.TripRepo
	logger   *slog.Logger
	now      func() time.Time
	newID    func() uuid.UUID
	validate *validator.Validate
}

// Option configures a PlannerService.
type Option func(*PlannerService)

// WithStore makes the service load trips from r and write every change
// through to it. Without a store the workspace lives in memory only.
func WithStore(r repo.TripRepo) Option {
	return func(s *PlannerService) { s.store = r }
}

// WithLogger sets the logger used for event and store logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *PlannerService) { s.logger = l }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *PlannerService) { s.now = now }
}

// WithIDs overrides the trip and card ID generator.
func WithIDs(newID func() uuid.UUID) Option {
	return func(s *PlannerService) { s.newID = newID }
}

// NewPlannerService constructs a PlannerService. Call Load before use.
func NewPlannerService(opts ...Option) *PlannerService {
	s := &PlannerService{
		interaction: make(map[uuid.UUID]planner.Interaction),
		extras:      make(map[uuid.UUID]planner.Extras),
		logger:      slog.Default(),
		now:         time.Now,
		newID:       func() uuid.UUID { return uuid.Must(uuid.NewV7()) },
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fills the workspace from the store. An empty store, or no store at
// all, starts with the default trip so that the workspace is never empty.
func (s *PlannerService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		trips  []domain.Trip
		active uuid.UUID
	)
	if s.store != nil {
		var err error
		if trips, err = s.store.List(ctx); err != nil {
			return fmt.Errorf("service.PlannerService.Load: %w", err)
		}
		active, err = s.store.ActiveID(ctx)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("service.PlannerService.Load: %w", err)
		}
	}

	if len(trips) == 0 {
		ws, trip := planner.Workspace{}.CreateTrip(s.newID(), domain.DefaultTripMeta(), s.now())
		if err := s.persist(ctx, planner.Workspace{}, ws, trip.ID); err != nil {
			return fmt.Errorf("service.PlannerService.Load: seed: %w", err)
		}
		s.swap(ws)
		s.logger.Info("workspace seeded with default trip", "trip_id", trip.ID)
		return nil
	}

	ws := planner.NewWorkspace(trips, active)
	if ws.ActiveTripID != active {
		if err := s.store.SetActive(ctx, ws.ActiveTripID); err != nil {
			return fmt.Errorf("service.PlannerService.Load: active fallback: %w", err)
		}
		s.logger.Warn("stored active trip missing, falling back to first trip", "active_trip_id", ws.ActiveTripID)
	}
	s.swap(ws)
	s.logger.Info("workspace loaded", "trips", len(trips), "active_trip_id", s.ws.ActiveTripID)
	return nil
}

// ---- Trip container --------------------------------------------------------

// Workspace returns the current workspace snapshot.
func (s *PlannerService) Workspace(_ context.Context) planner.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ws
}

// ListTrips returns one page of trips in workspace order and the total count.
func (s *PlannerService) ListTrips(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start, end := p.Window(len(s.ws.Trips))
	return s.ws.Trips[start:end:end], len(s.ws.Trips)
}

// GetTrip returns a single trip.
func (s *PlannerService) GetTrip(_ context.Context, id uuid.UUID) (domain.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip(id)
}

// CreateTrip validates meta and adds a new, active trip.
// Name and destination are required; zero dates default to today.
func (s *PlannerService) CreateTrip(ctx context.Context, meta domain.TripMeta) (domain.Trip, error) {
	const event = "create_trip"
	if err := s.check(meta); err != nil {
		return domain.Trip{}, s.record(event, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, trip := s.ws.CreateTrip(s.newID(), meta, s.now())
	if err := s.commit(ctx, event, next, trip.ID, uuid.Nil); err != nil {
		return domain.Trip{}, err
	}
	return trip, nil
}

// UpdateTripField replaces one metadata field of a trip.
func (s *PlannerService) UpdateTripField(ctx context.Context, id uuid.UUID, field planner.TripField, value string) (domain.Trip, error) {
	const event = "update_trip_field"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, trip, err := s.ws.UpdateTripField(id, field, value, s.now())
	if err != nil {
		return domain.Trip{}, s.record(event, err)
	}
	if err := s.commit(ctx, event, next, id, uuid.Nil); err != nil {
		return domain.Trip{}, err
	}
	return trip, nil
}

// SelectTrip makes a trip the active one.
func (s *PlannerService) SelectTrip(ctx context.Context, id uuid.UUID) error {
	const event = "select_trip"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.ws.SelectTrip(id)
	if err != nil {
		return s.record(event, err)
	}
	return s.commit(ctx, event, next, id, uuid.Nil)
}

// DeleteTrip removes a trip and its cards. The last trip cannot be deleted.
func (s *PlannerService) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	const event = "delete_trip"
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.ws.DeleteTrip(id)
	if err != nil {
		return s.record(event, err)
	}
	if err := s.commit(ctx, event, next, id, uuid.Nil); err != nil {
		return err
	}
	delete(s.interaction, id)
	delete(s.extras, id)
	return nil
}

// ---- Cards and interaction -------------------------------------------------

// ListCards returns a trip's cards in collection order.
func (s *PlannerService) ListCards(ctx context.Context, tripID uuid.UUID) ([]domain.Card, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return trip.Cards, nil
}

// CreateCard validates in and appends a new card to a trip. Missing
// type-specific fields are not an error; they take empty defaults.
func (s *PlannerService) CreateCard(ctx context.Context, tripID uuid.UUID, in domain.CardInput) (domain.Card, error) {
	const event = "create_card"
	if err := s.check(in); err != nil {
		return domain.Card{}, s.record(event, err)
	}

	var created domain.Card
	id := s.newID()
	_, err := s.boardEvent(ctx, event, tripID, id, func(b planner.Board) (planner.Board, error) {
		next, c, err := b.CreateCard(id, in)
		created = c
		return next, err
	})
	return created, err
}

// UpdateCard replaces a card's fields with in. The card type cannot change.
func (s *PlannerService) UpdateCard(ctx context.Context, tripID, cardID uuid.UUID, in domain.CardInput) (domain.Card, error) {
	const event = "update_card"
	if err := s.check(in); err != nil {
		return domain.Card{}, s.record(event, err)
	}

	var updated domain.Card
	_, err := s.boardEvent(ctx, event, tripID, cardID, func(b planner.Board) (planner.Board, error) {
		next, c, err := b.UpdateCard(cardID, in)
		updated = c
		return next, err
	})
	return updated, err
}

// DeleteCard removes a card. Connections to it from other cards remain.
func (s *PlannerService) DeleteCard(ctx context.Context, tripID, cardID uuid.UUID) error {
	_, err := s.boardEvent(ctx, "delete_card", tripID, cardID, func(b planner.Board) (planner.Board, error) {
		return b.DeleteCard(cardID)
	})
	return err
}

// Connect feeds a click on a card into the trip's pending-connection state machine.
func (s *PlannerService) Connect(ctx context.Context, tripID, cardID uuid.UUID) (BoardView, error) {
	return s.boardEvent(ctx, "connect", tripID, cardID, func(b planner.Board) (planner.Board, error) {
		return b.Connect(cardID)
	})
}

// DragStart marks a card as being dragged.
func (s *PlannerService) DragStart(ctx context.Context, tripID, cardID uuid.UUID) (BoardView, error) {
	return s.boardEvent(ctx, "drag_start", tripID, cardID, func(b planner.Board) (planner.Board, error) {
		return b.DragStart(cardID)
	})
}

// DragEnd moves a card by a screen-space delta.
func (s *PlannerService) DragEnd(ctx context.Context, tripID, cardID uuid.UUID, delta domain.Position) (domain.Card, error) {
	var moved domain.Card
	_, err := s.boardEvent(ctx, "drag_end", tripID, cardID, func(b planner.Board) (planner.Board, error) {
		next, c, err := b.DragEnd(cardID, delta)
		moved = c
		return next, err
	})
	return moved, err
}

// Select marks a card as selected; uuid.Nil clears the selection.
func (s *PlannerService) Select(ctx context.Context, tripID, cardID uuid.UUID) (BoardView, error) {
	return s.boardEvent(ctx, "select", tripID, cardID, func(b planner.Board) (planner.Board, error) {
		return b.Select(cardID)
	})
}

// SetZoom sets a trip's board zoom factor.
func (s *PlannerService) SetZoom(ctx context.Context, tripID uuid.UUID, zoom float64) (BoardView, error) {
	return s.boardEvent(ctx, "set_zoom", tripID, uuid.Nil, func(b planner.Board) (planner.Board, error) {
		return b.SetZoom(zoom)
	})
}

// SetView switches a trip between board and timeline layout.
func (s *PlannerService) SetView(ctx context.Context, tripID uuid.UUID, view planner.View) (BoardView, error) {
	return s.boardEvent(ctx, "set_view", tripID, uuid.Nil, func(b planner.Board) (planner.Board, error) {
		return b.SetView(view)
	})
}

// UpdateBoard applies a zoom and a view change as one event. A nil argument
// leaves that setting alone; if either value is rejected neither is applied.
func (s *PlannerService) UpdateBoard(ctx context.Context, tripID uuid.UUID, zoom *float64, view *planner.View) (BoardView, error) {
	return s.boardEvent(ctx, "update_board", tripID, uuid.Nil, func(b planner.Board) (planner.Board, error) {
		next := b
		var err error
		if zoom != nil {
			if next, err = next.SetZoom(*zoom); err != nil {
				return b, err
			}
		}
		if view != nil {
			if next, err = next.SetView(*view); err != nil {
				return b, err
			}
		}
		return next, nil
	})
}

// ---- Derived views ---------------------------------------------------------

// BoardView is a trip's board as the client renders it: cards, the geometry
// of their connections and the interaction state.
type BoardView struct {
	TripID  uuid.UUID
	Cards   []domain.Card
	Threads []board.Thread
	State   planner.Interaction
}

// Board returns the board view of a trip.
func (s *PlannerService) Board(_ context.Context, tripID uuid.UUID) (BoardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.trip(tripID)
	if err != nil {
		return BoardView{}, err
	}
	return boardView(tripID, planner.Board{Cards: trip.Cards, State: s.state(tripID)}), nil
}

// Timeline returns a trip's cards ordered top to bottom.
func (s *PlannerService) Timeline(ctx context.Context, tripID uuid.UUID) ([]domain.Card, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return board.Timeline(trip.Cards), nil
}

// Budget summarises a trip's spending against its budget.
func (s *PlannerService) Budget(ctx context.Context, tripID uuid.UUID) (board.BudgetSummary, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return board.BudgetSummary{}, err
	}
	return board.Budget(trip.Cards, trip.Budget), nil
}

// Balance scores how packed a trip's plan is.
func (s *PlannerService) Balance(ctx context.Context, tripID uuid.UUID) (board.Balance, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return board.Balance{}, err
	}
	return board.DayBalance(trip.Cards), nil
}

// ---- Packing, tips and moodboard -------------------------------------------

// Packing returns a trip's packing checklist. Until the first change to its
// extras a trip gets the default list for its length; changed extras are kept
// in memory for the life of the process.
func (s *PlannerService) Packing(_ context.Context, tripID uuid.UUID) ([]board.PackingItem, error) {
	e, err := s.extrasOf(tripID)
	return e.Packing, err
}

// TogglePackingItem flips one item and returns the whole checklist.
func (s *PlannerService) TogglePackingItem(ctx context.Context, tripID uuid.UUID, itemID string) ([]board.PackingItem, error) {
	e, err := s.extrasEvent(ctx, "toggle_packing_item", tripID, func(e planner.Extras) (planner.Extras, error) {
		next, _, err := e.TogglePacking(itemID)
		return next, err
	})
	return e.Packing, err
}

// AddPackingItem appends an unchecked item to a trip's checklist.
func (s *PlannerService) AddPackingItem(ctx context.Context, tripID uuid.UUID, text string) (board.PackingItem, error) {
	var added board.PackingItem
	_, err := s.extrasEvent(ctx, "add_packing_item", tripID, func(e planner.Extras) (planner.Extras, error) {
		next, item, err := e.AddPacking(s.newID().String(), text)
		added = item
		return next, err
	})
	return added, err
}

// RemovePackingItem deletes an item from a trip's checklist.
func (s *PlannerService) RemovePackingItem(ctx context.Context, tripID uuid.UUID, itemID string) error {
	_, err := s.extrasEvent(ctx, "remove_packing_item", tripID, func(e planner.Extras) (planner.Extras, error) {
		return e.RemovePacking(itemID)
	})
	return err
}

// Tips returns a trip's local tips, suggestions first.
func (s *PlannerService) Tips(_ context.Context, tripID uuid.UUID) ([]board.Tip, error) {
	e, err := s.extrasOf(tripID)
	return e.Tips, err
}

// AddTip appends a user tip to a trip.
func (s *PlannerService) AddTip(ctx context.Context, tripID uuid.UUID, content string) (board.Tip, error) {
	var added board.Tip
	_, err := s.extrasEvent(ctx, "add_tip", tripID, func(e planner.Extras) (planner.Extras, error) {
		next, tip, err := e.AddTip(s.newID().String(), content)
		added = tip
		return next, err
	})
	return added, err
}

// RemoveTip deletes a user tip. Suggested tips are rejected.
func (s *PlannerService) RemoveTip(ctx context.Context, tripID uuid.UUID, tipID string) error {
	_, err := s.extrasEvent(ctx, "remove_tip", tripID, func(e planner.Extras) (planner.Extras, error) {
		return e.RemoveTip(tipID)
	})
	return err
}

// Moodboard returns a trip's pinned inspiration URLs.
func (s *PlannerService) Moodboard(_ context.Context, tripID uuid.UUID) ([]board.MoodboardItem, error) {
	e, err := s.extrasOf(tripID)
	return e.Moodboard, err
}

// AddMoodboardItem pins a URL to a trip's moodboard.
func (s *PlannerService) AddMoodboardItem(ctx context.Context, tripID uuid.UUID, url, title string) (board.MoodboardItem, error) {
	var added board.MoodboardItem
	_, err := s.extrasEvent(ctx, "add_moodboard_item", tripID, func(e planner.Extras) (planner.Extras, error) {
		next, item, err := e.AddMoodboardItem(s.newID().String(), url, title)
		added = item
		return next, err
	})
	return added, err
}

// RemoveMoodboardItem unpins an entry from a trip's moodboard.
func (s *PlannerService) RemoveMoodboardItem(ctx context.Context, tripID uuid.UUID, itemID string) error {
	_, err := s.extrasEvent(ctx, "remove_moodboard_item", tripID, func(e planner.Extras) (planner.Extras, error) {
		return e.RemoveMoodboardItem(itemID)
	})
	return err
}

// Export returns one ExportRow per card across all trips.
// Trips with no cards contribute one row with empty card fields.
func (s *PlannerService) Export(_ context.Context) []domain.ExportRow {
	s.mu.Lock()
	trips := s.ws.Trips
	s.mu.Unlock()

	var rows []domain.ExportRow
	for _, t := range trips {
		base := domain.ExportRow{
			TripID:          t.ID.String(),
			TripName:        t.Name,
			TripDestination: t.Destination,
			TripStartDate:   t.StartDate.Format(time.DateOnly),
			TripEndDate:     t.EndDate.Format(time.DateOnly),
			TripBudget:      t.Budget,
		}
		if len(t.Cards) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, c := range t.Cards {
			row := base
			row.CardID = c.ID.String()
			row.CardType = string(c.Type())
			row.CardTitle = c.Title
			row.CardCost = c.Cost
			row.Location = c.Location()
			row.PositionX = c.Position.X
			row.PositionY = c.Position.Y
			for _, id := range c.Connections {
				row.Connections = append(row.Connections, id.String())
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// ---- internals -------------------------------------------------------------

// boardEvent applies fn to a trip's board under the lock. When the card
// collection changed, the trip is written through before the new state is
// swapped in. cardID is only used for logging.
func (s *PlannerService) boardEvent(ctx context.Context, event string, tripID, cardID uuid.UUID, fn func(planner.Board) (planner.Board, error)) (BoardView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.trip(tripID)
	if err != nil {
		return BoardView{}, s.record(event, err)
	}
	current := planner.Board{Cards: trip.Cards, State: s.state(tripID)}

	next, err := fn(current)
	if err != nil {
		return BoardView{}, s.record(event, err)
	}

	if !sameCards(current.Cards, next.Cards) {
		ws, err := s.ws.ReplaceCards(tripID, next.Cards, s.now())
		if err != nil {
			return BoardView{}, s.record(event, err)
		}
		if err := s.commit(ctx, event, ws, tripID, cardID); err != nil {
			return BoardView{}, err
		}
	} else {
		s.record(event, nil)
		s.logger.DebugContext(ctx, "event applied", "event", event, "trip_id", tripID, "card_id", cardID)
	}
	s.interaction[tripID] = next.State
	return boardView(tripID, next), nil
}

// extrasEvent applies fn to a trip's extras under the lock. Extras are not
// written to the store.
func (s *PlannerService) extrasEvent(ctx context.Context, event string, tripID uuid.UUID, fn func(planner.Extras) (planner.Extras, error)) (planner.Extras, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.trip(tripID)
	if err != nil {
		return planner.Extras{}, s.record(event, err)
	}
	next, err := fn(s.extrasFor(trip))
	if err != nil {
		return planner.Extras{}, s.record(event, err)
	}
	s.extras[tripID] = next
	s.record(event, nil)
	s.logger.DebugContext(ctx, "event applied", "event", event, "trip_id", tripID)
	return next, nil
}

// extrasOf returns a trip's extras under the lock.
func (s *PlannerService) extrasOf(tripID uuid.UUID) (planner.Extras, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trip, err := s.trip(tripID)
	if err != nil {
		return planner.Extras{}, err
	}
	return s.extrasFor(trip), nil
}

// extrasFor returns the stored extras of trip, or a fresh seed. Callers hold s.mu.
func (s *PlannerService) extrasFor(trip domain.Trip) planner.Extras {
	if e, ok := s.extras[trip.ID]; ok {
		return e
	}
	return planner.NewExtras(trip.Days())
}

// commit persists next, then makes it the current workspace.
// Callers hold s.mu.
func (s *PlannerService) commit(ctx context.Context, event string, next planner.Workspace, tripID, cardID uuid.UUID) error {
	if err := s.persist(ctx, s.ws, next, tripID); err != nil {
		s.logger.ErrorContext(ctx, "store write failed", "event", event, "trip_id", tripID, "error", err)
		return s.record(event, fmt.Errorf("service.PlannerService: %s: %w", event, err))
	}
	s.swap(next)
	s.record(event, nil)
	s.logger.DebugContext(ctx, "event applied", "event", event, "trip_id", tripID, "card_id", cardID)
	return nil
}

// persist writes the difference between prev and next for one trip:
// a save when the trip exists in next, a delete when it disappeared, and the
// active flag when the pointer moved.
func (s *PlannerService) persist(ctx context.Context, prev, next planner.Workspace, tripID uuid.UUID) error {
	if s.store == nil {
		return nil
	}
	start := time.Now()
	defer func() { metrics.StoreWriteDuration.Observe(time.Since(start).Seconds()) }()

	if trip, ok := next.Trip(tripID); ok {
		if old, existed := prev.Trip(tripID); !existed || !sameTrip(old, trip) {
			if err := s.store.Save(ctx, trip); err != nil {
				return err
			}
		}
	} else if _, existed := prev.Trip(tripID); existed {
		if err := s.store.Delete(ctx, tripID); err != nil {
			return err
		}
	}
	if prev.ActiveTripID != next.ActiveTripID {
		if err := s.store.SetActive(ctx, next.ActiveTripID); err != nil {
			return err
		}
	}
	return nil
}

func (s *PlannerService) swap(ws planner.Workspace) {
	s.ws = ws
	cards := 0
	for _, t := range ws.Trips {
		cards += len(t.Cards)
	}
	metrics.Trips.Set(float64(len(ws.Trips)))
	metrics.Cards.Set(float64(cards))
}

func (s *PlannerService) trip(id uuid.UUID) (domain.Trip, error) {
	trip, ok := s.ws.Trip(id)
	if !ok {
		return domain.Trip{}, fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
	}
	return trip, nil
}

func (s *PlannerService) state(tripID uuid.UUID) planner.Interaction {
	if st, ok := s.interaction[tripID]; ok {
		return st
	}
	return planner.NewInteraction()
}

// check runs struct validation and folds the field errors into one
// domain.ErrValidation.
func (s *PlannerService) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed rule %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed rule %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

// record counts an event outcome and returns err unchanged.
func (s *PlannerService) record(event string, err error) error {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrLastTrip):
		outcome = metrics.OutcomeRejected
	default:
		outcome = metrics.OutcomeError
	}
	metrics.PlannerEventsTotal.WithLabelValues(event, outcome).Inc()
	return err
}

func boardView(tripID uuid.UUID, b planner.Board) BoardView {
	return BoardView{TripID: tripID, Cards: b.Cards, Threads: board.Threads(b.Cards), State: b.State}
}

// sameCards reports whether two card slices share the same backing array and
// length. Board operations never modify cards in place, so this tells
// whether an operation produced a new collection.
func sameCards(a, b []domain.Card) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// sameTrip reports whether b is a's value unchanged. Budget is compared by
// pointer: UpdateTripField always allocates a new one.
func sameTrip(a, b domain.Trip) bool {
	return a.Name == b.Name &&
		a.Destination == b.Destination &&
		a.StartDate.Equal(b.StartDate) &&
		a.EndDate.Equal(b.EndDate) &&
		a.Budget == b.Budget &&
		sameCards(a.Cards, b.Cards)
}
