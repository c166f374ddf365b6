// Package handler implements the HTTP handlers for the TripCanvas API.
// All handlers are methods on Server. Methods are split into resource-specific
// files (health.go, trip.go, card.go, board.go, extras.go, export.go) but
// share the same Server struct so they can reach its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/tripcanvas/internal/board"
	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/planner"
	"github.com/pkordes/tripcanvas/internal/service"
)

// Planner defines the planner operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the service or the store.
type Planner interface {
	Workspace(ctx context.Context) planner.Workspace
	ListTrips(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int)
	GetTrip(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	CreateTrip(ctx context.Context, meta domain.TripMeta) (domain.Trip, error)
	UpdateTripField(ctx context.Context, id uuid.UUID, field planner.TripField, value string) (domain.Trip, error)
	SelectTrip(ctx context.Context, id uuid.UUID) error
	DeleteTrip(ctx context.Context, id uuid.UUID) error

	ListCards(ctx context.Context, tripID uuid.UUID) ([]domain.Card, error)
	CreateCard(ctx context.Context, tripID uuid.UUID, in domain.CardInput) (domain.Card, error)
	UpdateCard(ctx context.Context, tripID, cardID uuid.UUID, in domain.CardInput) (domain.Card, error)
	DeleteCard(ctx context.Context, tripID, cardID uuid.UUID) error
	Connect(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error)
	DragStart(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error)
	DragEnd(ctx context.Context, tripID, cardID uuid.UUID, delta domain.Position) (domain.Card, error)
	Select(ctx context.Context, tripID, cardID uuid.UUID) (service.BoardView, error)
	UpdateBoard(ctx context.Context, tripID uuid.UUID, zoom *float64, view *planner.View) (service.BoardView, error)

	Board(ctx context.Context, tripID uuid.UUID) (service.BoardView, error)
	Timeline(ctx context.Context, tripID uuid.UUID) ([]domain.Card, error)
	Budget(ctx context.Context, tripID uuid.UUID) (board.BudgetSummary, error)
	Balance(ctx context.Context, tripID uuid.UUID) (board.Balance, error)
	Export(ctx context.Context) []domain.ExportRow

	Packing(ctx context.Context, tripID uuid.UUID) ([]board.PackingItem, error)
	TogglePackingItem(ctx context.Context, tripID uuid.UUID, itemID string) ([]board.PackingItem, error)
	AddPackingItem(ctx context.Context, tripID uuid.UUID, text string) (board.PackingItem, error)
	RemovePackingItem(ctx context.Context, tripID uuid.UUID, itemID string) error
	Tips(ctx context.Context, tripID uuid.UUID) ([]board.Tip, error)
	AddTip(ctx context.Context, tripID uuid.UUID, content string) (board.Tip, error)
	RemoveTip(ctx context.Context, tripID uuid.UUID, tipID string) error
	Moodboard(ctx context.Context, tripID uuid.UUID) ([]board.MoodboardItem, error)
	AddMoodboardItem(ctx context.Context, tripID uuid.UUID, url, title string) (board.MoodboardItem, error)
	RemoveMoodboardItem(ctx context.Context, tripID uuid.UUID, itemID string) error
}

// compile-time check: the concrete service must satisfy Planner.
var _ Planner = (*service.PlannerService)(nil)

// Server serves every API endpoint. Wire it in main.go via Routes.
type Server struct {
	planner Planner
	logger  *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default.
func NewServer(p Planner, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{planner: p, logger: logger}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// Routes mounts every endpoint on a fresh chi router. Middleware is applied
// by the caller so tests exercise the bare routes.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/workspace", s.GetWorkspace)
	r.Get("/export", s.GetExport)

	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)

		r.Route("/{tripId}", func(r chi.Router) {
			r.Get("/", s.GetTrip)
			r.Patch("/", s.UpdateTripField)
			r.Delete("/", s.DeleteTrip)
			r.Post("/select", s.SelectTrip)

			r.Get("/cards", s.ListCards)
			r.Post("/cards", s.CreateCard)
			r.Route("/cards/{cardId}", func(r chi.Router) {
				r.Put("/", s.UpdateCard)
				r.Delete("/", s.DeleteCard)
				r.Post("/connect", s.ConnectCard)
				r.Post("/drag-start", s.DragStart)
				r.Post("/drag-end", s.DragEnd)
				r.Post("/select", s.SelectCard)
			})
			r.Delete("/selection", s.ClearSelection)

			r.Get("/board", s.GetBoard)
			r.Put("/board", s.UpdateBoard)
			r.Get("/timeline", s.GetTimeline)
			r.Get("/budget", s.GetBudget)
			r.Get("/balance", s.GetBalance)

			r.Get("/packing", s.GetPacking)
			r.Post("/packing", s.AddPackingItem)
			r.Post("/packing/{itemId}/toggle", s.TogglePackingItem)
			r.Delete("/packing/{itemId}", s.RemovePackingItem)
			r.Get("/tips", s.ListTips)
			r.Post("/tips", s.AddTip)
			r.Delete("/tips/{itemId}", s.RemoveTip)
			r.Get("/moodboard", s.ListMoodboard)
			r.Post("/moodboard", s.AddMoodboardItem)
			r.Delete("/moodboard/{itemId}", s.RemoveMoodboardItem)
		})
	})

	return r
}
