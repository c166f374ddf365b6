// Package domain contains the core data types for the TripCanvas planner.
// It depends only on google/uuid and is imported by every other internal
// package (board, planner, service, repo, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a named collection of cards plus its date range and budget.
// A trip owns its cards: deleting the trip discards them. The order of Cards
// carries no meaning beyond being the tiebreak for the timeline view.
// Budget is nil when no budget has been set.
type Trip struct {
	ID          uuid.UUID
	Name        string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Cards       []Card
	Budget      *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Days returns the inclusive number of calendar days the trip spans.
// A trip that starts and ends on the same day lasts one day; an end date
// before the start date yields zero.
func (t Trip) Days() int {
	start := t.StartDate.Truncate(24 * time.Hour)
	end := t.EndDate.Truncate(24 * time.Hour)
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Card returns the card with the given ID.
func (t Trip) Card(id uuid.UUID) (Card, bool) {
	for _, c := range t.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// TripMeta carries the fields a user supplies when creating a trip.
// Zero dates default to today.
type TripMeta struct {
	Name        string    `validate:"required"`
	Destination string    `validate:"required"`
	StartDate   time.Time
	EndDate     time.Time
	Budget      *float64 `validate:"omitempty,gte=0"`
}

// DefaultTripMeta describes the trip every fresh workspace starts with.
func DefaultTripMeta() TripMeta {
	budget := 5000.0
	return TripMeta{
		Name:        "Dream Vacation",
		Destination: "Paris & Tokyo",
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Budget:      &budget,
	}
}
