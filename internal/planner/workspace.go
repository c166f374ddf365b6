// Package planner implements the state transitions of the trip planner:
// the Workspace (every trip plus the active-trip pointer), the Board
// (one trip's cards plus its interaction state) and a trip's Extras.
//
// All three are plain values. Every operation returns a new value and leaves its
// receiver untouched, so a snapshot handed to a reader never changes under it.
package planner

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/domain"
)

// Workspace is the full set of trips and which one is active.
// A workspace built through NewWorkspace always holds at least one trip.
type Workspace struct {
	Trips        []domain.Trip
	ActiveTripID uuid.UUID
}

// NewWorkspace returns a workspace holding trips. The active trip is
// activeID when it names one of trips, otherwise the first trip.
func NewWorkspace(trips []domain.Trip, activeID uuid.UUID) Workspace {
	ws := Workspace{Trips: slices.Clone(trips), ActiveTripID: activeID}
	if _, ok := ws.Trip(activeID); !ok && len(ws.Trips) > 0 {
		ws.ActiveTripID = ws.Trips[0].ID
	}
	return ws
}

// Trip returns the trip with the given ID.
func (w Workspace) Trip(id uuid.UUID) (domain.Trip, bool) {
	if i := w.index(id); i >= 0 {
		return w.Trips[i], true
	}
	return domain.Trip{}, false
}

// ActiveTrip returns the trip the active pointer names.
func (w Workspace) ActiveTrip() (domain.Trip, bool) {
	return w.Trip(w.ActiveTripID)
}

func (w Workspace) index(id uuid.UUID) int {
	return slices.IndexFunc(w.Trips, func(t domain.Trip) bool { return t.ID == id })
}

// CreateTrip appends a new trip with an empty card list and makes it active.
// Zero dates in meta default to today.
func (w Workspace) CreateTrip(id uuid.UUID, meta domain.TripMeta, now time.Time) (Workspace, domain.Trip) {
	today := truncateDay(now)
	trip := domain.Trip{
		ID:          id,
		Name:        meta.Name,
		Destination: meta.Destination,
		StartDate:   meta.StartDate,
		EndDate:     meta.EndDate,
		Cards:       []domain.Card{},
		Budget:      meta.Budget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if trip.StartDate.IsZero() {
		trip.StartDate = today
	}
	if trip.EndDate.IsZero() {
		trip.EndDate = today
	}

	next := Workspace{
		Trips:        append(slices.Clone(w.Trips), trip),
		ActiveTripID: trip.ID,
	}
	return next, trip
}

// DeleteTrip removes a trip and its cards. If it was active, the first
// remaining trip becomes active. Deleting the only trip fails with
// domain.ErrLastTrip and leaves the workspace as it was.
func (w Workspace) DeleteTrip(id uuid.UUID) (Workspace, error) {
	i := w.index(id)
	if i < 0 {
		return w, fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
	}
	if len(w.Trips) == 1 {
		return w, domain.ErrLastTrip
	}

	next := Workspace{
		Trips:        slices.Delete(slices.Clone(w.Trips), i, i+1),
		ActiveTripID: w.ActiveTripID,
	}
	if w.ActiveTripID == id {
		next.ActiveTripID = next.Trips[0].ID
	}
	return next, nil
}

// SelectTrip moves the active pointer. No trip is modified.
func (w Workspace) SelectTrip(id uuid.UUID) (Workspace, error) {
	if w.index(id) < 0 {
		return w, fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
	}
	return Workspace{Trips: w.Trips, ActiveTripID: id}, nil
}

// TripField names a trip metadata field that can be edited on its own.
type TripField string

const (
	FieldName        TripField = "name"
	FieldDestination TripField = "destination"
	FieldStartDate   TripField = "start_date"
	FieldEndDate     TripField = "end_date"
	FieldBudget      TripField = "budget"
)

// TripFields lists every editable field.
var TripFields = []TripField{FieldName, FieldDestination, FieldStartDate, FieldEndDate, FieldBudget}

// UpdateTripField replaces one metadata field of a trip.
//
// value is the field's text form: dates as YYYY-MM-DD, the budget as a
// non-negative number or "" to clear it.
func (w Workspace) UpdateTripField(id uuid.UUID, field TripField, value string, now time.Time) (Workspace, domain.Trip, error) {
	i := w.index(id)
	if i < 0 {
		return w, domain.Trip{}, fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
	}
	trip := w.Trips[i]

	switch field {
	case FieldName:
		trip.Name = value
	case FieldDestination:
		trip.Destination = value
	case FieldStartDate, FieldEndDate:
		d, err := time.Parse(time.DateOnly, strings.TrimSpace(value))
		if err != nil {
			return w, domain.Trip{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", domain.ErrValidation, field)
		}
		if field == FieldStartDate {
			trip.StartDate = d
		} else {
			trip.EndDate = d
		}
	case FieldBudget:
		budget, err := parseBudget(value)
		if err != nil {
			return w, domain.Trip{}, err
		}
		trip.Budget = budget
	default:
		return w, domain.Trip{}, fmt.Errorf("%w: unknown trip field %q", domain.ErrValidation, field)
	}
	trip.UpdatedAt = now

	return w.replace(i, trip), trip, nil
}

func parseBudget(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseFloat(value, 64)
	if err != nil || b < 0 {
		return nil, fmt.Errorf("%w: budget must be a non-negative number", domain.ErrValidation)
	}
	return &b, nil
}

// ReplaceCards swaps in a new card collection for a trip.
func (w Workspace) ReplaceCards(id uuid.UUID, cards []domain.Card, now time.Time) (Workspace, error) {
	i := w.index(id)
	if i < 0 {
		return w, fmt.Errorf("trip %s: %w", id, domain.ErrNotFound)
	}
	trip := w.Trips[i]
	trip.Cards = cards
	trip.UpdatedAt = now
	return w.replace(i, trip), nil
}

func (w Workspace) replace(i int, trip domain.Trip) Workspace {
	trips := slices.Clone(w.Trips)
	trips[i] = trip
	return Workspace{Trips: trips, ActiveTripID: w.ActiveTripID}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
