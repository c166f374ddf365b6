package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tripcanvas/internal/domain"
	"github.com/pkordes/tripcanvas/internal/handler"
	"github.com/pkordes/tripcanvas/internal/planner"
)

// ---- GET /workspace --------------------------------------------------------

func TestGetWorkspace_returnsActiveTripAndSummaries(t *testing.T) {
	trip := tripFixture()
	other := tripFixture()
	h := newHTTPHandler(&mockPlanner{workspace: workspaceOf(trip, other)})

	rec := do(h, http.MethodGet, "/workspace", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.WorkspaceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, trip.ID, body.ActiveTripID)
	require.Len(t, body.Trips, 2)
	assert.True(t, body.Trips[0].Active)
	assert.False(t, body.Trips[1].Active)
	assert.Equal(t, 10, body.Trips[0].Days)
	assert.Equal(t, 1, body.Trips[0].CardCount)
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_passesPaginationAndReportsTotal(t *testing.T) {
	trip := tripFixture()
	var got domain.PaginationParams
	h := newHTTPHandler(&mockPlanner{
		workspace: workspaceOf(trip),
		listTrips: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int) {
			got = p
			return []domain.Trip{trip}, 41
		},
	})

	rec := do(h, http.MethodGet, "/trips?page=3&limit=500", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 100}, got)

	var body handler.TripListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Spring in Kyoto", body.Data[0].Name)
	assert.Equal(t, handler.Pagination{Page: 3, Limit: 100, Total: 41}, body.Pagination)
}

func TestListTrips_defaultsWithoutQuery(t *testing.T) {
	var got domain.PaginationParams
	h := newHTTPHandler(&mockPlanner{
		workspace: workspaceOf(tripFixture()),
		listTrips: func(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int) {
			got = p
			return nil, 0
		},
	})

	rec := do(h, http.MethodGet, "/trips", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, got)
	assert.JSONEq(t, `{"data":[],"pagination":{"page":1,"limit":20,"total":0}}`, rec.Body.String())
}

func TestListTrips_malformedPage_returns422(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{})

	rec := do(h, http.MethodGet, "/trips?page=abc", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_returns201WithActiveTrip(t *testing.T) {
	var got domain.TripMeta
	h := newHTTPHandler(&mockPlanner{
		createTrip: func(_ context.Context, meta domain.TripMeta) (domain.Trip, error) {
			got = meta
			trip := tripFixture()
			trip.Name, trip.Destination = meta.Name, meta.Destination
			trip.StartDate, trip.EndDate = meta.StartDate, meta.EndDate
			return trip, nil
		},
	})

	rec := do(h, http.MethodPost, "/trips", jsonBody(t, map[string]any{
		"name":        "Lisbon Long Weekend",
		"destination": "Lisbon",
		"start_date":  "2026-09-04",
		"end_date":    "2026-09-07",
		"budget":      900,
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Lisbon", got.Destination)
	assert.Equal(t, time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC), got.StartDate)
	require.NotNil(t, got.Budget)
	assert.Equal(t, 900.0, *got.Budget)

	var body handler.TripResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.Active)
	assert.Equal(t, "2026-09-07", body.EndDate.String())
	assert.Equal(t, 4, body.Days)
}

func TestCreateTrip_omittedDatesStayZero(t *testing.T) {
	var got domain.TripMeta
	h := newHTTPHandler(&mockPlanner{
		createTrip: func(_ context.Context, meta domain.TripMeta) (domain.Trip, error) {
			got = meta
			return tripFixture(), nil
		},
	})

	rec := do(h, http.MethodPost, "/trips", jsonBody(t, map[string]any{"name": "X", "destination": "Y"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, got.StartDate.IsZero())
	assert.True(t, got.EndDate.IsZero())
	assert.Nil(t, got.Budget)
}

func TestCreateTrip_validationError_returns422(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		createTrip: func(context.Context, domain.TripMeta) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: Name is required", domain.ErrValidation)
		},
	})

	rec := do(h, http.MethodPost, "/trips", jsonBody(t, map[string]any{"destination": "Nowhere"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "validation_error", body.Error.Code)
	assert.Equal(t, "Name is required", body.Error.Message)
}

func TestCreateTrip_malformedBody_returns422(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{})

	for name, body := range map[string]string{
		"not json":      `{"name":`,
		"unknown field": `{"name":"a","destination":"b","notes":"c"}`,
		"bad date":      `{"name":"a","destination":"b","start_date":"June 1st"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(h, http.MethodPost, "/trips", bytesOf(body))
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "validation_error", decodeError(t, rec).Error.Code)
		})
	}
}

func TestCreateTrip_unexpectedError_returns500(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		createTrip: func(context.Context, domain.TripMeta) (domain.Trip, error) {
			return domain.Trip{}, errors.New("connection refused")
		},
	})

	rec := do(h, http.MethodPost, "/trips", jsonBody(t, map[string]any{"name": "a", "destination": "b"}))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "internal_error", body.Error.Code)
	assert.NotContains(t, body.Error.Message, "connection refused")
}

// ---- GET /trips/{tripId} ---------------------------------------------------

func TestGetTrip_notFound_returns404(t *testing.T) {
	id := uuid.New()
	h := newHTTPHandler(&mockPlanner{
		getTrip: func(_ context.Context, got uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("trip %s: %w", got, domain.ErrNotFound)
		},
	})

	rec := do(h, http.MethodGet, "/trips/"+id.String(), nil)

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "not_found", body.Error.Code)
	assert.Equal(t, "trip "+id.String()+" not found", body.Error.Message)
}

func TestGetTrip_invalidID_returns422(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{})

	rec := do(h, http.MethodGet, "/trips/not-a-uuid", nil)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetTrip_returnsTrip(t *testing.T) {
	trip := tripFixture()
	h := newHTTPHandler(&mockPlanner{
		workspace: workspaceOf(trip),
		getTrip: func(_ context.Context, id uuid.UUID) (domain.Trip, error) {
			assert.Equal(t, trip.ID, id)
			return trip, nil
		},
	})

	rec := do(h, http.MethodGet, "/trips/"+trip.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.TripResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, trip.ID, body.ID)
	assert.Equal(t, "2026-04-01", body.StartDate.String())
	require.NotNil(t, body.Budget)
	assert.Equal(t, 2500.0, *body.Budget)
}

// ---- PATCH /trips/{tripId} -------------------------------------------------

func TestUpdateTripField_flattensValue(t *testing.T) {
	trip := tripFixture()
	tests := []struct {
		name  string
		body  string
		field planner.TripField
		value string
	}{
		{"string", `{"field":"name","value":"Kyoto & Osaka"}`, planner.FieldName, "Kyoto & Osaka"},
		{"number", `{"field":"budget","value":1200.5}`, planner.FieldBudget, "1200.5"},
		{"null clears", `{"field":"budget","value":null}`, planner.FieldBudget, ""},
		{"date", `{"field":"end_date","value":"2026-04-12"}`, planner.FieldEndDate, "2026-04-12"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotField planner.TripField
			var gotValue string
			h := newHTTPHandler(&mockPlanner{
				workspace: workspaceOf(trip),
				updateTripField: func(_ context.Context, _ uuid.UUID, f planner.TripField, v string) (domain.Trip, error) {
					gotField, gotValue = f, v
					return trip, nil
				},
			})

			rec := do(h, http.MethodPatch, "/trips/"+trip.ID.String(), bytesOf(tc.body))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.field, gotField)
			assert.Equal(t, tc.value, gotValue)
		})
	}
}

func TestUpdateTripField_objectValue_returns422(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{})

	rec := do(h, http.MethodPatch, "/trips/"+uuid.NewString(), bytesOf(`{"field":"name","value":{"a":1}}`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- DELETE /trips/{tripId} ------------------------------------------------

func TestDeleteTrip_returns204(t *testing.T) {
	id := uuid.New()
	var deleted uuid.UUID
	h := newHTTPHandler(&mockPlanner{
		deleteTrip: func(_ context.Context, got uuid.UUID) error {
			deleted = got
			return nil
		},
	})

	rec := do(h, http.MethodDelete, "/trips/"+id.String(), nil)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, id, deleted)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_lastTrip_returns409(t *testing.T) {
	h := newHTTPHandler(&mockPlanner{
		deleteTrip: func(context.Context, uuid.UUID) error { return domain.ErrLastTrip },
	})

	rec := do(h, http.MethodDelete, "/trips/"+uuid.NewString(), nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeError(t, rec).Error.Code)
}

// ---- POST /trips/{tripId}/select -------------------------------------------

func TestSelectTrip_returnsWorkspace(t *testing.T) {
	first, second := tripFixture(), tripFixture()
	active := first.ID
	h := newHTTPHandler(&mockPlanner{
		selectTrip: func(_ context.Context, id uuid.UUID) error {
			active = id
			return nil
		},
		workspace: func(context.Context) planner.Workspace {
			return planner.NewWorkspace([]domain.Trip{first, second}, active)
		},
	})

	rec := do(h, http.MethodPost, "/trips/"+second.ID.String()+"/select", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body handler.WorkspaceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, second.ID, body.ActiveTripID)
}
