// Package repo contains all database access logic for the TripCanvas planner.
// A trip is stored as an aggregate: one row in trips plus one row per card,
// each card row holding the card's JSON document. Postgres and SQLite
// implementations share the TripRepo interface.
// No business logic lives here; only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tripcanvas/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup. Begin on a pgx.Tx opens a
// savepoint, so Save stays atomic in both cases.
type db interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for trip aggregates.
// The service layer depends on this interface, not a concrete implementation,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Save inserts or replaces a trip together with its full card collection.
	// Card order is preserved.
	Save(ctx context.Context, trip domain.Trip) error

	// GetByID retrieves a single trip and its cards.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns every trip with its cards, oldest first.
	List(ctx context.Context) ([]domain.Trip, error)

	// Delete removes a trip and its cards. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ActiveID returns the trip marked active. Returns domain.ErrNotFound if none is.
	ActiveID(ctx context.Context) (uuid.UUID, error)

	// SetActive marks one trip active and every other trip inactive.
	// Returns domain.ErrNotFound if the trip does not exist.
	SetActive(ctx context.Context, id uuid.UUID) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Save upserts the trip row and rewrites its cards inside one transaction.
func (r *pgTripRepo) Save(ctx context.Context, trip domain.Trip) error {
	const upsertTrip = `
		INSERT INTO trips (id, name, destination, start_date, end_date, budget, created_at, updated_at)
		VALUES (@id, @name, @destination, @start_date, @end_date, @budget, @created_at, @updated_at)
		ON CONFLICT (id) DO UPDATE
		SET name        = EXCLUDED.name,
		    destination = EXCLUDED.destination,
		    start_date  = EXCLUDED.start_date,
		    end_date    = EXCLUDED.end_date,
		    budget      = EXCLUDED.budget,
		    updated_at  = EXCLUDED.updated_at`

	const insertCard = `
		INSERT INTO cards (trip_id, id, ord, type, doc)
		VALUES (@trip_id, @id, @ord, @type, @doc)`

	docs, err := encodeCards(trip.Cards)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Save: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Save: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.Exec(ctx, upsertTrip, pgx.NamedArgs{
		"id":          trip.ID,
		"name":        trip.Name,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"budget":      trip.Budget, // nil becomes NULL
		"created_at":  trip.CreatedAt,
		"updated_at":  trip.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Save: upsert trip: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cards WHERE trip_id = @trip_id`, pgx.NamedArgs{"trip_id": trip.ID}); err != nil {
		return fmt.Errorf("repo.TripRepo.Save: clear cards: %w", err)
	}

	if len(docs) > 0 {
		batch := &pgx.Batch{}
		for i, c := range trip.Cards {
			batch.Queue(insertCard, pgx.NamedArgs{
				"trip_id": trip.ID,
				"id":      c.ID,
				"ord":     i,
				"type":    string(c.Type()),
				"doc":     docs[i],
			})
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("repo.TripRepo.Save: insert cards: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TripRepo.Save: commit: %w", err)
	}
	return nil
}

// GetByID retrieves a trip by primary key, with its cards in collection order.
func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, name, destination, start_date, end_date, budget, created_at, updated_at
		FROM trips
		WHERE id = @id`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	cards, err := r.cards(ctx, `WHERE trip_id = @trip_id`, pgx.NamedArgs{"trip_id": id})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	trip.Cards = cards[trip.ID]
	if trip.Cards == nil {
		trip.Cards = []domain.Card{}
	}
	return trip, nil
}

// List returns all trips ordered by creation time (oldest first).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT id, name, destination, start_date, end_date, budget, created_at, updated_at
		FROM trips
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	cards, err := r.cards(ctx, "", nil)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	for i := range trips {
		trips[i].Cards = cards[trips[i].ID]
		if trips[i].Cards == nil {
			trips[i].Cards = []domain.Card{}
		}
	}
	return trips, nil
}

// cards loads card documents grouped by trip, each group in collection order.
func (r *pgTripRepo) cards(ctx context.Context, where string, args pgx.NamedArgs) (map[uuid.UUID][]domain.Card, error) {
	q := `SELECT trip_id, doc FROM cards ` + where + ` ORDER BY trip_id, ord`

	var (
		rows pgx.Rows
		err  error
	)
	if args != nil {
		rows, err = r.db.Query(ctx, q, args)
	} else {
		rows, err = r.db.Query(ctx, q)
	}
	if err != nil {
		return nil, fmt.Errorf("cards: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.Card)
	for rows.Next() {
		var (
			tripID pgtype.UUID
			doc    []byte
		)
		if err := rows.Scan(&tripID, &doc); err != nil {
			return nil, fmt.Errorf("cards: scan: %w", err)
		}
		var c domain.Card
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("cards: decode: %w", err)
		}
		id := uuid.UUID(tripID.Bytes)
		out[id] = append(out[id], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cards: rows: %w", err)
	}
	return out, nil
}

// Delete removes a trip by primary key. Its cards go with it via ON DELETE CASCADE.
func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// ActiveID returns the ID of the active trip.
func (r *pgTripRepo) ActiveID(ctx context.Context) (uuid.UUID, error) {
	const q = `SELECT id FROM trips WHERE active LIMIT 1`

	var id pgtype.UUID
	if err := r.db.QueryRow(ctx, q).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("repo.TripRepo.ActiveID: %w", domain.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("repo.TripRepo.ActiveID: %w", err)
	}
	return uuid.UUID(id.Bytes), nil
}

// SetActive flips the active flag to the given trip.
func (r *pgTripRepo) SetActive(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetActive: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `UPDATE trips SET active = false WHERE active AND id <> @id`, pgx.NamedArgs{"id": id}); err != nil {
		return fmt.Errorf("repo.TripRepo.SetActive: clear: %w", err)
	}
	tag, err := tx.Exec(ctx, `UPDATE trips SET active = true WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.SetActive: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.SetActive: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.TripRepo.SetActive: commit: %w", err)
	}
	return nil
}

// scanner is satisfied by pgx.Row, pgx.Rows and *sql.Row/*sql.Rows, allowing
// the scan helpers to be reused for both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

// scanTrip maps a single trips row into a domain.Trip without its cards.
// It handles the UUID, date and nullable budget conversions.
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t         domain.Trip
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &t.Name, &t.Destination, &startDate, &endDate, &t.Budget, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = startDate.Time
	t.EndDate = endDate.Time
	return t, nil
}

// encodeCards renders each card as its JSON document, in order.
func encodeCards(cards []domain.Card) ([][]byte, error) {
	docs := make([][]byte, len(cards))
	for i, c := range cards {
		doc, err := json.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("encode card %s: %w", c.ID, err)
		}
		docs[i] = doc
	}
	return docs, nil
}
