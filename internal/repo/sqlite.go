package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/tripcanvas/internal/domain"
)

// sqliteTimestamp is fixed-width so that text order matches time order.
const sqliteTimestamp = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteTripRepo is the SQLite implementation of TripRepo. UUIDs, dates and
// timestamps are stored as text.
type sqliteTripRepo struct {
	db *sql.DB
}

// NewSQLiteTripRepo constructs a TripRepo backed by a SQLite database opened
// with the "sqlite" driver and migrated with the SQLite schema.
func NewSQLiteTripRepo(db *sql.DB) TripRepo {
	return &sqliteTripRepo{db: db}
}

// Save upserts the trip row and rewrites its cards inside one transaction.
func (r *sqliteTripRepo) Save(ctx context.Context, trip domain.Trip) error {
	const upsertTrip = `
		INSERT INTO trips (id, name, destination, start_date, end_date, budget, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE
		SET name        = excluded.name,
		    destination = excluded.destination,
		    start_date  = excluded.start_date,
		    end_date    = excluded.end_date,
		    budget      = excluded.budget,
		    updated_at  = excluded.updated_at`

	docs, err := encodeCards(trip.Cards)
	if err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Save: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Save: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	_, err = tx.ExecContext(ctx, upsertTrip,
		trip.ID.String(),
		trip.Name,
		trip.Destination,
		trip.StartDate.Format(time.DateOnly),
		trip.EndDate.Format(time.DateOnly),
		trip.Budget, // nil becomes NULL
		trip.CreatedAt.UTC().Format(sqliteTimestamp),
		trip.UpdatedAt.UTC().Format(sqliteTimestamp),
	)
	if err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Save: upsert trip: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE trip_id = ?`, trip.ID.String()); err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Save: clear cards: %w", err)
	}

	if len(docs) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO cards (trip_id, id, ord, type, doc) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("repo.SQLiteTripRepo.Save: prepare card insert: %w", err)
		}
		defer stmt.Close()

		for i, c := range trip.Cards {
			if _, err := stmt.ExecContext(ctx, trip.ID.String(), c.ID.String(), i, string(c.Type()), string(docs[i])); err != nil {
				return fmt.Errorf("repo.SQLiteTripRepo.Save: insert card %s: %w", c.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Save: commit: %w", err)
	}
	return nil
}

// GetByID retrieves a trip by primary key, with its cards in collection order.
func (r *sqliteTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `
		SELECT id, name, destination, start_date, end_date, budget, created_at, updated_at
		FROM trips
		WHERE id = ?`

	trip, err := scanSQLiteTrip(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.SQLiteTripRepo.GetByID: %w", err)
	}

	cards, err := r.cards(ctx, `WHERE trip_id = ?`, id.String())
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.SQLiteTripRepo.GetByID: %w", err)
	}
	trip.Cards = cards[trip.ID]
	if trip.Cards == nil {
		trip.Cards = []domain.Card{}
	}
	return trip, nil
}

// List returns all trips ordered by creation time (oldest first).
func (r *sqliteTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `
		SELECT id, name, destination, start_date, end_date, budget, created_at, updated_at
		FROM trips
		ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.SQLiteTripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanSQLiteTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SQLiteTripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SQLiteTripRepo.List: rows: %w", err)
	}

	cards, err := r.cards(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("repo.SQLiteTripRepo.List: %w", err)
	}
	for i := range trips {
		trips[i].Cards = cards[trips[i].ID]
		if trips[i].Cards == nil {
			trips[i].Cards = []domain.Card{}
		}
	}
	return trips, nil
}

func (r *sqliteTripRepo) cards(ctx context.Context, where string, args ...any) (map[uuid.UUID][]domain.Card, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT trip_id, doc FROM cards `+where+` ORDER BY trip_id, ord`, args...)
	if err != nil {
		return nil, fmt.Errorf("cards: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.Card)
	for rows.Next() {
		var rawID, doc string
		if err := rows.Scan(&rawID, &doc); err != nil {
			return nil, fmt.Errorf("cards: scan: %w", err)
		}
		tripID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("cards: trip id: %w", err)
		}
		var c domain.Card
		if err := json.Unmarshal([]byte(doc), &c); err != nil {
			return nil, fmt.Errorf("cards: decode: %w", err)
		}
		out[tripID] = append(out[tripID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cards: rows: %w", err)
	}
	return out, nil
}

// Delete removes a trip and its cards.
func (r *sqliteTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Delete: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	// foreign_keys is a per-connection pragma, so cards are removed explicitly
	// rather than through ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM cards WHERE trip_id = ?`, id.String()); err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Delete: cards: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Delete: rows affected: %w", err)
	} else if n == 0 {
		return fmt.Errorf("repo.SQLiteTripRepo.Delete: %w", domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.Delete: commit: %w", err)
	}
	return nil
}

// ActiveID returns the ID of the active trip.
func (r *sqliteTripRepo) ActiveID(ctx context.Context) (uuid.UUID, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT id FROM trips WHERE active = 1 LIMIT 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, fmt.Errorf("repo.SQLiteTripRepo.ActiveID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("repo.SQLiteTripRepo.ActiveID: %w", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("repo.SQLiteTripRepo.ActiveID: %w", err)
	}
	return id, nil
}

// SetActive flips the active flag to the given trip.
func (r *sqliteTripRepo) SetActive(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.SetActive: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM trips WHERE id = ?)`, id.String()).Scan(&exists); err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.SetActive: %w", err)
	}
	if !exists {
		return fmt.Errorf("repo.SQLiteTripRepo.SetActive: %w", domain.ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE trips SET active = (id = ?)`, id.String()); err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.SetActive: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("repo.SQLiteTripRepo.SetActive: commit: %w", err)
	}
	return nil
}

// scanSQLiteTrip maps a single trips row into a domain.Trip without its cards.
func scanSQLiteTrip(s scanner) (domain.Trip, error) {
	var (
		t                    domain.Trip
		id, start, end       string
		createdAt, updatedAt string
		budget               sql.NullFloat64
	)

	err := s.Scan(&id, &t.Name, &t.Destination, &start, &end, &budget, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}

	if t.ID, err = uuid.Parse(id); err != nil {
		return domain.Trip{}, fmt.Errorf("id: %w", err)
	}
	if t.StartDate, err = time.Parse(time.DateOnly, start); err != nil {
		return domain.Trip{}, fmt.Errorf("start_date: %w", err)
	}
	if t.EndDate, err = time.Parse(time.DateOnly, end); err != nil {
		return domain.Trip{}, fmt.Errorf("end_date: %w", err)
	}
	if t.CreatedAt, err = time.Parse(sqliteTimestamp, createdAt); err != nil {
		return domain.Trip{}, fmt.Errorf("created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(sqliteTimestamp, updatedAt); err != nil {
		return domain.Trip{}, fmt.Errorf("updated_at: %w", err)
	}
	if budget.Valid {
		b := budget.Float64
		t.Budget = &b
	}
	return t, nil
}
