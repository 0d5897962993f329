package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-compass/internal/models"
)

// EventStoreRepository snapshots a user's calendar event collection into
// Postgres. One row per user; the collection round-trips as a JSON
// document, with tolerant timestamp coercion on load.
type EventStoreRepository struct {
	db *sqlx.DB
}

// NewEventStoreRepository instantiates the repository.
func NewEventStoreRepository(db *sqlx.DB) *EventStoreRepository {
	return &EventStoreRepository{db: db}
}

type snapshotDocument struct {
	CalendarEvents []models.StoredEvent `json:"calendarEvents"`
}

// Save upserts the user's event snapshot.
func (r *EventStoreRepository) Save(ctx context.Context, userID string, events []models.Event) error {
	stored := make([]models.StoredEvent, 0, len(events))
	for _, ev := range events {
		stored = append(stored, models.StoredEvent{
			ID:        ev.ID,
			Title:     ev.Title,
			Start:     models.FlexTime{Time: ev.Start},
			End:       models.FlexTime{Time: ev.End},
			AllDay:    ev.AllDay,
			EventType: ev.EventType,
			CourseKey: ev.CourseKey,
		})
	}

	payload, err := json.Marshal(snapshotDocument{CalendarEvents: stored})
	if err != nil {
		return fmt.Errorf("marshal snapshot for %s: %w", userID, err)
	}

	query := `INSERT INTO calendar_snapshots (user_id, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET payload = $2, updated_at = $3`
	if _, err := r.db.ExecContext(ctx, query, userID, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("save snapshot for %s: %w", userID, err)
	}
	return nil
}

// Load reads the user's snapshot back. Returns sql.ErrNoRows when the
// user has never saved.
func (r *EventStoreRepository) Load(ctx context.Context, userID string) ([]models.Event, error) {
	var payload []byte
	query := `SELECT payload FROM calendar_snapshots WHERE user_id = $1`
	if err := r.db.QueryRowxContext(ctx, query, userID).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("load snapshot for %s: %w", userID, err)
	}

	var doc snapshotDocument
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot for %s: %w", userID, err)
	}

	events := make([]models.Event, 0, len(doc.CalendarEvents))
	for _, stored := range doc.CalendarEvents {
		events = append(events, stored.Event())
	}
	return events, nil
}
