package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ilumeo/timeclock/internal/apperrors"
	"github.com/ilumeo/timeclock/internal/models"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Insert stores a punch. localDay must be the event's calendar day in the
// configured timezone; the unique index on (user_id, kind, local_day) turns a
// racing duplicate into a conflict here rather than a second row.
func (r *EventRepository) Insert(event *models.TimeEvent, localDay string) (*models.TimeEvent, error) {
	query := `
		INSERT INTO time_events (id, user_id, timestamp, kind, local_day)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		event.ID,
		event.UserID,
		event.Timestamp.UnixMilli(),
		string(event.Kind),
		localDay,
	)
	if isUniqueViolation(err) {
		return nil, apperrors.Conflict(fmt.Sprintf("a %s is already recorded for this day", event.Kind))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert time event: %w", err)
	}

	return event, nil
}

// FindForUserBetween returns the user's events with from <= timestamp < to,
// in ascending timestamp order.
func (r *EventRepository) FindForUserBetween(userID string, from, to time.Time) ([]models.TimeEvent, error) {
	query := `
		SELECT id, user_id, timestamp, kind
		FROM time_events
		WHERE user_id = ? AND timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC
	`

	rows, err := r.db.Query(query, userID, from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query time events: %w", err)
	}
	defer rows.Close()

	var events []models.TimeEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}

// LatestForUserBetween returns the most recent event in the window, or nil
// when the window is empty.
func (r *EventRepository) LatestForUserBetween(userID string, from, to time.Time) (*models.TimeEvent, error) {
	query := `
		SELECT id, user_id, timestamp, kind
		FROM time_events
		WHERE user_id = ? AND timestamp >= ? AND timestamp < ?
		ORDER BY timestamp DESC
		LIMIT 1
	`

	row := r.db.QueryRow(query, userID, from.UnixMilli(), to.UnixMilli())
	event, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ExistsKindBetween reports whether the user already has a punch of the given
// kind inside the window.
func (r *EventRepository) ExistsKindBetween(userID string, kind models.EventKind, from, to time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM time_events
			WHERE user_id = ? AND kind = ? AND timestamp >= ? AND timestamp < ?
		)
	`

	var exists bool
	err := r.db.QueryRow(query, userID, string(kind), from.UnixMilli(), to.UnixMilli()).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for existing %s: %w", kind, err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.TimeEvent, error) {
	var (
		event models.TimeEvent
		ms    int64
		kind  string
	)
	err := row.Scan(&event.ID, &event.UserID, &ms, &kind)
	if err == sql.ErrNoRows {
		return models.TimeEvent{}, err
	}
	if err != nil {
		return models.TimeEvent{}, fmt.Errorf("failed to scan time event: %w", err)
	}

	event.Timestamp = time.UnixMilli(ms).UTC()
	event.Kind = models.EventKind(kind)
	return event, nil
}
