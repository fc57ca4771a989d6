package models

import "time"

// EventKind is the type of a punch event.
type EventKind string

const (
	ClockIn  EventKind = "CLOCK_IN"
	ClockOut EventKind = "CLOCK_OUT"
)

// TimeEvent is a single immutable punch. Events are never updated or deleted
// except via cascading user deletion.
type TimeEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	Kind      EventKind `json:"type"`
}

type ClockRequest struct {
	UserID string `json:"userId"`
}

// EventView is the wire form of an event inside a status response.
type EventView struct {
	ID        string    `json:"id"`
	Timestamp string    `json:"timestamp"`
	Kind      EventKind `json:"type"`
}

// StatusSnapshot is today's live state for one user, recomputed per request.
type StatusSnapshot struct {
	UserID             string      `json:"userId"`
	IsClockedIn        bool        `json:"isClockedIn"`
	CurrentClockInTime *string     `json:"currentClockInTime"`
	EntriesToday       []EventView `json:"entriesToday"`
	TotalHoursToday    float64     `json:"totalHoursToday"`
}

// DailySummary is one day's worked-hours ledger line. Start and end times are
// local wall-clock HH:mm, omitted when the day has no events.
type DailySummary struct {
	Date       string  `json:"date"`
	TotalHours float64 `json:"totalHours"`
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    *string `json:"endTime,omitempty"`
}
