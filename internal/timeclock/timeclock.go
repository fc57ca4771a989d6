// Package timeclock holds the pure punch-card calculators. Every function is
// a plain computation over events, an optional evaluation instant and an
// explicit *time.Location; nothing here touches the store or ambient state.
package timeclock

import (
	"math"
	"sort"
	"time"

	"github.com/ilumeo/timeclock/internal/apperrors"
	"github.com/ilumeo/timeclock/internal/models"
)

const dateLayout = "2006-01-02"

// Reduction is the result of pairing one day's punches.
type Reduction struct {
	Worked      time.Duration
	OpenClockIn *time.Time
	First       *time.Time
	Last        *time.Time
}

// ReducePairs scans one calendar day's events in ascending timestamp order and
// pairs CLOCK_IN/CLOCK_OUT into worked time. evalAt is only non-nil when the
// day is today: an unmatched trailing CLOCK_IN then accrues up to evalAt and is
// reported as still open. Without evalAt an open cursor contributes nothing.
//
// Both the day-status and range-summary paths go through here; this is the
// single definition of how punches turn into hours.
func ReducePairs(events []models.TimeEvent, evalAt *time.Time) Reduction {
	var red Reduction
	for _, ev := range events {
		t := ev.Timestamp
		if red.First == nil {
			first := t
			red.First = &first
		}
		last := t
		red.Last = &last

		switch ev.Kind {
		case models.ClockIn:
			// A CLOCK_IN while one is already open replaces the cursor.
			// The insert guards keep this unreachable for data written by
			// this service, but imported rows may be irregular.
			in := t
			red.OpenClockIn = &in
		case models.ClockOut:
			// An orphan CLOCK_OUT updates first/last but adds no time.
			if red.OpenClockIn != nil {
				red.Worked += t.Sub(*red.OpenClockIn)
				red.OpenClockIn = nil
			}
		}
	}

	if red.OpenClockIn != nil && evalAt != nil {
		red.Worked += evalAt.Sub(*red.OpenClockIn)
	}
	return red
}

// Hours converts a duration to decimal hours rounded to two places.
func Hours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}

// DayStart returns midnight of t's calendar day in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayBounds returns the half-open instant window [start, end) covering t's
// calendar day in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := DayStart(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// Status computes today's live snapshot. events must be today's events for the
// user in ascending timestamp order; the open interval, if any, accrues up to
// now.
func Status(userID string, events []models.TimeEvent, now time.Time, loc *time.Location) models.StatusSnapshot {
	red := ReducePairs(events, &now)

	snap := models.StatusSnapshot{
		UserID:          userID,
		IsClockedIn:     red.OpenClockIn != nil,
		EntriesToday:    make([]models.EventView, 0, len(events)),
		TotalHoursToday: Hours(red.Worked),
	}
	if red.OpenClockIn != nil {
		s := red.OpenClockIn.In(loc).Format(time.RFC3339)
		snap.CurrentClockInTime = &s
	}
	for _, ev := range events {
		snap.EntriesToday = append(snap.EntriesToday, models.EventView{
			ID:        ev.ID,
			Timestamp: ev.Timestamp.UTC().Format(time.RFC3339),
			Kind:      ev.Kind,
		})
	}
	return snap
}

// RangeQuery is the caller's choice of summary window: either an explicit
// inclusive date pair or a number of days back from today (default 30).
type RangeQuery struct {
	DaysBack  *int
	StartDate string
	EndDate   string
}

// DateRange is an inclusive run of calendar days, both bounds local midnights.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Empty reports whether the range contains no days.
func (r DateRange) Empty() bool {
	return r.Start.After(r.End)
}

// QueryBounds returns the half-open instant window covering the whole range,
// for fetching events from the store.
func (r DateRange) QueryBounds() (time.Time, time.Time) {
	return r.Start, r.End.AddDate(0, 0, 1)
}

const defaultDaysBack = 30

// ResolveRange turns a RangeQuery into a concrete date range in loc. The end
// date is clamped to today: a range never extends into the future. A daysBack
// large enough to push the start past the clamped end (negative values, in
// practice) yields an empty range, not an error.
func ResolveRange(q RangeQuery, now time.Time, loc *time.Location) (DateRange, error) {
	today := DayStart(now, loc)

	var r DateRange
	switch {
	case q.StartDate != "" && q.EndDate != "":
		start, err := time.ParseInLocation(dateLayout, q.StartDate, loc)
		if err != nil {
			return DateRange{}, apperrors.Validation("invalid startDate, expected YYYY-MM-DD")
		}
		end, err := time.ParseInLocation(dateLayout, q.EndDate, loc)
		if err != nil {
			return DateRange{}, apperrors.Validation("invalid endDate, expected YYYY-MM-DD")
		}
		r = DateRange{Start: start, End: end}
	case q.StartDate != "" || q.EndDate != "":
		return DateRange{}, apperrors.Validation("startDate and endDate must be provided together")
	default:
		days := defaultDaysBack
		if q.DaysBack != nil {
			days = *q.DaysBack
		}
		r = DateRange{Start: today.AddDate(0, 0, -days), End: today}
	}

	if r.End.After(today) {
		r.End = today
	}
	return r, nil
}

// Summarize buckets events by local calendar day and produces one summary per
// day in r, inclusive, zero-filled for days without events, sorted descending
// by date. events must be in ascending timestamp order. No evaluation instant
// is applied: an open clock-in contributes nothing to a summary row, even on
// today's row — live accrual is the status endpoint's job.
func Summarize(events []models.TimeEvent, r DateRange, loc *time.Location) []models.DailySummary {
	summaries := []models.DailySummary{}
	if r.Empty() {
		return summaries
	}

	byDay := make(map[string][]models.TimeEvent)
	for _, ev := range events {
		key := ev.Timestamp.In(loc).Format(dateLayout)
		byDay[key] = append(byDay[key], ev)
	}

	for day := r.Start; !day.After(r.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		red := ReducePairs(byDay[key], nil)

		s := models.DailySummary{
			Date:       key,
			TotalHours: Hours(red.Worked),
		}
		if red.First != nil {
			start := red.First.In(loc).Format("15:04")
			end := red.Last.In(loc).Format("15:04")
			s.StartTime = &start
			s.EndTime = &end
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Date > summaries[j].Date
	})
	return summaries
}
