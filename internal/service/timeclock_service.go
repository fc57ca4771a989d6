package service

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ilumeo/timeclock/internal/apperrors"
	"github.com/ilumeo/timeclock/internal/models"
	"github.com/ilumeo/timeclock/internal/repository"
	"github.com/ilumeo/timeclock/internal/timeclock"
)

// TimeclockService owns the punch guards and orchestrates the calculators.
// All calendar-day reasoning uses the single configured location.
type TimeclockService struct {
	events *repository.EventRepository
	users  *repository.UserRepository
	loc    *time.Location
	now    func() time.Time
	logger *zap.Logger
}

// Option customizes a TimeclockService.
type Option func(*TimeclockService)

// WithClock overrides the service's notion of "now". Tests use this to pin
// the evaluation instant.
func WithClock(now func() time.Time) Option {
	return func(s *TimeclockService) {
		s.now = now
	}
}

func NewTimeclockService(
	events *repository.EventRepository,
	users *repository.UserRepository,
	loc *time.Location,
	logger *zap.Logger,
	opts ...Option,
) *TimeclockService {
	s := &TimeclockService{
		events: events,
		users:  users,
		loc:    loc,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClockIn records a CLOCK_IN for today. At most one clock-in per user per day
// is accepted.
func (s *TimeclockService) ClockIn(userID string) (*models.TimeEvent, error) {
	return s.punch(userID, models.ClockIn)
}

// ClockOut records a CLOCK_OUT for today. Rejected when one already exists or
// when there is no open clock-in to match.
func (s *TimeclockService) ClockOut(userID string) (*models.TimeEvent, error) {
	return s.punch(userID, models.ClockOut)
}

func (s *TimeclockService) punch(userID string, kind models.EventKind) (*models.TimeEvent, error) {
	if userID == "" {
		return nil, apperrors.Validation("userId is required to punch the clock")
	}
	if _, err := s.lookupUser(userID); err != nil {
		return nil, err
	}

	now := s.now()
	dayStart, dayEnd := timeclock.DayBounds(now, s.loc)

	exists, err := s.events.ExistsKindBetween(userID, kind, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if exists {
		if kind == models.ClockIn {
			return nil, apperrors.Conflict("a clock-in is already recorded for today")
		}
		return nil, apperrors.Conflict("a clock-out is already recorded for today")
	}

	if kind == models.ClockOut {
		latest, err := s.events.LatestForUserBetween(userID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if latest == nil || latest.Kind == models.ClockOut {
			return nil, apperrors.Conflict("a clock-in is required before a clock-out")
		}
	}

	event, err := s.events.Insert(&models.TimeEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Timestamp: now.UTC(),
		Kind:      kind,
	}, timeclock.DayStart(now, s.loc).Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	s.logger.Info("Punch recorded",
		zap.String("user_id", userID),
		zap.String("kind", string(kind)),
		zap.Time("timestamp", event.Timestamp),
	)
	return event, nil
}

// Status returns the user's live snapshot for today, with any open interval
// accrued up to now.
func (s *TimeclockService) Status(userID string) (*models.StatusSnapshot, error) {
	if userID == "" {
		return nil, apperrors.Validation("userId is required to get the status")
	}
	if _, err := s.lookupUser(userID); err != nil {
		return nil, err
	}

	now := s.now()
	dayStart, dayEnd := timeclock.DayBounds(now, s.loc)

	events, err := s.events.FindForUserBetween(userID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	snap := timeclock.Status(userID, events, now, s.loc)
	return &snap, nil
}

// Summaries returns one DailySummary per calendar day in the resolved range,
// most recent first.
func (s *TimeclockService) Summaries(userID string, q timeclock.RangeQuery) ([]models.DailySummary, error) {
	if userID == "" {
		return nil, apperrors.Validation("userId is required to get the summaries")
	}
	if _, err := s.lookupUser(userID); err != nil {
		return nil, err
	}

	r, err := timeclock.ResolveRange(q, s.now(), s.loc)
	if err != nil {
		return nil, err
	}
	if r.Empty() {
		return []models.DailySummary{}, nil
	}

	from, to := r.QueryBounds()
	events, err := s.events.FindForUserBetween(userID, from, to)
	if err != nil {
		return nil, err
	}

	return timeclock.Summarize(events, r, s.loc), nil
}

func (s *TimeclockService) lookupUser(userID string) (*models.User, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}
	return user, nil
}
