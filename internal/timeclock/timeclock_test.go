package timeclock_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/ilumeo/timeclock/internal/apperrors"
	"github.com/ilumeo/timeclock/internal/models"
	"github.com/ilumeo/timeclock/internal/timeclock"
)

var loc = mustLoadLocation()

func mustLoadLocation() *time.Location {
	l, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		panic(err)
	}
	return l
}

func at(day string, clock string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, loc)
	if err != nil {
		panic(err)
	}
	return t
}

func ev(kind models.EventKind, ts time.Time) models.TimeEvent {
	return models.TimeEvent{
		ID:        "ev-" + ts.Format("150405"),
		UserID:    "user-1",
		Timestamp: ts.UTC(),
		Kind:      kind,
	}
}

func TestReducePairs(t *testing.T) {
	day := "2025-03-10"

	Convey("Given an alternating sequence of clock-ins and clock-outs", t, func() {
		events := []models.TimeEvent{
			ev(models.ClockIn, at(day, "09:00")),
			ev(models.ClockOut, at(day, "12:00")),
			ev(models.ClockIn, at(day, "13:00")),
			ev(models.ClockOut, at(day, "17:00")),
		}

		Convey("The worked time is the exact sum of the pairs", func() {
			red := timeclock.ReducePairs(events, nil)
			So(red.Worked, ShouldEqual, 7*time.Hour)
			So(red.OpenClockIn, ShouldBeNil)
			So(red.First.Equal(at(day, "09:00")), ShouldBeTrue)
			So(red.Last.Equal(at(day, "17:00")), ShouldBeTrue)
		})
	})

	Convey("Given a clock-out with no preceding clock-in", t, func() {
		events := []models.TimeEvent{
			ev(models.ClockOut, at(day, "08:00")),
			ev(models.ClockIn, at(day, "09:00")),
			ev(models.ClockOut, at(day, "10:00")),
		}

		Convey("The orphan contributes no time but still counts as first event", func() {
			red := timeclock.ReducePairs(events, nil)
			So(red.Worked, ShouldEqual, time.Hour)
			So(red.First.Equal(at(day, "08:00")), ShouldBeTrue)
		})
	})

	Convey("Given a trailing open clock-in", t, func() {
		events := []models.TimeEvent{
			ev(models.ClockIn, at(day, "09:00")),
		}

		Convey("With an evaluation instant it accrues up to that instant", func() {
			now := at(day, "09:30")
			red := timeclock.ReducePairs(events, &now)
			So(red.Worked, ShouldEqual, 30*time.Minute)
			So(red.OpenClockIn, ShouldNotBeNil)
			So(red.OpenClockIn.Equal(at(day, "09:00")), ShouldBeTrue)
		})

		Convey("Without an evaluation instant it accrues nothing", func() {
			red := timeclock.ReducePairs(events, nil)
			So(red.Worked, ShouldEqual, time.Duration(0))
		})
	})

	Convey("Given a double clock-in", t, func() {
		events := []models.TimeEvent{
			ev(models.ClockIn, at(day, "09:00")),
			ev(models.ClockIn, at(day, "10:00")),
			ev(models.ClockOut, at(day, "11:00")),
		}

		Convey("The second clock-in replaces the open cursor", func() {
			red := timeclock.ReducePairs(events, nil)
			So(red.Worked, ShouldEqual, time.Hour)
		})
	})

	Convey("Given no events at all", t, func() {
		red := timeclock.ReducePairs(nil, nil)
		So(red.Worked, ShouldEqual, time.Duration(0))
		So(red.First, ShouldBeNil)
		So(red.Last, ShouldBeNil)
		So(red.OpenClockIn, ShouldBeNil)
	})
}

func TestHours(t *testing.T) {
	Convey("Durations round to two decimal places", t, func() {
		So(timeclock.Hours(8*time.Hour), ShouldEqual, 8.00)
		So(timeclock.Hours(30*time.Minute), ShouldEqual, 0.50)
		So(timeclock.Hours(10*time.Minute), ShouldEqual, 0.17)
		So(timeclock.Hours(0), ShouldEqual, 0.00)
	})
}

func TestStatus(t *testing.T) {
	day := "2025-03-10"

	Convey("Given a closed 09:00-17:00 day", t, func() {
		events := []models.TimeEvent{
			ev(models.ClockIn, at(day, "09:00")),
			ev(models.ClockOut, at(day, "17:00")),
		}
		snap := timeclock.Status("user-1", events, at(day, "18:00"), loc)

		Convey("The user is clocked out with 8.00 hours", func() {
			So(snap.IsClockedIn, ShouldBeFalse)
			So(snap.CurrentClockInTime, ShouldBeNil)
			So(snap.TotalHoursToday, ShouldEqual, 8.00)
			So(len(snap.EntriesToday), ShouldEqual, 2)
			So(snap.EntriesToday[0].Kind, ShouldEqual, models.ClockIn)
			So(snap.EntriesToday[1].Kind, ShouldEqual, models.ClockOut)
		})
	})

	Convey("Given an open clock-in at 09:00 evaluated at 09:30", t, func() {
		events := []models.TimeEvent{
			ev(models.ClockIn, at(day, "09:00")),
		}
		snap := timeclock.Status("user-1", events, at(day, "09:30"), loc)

		Convey("The user is clocked in with half an hour accrued", func() {
			So(snap.IsClockedIn, ShouldBeTrue)
			So(snap.TotalHoursToday, ShouldEqual, 0.50)
			So(snap.CurrentClockInTime, ShouldNotBeNil)
			So(*snap.CurrentClockInTime, ShouldEqual, at(day, "09:00").Format(time.RFC3339))
		})
	})

	Convey("Given no events today", t, func() {
		snap := timeclock.Status("user-1", nil, at(day, "12:00"), loc)

		Convey("Everything is zero but the entries list is present", func() {
			So(snap.IsClockedIn, ShouldBeFalse)
			So(snap.TotalHoursToday, ShouldEqual, 0.00)
			So(snap.EntriesToday, ShouldNotBeNil)
			So(len(snap.EntriesToday), ShouldEqual, 0)
		})
	})
}

func TestResolveRange(t *testing.T) {
	now := at("2025-03-10", "15:00")

	Convey("Given no query parameters", t, func() {
		r, err := timeclock.ResolveRange(timeclock.RangeQuery{}, now, loc)
		So(err, ShouldBeNil)

		Convey("The range is the default 30 days back through today", func() {
			So(r.End.Format("2006-01-02"), ShouldEqual, "2025-03-10")
			So(r.Start.Format("2006-01-02"), ShouldEqual, "2025-02-08")
		})
	})

	Convey("Given daysBack=1", t, func() {
		one := 1
		r, err := timeclock.ResolveRange(timeclock.RangeQuery{DaysBack: &one}, now, loc)
		So(err, ShouldBeNil)
		So(r.Start.Format("2006-01-02"), ShouldEqual, "2025-03-09")
		So(r.End.Format("2006-01-02"), ShouldEqual, "2025-03-10")
	})

	Convey("Given daysBack=0", t, func() {
		zero := 0
		r, err := timeclock.ResolveRange(timeclock.RangeQuery{DaysBack: &zero}, now, loc)
		So(err, ShouldBeNil)

		Convey("The range is exactly today", func() {
			So(r.Empty(), ShouldBeFalse)
			So(r.Start.Equal(r.End), ShouldBeTrue)
			So(r.Start.Format("2006-01-02"), ShouldEqual, "2025-03-10")
		})
	})

	Convey("Given a negative daysBack", t, func() {
		neg := -5
		r, err := timeclock.ResolveRange(timeclock.RangeQuery{DaysBack: &neg}, now, loc)
		So(err, ShouldBeNil)

		Convey("The end clamp leaves an empty range", func() {
			So(r.Empty(), ShouldBeTrue)
		})
	})

	Convey("Given explicit dates ending in the future", t, func() {
		r, err := timeclock.ResolveRange(timeclock.RangeQuery{
			StartDate: "2025-03-08",
			EndDate:   "2025-03-20",
		}, now, loc)
		So(err, ShouldBeNil)

		Convey("The end date is clamped to today", func() {
			So(r.End.Format("2006-01-02"), ShouldEqual, "2025-03-10")
		})
	})

	Convey("Given a malformed date", t, func() {
		_, err := timeclock.ResolveRange(timeclock.RangeQuery{
			StartDate: "03/08/2025",
			EndDate:   "2025-03-10",
		}, now, loc)

		Convey("A validation error is returned", func() {
			So(err, ShouldNotBeNil)
			So(apperrors.KindOf(err), ShouldEqual, apperrors.KindValidation)
		})
	})

	Convey("Given only one of the date pair", t, func() {
		_, err := timeclock.ResolveRange(timeclock.RangeQuery{StartDate: "2025-03-08"}, now, loc)
		So(apperrors.KindOf(err), ShouldEqual, apperrors.KindValidation)
	})
}

func TestSummarize(t *testing.T) {
	now := at("2025-03-12", "15:00")

	Convey("Given a three-day range with no events", t, func() {
		r, err := timeclock.ResolveRange(timeclock.RangeQuery{
			StartDate: "2025-03-08",
			EndDate:   "2025-03-10",
		}, now, loc)
		So(err, ShouldBeNil)

		summaries := timeclock.Summarize(nil, r, loc)

		Convey("Exactly three zero-filled rows come back", func() {
			So(len(summaries), ShouldEqual, 3)
			for _, s := range summaries {
				So(s.TotalHours, ShouldEqual, 0.00)
				So(s.StartTime, ShouldBeNil)
				So(s.EndTime, ShouldBeNil)
			}
		})

		Convey("Rows are sorted strictly descending by date", func() {
			So(summaries[0].Date, ShouldEqual, "2025-03-10")
			So(summaries[1].Date, ShouldEqual, "2025-03-09")
			So(summaries[2].Date, ShouldEqual, "2025-03-08")
		})
	})

	Convey("Given punches across several days", t, func() {
		events := []models.TimeEvent{
			ev(models.ClockIn, at("2025-03-08", "09:00")),
			ev(models.ClockOut, at("2025-03-08", "17:00")),
			ev(models.ClockIn, at("2025-03-09", "08:30")),
			ev(models.ClockOut, at("2025-03-09", "12:00")),
			ev(models.ClockIn, at("2025-03-09", "13:00")),
			ev(models.ClockOut, at("2025-03-09", "17:30")),
		}
		r := timeclock.DateRange{
			Start: timeclock.DayStart(at("2025-03-08", "00:00"), loc),
			End:   timeclock.DayStart(at("2025-03-10", "00:00"), loc),
		}

		summaries := timeclock.Summarize(events, r, loc)

		Convey("Each day's total and wall-clock bounds are right", func() {
			So(len(summaries), ShouldEqual, 3)

			So(summaries[0].Date, ShouldEqual, "2025-03-10")
			So(summaries[0].TotalHours, ShouldEqual, 0.00)

			So(summaries[1].Date, ShouldEqual, "2025-03-09")
			So(summaries[1].TotalHours, ShouldEqual, 8.00)
			So(*summaries[1].StartTime, ShouldEqual, "08:30")
			So(*summaries[1].EndTime, ShouldEqual, "17:30")

			So(summaries[2].Date, ShouldEqual, "2025-03-08")
			So(summaries[2].TotalHours, ShouldEqual, 8.00)
			So(*summaries[2].StartTime, ShouldEqual, "09:00")
			So(*summaries[2].EndTime, ShouldEqual, "17:00")
		})

		Convey("Summarizing twice gives identical output", func() {
			again := timeclock.Summarize(events, r, loc)
			So(again, ShouldResemble, summaries)
		})
	})

	Convey("Given an unmatched clock-in on a past day", t, func() {
		events := []models.TimeEvent{
			ev(models.ClockIn, at("2025-03-08", "09:00")),
		}
		r := timeclock.DateRange{
			Start: timeclock.DayStart(at("2025-03-08", "00:00"), loc),
			End:   timeclock.DayStart(at("2025-03-08", "00:00"), loc),
		}

		summaries := timeclock.Summarize(events, r, loc)

		Convey("It accrues nothing but still marks the day's bounds", func() {
			So(len(summaries), ShouldEqual, 1)
			So(summaries[0].TotalHours, ShouldEqual, 0.00)
			So(*summaries[0].StartTime, ShouldEqual, "09:00")
			So(*summaries[0].EndTime, ShouldEqual, "09:00")
		})
	})

	Convey("Given an empty range", t, func() {
		r := timeclock.DateRange{
			Start: timeclock.DayStart(at("2025-03-10", "00:00"), loc),
			End:   timeclock.DayStart(at("2025-03-08", "00:00"), loc),
		}

		Convey("No rows come back", func() {
			So(timeclock.Summarize(nil, r, loc), ShouldBeEmpty)
		})
	})
}
