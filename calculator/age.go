package calculator

import (
	"math"
	"time"
)

// BirthdayLayout renders a date the way the age tool displays the next
// birthday.
const BirthdayLayout = "Monday, January 2, 2006"

type AgeResult struct {
	Years        int
	Months       int
	Days         int
	NextBirthday time.Time
	DaysUntil    int
}

func (r *AgeResult) NextBirthdayLabel() string {
	return r.NextBirthday.Format(BirthdayLayout)
}

// Today returns the calendar date of now in loc, as midnight UTC. All age
// arithmetic runs on such dates so DST shifts never change a day count.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return civil(now.In(loc))
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func daysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// Age computes the elapsed years, months and days from birth to today and the
// next birthday. Both dates are reduced to their calendar day.
func Age(birth, today time.Time) (*AgeResult, error) {
	if birth.IsZero() {
		return nil, invalid("birth date is required")
	}
	birth, today = civil(birth), civil(today)
	if birth.After(today) {
		return nil, invalid("birth date %s is in the future", birth.Format(time.DateOnly))
	}

	years := today.Year() - birth.Year()
	months := int(today.Month()) - int(birth.Month())
	days := today.Day() - birth.Day()

	if days < 0 {
		months--
		prev := today.AddDate(0, 0, -today.Day())
		days += daysIn(prev.Year(), prev.Month())
		// A birth day past the end of a short borrowed month, e.g. Jan 31 to
		// Mar 1, still comes out negative.
		days = max(days, 0)
	}
	if months < 0 {
		years--
		months += 12
	}

	// time.Date normalises Feb 29 to Mar 1 in common years.
	next := time.Date(today.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if today.After(next) {
		next = time.Date(today.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	}

	return &AgeResult{
		Years:        years,
		Months:       months,
		Days:         days,
		NextBirthday: next,
		DaysUntil:    daysBetween(today, next),
	}, nil
}
