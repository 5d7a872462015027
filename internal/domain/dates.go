package domain

import "time"

type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// DaysUntil returns the calendar-day difference between date and now.
// Both instants are truncated to their civil date first, so a payment due
// tomorrow is always 1 day away regardless of the hour. The result is
// negative when the date is in the past (overdue).
func DaysUntil(date time.Time, now time.Time) int {
	from := civilDate(now)
	until := civilDate(date)

	return int(until.Sub(from).Hours() / 24)
}

// ClassifyUrgency maps a day delta to an urgency bucket.
// Overdue payments (negative delta) are the most urgent.
func ClassifyUrgency(daysUntilDue int) Urgency {
	switch {
	case daysUntilDue <= 3:
		return UrgencyHigh
	case daysUntilDue <= 7:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
