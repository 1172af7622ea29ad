package booking

import (
	"time"

	"atstay/utils"
)

const dayFormat = "2006-01-02"

// parseDate accepts a calendar date or a full timestamp and normalizes it to
// midnight UTC. Time-of-day is never significant for stays.
func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dayFormat, value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, err
		}
	}
	return NormalizeDay(t), nil
}

// NormalizeDay truncates a timestamp to the start of its calendar day in UTC.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseStayDates parses and validates a check-in/check-out pair: both must
// parse, check-in must not be in the past and check-out must come after it.
func ParseStayDates(checkInValue, checkOutValue string) (time.Time, time.Time, error) {
	checkIn, err := parseDate(checkInValue)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ValidationError("Invalid date format")
	}
	checkOut, err := parseDate(checkOutValue)
	if err != nil {
		return time.Time{}, time.Time{}, utils.ValidationError("Invalid date format")
	}

	today := NormalizeDay(time.Now().UTC())
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, utils.ValidationError("Check-in date cannot be in the past")
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, utils.ValidationError("Check-out date must be after check-in date")
	}
	return checkIn, checkOut, nil
}
