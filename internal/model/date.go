package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO 8601 calendar date form used in storage and input.
const DateLayout = "2006-01-02"

// Date is a calendar day. The zero Date means "not specified".
type Date struct {
	time.Time
}

// NewDate returns the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrValidation, s)
	}
	return Date{Time: t}, nil
}

// OrToday substitutes today's date for an unspecified date.
func (d Date) OrToday() Date {
	if d.IsZero() {
		return Today()
	}
	return d
}

// String renders the date as YYYY-MM-DD, or "" for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}
