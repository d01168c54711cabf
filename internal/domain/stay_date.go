package domain

import (
	"strings"
	"time"
)

const (
	DateLayout       = "2006-01-02"
	NotSpecifiedText = "Not specified"
)

// StayDate is a calendar date that may be explicitly unspecified.
// The zero value is Unspecified.
type StayDate struct {
	t   time.Time
	set bool
}

var Unspecified = StayDate{}

// On returns a StayDate for the calendar day of t (UTC midnight).
func On(t time.Time) StayDate {
	y, m, d := t.Date()
	return StayDate{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), set: true}
}

// ParseStayDate accepts "YYYY-MM-DD" or the "Not specified" literal.
func ParseStayDate(s string) (StayDate, error) {
	s = strings.TrimSpace(s)
	if s == NotSpecifiedText {
		return Unspecified, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Unspecified, err
	}
	return On(t), nil
}

func (d StayDate) IsSpecified() bool { return d.set }

// Time returns the date and whether it is specified.
func (d StayDate) Time() (time.Time, bool) { return d.t, d.set }

// Or returns the date, or the calendar day of fallback when unspecified.
func (d StayDate) Or(fallback time.Time) time.Time {
	if d.set {
		return d.t
	}
	return On(fallback).t
}

func (d StayDate) String() string {
	if !d.set {
		return NotSpecifiedText
	}
	return d.t.Format(DateLayout)
}
