package accommodation

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates, both upstream and in forms.
const DateLayout = "2006-01-02"

// localTimestampLayout is a timestamp without zone, read as that wall-clock day.
const localTimestampLayout = "2006-01-02T15:04:05"

// Date is a calendar day without time of day. The zero value means "not set".
// Dates are kept at UTC midnight so day arithmetic never sees DST shifts.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

// MustParseDate is ParseDate for constants and tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool { return d.t.After(o.t) }

// Equal reports whether both dates are the same day.
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// DaysUntil returns the number of whole days from d to o, negative if o is earlier.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalText renders the date as YYYY-MM-DD, or empty when unset.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts YYYY-MM-DD, and empty input as "unset". Upstream
// timestamps, RFC 3339 or zone-less, are truncated to their calendar day.
func (d *Date) UnmarshalText(b []byte) error {
	s := string(b)
	if s == "" {
		*d = Date{}
		return nil
	}
	if len(s) > len(DateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			var localErr error
			if t, localErr = time.Parse(localTimestampLayout, s); localErr != nil {
				return fmt.Errorf("parsing date %q: %w", s, err)
			}
		}
		*d = NewDate(t.Year(), t.Month(), t.Day())
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GobEncode lets dates travel through the session codec.
func (d Date) GobEncode() ([]byte, error) { return d.MarshalText() }

// GobDecode is the inverse of GobEncode.
func (d *Date) GobDecode(b []byte) error { return d.UnmarshalText(b) }

// Min returns the earlier of two dates.
func Min(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

// Max returns the later of two dates.
func Max(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}
