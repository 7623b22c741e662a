package datemath

import (
	"fmt"
	"strings"
	"time"

	_ "time/tzdata" // containers without /usr/share/zoneinfo
)

// Converter renders instants in a fixed local timezone.
type Converter struct {
	location *time.Location
	now      func() time.Time
}

// NewConverter creates a converter for the given IANA timezone string.
// e.g. "Asia/Kolkata"
func NewConverter(timezone string) (*Converter, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Converter{location: loc, now: time.Now}, nil
}

// MustUTC returns a converter pinned to UTC.
func MustUTC() *Converter {
	return &Converter{location: time.UTC, now: time.Now}
}

// SetClock overrides the time source for testing purposes.
func (c *Converter) SetClock(now func() time.Time) {
	c.now = now
}

// Location returns the converter's timezone.
func (c *Converter) Location() *time.Location {
	return c.location
}

// Now returns the current instant in the converter's timezone.
func (c *Converter) Now() time.Time {
	return c.now().In(c.location)
}

// Format renders t as "2006-01-02 15:04:05 <ZONE>" in the converter's timezone.
func (c *Converter) Format(t time.Time) string {
	return t.In(c.location).Format(DisplayLayout)
}

// FromUTC converts a "YYYY-MM-DDTHH:MM:SSZ" string into local display form.
// Any parse failure returns raw unchanged.
func (c *Converter) FromUTC(raw string) string {
	t, err := time.ParseInLocation(UTCLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return raw
	}
	return c.Format(t)
}

// ToUTC renders t in the wire format FromUTC accepts.
func ToUTC(t time.Time) string {
	return t.UTC().Format(UTCLayout)
}
