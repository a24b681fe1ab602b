// Package timezone resolves the IANA zone a sentence is parsed in.
//
// Relative expressions such as "tomorrow" or "明天" only mean something in a
// zone, so every parse request carries one, explicitly or by default.
package timezone

import (
	"fmt"
	"strings"
	"time"
)

const (
	// TimezoneUTC is the UTC timezone identifier.
	TimezoneUTC = "UTC"

	// TimezoneLocal names the zone of the running process.
	TimezoneLocal = "Local"
)

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Shanghai").
// "UTC" maps to UTC and "Local" to the process zone.
func ParseTimezone(tz string) (*time.Location, error) {
	switch strings.TrimSpace(tz) {
	case TimezoneUTC:
		return time.UTC, nil
	case TimezoneLocal:
		return time.Local, nil
	case "":
		return nil, fmt.Errorf("empty timezone")
	}

	loc, err := time.LoadLocation(strings.TrimSpace(tz))
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Resolve returns the zone named by tz, or def when tz is empty.
func Resolve(tz string, def *time.Location) (*time.Location, error) {
	if strings.TrimSpace(tz) == "" {
		if def == nil {
			return time.Local, nil
		}
		return def, nil
	}
	return ParseTimezone(tz)
}

// MustParseTimezone parses a timezone or panics if invalid.
func MustParseTimezone(tz string) *time.Location {
	loc, err := ParseTimezone(tz)
	if err != nil {
		panic(err)
	}
	return loc
}

// IsValidTimezone checks if a timezone identifier is valid.
func IsValidTimezone(tz string) bool {
	_, err := ParseTimezone(tz)
	return err == nil
}

// ReferenceLayouts are the accepted forms of an explicit reference instant.
var ReferenceLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseReference reads an explicit reference instant. Layouts with an offset
// keep it and are then shown in loc; the others are read as wall time in loc.
func ParseReference(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	value = strings.TrimSpace(value)
	for _, layout := range ReferenceLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("reference %q: want RFC 3339 or YYYY-MM-DD[ HH:MM[:SS]]", value)
}

// FormatInstant formats t for display in tz.
func FormatInstant(t time.Time, tz *time.Location, format string) string {
	if tz == nil {
		tz = time.UTC
	}
	return t.In(tz).Format(format)
}

// ToUserTimezone converts a Unix timestamp to the user's timezone.
func ToUserTimezone(ts int64, tz *time.Location) time.Time {
	if tz == nil {
		tz = time.UTC
	}
	return time.Unix(ts, 0).In(tz)
}
