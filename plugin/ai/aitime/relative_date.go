package aitime

import (
	"regexp"
	"time"
)

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// weekdayIndex numbers weekdays Monday=0 ... Sunday=6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekdayDelta is the number of days from today to the next occurrence of
// target, both numbered Monday=0. The result is in 1..7: a weekday equal to
// today always means the occurrence one week later.
func WeekdayDelta(today, target int) int {
	delta := ((target-today)%7 + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return delta
}

// dateRule is one state of the relative-date resolver.
type dateRule struct {
	kind DateKind
	re   func(*languagePatterns) *regexp.Regexp
	// days is the fixed offset of a plain marker, or the extra week shift of a
	// weekday marker.
	days    int
	weekday bool
}

// dateRules are tried in order; the first match wins.
var dateRules = []dateRule{
	{kind: DateDayAfterTomorrow, re: func(p *languagePatterns) *regexp.Regexp { return p.dayAfterTomorrow }, days: 2},
	{kind: DateTomorrow, re: func(p *languagePatterns) *regexp.Regexp { return p.tomorrow }, days: 1},
	{kind: DateToday, re: func(p *languagePatterns) *regexp.Regexp { return p.today }, days: 0},
	{kind: DateNextNextWeekday, re: func(p *languagePatterns) *regexp.Regexp { return p.nextNextWeekday }, days: 14, weekday: true},
	{kind: DateNextWeekday, re: func(p *languagePatterns) *regexp.Regexp { return p.nextWeekday }, days: 7, weekday: true},
	{kind: DateWeekday, re: func(p *languagePatterns) *regexp.Regexp { return p.weekday }, days: 0, weekday: true},
}

// ResolveDate resolves the relative-date marker of text against reference.
//
// Without any marker it returns the reference day together with
// ErrNoDateMarker; the anchor is still valid in that case. A weekday that
// points backwards ("last friday") yields ErrPastDate.
func ResolveDate(text string, lang Language, reference time.Time) (DateAnchor, error) {
	p := patternsFor(lang)
	day := startOfDay(reference)

	for _, rule := range dateRules {
		re := rule.re(p)
		loc := re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		offset := rule.days
		kind := TokenRelativeDate
		if rule.weekday {
			target, ok := p.weekdayNumber(group(re, text, loc, "weekday"))
			if !ok {
				continue
			}
			if rule.kind == DateWeekday && p.pastWeekday != nil && p.pastWeekday.MatchString(text[:loc[0]]) {
				return DateAnchor{Reference: reference, Date: day, Kind: DateNone}, ErrPastDate
			}
			offset += WeekdayDelta(weekdayIndex(day), target)
			kind = TokenWeekday
		}

		return DateAnchor{
			Reference: reference,
			Date:      day.AddDate(0, 0, offset),
			Kind:      rule.kind,
			Tokens:    []Token{{Kind: kind, Text: text[loc[0]:loc[1]], Start: loc[0], End: loc[1]}},
		}, nil
	}

	return DateAnchor{Reference: reference, Date: day, Kind: DateNone}, ErrNoDateMarker
}

// NextWeekday returns the date of "next <target>" seen from reference.
func NextWeekday(reference time.Time, target time.Weekday) time.Time {
	day := startOfDay(reference)
	return day.AddDate(0, 0, WeekdayDelta(weekdayIndex(day), (int(target)+6)%7)+7)
}

// NextNextWeekday returns the date of "next-next <target>" seen from reference.
func NextNextWeekday(reference time.Time, target time.Weekday) time.Time {
	return NextWeekday(reference, target).AddDate(0, 0, 7)
}
