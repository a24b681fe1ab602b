package aitime

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchTime finds the time expression of text. When several expressions match,
// the leftmost one wins and ties go to the longer match.
func MatchTime(text string, lang Language) (TimeToken, error) {
	p := patternsFor(lang)

	best := TimeToken{Span: Token{Start: -1}}
	for _, re := range p.times {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if !p.acceptsTimeEnd(text[loc[1]:]) {
				continue
			}
			if p.isVagueOne(text, loc, group(re, text, loc, "hour")) {
				continue
			}
			start, end := loc[0], loc[1]
			if best.Span.Start >= 0 && (start > best.Span.Start || (start == best.Span.Start && end <= best.Span.End)) {
				break
			}

			minute := group(re, text, loc, "idiom")
			if minute == "" {
				minute = group(re, text, loc, "minute")
			}
			if minute == "" {
				minute = group(re, text, loc, "minute1")
			}
			best = TimeToken{
				HourRaw:         group(re, text, loc, "hour"),
				MinuteRaw:       minute,
				DayPeriodMarker: group(re, text, loc, "period"),
				Span:            Token{Kind: TokenTime, Text: text[start:end], Start: start, End: end},
			}
			break
		}
	}

	if best.Span.Start < 0 {
		return TimeToken{}, ErrNoTimeMatch
	}
	return best, nil
}

// acceptsTimeEnd reports whether rest may directly follow a time match.
func (p *languagePatterns) acceptsTimeEnd(rest string) bool {
	for _, prefix := range p.rejectNext {
		if strings.HasPrefix(rest, prefix) {
			return false
		}
	}
	if p.letterBoundary && rest != "" {
		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// isVagueOne reports whether an hour of 一 reads as "a little" because of the
// word before it (早一点, 快一点). 今晚一点 stays a time: 晚 there ends a
// day-period marker.
func (p *languagePatterns) isVagueOne(text string, loc []int, hour string) bool {
	if hour != "一" || len(p.vagueOne) == 0 {
		return false
	}
	before := text[:loc[0]]
	vague := false
	for _, w := range p.vagueOne {
		if strings.HasSuffix(before, w) {
			vague = true
			break
		}
	}
	if !vague {
		return false
	}
	for _, re := range []*regexp.Regexp{p.amMarkers, p.pmMarkers} {
		for _, m := range re.FindAllStringIndex(text, -1) {
			if m[1] == loc[0] {
				return false
			}
		}
	}
	return true
}

// DetectDayPeriod tests the whole text for AM and PM markers. A PM marker
// takes precedence when both are present. The markers of the deciding period
// are returned in text order; use AttachedMarker to pick the one to strip.
func DetectDayPeriod(text string, lang Language) (DayPeriod, []Token) {
	p := patternsFor(lang)

	markers := func(spans [][]int) []Token {
		tokens := make([]Token, 0, len(spans))
		for _, s := range spans {
			tokens = append(tokens, Token{Kind: TokenDayPeriod, Text: text[s[0]:s[1]], Start: s[0], End: s[1]})
		}
		return tokens
	}

	if pm := p.pmMarkers.FindAllStringIndex(text, -1); len(pm) > 0 {
		return PeriodPM, markers(pm)
	}
	if am := p.amMarkers.FindAllStringIndex(text, -1); len(am) > 0 {
		return PeriodAM, markers(am)
	}
	return PeriodNone, nil
}

// markerGap is what may separate a day-period marker from the token it
// qualifies: whitespace and the particles of 明日の午後, 3時に, 아침에.
const markerGap = " \t\u3000のに에"

// AttachedMarker returns the marker that qualifies one of the anchors, trying
// anchors in order. A marker qualifies an anchor when nothing but markerGap
// separates them. Markers elsewhere belong to the content ("下午茶").
func AttachedMarker(text string, markers, anchors []Token) (Token, bool) {
	for _, a := range anchors {
		if a.Start < 0 {
			continue
		}
		for _, m := range markers {
			if adjacent(text, m, a) {
				return m, true
			}
		}
	}
	return Token{}, false
}

func adjacent(text string, a, b Token) bool {
	var gap string
	switch {
	case a.End <= b.Start:
		gap = text[a.End:b.Start]
	case b.End <= a.Start:
		gap = text[b.End:a.Start]
	default:
		return false
	}
	return strings.Trim(gap, markerGap) == ""
}

// markerPeriod classifies a marker carried by the time token itself.
func markerPeriod(marker string) DayPeriod {
	switch strings.ToLower(strings.ReplaceAll(marker, ".", "")) {
	case "am":
		return PeriodAM
	case "pm":
		return PeriodPM
	default:
		return PeriodNone
	}
}

// To24Hour applies the 12-hour conversion rule: a PM hour below 12 gains 12
// hours and a 12 without a PM marker becomes 0. Other hours are unchanged.
func To24Hour(hour int, period DayPeriod) int {
	switch {
	case period == PeriodPM && hour < 12:
		return hour + 12
	case period != PeriodPM && hour == 12:
		return 0
	default:
		return hour
	}
}

// ResolveTime converts a matched time token to the 24-hour clock. period is
// the marker detected in the surrounding text; a marker inside the token
// itself is combined with it, PM first.
func ResolveTime(tok TimeToken, period DayPeriod, lang Language) (ResolvedTime, error) {
	hour, err := ResolveNumeral(tok.HourRaw, lang)
	if err != nil {
		return ResolvedTime{}, err
	}

	minute := 0
	if tok.MinuteRaw != "" {
		if v, ok := patternsFor(lang).minuteIdioms[tok.MinuteRaw]; ok {
			minute = v
		} else if minute, err = ResolveNumeral(tok.MinuteRaw, lang); err != nil {
			return ResolvedTime{}, err
		}
	}

	if own := markerPeriod(tok.DayPeriodMarker); own == PeriodPM || (own == PeriodAM && period != PeriodPM) {
		period = own
	}

	if hour > 23 {
		return ResolvedTime{}, invalidNumeral(tok.HourRaw, lang, "hour out of range")
	}
	if minute > 59 {
		return ResolvedTime{}, invalidNumeral(tok.MinuteRaw, lang, "minute out of range")
	}
	// Hours past 12 ("15:00 pm") are already on the 24-hour clock and pass
	// through To24Hour unchanged.
	return ResolvedTime{Hour: To24Hour(hour, period), Minute: minute}, nil
}

// ResolveTimeOfDay matches and resolves the time expression of text in one
// step. It returns the consumed tokens: the time token followed by the
// day-period marker attached to it, if any.
func ResolveTimeOfDay(text string, lang Language) (ResolvedTime, []Token, error) {
	tok, err := MatchTime(text, lang)
	if err != nil {
		return ResolvedTime{}, nil, err
	}
	period, markers := DetectDayPeriod(text, lang)
	rt, err := ResolveTime(tok, period, lang)
	if err != nil {
		return ResolvedTime{}, nil, err
	}
	tokens := []Token{tok.Span}
	if m, ok := AttachedMarker(text, markers, tokens); ok {
		tokens = append(tokens, m)
	}
	return rt, tokens, nil
}
