package aitime

import "time"

// TokenKind tells which resolver recorded a token.
type TokenKind string

const (
	TokenRelativeDate TokenKind = "relative_date"
	TokenWeekday      TokenKind = "weekday"
	TokenTime         TokenKind = "time"
	TokenDayPeriod    TokenKind = "day_period"
	TokenFallback     TokenKind = "fallback"
)

// Token is a span of the input consumed by a resolver.
// Start and End are byte offsets into the original text; Start is -1 when the
// position is unknown.
type Token struct {
	Kind  TokenKind `json:"kind"`
	Text  string    `json:"text"`
	Start int       `json:"start"`
	End   int       `json:"end"`
}

// DayPeriod is an AM/PM-equivalent marker.
type DayPeriod int

const (
	PeriodNone DayPeriod = iota
	PeriodAM
	PeriodPM
)

func (p DayPeriod) String() string {
	switch p {
	case PeriodAM:
		return "am"
	case PeriodPM:
		return "pm"
	default:
		return "none"
	}
}

// TimeToken is the raw material of a matched time expression.
type TimeToken struct {
	HourRaw   string
	MinuteRaw string // empty when absent
	// DayPeriodMarker is a marker carried by the token itself, such as "pm" in "3pm".
	DayPeriodMarker string
	Span            Token
}

// ResolvedTime is a time of day on the 24-hour clock.
type ResolvedTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// DateKind is the relative-date state that produced a DateAnchor.
type DateKind string

const (
	DateToday            DateKind = "today"
	DateTomorrow         DateKind = "tomorrow"
	DateDayAfterTomorrow DateKind = "day_after_tomorrow"
	DateNextWeekday      DateKind = "next_weekday"
	DateNextNextWeekday  DateKind = "next_next_weekday"
	DateWeekday          DateKind = "weekday"
	DateNone             DateKind = "none"
)

// DateAnchor is the calendar day chosen by the relative-date resolver.
type DateAnchor struct {
	Reference time.Time
	// Date is midnight of the resolved day in the reference's location.
	Date   time.Time
	Kind   DateKind
	Tokens []Token
}

// Source tells which path produced a ParseResult.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
	SourceNone     Source = "none"
)

// ParseResult is the outcome of parsing one sentence. Date is nil when the
// sentence could not be resolved.
type ParseResult struct {
	Date     *time.Time `json:"date,omitempty"`
	Content  string     `json:"content"`
	Language Language   `json:"language"`
	Source   Source     `json:"source"`
	Tokens   []Token    `json:"tokens,omitempty"`
}

// HasDate reports whether a date was resolved.
func (r ParseResult) HasDate() bool {
	return r.Date != nil
}
