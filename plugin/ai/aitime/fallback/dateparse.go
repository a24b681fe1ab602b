package fallback

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/hrygo/lingotime/plugin/ai/aitime"
)

// Dateparse recognizes absolute dates such as "2024-03-15 10:30" or
// "03/15/2024". It tries the whole text first, then each field.
type Dateparse struct{}

// NewDateparse creates a Dateparse delegate.
func NewDateparse() *Dateparse {
	return &Dateparse{}
}

// Name implements Named.
func (*Dateparse) Name() string { return "dateparse" }

var (
	fieldPattern  = regexp.MustCompile(`\S+`)
	datelikeField = regexp.MustCompile(`\d[-/.:年月]|\d{8,}`)
)

// Resolve implements aitime.FallbackDelegate.
func (d *Dateparse) Resolve(_ context.Context, text string, reference time.Time, forwardDateBias bool) (*aitime.FallbackMatch, error) {
	trimmed := strings.TrimSpace(text)
	if !looksLikeDate(trimmed) {
		return nil, nil
	}
	loc := reference.Location()

	if t, err := dateparse.ParseIn(trimmed, loc); err == nil {
		return &aitime.FallbackMatch{
			MatchedSpan:     trimmed,
			Index:           strings.Index(text, trimmed),
			ResolvedInstant: ApplyForwardBias(t, reference, trimmed, forwardDateBias),
		}, nil
	}

	for _, f := range fieldPattern.FindAllStringIndex(text, -1) {
		field := text[f[0]:f[1]]
		if !looksLikeDate(field) {
			continue
		}
		t, err := dateparse.ParseIn(field, loc)
		if err != nil {
			continue
		}
		return &aitime.FallbackMatch{
			MatchedSpan:     field,
			Index:           f[0],
			ResolvedInstant: ApplyForwardBias(t, reference, field, forwardDateBias),
		}, nil
	}
	return nil, nil
}

// looksLikeDate filters out bare numbers, which dateparse would read as
// years or Unix timestamps.
func looksLikeDate(s string) bool {
	return datelikeField.MatchString(s)
}
