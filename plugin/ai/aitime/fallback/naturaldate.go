package fallback

import (
	"context"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"

	"github.com/hrygo/lingotime/plugin/ai/aitime"
)

// NaturalDate reads the whole text as one English date expression. Ambiguous
// expressions resolve into the future when forward bias is requested and
// into the past otherwise.
type NaturalDate struct{}

// NewNaturalDate creates a NaturalDate delegate.
func NewNaturalDate() *NaturalDate {
	return &NaturalDate{}
}

// Name implements Named.
func (*NaturalDate) Name() string { return "naturaldate" }

// Resolve implements aitime.FallbackDelegate.
func (n *NaturalDate) Resolve(_ context.Context, text string, reference time.Time, forwardDateBias bool) (*aitime.FallbackMatch, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	direction := naturaldate.Past
	if forwardDateBias {
		direction = naturaldate.Future
	}

	t, err := naturaldate.Parse(trimmed, reference, naturaldate.WithDirection(direction))
	// The library answers the reference itself for text it does not understand.
	if err != nil || t.Equal(reference) {
		return nil, nil
	}

	return &aitime.FallbackMatch{
		MatchedSpan:     trimmed,
		Index:           strings.Index(text, trimmed),
		ResolvedInstant: ApplyForwardBias(t, reference, trimmed, forwardDateBias),
	}, nil
}
