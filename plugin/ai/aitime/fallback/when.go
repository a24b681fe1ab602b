package fallback

import (
	"context"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/hrygo/lingotime/plugin/ai/aitime"
)

// When recognizes relative English phrases such as "in 3 days" or
// "last friday at 5pm" and reports the exact span it consumed.
type When struct {
	parser *when.Parser
}

// NewWhen creates a When delegate with the English and common rule sets.
func NewWhen() *When {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &When{parser: w}
}

// Name implements Named.
func (*When) Name() string { return "when" }

// Resolve implements aitime.FallbackDelegate.
func (w *When) Resolve(_ context.Context, text string, reference time.Time, forwardDateBias bool) (*aitime.FallbackMatch, error) {
	result, err := w.parser.Parse(text, reference)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	return &aitime.FallbackMatch{
		MatchedSpan:     result.Text,
		Index:           result.Index,
		ResolvedInstant: ApplyForwardBias(result.Time, reference, result.Text, forwardDateBias),
	}, nil
}
