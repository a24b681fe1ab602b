// Package fallback provides the general-purpose date parsers consulted when
// the aitime pattern tables cannot resolve a sentence.
package fallback

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/hrygo/lingotime/plugin/ai/aitime"
	"github.com/hrygo/lingotime/plugin/ai/timeout"
)

// Named is implemented by delegates that report a name for logging.
type Named interface {
	Name() string
}

// Chain consults delegates in order and returns the first match.
// A failing or panicking delegate is logged and skipped.
type Chain struct {
	delegates []aitime.FallbackDelegate
	logger    *slog.Logger
}

// NewChain creates a Chain over delegates. Nil delegates are ignored.
func NewChain(logger *slog.Logger, delegates ...aitime.FallbackDelegate) *Chain {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Chain{logger: logger}
	for _, d := range delegates {
		if d != nil {
			c.delegates = append(c.delegates, d)
		}
	}
	return c
}

// Len returns the number of delegates in the chain.
func (c *Chain) Len() int {
	return len(c.delegates)
}

// Resolve implements aitime.FallbackDelegate.
func (c *Chain) Resolve(ctx context.Context, text string, reference time.Time, forwardDateBias bool) (*aitime.FallbackMatch, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout.FallbackTimeout)
	defer cancel()

	for _, d := range c.delegates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		match, err := c.try(ctx, d, text, reference, forwardDateBias)
		if err != nil {
			c.logger.WarnContext(ctx, "fallback delegate failed",
				slog.String("delegate", nameOf(d)),
				slog.String("text", timeout.Truncate(text)),
				slog.String("error", err.Error()),
			)
			continue
		}
		if match != nil {
			c.logger.DebugContext(ctx, "fallback delegate matched",
				slog.String("delegate", nameOf(d)),
				slog.String("span", match.MatchedSpan),
				slog.Time("instant", match.ResolvedInstant),
			)
			return match, nil
		}
	}
	return nil, nil
}

func (c *Chain) try(ctx context.Context, d aitime.FallbackDelegate, text string, reference time.Time, forwardDateBias bool) (match *aitime.FallbackMatch, err error) {
	defer func() {
		if r := recover(); r != nil {
			match, err = nil, fmt.Errorf("delegate panicked: %v", r)
		}
	}()
	return d.Resolve(ctx, text, reference, forwardDateBias)
}

func nameOf(d aitime.FallbackDelegate) string {
	if n, ok := d.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", d)
}

// datePart matches spans that name a calendar day, either as digits
// ("2024-01-01", "01/01/2024", "20240101") or as a word ("today", "Friday",
// "Jan").
var datePart = regexp.MustCompile(`(?i)\d{1,4}[-/年月]\d|\d{1,2}\.\d{1,2}\.\d{2,4}|\d{8}|\d{2,4}年|\d{1,2}[日号號]|` +
	`\b(?:today|tonight|tomorrow|tmrw|yesterday|weekend|week|month|year|` +
	`monday|mon|tuesday|tues?|wednesday|wed|thursday|thu|thurs|friday|fri|saturday|sat|sunday|sun|` +
	`january|jan|february|feb|march|mar|april|apr|may|june|jun|july|jul|august|aug|september|sept?|october|oct|november|nov|december|dec)\b|` +
	`[今明昨前后後]天|今日|明日|昨日|오늘|내일|어제|모레`)

// HasDatePart reports whether span names a calendar day rather than only a
// time of day.
func HasDatePart(span string) bool {
	return datePart.MatchString(span)
}

// ApplyForwardBias moves instant one day ahead when forward is set, span is
// a bare time of day and instant falls earlier on the reference's own
// calendar day. A span that names a day is returned as resolved.
func ApplyForwardBias(instant, reference time.Time, span string, forward bool) time.Time {
	if !forward || !instant.Before(reference) || HasDatePart(span) {
		return instant
	}
	local := instant.In(reference.Location())
	ry, rm, rd := reference.Date()
	if y, m, d := local.Date(); y == ry && m == rm && d == rd {
		return instant.AddDate(0, 0, 1)
	}
	return instant
}

// spanIndex locates span in text, or returns -1.
func spanIndex(text, span string) int {
	if span == "" {
		return -1
	}
	return strings.Index(text, span)
}
