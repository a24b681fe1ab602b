package aitime

import (
	"context"
	"time"
)

// FallbackMatch is a date found by a FallbackDelegate.
type FallbackMatch struct {
	// MatchedSpan is the part of the text the delegate consumed.
	MatchedSpan string
	// Index is the byte offset of MatchedSpan in the text, or -1 if unknown.
	Index           int
	ResolvedInstant time.Time
}

// FallbackDelegate is a general-purpose date parser consulted when the
// pattern tables cannot resolve a sentence.
//
// Resolve returns (nil, nil) when it finds nothing. With forwardDateBias set
// it must not resolve a bare time of day to an instant before reference.
type FallbackDelegate interface {
	Resolve(ctx context.Context, text string, reference time.Time, forwardDateBias bool) (*FallbackMatch, error)
}

// FallbackFunc adapts a function to FallbackDelegate.
type FallbackFunc func(ctx context.Context, text string, reference time.Time, forwardDateBias bool) (*FallbackMatch, error)

// Resolve calls f.
func (f FallbackFunc) Resolve(ctx context.Context, text string, reference time.Time, forwardDateBias bool) (*FallbackMatch, error) {
	return f(ctx, text, reference, forwardDateBias)
}

// token records the delegate's span for content extraction.
func (m *FallbackMatch) token(text string) Token {
	span := m.MatchedSpan
	if span == "" {
		return Token{Kind: TokenFallback, Start: -1, End: -1}
	}
	if m.Index >= 0 && m.Index+len(span) <= len(text) && text[m.Index:m.Index+len(span)] == span {
		return Token{Kind: TokenFallback, Text: span, Start: m.Index, End: m.Index + len(span)}
	}
	return Token{Kind: TokenFallback, Text: span, Start: -1, End: -1}
}
