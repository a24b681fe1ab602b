package aitime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Parser turns a sentence into a point in time plus the remaining content.
// It holds no mutable state and is safe for concurrent use.
type Parser struct {
	logger   *slog.Logger
	fallback FallbackDelegate
	now      func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithFallback sets the delegate consulted when the pattern tables fail.
func WithFallback(delegate FallbackDelegate) Option {
	return func(p *Parser) {
		p.fallback = delegate
	}
}

// WithNow overrides the clock Parse uses as its reference.
func WithNow(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewParser creates a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses text relative to the current time.
func (p *Parser) Parse(ctx context.Context, text string) ParseResult {
	return p.ParseAt(ctx, text, p.now())
}

// ParseAt parses text relative to reference. It never fails: a sentence that
// cannot be resolved yields a result without a date and with the text as
// content.
func (p *Parser) ParseAt(ctx context.Context, text string, reference time.Time) (result ParseResult) {
	lang := DetectLanguage(text)
	unresolved := ParseResult{Content: text, Language: lang, Source: SourceNone}

	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "temporal parse panicked",
				slog.String("text", text),
				slog.Any("panic", r),
			)
			result = unresolved
		}
	}()

	p.logger.DebugContext(ctx, "language detected",
		slog.String("text", text),
		slog.String("language", lang.String()),
	)

	primary, err := p.parsePrimary(ctx, text, lang, reference)
	if err == nil {
		return primary
	}
	p.logger.DebugContext(ctx, "pattern match failed, trying fallback",
		slog.String("language", lang.String()),
		slog.String("error", err.Error()),
	)

	fallback, err := p.parseFallback(ctx, text, lang, reference)
	if err != nil {
		p.logger.DebugContext(ctx, "sentence left unresolved",
			slog.String("language", lang.String()),
			slog.String("error", err.Error()),
		)
		return unresolved
	}
	return fallback
}

// parsePrimary runs the pattern tables. It fails when neither a date marker
// nor a time expression is present, when a numeral cannot be read, or when
// the date points backwards.
func (p *Parser) parsePrimary(ctx context.Context, text string, lang Language, reference time.Time) (ParseResult, error) {
	anchor, dateErr := ResolveDate(text, lang, reference)
	if errors.Is(dateErr, ErrPastDate) {
		return ParseResult{}, dateErr
	}
	tokens := append([]Token(nil), anchor.Tokens...)

	// Date markers such as 周六 must not be read again as numerals.
	tok, timeErr := MatchTime(maskTokens(text, tokens), lang)
	if dateErr != nil && timeErr != nil {
		return ParseResult{}, timeErr
	}

	period, markers := DetectDayPeriod(text, lang)

	// The marker next to the time token is stripped first, then one next to
	// the date marker. Other markers stay in the content.
	anchors := anchor.Tokens
	var clock ResolvedTime
	if timeErr == nil {
		var err error
		if clock, err = ResolveTime(tok, period, lang); err != nil {
			return ParseResult{}, err
		}
		tok.Span.Text = text[tok.Span.Start:tok.Span.End]
		tokens = append(tokens, tok.Span)
		anchors = append([]Token{tok.Span}, anchor.Tokens...)
	}
	if m, ok := AttachedMarker(text, markers, anchors); ok && !overlapsAny(m, tokens) {
		tokens = append(tokens, m)
	}

	day := anchor.Date
	date := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour, clock.Minute, 0, 0, day.Location())

	p.logger.DebugContext(ctx, "pattern match resolved",
		slog.String("date_kind", string(anchor.Kind)),
		slog.String("period", period.String()),
		slog.Int("hour", clock.Hour),
		slog.Int("minute", clock.Minute),
		slog.Any("tokens", tokens),
	)

	return ParseResult{
		Date:     &date,
		Content:  ExtractContent(text, tokens),
		Language: lang,
		Source:   SourcePrimary,
		Tokens:   tokens,
	}, nil
}

// parseFallback hands the whole text to the delegate.
func (p *Parser) parseFallback(ctx context.Context, text string, lang Language, reference time.Time) (ParseResult, error) {
	if p.fallback == nil {
		return ParseResult{}, ErrFallbackExhausted
	}

	match, err := p.fallback.Resolve(ctx, text, reference, true)
	if err != nil {
		return ParseResult{}, fmt.Errorf("%w: %w", ErrFallbackExhausted, err)
	}
	if match == nil || match.ResolvedInstant.IsZero() {
		return ParseResult{}, ErrFallbackExhausted
	}

	date := match.ResolvedInstant
	tok := match.token(text)
	var tokens []Token
	if tok.Text != "" {
		tokens = []Token{tok}
	}

	p.logger.DebugContext(ctx, "fallback resolved",
		slog.String("span", match.MatchedSpan),
		slog.Time("date", date),
	)

	return ParseResult{
		Date:     &date,
		Content:  ExtractContent(text, tokens),
		Language: lang,
		Source:   SourceFallback,
		Tokens:   tokens,
	}, nil
}
