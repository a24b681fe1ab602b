// Package temporal is the service layer over the temporal parser.
//
// It validates requests, fixes the timezone and reference instant a sentence
// is read against, and records every outcome in the audit store when one is
// configured. Audit failures are logged and never fail a parse.
package temporal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/hrygo/lingotime/internal/profile"
	"github.com/hrygo/lingotime/plugin/ai/aitime"
	"github.com/hrygo/lingotime/plugin/ai/aitime/fallback"
	"github.com/hrygo/lingotime/plugin/ai/timeout"
	apierrors "github.com/hrygo/lingotime/server/internal/errors"
	"github.com/hrygo/lingotime/server/internal/observability"
	"github.com/hrygo/lingotime/server/timezone"
	"github.com/hrygo/lingotime/store"
)

type service struct {
	parser  aitime.TimeParser
	store   Store
	logger  *slog.Logger
	metrics *observability.Metrics
	loc     *time.Location
	now     func() time.Time
}

// Option configures the service.
type Option func(*service)

// WithStore enables the audit trail.
func WithStore(st Store) Option {
	return func(s *service) { s.store = st }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics shares a metrics collector.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithDefaultLocation sets the zone used when a request names none.
func WithDefaultLocation(loc *time.Location) Option {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the clock used when a request has no reference.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a temporal service around parser.
func NewService(parser aitime.TimeParser, opts ...Option) Service {
	s := &service{
		parser:  parser,
		logger:  slog.Default(),
		metrics: observability.NewMetrics(0),
		loc:     time.Local,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceFromProfile wires the parser, its fallback chain and the audit
// store as profile describes. st may be nil.
func NewServiceFromProfile(p *profile.Profile, st *store.Store, logger *slog.Logger) (Service, error) {
	loc, err := timezone.Resolve(p.Timezone, time.Local)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load default timezone")
	}
	chain, err := fallback.NewChainFromProfile(p, logger)
	if err != nil {
		return nil, err
	}

	parserOpts := []aitime.Option{aitime.WithLogger(logger)}
	if chain.Len() > 0 {
		parserOpts = append(parserOpts, aitime.WithFallback(chain))
	}

	opts := []Option{WithLogger(logger), WithDefaultLocation(loc)}
	if st != nil && p.AuditEnabled {
		opts = append(opts, WithStore(st))
	}
	return NewService(aitime.NewParser(parserOpts...), opts...), nil
}

func (s *service) Parse(ctx context.Context, req *ParseRequest) (*ParseResponse, error) {
	rc := observability.FromContextOrNew(ctx, s.logger, "parse")
	ctx = observability.WithRequestContext(ctx, rc)

	if err := validateText(req.Text); err != nil {
		s.metrics.RecordFailure()
		rc.Warn("parse request rejected", slog.String(observability.LogFieldErrorCode, string(err.Code)))
		return nil, err
	}

	loc, err := timezone.Resolve(req.Timezone, s.loc)
	if err != nil {
		s.metrics.RecordFailure()
		return nil, apierrors.InvalidTimezone(req.Timezone, err)
	}

	reference := s.now().In(loc)
	if strings.TrimSpace(req.Reference) != "" {
		if reference, err = timezone.ParseReference(req.Reference, loc); err != nil {
			s.metrics.RecordFailure()
			return nil, apierrors.Wrap(err, apierrors.ErrCodeInvalidArgument, "invalid reference")
		}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout.RequestTimeout)
	defer cancel()

	result := s.parser.ParseAt(ctx, req.Text, reference)
	rc.SetResult(result.Language.String(), string(result.Source))
	s.metrics.RecordParse(result.Language.String(), string(result.Source), rc.Duration())

	resp := &ParseResponse{
		Date:      result.Date,
		Content:   result.Content,
		Language:  result.Language,
		Source:    result.Source,
		Tokens:    result.Tokens,
		Reference: reference,
		Timezone:  loc.String(),
	}
	if s.store != nil {
		resp.RecordUID = s.audit(ctx, rc, req.Text, resp)
	}

	attrs := []slog.Attr{
		slog.Int(observability.LogFieldTextLen, utf8.RuneCountInString(req.Text)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()),
	}
	if resp.Date != nil {
		attrs = append(attrs, slog.Time("date", *resp.Date))
	}
	rc.Info("sentence parsed", attrs...)

	return resp, nil
}

// audit writes the audit row and returns its uid, or "" when the write failed.
func (s *service) audit(ctx context.Context, rc *observability.RequestContext, text string, resp *ParseResponse) string {
	record := &store.ParseRecord{
		Text:        text,
		Language:    resp.Language.String(),
		Source:      string(resp.Source),
		Content:     resp.Content,
		ReferenceTs: resp.Reference.Unix(),
		Timezone:    resp.Timezone,
	}
	if resp.Date != nil {
		ts := resp.Date.Unix()
		record.ResolvedTs = &ts
	}

	// The audit row survives a request that was cancelled after parsing.
	created, err := s.store.CreateParseRecord(context.WithoutCancel(ctx), record)
	if err != nil {
		rc.Error("failed to write audit record", err)
		return ""
	}
	return created.UID
}

func (s *service) History(ctx context.Context, limit int) ([]*HistoryEntry, error) {
	if s.store == nil {
		return nil, apierrors.StoreUnavailable("audit store is not configured", nil)
	}
	if limit < 0 {
		return nil, apierrors.InvalidArgument("limit must not be negative")
	}
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit > store.MaxListLimit {
		limit = store.MaxListLimit
	}

	records, err := s.store.ListParseRecords(ctx, &store.FindParseRecord{Limit: &limit})
	if err != nil {
		return nil, apierrors.StoreUnavailable("failed to list audit records", err)
	}

	entries := make([]*HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, toHistoryEntry(r))
	}
	return entries, nil
}

func (s *service) Stats() *observability.MetricsSnapshot {
	return s.metrics.Snapshot()
}

func validateText(text string) *apierrors.APIError {
	if strings.TrimSpace(text) == "" {
		return apierrors.InvalidArgument("text is required")
	}
	if n := utf8.RuneCountInString(text); n > MaxInputLength {
		return apierrors.InvalidArgument(fmt.Sprintf("text too long: maximum %d characters, got %d", MaxInputLength, n))
	}
	return nil
}

// toHistoryEntry shows the timestamps of r in the zone it was parsed in.
func toHistoryEntry(r *store.ParseRecord) *HistoryEntry {
	loc, err := timezone.ParseTimezone(r.Timezone)
	if err != nil {
		loc = time.UTC
	}
	entry := &HistoryEntry{
		UID:       r.UID,
		Text:      r.Text,
		Language:  r.Language,
		Source:    r.Source,
		Content:   r.Content,
		Reference: timezone.ToUserTimezone(r.ReferenceTs, loc),
		Timezone:  r.Timezone,
		CreatedAt: timezone.ToUserTimezone(r.CreatedTs, loc),
	}
	if r.ResolvedTs != nil {
		date := timezone.ToUserTimezone(*r.ResolvedTs, loc)
		entry.Date = &date
	}
	return entry
}
