package fallback

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hrygo/lingotime/plugin/ai"
	"github.com/hrygo/lingotime/plugin/ai/aitime"
	"github.com/hrygo/lingotime/plugin/ai/cache"
	"github.com/hrygo/lingotime/plugin/ai/timeout"
)

const llmSystemPrompt = `You extract the date and time a user means from a short sentence written in Chinese, Japanese, Korean or English.
Answer with a JSON object and nothing else:
{"matched_span": "<the exact characters of the sentence that express the date or time>", "datetime": "YYYY-MM-DD HH:MM"}
Resolve relative expressions against the reference time. Use 00:00 when only a day is given.
If the sentence contains no date or time, answer {"matched_span": "", "datetime": ""}.`

// llmDatetimeLayout is the datetime format the model is asked to answer in.
const llmDatetimeLayout = "2006-01-02 15:04"

// llmAnswer is the JSON object the model replies with.
type llmAnswer struct {
	MatchedSpan string `json:"matched_span"`
	Datetime    string `json:"datetime"`
}

// LLM asks a chat model for the date of a sentence. Calls are throttled by a
// shared limiter and answers are cached per sentence and reference minute.
type LLM struct {
	service ai.LLMService
	limiter *rate.Limiter
	cache   cache.CacheService
	logger  *slog.Logger
}

// LLMOption configures an LLM delegate.
type LLMOption func(*LLM)

// WithLimiter throttles model calls.
func WithLimiter(limiter *rate.Limiter) LLMOption {
	return func(l *LLM) { l.limiter = limiter }
}

// WithCache caches model answers.
func WithCache(c cache.CacheService) LLMOption {
	return func(l *LLM) { l.cache = c }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LLMOption {
	return func(l *LLM) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLLM creates an LLM delegate over service.
func NewLLM(service ai.LLMService, opts ...LLMOption) *LLM {
	l := &LLM{service: service, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewLLMFromConfig builds the LLM delegate with its limiter and cache.
func NewLLMFromConfig(cfg *ai.Config, logger *slog.Logger) (*LLM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	service, err := ai.NewLLMService(&cfg.LLM)
	if err != nil {
		return nil, err
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := int(math.Max(1, math.Ceil(cfg.RequestsPerSecond)))

	return NewLLM(service,
		WithLimiter(rate.NewLimiter(limit, burst)),
		WithCache(cache.NewService(cache.ServiceConfig{Capacity: cfg.CacheSize, DefaultTTL: cfg.CacheTTL})),
		WithLogger(logger),
	), nil
}

// Name implements Named.
func (*LLM) Name() string { return "llm" }

// Resolve implements aitime.FallbackDelegate.
func (l *LLM) Resolve(ctx context.Context, text string, reference time.Time, forwardDateBias bool) (*aitime.FallbackMatch, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	key := cacheKey(text, reference, forwardDateBias)
	if l.cache != nil {
		if raw, ok := l.cache.Get(ctx, key); ok {
			return l.toMatch(text, raw, reference)
		}
	}

	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("llm rate limit: %w", err)
		}
	}

	reply, err := l.service.ChatJSON(ctx, ai.FormatMessages(llmSystemPrompt, userPrompt(text, reference, forwardDateBias), nil))
	if err != nil {
		return nil, err
	}

	match, err := l.toMatch(text, []byte(reply), reference)
	if err != nil {
		l.logger.DebugContext(ctx, "llm answer rejected",
			slog.String("reply", timeout.Truncate(reply)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if l.cache != nil {
		_ = l.cache.Set(ctx, key, []byte(reply))
	}
	return match, nil
}

// toMatch trusts the model's datetime as is: the prompt already carries the
// forward direction.
func (l *LLM) toMatch(text string, raw []byte, reference time.Time) (*aitime.FallbackMatch, error) {
	var answer llmAnswer
	if err := json.Unmarshal(raw, &answer); err != nil {
		return nil, fmt.Errorf("decode llm answer: %w", err)
	}
	if strings.TrimSpace(answer.Datetime) == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(llmDatetimeLayout, strings.TrimSpace(answer.Datetime), reference.Location())
	if err != nil {
		return nil, fmt.Errorf("llm datetime %q: %w", answer.Datetime, err)
	}
	index := spanIndex(text, answer.MatchedSpan)
	if answer.MatchedSpan != "" && index < 0 {
		return nil, fmt.Errorf("llm span %q is not part of the text", answer.MatchedSpan)
	}

	return &aitime.FallbackMatch{
		MatchedSpan:     answer.MatchedSpan,
		Index:           index,
		ResolvedInstant: t,
	}, nil
}

func cacheKey(text string, reference time.Time, forwardDateBias bool) string {
	return fmt.Sprintf("fallback:llm:%t:%s:%s", forwardDateBias, reference.Format("2006-01-02T15:04Z07:00"), text)
}

func userPrompt(text string, reference time.Time, forwardDateBias bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reference time: %s (%s, %s)\n", reference.Format(llmDatetimeLayout), reference.Weekday(), reference.Location())
	if forwardDateBias {
		b.WriteString("A time of day without a date means its next occurrence after the reference time.\n")
	}
	fmt.Fprintf(&b, "Sentence: %s", text)
	return b.String()
}
