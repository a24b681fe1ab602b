package fallback

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/hrygo/lingotime/internal/profile"
	"github.com/hrygo/lingotime/plugin/ai"
	"github.com/hrygo/lingotime/plugin/ai/aitime"
)

// NewChainFromProfile assembles the delegates enabled in profile, cheapest
// first: dateparse, when, naturaldate, then the LLM.
func NewChainFromProfile(p *profile.Profile, logger *slog.Logger) (*Chain, error) {
	var delegates []aitime.FallbackDelegate
	if p.FallbackDateparse {
		delegates = append(delegates, NewDateparse())
	}
	if p.FallbackWhen {
		delegates = append(delegates, NewWhen())
	}
	if p.FallbackNaturalDate {
		delegates = append(delegates, NewNaturalDate())
	}

	if cfg := ai.NewConfigFromProfile(p); cfg.Enabled {
		llm, err := NewLLMFromConfig(cfg, logger)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create llm fallback")
		}
		delegates = append(delegates, llm)
	}

	return NewChain(logger, delegates...), nil
}
