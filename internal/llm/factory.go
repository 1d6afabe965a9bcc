package llm

import (
	"context"
	"fmt"

	"github.com/mohithhhh/maersk-copilot/internal/config"
	"github.com/mohithhhh/maersk-copilot/internal/llm/respond"
	"github.com/mohithhhh/maersk-copilot/internal/types"
)

// NewResponder creates the fallback responder named by the configuration.
func NewResponder(ctx context.Context, cfg *config.LLMConfig) (types.Responder, error) {
	switch cfg.Provider {
	case "gemini":
		return respond.NewGeminiResponder(ctx, cfg.Model, cfg.APIKeyEnv, cfg.APIKey)
	case "mock":
		return respond.NewMockResponder(cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported responder provider: %s", cfg.Provider)
	}
}
