package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mohithhhh/maersk-copilot/internal/analytics"
	"github.com/mohithhhh/maersk-copilot/internal/config"
	"github.com/mohithhhh/maersk-copilot/internal/conversation"
	"github.com/mohithhhh/maersk-copilot/internal/dataset"
	"github.com/mohithhhh/maersk-copilot/internal/intent"
	"github.com/mohithhhh/maersk-copilot/internal/llm"
)

// bootstrap wires the dataset, analytics engine, responder, router and
// session manager from configuration.
func bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*analytics.Engine, *conversation.Manager, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	responder, err := llm.NewResponder(ctx, &cfg.LLM)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create responder: %w", err)
	}

	engine := analytics.NewEngine(store)
	router := intent.NewRouter(engine, responder, logger)
	if cfg.LLM.Timeout > 0 {
		router.SetFallbackTimeout(cfg.LLM.Timeout)
	}
	sessions := conversation.NewManager(router, logger)
	return engine, sessions, nil
}

func openStore(cfg *config.Config) (*dataset.Store, error) {
	if cfg.Dataset.Path == "" {
		return dataset.NewSampleStore(), nil
	}
	store, err := dataset.LoadStore(cfg.Dataset.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return store, nil
}
