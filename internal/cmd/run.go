package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mohithhhh/maersk-copilot/internal/config"
	"github.com/mohithhhh/maersk-copilot/internal/server"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Maersk Copilot server",
	Long: `Start the Maersk Copilot server which provides:
- POST /api/query for conversational analytics
- GET /api/trends and /api/geo for the dedicated dashboard views
- GET /api/health for monitoring`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	engine, sessions, err := bootstrap(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	srv := server.NewServer(engine, sessions, logger)

	logger.Info("starting server",
		zap.String("addr", cfg.Server.Addr),
		zap.String("provider", cfg.LLM.Provider),
	)
	if err := srv.Start(cfg.Server.Addr); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
