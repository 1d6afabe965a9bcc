package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mohithhhh/maersk-copilot/internal/config"
	"github.com/mohithhhh/maersk-copilot/internal/types"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the copilot a question from the terminal",
	Long: `Ask a single question, or start an interactive session when no
question is given. Interactive mode keeps conversation state, so
multi-turn exchanges like "order status" followed by an order ID work the
same way they do over the HTTP API.`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, sessions, err := bootstrap(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	sessionID := sessions.NewSession()

	if len(args) > 0 {
		resp, err := sessions.Ask(cmd.Context(), sessionID, strings.Join(args, " "))
		if err != nil {
			return err
		}
		printResponse(resp)
		return nil
	}

	fmt.Println("Maersk Copilot. Type a question, or \"exit\" to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		resp, err := sessions.Ask(cmd.Context(), sessionID, line)
		if err != nil {
			return err
		}
		printResponse(resp)
	}
}

func printResponse(resp *types.StructuredResponse) {
	fmt.Println(resp.Summary)

	switch data := resp.Data.(type) {
	case []types.Kpi:
		for _, kpi := range data {
			fmt.Printf("  %s: %s\n", kpi.Title, kpi.Value)
		}
	case *types.ChartData:
		for i, label := range data.Labels {
			if i < len(data.Values) {
				fmt.Printf("  %s: %.2f\n", label, data.Values[i])
			} else if j := i - len(data.Values); j < len(data.ForecastValues) {
				fmt.Printf("  %s: %.2f (forecast)\n", label, data.ForecastValues[j])
			}
		}
	case *types.MapData:
		for state, count := range data.HighlightedStates {
			fmt.Printf("  %s: %d\n", state, count)
		}
	case *types.TextData:
		for _, insight := range data.Insights {
			fmt.Printf("  %s\n", insight)
		}
	case *types.ErrorData:
		fmt.Printf("  error: %s\n", data.Message)
	}

	if len(resp.FollowUpSuggestions) > 0 {
		fmt.Println("  You could also ask:")
		for _, s := range resp.FollowUpSuggestions {
			fmt.Printf("    - %s\n", s)
		}
	}
}
