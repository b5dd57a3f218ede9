package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizly/internal/config"
	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect and exercise the LLM provider",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Send a minimal request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		llmCfg := llm.ConfigFromEnv()
		if err := llmCfg.Validate(); err != nil {
			return fmt.Errorf("llm config: %w", err)
		}

		provider, err := llm.NewProvider(cmd.Context(), llmCfg, nil, logger.NewNop())
		if err != nil {
			return fmt.Errorf("init provider: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("provider check failed: %w", err)
		}

		fmt.Printf("Provider:  %s\n", llmCfg.Provider)
		fmt.Printf("Model:     %s\n", resp.Model)
		fmt.Printf("Latency:   %dms\n", time.Since(start).Milliseconds())
		fmt.Printf("Tokens:    %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Printf("Response:  %s\n", strings.TrimSpace(resp.Text()))
		return nil
	},
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM request log entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := store.Open(cfg.Postgres, logger.NewNop())
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}

		entries, err := store.NewLLMLogRepo(db, logger.NewNop()).Recent(cmd.Context(), purpose, limit)
		if err != nil {
			return fmt.Errorf("query log entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No LLM requests logged.")
			return nil
		}

		// Header.
		fmt.Printf("%-19s  %-14s  %-28s  %-6s  %-6s  %-7s  %s\n",
			"Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range entries {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			model := e.Model
			if len(model) > 28 {
				model = model[:28]
			}
			fmt.Printf("%-19s  %-14s  %-28s  %-6d  %-6d  %-7d  %s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				model,
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

func init() {
	llmListCmd.Flags().Int("limit", 20, "Maximum number of entries to show")
	llmListCmd.Flags().String("purpose", "", "Filter by purpose (question-gen, feedback, advisor)")

	llmCmd.AddCommand(llmCheckCmd)
	llmCmd.AddCommand(llmListCmd)
}
