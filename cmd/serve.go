package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizly/internal/adaptive"
	"github.com/abhisek/quizly/internal/config"
	"github.com/abhisek/quizly/internal/grading"
	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/logger"
	"github.com/abhisek/quizly/internal/quizgen"
	"github.com/abhisek/quizly/internal/server"
	"github.com/abhisek/quizly/internal/service"
	"github.com/abhisek/quizly/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	db, err := store.Open(cfg.Postgres, log)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	profileRepo := store.NewProfileRepo(db, log)
	topicRepo := store.NewTopicRepo(db, log)
	questionRepo := store.NewQuestionRepo(db, log)
	sessionRepo := store.NewSessionRepo(db, log)
	answerRepo := store.NewAnswerRepo(db, log)
	llmLogRepo := store.NewLLMLogRepo(db, log)

	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		return fmt.Errorf("llm config: %w", err)
	}
	provider, err := llm.NewProvider(cmd.Context(), llmCfg, llmLogRepo, log)
	if err != nil {
		return fmt.Errorf("init llm provider: %w", err)
	}

	generator := quizgen.New(provider, quizgen.DefaultConfig())
	feedback := grading.NewFeedbackGenerator(provider)
	advisor := adaptive.NewAdvisor(provider)

	profiles := service.NewProfileService(profileRepo)
	topics := service.NewTopicService(topicRepo, questionRepo)
	sessions := service.NewSessionService(
		sessionRepo, answerRepo, questionRepo, topicRepo,
		generator, feedback, advisor, cfg.Adaptive, log,
	)

	srv := server.New(cfg, profiles, topics, sessions, log)

	log.Info("starting server", "addr", cfg.Addr, "env", cfg.Env, "llm_provider", llmCfg.Provider)
	return srv.Run(cfg.Addr)
}
