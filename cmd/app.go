package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/shruti/nursebot/internal/embedding"
	"github.com/shruti/nursebot/internal/knowledge"
	"github.com/shruti/nursebot/internal/llm"
	"github.com/shruti/nursebot/internal/quiz"
	"github.com/shruti/nursebot/internal/retrieval"
	"github.com/shruti/nursebot/internal/store"
)

// app holds the wired services shared by all commands.
type app struct {
	logger    *zap.Logger
	events    store.EventLog
	eventDB   *store.Store // nil when the event log is disabled
	provider  llm.Provider
	answerer  *retrieval.Answerer
	suggester *retrieval.Suggester
	generator *quiz.Generator
	grader    *quiz.Grader
	history   *quiz.History
	sessions  *quiz.Sessions
}

func (a *app) close() {
	if a.eventDB != nil {
		a.eventDB.Close()
	}
	a.logger.Sync()
}

// buildApp wires the full service graph. The knowledge index is only
// built when withIndex is set; quiz-only commands skip the embedding
// pass entirely.
func buildApp(ctx context.Context, cmd *cobra.Command, withIndex bool) (*app, error) {
	logger, err := buildLogger()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	events, eventDB := openEventLog(cmd, logger)

	provider := llm.NewProviderLazy(ctx, llm.ConfigFromEnv(), events, logger)

	a := &app{
		logger:   logger,
		events:   events,
		eventDB:  eventDB,
		provider: provider,
		history:  quiz.NewHistory(quiz.DefaultHistoryLimit),
		sessions: quiz.NewSessions(),
	}

	a.generator = quiz.NewGenerator(provider, a.history, quiz.NewCache(), a.sessions, quiz.DefaultConfig(), logger)
	a.grader = quiz.NewGrader(provider, a.sessions, logger)
	a.suggester = retrieval.NewSuggester(provider)

	if withIndex {
		index, err := buildIndex(ctx, cmd, logger)
		if err != nil {
			a.close()
			return nil, err
		}
		a.answerer = retrieval.NewAnswerer(index, provider)
	}

	return a, nil
}

func buildLogger() (*zap.Logger, error) {
	if os.Getenv("NURSEBOT_DEBUG") != "" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openEventLog opens the SQLite event log, degrading to a nop log when
// the database cannot be opened. Observability must not block serving.
func openEventLog(cmd *cobra.Command, logger *zap.Logger) (store.EventLog, *store.Store) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		var err error
		path, err = store.DefaultPath()
		if err != nil {
			logger.Warn("event log disabled", zap.Error(err))
			return store.NopLog{}, nil
		}
	}

	st, err := store.Open(path)
	if err != nil {
		logger.Warn("event log disabled", zap.String("path", path), zap.Error(err))
		return store.NopLog{}, nil
	}
	return st, st
}

// buildIndex loads the knowledge file, chunks it, and embeds the corpus.
func buildIndex(ctx context.Context, cmd *cobra.Command, logger *zap.Logger) (*embedding.Index, error) {
	path, _ := cmd.Flags().GetString("knowledge")
	if path == "" {
		path = os.Getenv("NURSEBOT_KNOWLEDGE")
	}
	if path == "" {
		return nil, fmt.Errorf("no knowledge file: pass --knowledge or set NURSEBOT_KNOWLEDGE")
	}

	text, err := knowledge.Load(path)
	if err != nil {
		return nil, err
	}
	chunks := knowledge.ChunkDefault(text)

	embedder, err := embedding.NewOpenAIEmbedder(embedding.ConfigFromEnv())
	if err != nil {
		return nil, fmt.Errorf("init embedder: %w", err)
	}

	index, err := embedding.Build(ctx, chunks, embedder)
	if err != nil {
		return nil, err
	}

	logger.Info("knowledge index built",
		zap.String("source", path),
		zap.Int("chunks", index.Len()))
	return index, nil
}
