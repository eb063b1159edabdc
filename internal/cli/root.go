// Package cli implements the yournote CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/yournote/internal/config"
	"github.com/rcliao/yournote/internal/failure"
	"github.com/rcliao/yournote/internal/llm"
	"github.com/rcliao/yournote/internal/session"
	"github.com/rcliao/yournote/internal/store"
)

var (
	dbPath     string
	configPath string
	formatFlag string
	verbose    bool

	cfg    *config.Config
	logger = slog.Default()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "yournote",
	Short: "AI study assistant for notes, whiteboards and exams",
	Long: "yournote keeps study notes in SQLite and uses an OpenAI-compatible chat API " +
		"to summarize them, analyze whiteboard sketches and generate graded exams.",
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $YOURNOTE_DB or ~/.yournote/yournote.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $YOURNOTE_CONFIG or ~/.yournote/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: json or text")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging to stderr")
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if formatFlag != "json" && formatFlag != "text" {
		return fmt.Errorf("invalid --format %q (want json or text)", formatFlag)
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = c
	logger.Debug("config loaded", "path", path, "model", cfg.LLM.Model)
	return nil
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("YOURNOTE_DB"); env != "" {
		return env
	}
	return cfg.DBPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func openSession() (*session.Session, error) {
	s, err := openStore()
	if err != nil {
		return nil, err
	}
	return session.New(s, session.WithLogger(logger)), nil
}

// newGateway builds the completion gateway. A missing API key is fatal for
// every model-backed command.
func newGateway() *llm.Gateway {
	if err := cfg.RequireAPIKey(); err != nil {
		exitErr("configuration", err)
	}
	client := llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Timeout)
	return llm.NewGateway(client, cfg.LLM.Model, cfg.LLM.Temperature, cfg.LLM.MaxTokens, logger)
}

func jsonOutput() bool { return formatFlag == "json" }

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

// exitErr reports err and exits. Empty-input failures are warnings, not
// errors.
func exitErr(msg string, err error) {
	switch {
	case errors.Is(err, failure.ErrEmptyInput):
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		os.Exit(0)
	case errors.Is(err, failure.ErrUpstream), errors.Is(err, failure.ErrParse):
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	default:
		fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	}
	os.Exit(1)
}
