// Package cmd implements the toolbridge CLI using cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rathore/toolbridge/config"
	"github.com/rathore/toolbridge/llm"
)

const version = "1.0.0"

var (
	configPath string
	debug      bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "toolbridge",
	Short: "toolbridge - MCP vs function-calling demos",
	Long: `toolbridge contrasts two ways an AI agent can invoke external
capabilities: tools discovered over the MCP protocol versus direct
in-process function calls with generated schemas.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		level := slog.LevelWarn
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(discoverCmd)
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

// buildOracle creates the oracle client, or falls back to the
// deterministic keyword selector when no credential is configured.
// The choice happens once at startup, never mid-turn.
func buildOracle(cfg config.Config) (llm.Oracle, *llm.FallbackSelector, error) {
	apiKey := cfg.LLM.ResolveAPIKey()
	if apiKey == "" {
		fmt.Println("No API key configured - simulating LLM responses with keyword rules.")
		return nil, llm.NewFallbackSelector(), nil
	}
	client, err := llm.NewClient(cfg.LLM.BaseURL, apiKey, cfg.LLM.Model)
	if err != nil {
		return nil, nil, err
	}
	return client, nil, nil
}

// requireOracle is for modes that cannot degrade.
func requireOracle(cfg config.Config) (llm.Oracle, error) {
	apiKey := cfg.LLM.ResolveAPIKey()
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable not set", cfg.LLM.APIKeyEnv)
	}
	return llm.NewClient(cfg.LLM.BaseURL, apiKey, cfg.LLM.Model)
}
