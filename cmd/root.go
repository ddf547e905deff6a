package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formdraft/formdraft/config"
	"github.com/formdraft/formdraft/llm"
	"github.com/formdraft/formdraft/logger"
	"github.com/formdraft/formdraft/pipeline"
	"github.com/formdraft/formdraft/prompt"
)

var (
	// Command line flags
	logLevel   string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "formdraft",
	Short: "FormDraft - structured form input to generated drafts",
	Long: `FormDraft turns structured form input into generated drafts.
Templates declare the fields a form collects; submissions are validated,
rendered into a prompt, sent to the configured provider and sanitized
before anything is returned.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Initialize logger with the specified log level
		logger.Init(logLevel)
		logger.Debugf("Log level set to: %s", logLevel)
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior when no subcommands are provided
		cmd.Help()
	},
}

// Execute runs the root command and handles errors
func Execute() error {
	// Subcommands are added in their respective init() functions
	return rootCmd.Execute()
}

func init() {
	rootCmd.SilenceUsage = true

	// Add persistent flags that will be available to all subcommands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"Set the logging level (debug, info, warn, error, dpanic, panic, fatal)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to a formdraft.yaml config file (optional)")
}

// newRegistry loads the built-in templates plus any template directory
// named in the configuration.
func newRegistry(templatesDir string) (*prompt.Registry, error) {
	registry, err := prompt.Builtins()
	if err != nil {
		return nil, fmt.Errorf("failed to register built-in templates: %w", err)
	}

	if templatesDir != "" {
		if err := registry.LoadDir(templatesDir); err != nil {
			return nil, fmt.Errorf("failed to load templates from %s: %w", templatesDir, err)
		}
	}

	return registry, nil
}

// newPipeline wires the registry and the configured provider into a
// ready pipeline.
func newPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	registry, err := newRegistry(cfg.Templates.Dir)
	if err != nil {
		return nil, err
	}

	opts := []llm.Option{
		llm.WithMaxTokens(cfg.LLM.MaxTokens),
		llm.WithTimeout(cfg.LLM.Timeout()),
		llm.WithRetryMax(cfg.LLM.RetryMax),
	}
	if cfg.LLM.SystemPrompt != "" {
		opts = append(opts, llm.WithSystemPrompt(cfg.LLM.SystemPrompt))
	}

	client, err := llm.New(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	return pipeline.New(registry, client), nil
}
