// Package config loads runtime configuration from the environment
// and an optional formdraft.yaml file. Environment variables win over
// file values; the FORMDRAFT_ prefix maps onto config keys with dots
// replaced by underscores, so llm.api_key reads FORMDRAFT_LLM_API_KEY.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/formdraft/formdraft/llm"
)

// HTTP configures the API server.
type HTTP struct {
	Addr string
}

// LLM configures the generation client. APIKey has no default; a
// missing credential fails Load so hosts stop at startup rather than
// on the first submission.
type LLM struct {
	Provider       string
	Model          string
	APIKey         string
	MaxTokens      int
	TimeoutSeconds int
	RetryMax       int
	SystemPrompt   string
}

// Timeout returns the per-request deadline.
func (l LLM) Timeout() time.Duration {
	return time.Duration(l.TimeoutSeconds) * time.Second
}

// Templates configures where user templates are loaded from. An empty
// Dir means built-in templates only.
type Templates struct {
	Dir string
}

// Config is the full runtime configuration.
type Config struct {
	HTTP      HTTP
	LLM       LLM
	Templates Templates
}

// Load reads configuration from the environment and, when present,
// a yaml file. Pass an explicit path to require that file; with an
// empty path a formdraft.yaml in the working directory is used if it
// exists.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("llm.provider", llm.ProviderOpenAI)
	v.SetDefault("llm.max_tokens", 4000)
	v.SetDefault("llm.timeout_seconds", 30)
	v.SetDefault("llm.retry_max", 2)
	v.SetDefault("templates.dir", "")

	v.SetEnvPrefix("FORMDRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("formdraft")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		HTTP: HTTP{
			Addr: v.GetString("http.addr"),
		},
		LLM: LLM{
			Provider:       v.GetString("llm.provider"),
			Model:          v.GetString("llm.model"),
			APIKey:         v.GetString("llm.api_key"),
			MaxTokens:      v.GetInt("llm.max_tokens"),
			TimeoutSeconds: v.GetInt("llm.timeout_seconds"),
			RetryMax:       v.GetInt("llm.retry_max"),
			SystemPrompt:   v.GetString("llm.system_prompt"),
		},
		Templates: Templates{
			Dir: v.GetString("templates.dir"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.LLM.Provider {
	case llm.ProviderOpenAI, llm.ProviderAnthropic:
	default:
		return fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider)
	}

	if c.LLM.APIKey == "" {
		return errors.New("missing credential: set FORMDRAFT_LLM_API_KEY or llm.api_key")
	}

	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}

	if c.LLM.RetryMax < 0 {
		return errors.New("llm.retry_max cannot be negative")
	}

	if c.HTTP.Addr == "" {
		return errors.New("http.addr cannot be empty")
	}

	return nil
}
