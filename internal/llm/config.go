package llm

import (
	"os"
	"strconv"
)

// Task identifies the kind of model call being performed.
type Task string

const (
	TaskCompose Task = "compose"
	TaskRefine  Task = "refine"
	TaskEmbed   Task = "embed"
)

// TaskConfig holds per-task model parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the model subsystem.
type Config struct {
	Endpoint   string
	ChatModel  string
	EmbedModel string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool
	Tasks      map[Task]TaskConfig
}

// DefaultConfig returns a Config with sensible defaults for a local
// Ollama instance.
func DefaultConfig() Config {
	return Config{
		Endpoint:   "http://localhost:11434",
		ChatModel:  "gemma3:4b",
		EmbedModel: "mxbai-embed-large:latest",
		TimeoutMs:  30000,
		MaxRetries: 0,
		LogCalls:   false,
		Tasks: map[Task]TaskConfig{
			TaskCompose: {Temperature: 0.7, MaxTokens: 1024, TimeoutMs: 60000},
			TaskRefine:  {Temperature: 0.7, MaxTokens: 1024, TimeoutMs: 60000},
			TaskEmbed:   {TimeoutMs: 15000},
		},
	}
}

// LoadConfig reads model configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("MANIFEST_OLLAMA_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("MANIFEST_CHAT_MODEL"); v != "" {
		cfg.ChatModel = v
	}
	if v := os.Getenv("MANIFEST_EMBED_MODEL"); v != "" {
		cfg.EmbedModel = v
	}
	if v := os.Getenv("MANIFEST_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("MANIFEST_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("MANIFEST_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	applyTaskTimeoutEnv(&cfg, TaskCompose, "MANIFEST_LLM_COMPOSE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskRefine, "MANIFEST_LLM_REFINE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskEmbed, "MANIFEST_LLM_EMBED_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task Task) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task Task, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
