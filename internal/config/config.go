package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Provider tiers. The tier picks both the embedder and the completer.
const (
	TierCloud = "cloud"
	TierLocal = "local"
)

// OpenAIConfig holds configuration for the OpenAI-compatible cloud provider.
type OpenAIConfig struct {
	BaseURL    string `yaml:"base_url"`
	APIKeyEnv  string `yaml:"api_key_env"`
	EmbedModel string `yaml:"embed_model"`
	ChatModel  string `yaml:"chat_model"`
}

// OllamaConfig holds configuration for the local Ollama provider.
type OllamaConfig struct {
	BaseURL     string `yaml:"base_url"`
	EmbedModel  string `yaml:"embed_model"`
	ChatModel   string `yaml:"chat_model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ProviderConfig selects and configures the model provider.
// TopK defaults per tier: 5 on cloud, 3 on local (latency/quality tradeoff).
type ProviderConfig struct {
	Tier   string        `yaml:"tier"`
	TopK   int           `yaml:"top_k"`
	OpenAI *OpenAIConfig `yaml:"openai,omitempty"`
	Ollama *OllamaConfig `yaml:"ollama,omitempty"`
}

// ChunkerConfig configures how document pages are split into windows.
type ChunkerConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// QdrantConfig contains connection details for the hosted vector index.
type QdrantConfig struct {
	URL        string `yaml:"url"`
	APIKeyEnv  string `yaml:"api_key_env"`
	APIKey     string `yaml:"-"`
	Collection string `yaml:"collection"`
}

// IndexConfig selects and configures the vector store implementation.
type IndexConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// PromptConfig bounds the rendered prompt.
type PromptConfig struct {
	TokenBudget int `yaml:"token_budget"`
}

// IngestConfig configures the run-once upload.
type IngestConfig struct {
	Document    string `yaml:"document"`
	Concurrency int    `yaml:"concurrency"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Provider ProviderConfig `yaml:"provider"`
	Chunker  ChunkerConfig  `yaml:"chunker"`
	Index    IndexConfig    `yaml:"index"`
	Prompt   PromptConfig   `yaml:"prompt"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Upload   bool           `yaml:"-"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment flags and keys are applied after the file is parsed.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			applyEnv(cfg)
			return cfg, cfg.Validate()
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, cfg.Validate()
}

// LoadDefault tries ./docchat.yaml first, then ~/.config/docchat/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "docchat.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	applyEnv(cfg)
	return cfg, userPath, cfg.Validate()
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks that the selected components have the credentials they need.
func (c *AppConfig) Validate() error {
	switch c.Provider.Tier {
	case TierCloud:
		key := os.Getenv(c.Provider.OpenAI.APIKeyEnv)
		if key == "" {
			return fmt.Errorf("missing chat-model API key in env %s", c.Provider.OpenAI.APIKeyEnv)
		}
	case TierLocal:
	default:
		return fmt.Errorf("unknown provider tier: %s", c.Provider.Tier)
	}
	if c.Index.Type == "qdrant" {
		q := c.Index.Qdrant
		if q == nil {
			return errors.New("qdrant index config missing")
		}
		if q.APIKey == "" {
			return fmt.Errorf("missing vector-index API key in env %s", q.APIKeyEnv)
		}
		if q.Collection == "" {
			return errors.New("missing vector-index collection name (QDRANT_COLLECTION)")
		}
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "docchat", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Provider: ProviderConfig{Tier: TierCloud},
		Chunker:  ChunkerConfig{Size: 1000, Overlap: 200},
		Index:    IndexConfig{Type: "qdrant", Qdrant: &QdrantConfig{}},
		Prompt:   PromptConfig{TokenBudget: 3000},
		Ingest:   IngestConfig{Document: "docs/document.pdf", Concurrency: 4},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Provider.Tier == "" {
		cfg.Provider.Tier = TierCloud
	}
	if cfg.Provider.OpenAI == nil {
		cfg.Provider.OpenAI = &OpenAIConfig{}
	}
	if cfg.Provider.Ollama == nil {
		cfg.Provider.Ollama = &OllamaConfig{}
	}
	o := cfg.Provider.OpenAI
	if o.BaseURL == "" {
		o.BaseURL = "https://api.openai.com/v1"
	}
	if o.APIKeyEnv == "" {
		o.APIKeyEnv = "OPENAI_API_KEY"
	}
	if o.EmbedModel == "" {
		o.EmbedModel = "text-embedding-3-small"
	}
	if o.ChatModel == "" {
		o.ChatModel = "gpt-4o-mini"
	}
	l := cfg.Provider.Ollama
	if l.BaseURL == "" {
		l.BaseURL = "http://localhost:11434"
	}
	if l.EmbedModel == "" {
		l.EmbedModel = "nomic-embed-text"
	}
	if l.ChatModel == "" {
		l.ChatModel = "llama3.2"
	}
	if l.TimeoutSecs == 0 {
		l.TimeoutSecs = 30
	}
	if cfg.Chunker.Size == 0 {
		cfg.Chunker.Size = 1000
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = 200
	}
	if cfg.Index.Type == "" {
		cfg.Index.Type = "qdrant"
	}
	if cfg.Index.Type == "qdrant" && cfg.Index.Qdrant == nil {
		cfg.Index.Qdrant = &QdrantConfig{}
	}
	if q := cfg.Index.Qdrant; q != nil {
		if q.URL == "" {
			q.URL = "http://localhost:6333"
		}
		if q.APIKeyEnv == "" {
			q.APIKeyEnv = "QDRANT_API_KEY"
		}
	}
	if cfg.Prompt.TokenBudget == 0 {
		cfg.Prompt.TokenBudget = 3000
	}
	if cfg.Ingest.Document == "" {
		cfg.Ingest.Document = "docs/document.pdf"
	}
	if cfg.Ingest.Concurrency == 0 {
		cfg.Ingest.Concurrency = 4
	}
	if cfg.Provider.TopK == 0 {
		if cfg.Provider.Tier == TierLocal {
			cfg.Provider.TopK = 3
		} else {
			cfg.Provider.TopK = 5
		}
	}
}

func applyEnv(cfg *AppConfig) {
	if boolEnv("DOCCHAT_LOCAL") {
		cfg.Provider.Tier = TierLocal
		if cfg.Provider.TopK == 0 || cfg.Provider.TopK == 5 {
			cfg.Provider.TopK = 3
		}
	}
	if boolEnv("DOCCHAT_UPLOAD") {
		cfg.Upload = true
	}
	if q := cfg.Index.Qdrant; q != nil {
		q.APIKey = os.Getenv(q.APIKeyEnv)
		if v := os.Getenv("QDRANT_COLLECTION"); v != "" {
			q.Collection = v
		}
		if v := os.Getenv("QDRANT_URL"); v != "" {
			q.URL = v
		}
	}
}

func boolEnv(name string) bool {
	switch strings.ToLower(os.Getenv(name)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
