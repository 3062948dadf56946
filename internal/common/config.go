package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Storage     StorageConfig  `toml:"storage"`
	Acquirer    AcquirerConfig `toml:"acquirer"`
	Catalog     CatalogConfig  `toml:"catalog"`
	Chat        ChatConfig     `toml:"chat"`
	Logging     LoggingConfig  `toml:"logging"`
	Gemini      GeminiConfig   `toml:"gemini"`
	Claude      ClaudeConfig   `toml:"claude"`
	LLM         LLMConfig      `toml:"llm"`
}

type StorageConfig struct {
	Badger        BadgerConfig `toml:"badger"`
	DirectivesDir string       `toml:"directives_dir" validate:"required"` // Local PDF store written by the acquirer
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"` // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"`         // Delete database on startup for clean test runs
	GCInterval     string `toml:"gc_interval"`              // Value-log GC interval as duration string
}

// AcquirerConfig contains directive PDF acquisition configuration
type AcquirerConfig struct {
	BaseURL            string        `toml:"base_url" validate:"required,url"` // Listing base URL, series code appended per request
	Series             []string      `toml:"series"`                           // Topical series codes to acquire (e.g. "001".."100")
	UserAgent          string        `toml:"user_agent"`
	RequestTimeout     time.Duration `toml:"request_timeout"`
	RequestDelay       time.Duration `toml:"request_delay"`        // Minimum delay between requests to the listing host
	EnableJavaScript   bool          `toml:"enable_javascript"`    // Render the listing with chromedp when static fetch finds no links
	JavaScriptWaitTime time.Duration `toml:"javascript_wait_time"` // Time to wait for JavaScript to render
	Schedule           string        `toml:"schedule"`             // Cron schedule for re-acquisition; empty disables
}

// CatalogConfig points at the region/office catalog file
type CatalogConfig struct {
	Path string `toml:"path"` // YAML catalog path; empty uses the embedded default
}

// ChatConfig contains retrieval and citation behavior
type ChatConfig struct {
	TopK              int    `toml:"top_k" validate:"gt=0"`         // Passages retrieved per question
	MaxCitations      int    `toml:"max_citations" validate:"gt=0"` // Citations appended to an answer
	MaxChunkSize      int    `toml:"max_chunk_size"`                // Passage chunk size in characters
	AuthorityFilename string `toml:"authority_filename"`            // Filename of the classification authority directive
	IndexCacheTTL     string `toml:"index_cache_ttl"`               // Scoped index cache TTL as duration string
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// GeminiConfig contains Google Gemini API configuration for embeddings
type GeminiConfig struct {
	APIKey         string  `toml:"api_key"`          // Google Gemini API key
	Model          string  `toml:"model"`            // Chat model when Gemini is the chat provider
	EmbedModelName string  `toml:"embed_model_name"` // Embedding model (default: "gemini-embedding-001")
	EmbedDimension int     `toml:"embed_dimension"`  // Embedding output dimensionality
	Timeout        string  `toml:"timeout"`          // Operation timeout as duration string
	Temperature    float32 `toml:"temperature"`
}

// ClaudeConfig contains Anthropic Claude API configuration for chat completions
type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`    // Anthropic API key
	Model       string  `toml:"model"`      // Model for chat completions
	MaxTokens   int     `toml:"max_tokens"` // Maximum tokens in response
	Timeout     string  `toml:"timeout"`    // Operation timeout as duration string
	Temperature float32 `toml:"temperature"`
}

// LLMProvider represents the AI provider type
type LLMProvider string

const (
	// LLMProviderGemini uses Google Gemini API
	LLMProviderGemini LLMProvider = "gemini"
	// LLMProviderClaude uses Anthropic Claude API
	LLMProviderClaude LLMProvider = "claude"
)

// LLMConfig contains unified configuration for all AI providers
type LLMConfig struct {
	DefaultProvider LLMProvider `toml:"default_provider"` // Chat provider: "claude" (default) or "gemini"
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in dirigo.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:       "./data",
				GCInterval: "5m",
			},
			DirectivesDir: "./directives",
		},
		Acquirer: AcquirerConfig{
			BaseURL:            "https://www.weather.gov/directives",
			Series:             []string{"001", "010", "020", "030", "040", "050", "060", "070", "090", "100"},
			UserAgent:          "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestTimeout:     30 * time.Second,
			RequestDelay:       1 * time.Second,
			EnableJavaScript:   false,
			JavaScriptWaitTime: 3 * time.Second,
			Schedule:           "", // Re-acquisition disabled by default - user must explicitly opt-in
		},
		Catalog: CatalogConfig{
			Path: "", // Embedded default catalog
		},
		Chat: ChatConfig{
			TopK:              5,
			MaxCitations:      3,
			MaxChunkSize:      1200,
			AuthorityFilename: "pd00101001curr.pdf",
			IndexCacheTTL:     "1h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Gemini: GeminiConfig{
			APIKey:         "", // User must provide API key (GEMINI_API_KEY or config)
			Model:          "gemini-3-flash-preview",
			EmbedModelName: "gemini-embedding-001",
			EmbedDimension: 768,
			Timeout:        "5m",
			Temperature:    0.2,
		},
		Claude: ClaudeConfig{
			APIKey:      "", // User must provide API key (ANTHROPIC_API_KEY or config)
			Model:       "claude-haiku-3-5-20241022",
			MaxTokens:   8192,
			Timeout:     "5m",
			Temperature: 0.2,
		},
		LLM: LLMConfig{
			DefaultProvider: LLMProviderClaude,
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies DIRIGO_* and provider environment variables
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("DIRIGO_DIRECTIVES_DIR"); v != "" {
		config.Storage.DirectivesDir = v
	}
	if v := os.Getenv("DIRIGO_BADGER_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
	if v := os.Getenv("DIRIGO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("DIRIGO_BASE_URL"); v != "" {
		config.Acquirer.BaseURL = v
	}
	if v := os.Getenv("DIRIGO_LLM_PROVIDER"); v != "" {
		config.LLM.DefaultProvider = LLMProvider(strings.ToLower(v))
	}
	if v := os.Getenv("DIRIGO_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.Chat.TopK = n
		}
	}
	// Provider keys follow the vendors' conventional variable names
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		config.Claude.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		config.Gemini.APIKey = v
	}
}

// Validate checks the configuration for structural and semantic errors
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch c.LLM.DefaultProvider {
	case LLMProviderGemini, LLMProviderClaude:
	default:
		return fmt.Errorf("invalid llm.default_provider %q: must be %q or %q",
			c.LLM.DefaultProvider, LLMProviderClaude, LLMProviderGemini)
	}

	for _, s := range c.Acquirer.Series {
		if len(s) != 3 {
			return fmt.Errorf("invalid acquirer series code %q: must be 3 digits", s)
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return fmt.Errorf("invalid acquirer series code %q: must be 3 digits", s)
			}
		}
	}

	if c.Acquirer.Schedule != "" {
		if err := ValidateSchedule(c.Acquirer.Schedule); err != nil {
			return fmt.Errorf("invalid acquirer.schedule: %w", err)
		}
	}

	return nil
}

// ValidateSchedule validates a cron schedule expression (with seconds field)
func ValidateSchedule(schedule string) error {
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
