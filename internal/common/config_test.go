package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "https://www.weather.gov/directives", config.Acquirer.BaseURL)
	assert.NotEmpty(t, config.Acquirer.Series)
	assert.Equal(t, 5, config.Chat.TopK)
	assert.Equal(t, 3, config.Chat.MaxCitations)
	assert.Equal(t, "pd00101001curr.pdf", config.Chat.AuthorityFilename)
	assert.Equal(t, LLMProviderClaude, config.LLM.DefaultProvider)

	assert.NoError(t, config.Validate())
}

func TestLoadFromFile(t *testing.T) {
	content := `
environment = "production"

[storage]
directives_dir = "/srv/directives"

[acquirer]
series = ["010", "020"]

[chat]
top_k = 8

[llm]
default_provider = "gemini"
`
	path := filepath.Join(t.TempDir(), "dirigo.toml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, "/srv/directives", config.Storage.DirectivesDir)
	assert.Equal(t, []string{"010", "020"}, config.Acquirer.Series)
	assert.Equal(t, 8, config.Chat.TopK)
	assert.Equal(t, LLMProviderGemini, config.LLM.DefaultProvider)

	// Unset fields keep their defaults
	assert.Equal(t, 3, config.Chat.MaxCitations)
	assert.Equal(t, "https://www.weather.gov/directives", config.Acquirer.BaseURL)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DIRIGO_DIRECTIVES_DIR", "/env/directives")
	t.Setenv("DIRIGO_LLM_PROVIDER", "GEMINI")
	t.Setenv("DIRIGO_TOP_K", "12")
	t.Setenv("ANTHROPIC_API_KEY", "test-claude-key")
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")

	config, err := LoadFromFiles()
	assert.NoError(t, err)
	assert.Equal(t, "/env/directives", config.Storage.DirectivesDir)
	assert.Equal(t, LLMProviderGemini, config.LLM.DefaultProvider)
	assert.Equal(t, 12, config.Chat.TopK)
	assert.Equal(t, "test-claude-key", config.Claude.APIKey)
	assert.Equal(t, "test-gemini-key", config.Gemini.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.DefaultProvider = "openai" },
			wantErr: "default_provider",
		},
		{
			name:    "series code wrong length",
			mutate:  func(c *Config) { c.Acquirer.Series = []string{"10"} },
			wantErr: "3 digits",
		},
		{
			name:    "series code not numeric",
			mutate:  func(c *Config) { c.Acquirer.Series = []string{"01a"} },
			wantErr: "3 digits",
		},
		{
			name:    "bad cron schedule",
			mutate:  func(c *Config) { c.Acquirer.Schedule = "not a schedule" },
			wantErr: "cron",
		},
		{
			name:    "missing directives dir",
			mutate:  func(c *Config) { c.Storage.DirectivesDir = "" },
			wantErr: "invalid configuration",
		},
		{
			name:   "valid schedule with seconds field",
			mutate: func(c *Config) { c.Acquirer.Schedule = "0 0 3 * * *" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := NewDefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 0 3 * * *"))
	assert.NoError(t, ValidateSchedule("*/30 * * * * *"))
	assert.Error(t, ValidateSchedule("every now and then"))
}
