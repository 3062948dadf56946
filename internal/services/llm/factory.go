package llm

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/common"
	"github.com/ternarybob/dirigo/internal/interfaces"
)

// Services bundles the provider instances the application needs. Chat serves
// completion requests according to llm.default_provider; Embedder is always
// the Gemini service because it is the only provider with an embedding model.
type Services struct {
	Chat     interfaces.LLMService
	Embedder interfaces.LLMService
}

// NewServices creates the LLM services based on configuration.
//
// The Gemini service is always created because retrieval embeddings depend
// on it. When Claude is the chat provider a second service is created for
// completions; when Gemini is the chat provider the same instance serves
// both roles.
func NewServices(cfg *common.Config, logger arbor.ILogger) (*Services, error) {
	logger.Info().
		Str("chat_provider", string(cfg.LLM.DefaultProvider)).
		Msg("Initializing LLM services")

	gemini, err := NewGeminiService(&cfg.Gemini, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini service: %w", err)
	}

	switch cfg.LLM.DefaultProvider {
	case common.LLMProviderClaude:
		claude, err := NewClaudeService(&cfg.Claude, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create Claude service: %w", err)
		}
		return &Services{Chat: claude, Embedder: gemini}, nil

	case common.LLMProviderGemini:
		return &Services{Chat: gemini, Embedder: gemini}, nil

	default:
		return nil, fmt.Errorf("unsupported chat provider '%s': must be 'claude' or 'gemini'", cfg.LLM.DefaultProvider)
	}
}

// Close releases both provider instances. Closing the shared Gemini instance
// twice is harmless.
func (s *Services) Close() error {
	if s.Chat != nil {
		_ = s.Chat.Close()
	}
	if s.Embedder != nil {
		_ = s.Embedder.Close()
	}
	return nil
}
