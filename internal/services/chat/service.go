package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/common"
	"github.com/ternarybob/dirigo/internal/interfaces"
	"github.com/ternarybob/dirigo/internal/models"
	"github.com/ternarybob/dirigo/internal/services/citations"
	"github.com/ternarybob/dirigo/internal/services/scope"
)

// Service answers directive questions. Each turn runs the full pipeline:
// resolve the scope, filter the corpus, ensure the scoped retrieval index,
// retrieve passages, generate a completion, and assemble the answer with
// citations.
type Service struct {
	storage interfaces.DirectiveStorage
	catalog *models.Catalog
	builder interfaces.IndexBuilder
	llm     interfaces.LLMService
	config  *common.ChatConfig
	logger  arbor.ILogger
}

// NewService creates the chat service
func NewService(
	storage interfaces.DirectiveStorage,
	catalog *models.Catalog,
	builder interfaces.IndexBuilder,
	llm interfaces.LLMService,
	config *common.ChatConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		storage: storage,
		catalog: catalog,
		builder: builder,
		llm:     llm,
		config:  config,
		logger:  logger,
	}
}

// Ask resolves one conversational turn. Scoping errors and generation
// errors are returned to the caller; they abort this turn only and leave
// the session usable for the next one.
func (s *Service) Ask(ctx context.Context, req *interfaces.ChatRequest) (*interfaces.ChatResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("question cannot be empty")
	}

	// No selection means national-only scope; a non-empty selection must
	// resolve to a single region or the turn is blocked.
	region := models.ScopeNational
	if !req.Selection.IsZero() {
		resolved, err := scope.Resolve(s.catalog, req.Selection)
		if err != nil {
			return nil, fmt.Errorf("cannot resolve scope: %w", err)
		}
		region = resolved
	}

	startTime := time.Now()
	s.logger.Debug().
		Str("region", region).
		Int("history_turns", len(req.History)/2).
		Msg("Processing chat turn")

	directives, err := s.storage.ListDirectives()
	if err != nil {
		return nil, fmt.Errorf("failed to load directive corpus: %w", err)
	}
	if len(directives) == 0 {
		return nil, fmt.Errorf("directive corpus is empty: run acquisition and loading first")
	}

	scoped, lowCoverage := scope.Filter(directives, region)
	if region == models.ScopeNational {
		// National scope has no regional subset to miss
		lowCoverage = false
	}
	if lowCoverage {
		s.logger.Warn().
			Str("region", region).
			Msg("No regional supplementals found, answering from national directives only")
	}

	idx, err := s.builder.Ensure(ctx, scoped, region)
	if err != nil {
		return nil, fmt.Errorf("failed to build retrieval index: %w", err)
	}

	passages, err := idx.Query(ctx, req.Question, s.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	messages := s.buildMessages(req, region, passages)

	answerText, err := s.llm.Chat(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}

	cited := citations.Build(passages, s.config.MaxCitations)
	answer := Assemble(answerText, cited)

	s.logger.Info().
		Str("region", region).
		Int("passages", len(passages)).
		Int("citations", len(cited)).
		Bool("low_coverage", lowCoverage).
		Dur("duration", time.Since(startTime)).
		Msg("Chat turn completed")

	return &interfaces.ChatResponse{
		Answer:      answer,
		Citations:   cited,
		Passages:    passages,
		Region:      region,
		LowCoverage: lowCoverage,
	}, nil
}

// buildMessages assembles the full conversation for the completion call:
// system prompt, prior history, then the grounded question.
func (s *Service) buildMessages(req *interfaces.ChatRequest, region string, passages []models.RetrievalPassage) []interfaces.Message {
	messages := make([]interfaces.Message, 0, len(req.History)+2)
	messages = append(messages, interfaces.Message{
		Role:    "system",
		Content: buildSystemPrompt(req.Selection, region),
	})
	messages = append(messages, req.History...)
	messages = append(messages, interfaces.Message{
		Role:    "user",
		Content: buildGroundedQuestion(req.Question, passages),
	})
	return messages
}

// HealthCheck verifies the completion provider is reachable
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.llm.HealthCheck(ctx)
}
