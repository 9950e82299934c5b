// Package question generates role-specific interview questions through the
// chat model, falling back to the static bank whenever the model is
// unconfigured, times out or returns something unusable.
package question

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/mockview/mockview/backend/internal/collab"
	"github.com/mockview/mockview/backend/internal/model/interview"
)

// Service produces ordered question lists for a role and experience level.
type Service struct {
	enabled   bool
	generator compose.Runnable[map[string]any, *schema.Message]
	bank      *interview.QuestionBank
	timeout   time.Duration
}

// NewService wires the generator chain. chatModel may be nil, in which case
// every request is served from the bank.
func NewService(ctx context.Context, chatModel model.ChatModel, bank *interview.QuestionBank, timeout time.Duration) (*Service, error) {
	svc := &Service{
		enabled: chatModel != nil,
		bank:    bank,
		timeout: timeout,
	}
	if !svc.enabled {
		return svc, nil
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(generatorSystemPrompt),
		schema.UserMessage(generatorUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile question generator chain: %w", err)
	}
	svc.generator = runnable
	return svc, nil
}

// Enabled reports whether the model-backed generator is available.
func (s *Service) Enabled() bool {
	return s != nil && s.enabled && s.generator != nil
}

// Generate returns exactly count questions. The model path is budgeted and
// retried once; any failure or malformed response falls back to the bank.
func (s *Service) Generate(ctx context.Context, role, level string, count int) []interview.Question {
	if !s.Enabled() {
		return s.bank.Questions(role, level, count)
	}

	res := collab.Do(ctx, s.timeout, func(callCtx context.Context) ([]interview.Question, error) {
		msg, err := s.generator.Invoke(callCtx, map[string]any{
			"role":  role,
			"level": level,
			"count": count,
		})
		if err != nil {
			return nil, err
		}
		if msg == nil || strings.TrimSpace(msg.Content) == "" {
			return nil, fmt.Errorf("empty generator response")
		}
		questions, err := parseGeneratedQuestions(msg.Content, count)
		if err != nil {
			return nil, err
		}
		return questions, nil
	}, nil)

	if res.Degraded {
		log.Printf("[question] generator degraded, using bank: %v", res.Err)
		return s.bank.Questions(role, level, count)
	}
	return res.Value
}

type generatedQuestion struct {
	Question         string `json:"question"`
	Type             string `json:"type"`
	Difficulty       string `json:"difficulty"`
	ExpectedDuration int    `json:"expected_duration"`
}

// parseGeneratedQuestions decodes the model's JSON array, tolerating code
// fences, and normalizes each entry. Fewer valid questions than requested is
// treated as a malformed response so the bank takes over.
func parseGeneratedQuestions(content string, count int) ([]interview.Question, error) {
	raw := strings.TrimSpace(content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var entries []generatedQuestion
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("generator response parse: %w", err)
	}

	questions := make([]interview.Question, 0, count)
	for _, e := range entries {
		promptText := strings.TrimSpace(e.Question)
		if promptText == "" {
			continue
		}
		category := strings.ToLower(strings.TrimSpace(e.Type))
		switch category {
		case interview.CategoryBehavioral, interview.CategoryTechnical, interview.CategorySituational:
		default:
			category = interview.ClassifyCategory(promptText)
		}
		difficulty := strings.ToLower(strings.TrimSpace(e.Difficulty))
		switch difficulty {
		case "easy", "medium", "hard":
		default:
			difficulty = "medium"
		}
		duration := e.ExpectedDuration
		if duration < 30 || duration > 180 {
			duration = 60
		}
		questions = append(questions, interview.Question{
			Prompt:              promptText,
			Category:            category,
			Difficulty:          difficulty,
			ExpectedDurationSec: duration,
		})
		if len(questions) == count {
			break
		}
	}
	if len(questions) < count {
		return nil, fmt.Errorf("generator returned %d usable questions, need %d", len(questions), count)
	}
	return questions, nil
}
