package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vkaran/murmur/internal/suggest"
)

const suggestionPrompt = `Create a list of three open-ended and engaging questions formatted as a single string. Each question should be separated by '||'. These questions are for an anonymous social messaging platform and should be suitable for a diverse audience. Avoid personal or sensitive topics, focusing instead on universal themes that encourage friendly interaction. Example output: "What's a hobby you've recently started?||If you could have dinner with any historical figure, who would it be?||What's a simple thing that makes you happy?"`

// TextGenerator is the external generative-text collaborator.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type SuggestionService struct {
	generator TextGenerator
}

func NewSuggestionService(generator TextGenerator) *SuggestionService {
	return &SuggestionService{generator: generator}
}

// Suggest asks the collaborator for candidate messages and returns
// them normalized and ||-joined. The raw response is untrusted: a
// missing delimiter or stray empty segments must not fail the request,
// so whatever survives the split is what the caller gets.
func (s *SuggestionService) Suggest(ctx context.Context) (string, error) {
	raw, err := s.generator.GenerateText(ctx, suggestionPrompt)
	if err != nil {
		return "", fmt.Errorf("generating suggestions: %w", err)
	}

	candidates := suggest.Split(raw)

	return strings.Join(candidates, "||"), nil
}
