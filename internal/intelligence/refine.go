package intelligence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/manifest/internal/domain"
	"github.com/alexanderramin/manifest/internal/llm"
)

// Refiner turns manifests and behavior payloads into prompt text via
// the text-generation provider.
type Refiner interface {
	// Compose builds the initial prompt from a full manifest.
	Compose(ctx context.Context, m domain.Manifest) (string, error)

	// Transform applies a behavior's system instruction to its payload
	// and returns the transformed text.
	Transform(ctx context.Context, p Payload) (string, error)
}

type refineService struct {
	client llm.Client
}

// NewRefineService creates a Refiner backed by a model client.
func NewRefineService(client llm.Client) Refiner {
	return &refineService{client: client}
}

func (s *refineService) Compose(ctx context.Context, m domain.Manifest) (string, error) {
	body, err := json.Marshal(m.Merged())
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task:         llm.TaskCompose,
		SystemPrompt: composeInstruction,
		UserPrompt:   string(body),
	})
	if err != nil {
		return "", fmt.Errorf("composing initial prompt: %w", err)
	}
	return resp.Text, nil
}

func (s *refineService) Transform(ctx context.Context, p Payload) (string, error) {
	behavior := p.Behavior()
	instruction, ok := systemInstructions[behavior]
	if !ok {
		return "", fmt.Errorf("behavior %q has no system instruction", behavior)
	}

	body, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshaling %s payload: %w", behavior, err)
	}

	resp, err := s.client.Chat(ctx, llm.ChatRequest{
		Task:         llm.TaskRefine,
		SystemPrompt: instruction,
		UserPrompt:   string(body),
	})
	if err != nil {
		return "", fmt.Errorf("transforming with %s: %w", behavior, err)
	}
	return resp.Text, nil
}
