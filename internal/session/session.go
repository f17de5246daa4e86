package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/manifest/internal/domain"
	"github.com/alexanderramin/manifest/internal/imagegen"
	"github.com/alexanderramin/manifest/internal/intelligence"
)

var (
	// ErrBusy indicates another pipeline is already running in this session.
	ErrBusy = errors.New("another operation is in progress")

	// ErrNoPrompt indicates an operation that needs a current prompt ran
	// before the initial manifestation was generated.
	ErrNoPrompt = errors.New("no current prompt")

	// ErrNoImage indicates the image service answered without an image.
	ErrNoImage = errors.New("image generation produced no result")

	// ErrEmptyEdit indicates a manual prompt edit with no content.
	ErrEmptyEdit = errors.New("edited prompt is empty")
)

const (
	statusInitial     = "Initial manifestation generated!"
	statusEdited      = "Prompt updated manually:"
	imageFailedReply  = "Image generation failed. Please try again."
	noChangesReply    = "No specific changes were made."
	operationFailedFn = "Sorry, I couldn't process your request: %s Please try again."
)

// Session owns one conversation: the manifest, the current prompt, and
// the append-only chat history. All state transitions run through it.
type Session struct {
	refiner intelligence.Refiner
	router  *intelligence.Router
	images  imagegen.Generator

	mu       sync.Mutex
	busy     bool
	manifest domain.Manifest
	prompt   string
	history  []domain.ChatTurn
}

// NewSession creates an empty session over the given services.
func NewSession(refiner intelligence.Refiner, router *intelligence.Router, images imagegen.Generator) *Session {
	return &Session{
		refiner: refiner,
		router:  router,
		images:  images,
	}
}

// begin claims the single in-flight pipeline token. Exactly one
// compose, refinement, or image pipeline may run at a time.
func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Session) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// SubmitManifest validates the manifest, composes the initial prompt,
// and records it as the session's current prompt.
func (s *Session) SubmitManifest(ctx context.Context, m domain.Manifest) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}
	defer s.end()

	if err := m.Validate(); err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.Join(m.MissingFields(), ", "))
	}

	prompt, err := s.refiner.Compose(ctx, m)
	if err != nil {
		return "", fmt.Errorf("composing initial prompt: %w", err)
	}

	s.mu.Lock()
	s.manifest = m.Clone()
	s.prompt = prompt
	s.history = append(s.history, domain.NewChatTurn(domain.RoleAssistant,
		fmt.Sprintf("%s\n\n%s", statusInitial, prompt)))
	s.mu.Unlock()

	return prompt, nil
}

// SubmitRefinement records the user's turn, routes it through the
// intent pipeline, and applies the prompt-replacement rule: the current
// prompt is replaced unless the behavior was an acknowledgement or the
// transformed text is empty.
func (s *Session) SubmitRefinement(ctx context.Context, query string) (*intelligence.Resolution, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	s.mu.Lock()
	s.history = append(s.history, domain.NewChatTurn(domain.RoleUser, query))
	prompt := s.prompt
	manifest := s.manifest.Clone()
	s.mu.Unlock()

	res, err := s.router.Route(ctx, query, prompt, manifest)
	if err != nil {
		s.appendAssistant(routeFailureReply(err))
		return nil, err
	}

	text := strings.TrimSpace(res.Text)

	s.mu.Lock()
	if res.Behavior != intelligence.BehaviorAcknowledgement && text != "" {
		s.prompt = text
	}
	s.history = append(s.history, domain.NewChatTurn(domain.RoleAssistant, formatReply(res, text)))
	s.mu.Unlock()

	return res, nil
}

// GenerateImage renders the current prompt and appends the resulting
// image turn. It requires an initial manifestation.
func (s *Session) GenerateImage(ctx context.Context) (string, error) {
	if err := s.begin(); err != nil {
		return "", err
	}
	defer s.end()

	s.mu.Lock()
	prompt := s.prompt
	s.mu.Unlock()

	if strings.TrimSpace(prompt) == "" {
		return "", ErrNoPrompt
	}

	dataURL, err := s.images.Generate(ctx, prompt)
	if err != nil {
		s.appendAssistant(imageFailedReply)
		return "", fmt.Errorf("generating image: %w", err)
	}
	if dataURL == "" {
		s.appendAssistant(imageFailedReply)
		return "", ErrNoImage
	}

	s.mu.Lock()
	s.history = append(s.history, domain.NewImageTurn(dataURL))
	s.mu.Unlock()

	return dataURL, nil
}

// EditPrompt replaces the current prompt with manually edited text.
func (s *Session) EditPrompt(text string) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyEdit
	}

	s.mu.Lock()
	s.prompt = text
	s.history = append(s.history, domain.NewChatTurn(domain.RoleAssistant,
		fmt.Sprintf("%s\n\n%s", statusEdited, text)))
	s.mu.Unlock()

	return nil
}

// Reset wipes the manifest, prompt, and history for a fresh start.
func (s *Session) Reset() error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	s.manifest = domain.Manifest{}
	s.prompt = ""
	s.history = nil
	s.mu.Unlock()

	return nil
}

// CurrentPrompt returns the current prompt text.
func (s *Session) CurrentPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompt
}

// HasPrompt reports whether an initial manifestation exists.
func (s *Session) HasPrompt() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.TrimSpace(s.prompt) != ""
}

// CurrentManifest returns a copy of the active manifest.
func (s *Session) CurrentManifest() domain.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manifest.Clone()
}

// History returns a copy of the chat history in order.
func (s *Session) History() []domain.ChatTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatTurn, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Session) appendAssistant(content string) {
	s.mu.Lock()
	s.history = append(s.history, domain.NewChatTurn(domain.RoleAssistant, content))
	s.mu.Unlock()
}

// formatReply builds the assistant turn for a routed resolution.
// Acknowledgements reply inline; empty output keeps the status visible
// but notes nothing changed.
func formatReply(res *intelligence.Resolution, text string) string {
	switch {
	case res.Behavior == intelligence.BehaviorAcknowledgement:
		return fmt.Sprintf("%s %s", res.StatusLabel, text)
	case text == "":
		return fmt.Sprintf("%s %s", res.StatusLabel, noChangesReply)
	default:
		return fmt.Sprintf("%s\n\n%s", res.StatusLabel, text)
	}
}

// routeFailureReply turns a routing error into a chat-visible message.
func routeFailureReply(err error) string {
	var routeErr *intelligence.RouteError
	if errors.As(err, &routeErr) {
		return fmt.Sprintf(operationFailedFn, routeErr.Message)
	}
	return fmt.Sprintf(operationFailedFn, err.Error())
}
