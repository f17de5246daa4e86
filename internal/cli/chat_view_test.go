package cli

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/manifest/internal/domain"
	"github.com/alexanderramin/manifest/internal/intelligence"
	"github.com/alexanderramin/manifest/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatSession struct {
	history  []domain.ChatTurn
	prompt   string
	imageURL string
	imageErr error
	editErr  error

	queries     []string
	resetCalled bool
}

func (f *fakeChatSession) SubmitRefinement(_ context.Context, query string) (*intelligence.Resolution, error) {
	f.queries = append(f.queries, query)
	f.history = append(f.history,
		domain.NewChatTurn(domain.RoleUser, query),
		domain.NewChatTurn(domain.RoleAssistant, "Applied your changes and refined the prompt:\n\nnew prompt"))
	f.prompt = "new prompt"
	return &intelligence.Resolution{Text: "new prompt", Behavior: intelligence.BehaviorEditor}, nil
}

func (f *fakeChatSession) GenerateImage(_ context.Context) (string, error) {
	if f.imageErr != nil {
		return "", f.imageErr
	}
	f.history = append(f.history, domain.NewImageTurn(f.imageURL))
	return f.imageURL, nil
}

func (f *fakeChatSession) EditPrompt(text string) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.prompt = text
	f.history = append(f.history, domain.NewChatTurn(domain.RoleAssistant, "Prompt updated manually:\n\n"+text))
	return nil
}

func (f *fakeChatSession) Reset() error {
	f.resetCalled = true
	f.history = nil
	f.prompt = ""
	return nil
}

func (f *fakeChatSession) CurrentPrompt() string      { return f.prompt }
func (f *fakeChatSession) History() []domain.ChatTurn { return f.history }

func TestChatModel_RendersExistingHistory(t *testing.T) {
	sess := &fakeChatSession{
		prompt: "a prompt",
		history: []domain.ChatTurn{
			domain.NewChatTurn(domain.RoleAssistant, "Initial manifestation generated!\n\na prompt"),
		},
	}

	v := newChatModel(sess)

	view := v.View()
	assert.Contains(t, view, "Initial manifestation generated!")
	assert.Contains(t, view, "a prompt")
}

func TestChatModel_RefinementRendersNewTurns(t *testing.T) {
	sess := &fakeChatSession{prompt: "a prompt"}
	v := newChatModel(sess)

	_, _ = v.handleInput("make it stormy weather")

	require.Equal(t, []string{"make it stormy weather"}, sess.queries)
	view := v.View()
	assert.Contains(t, view, "make it stormy weather")
	assert.Contains(t, view, "Applied your changes and refined the prompt:")
}

func TestChatModel_PromptCommand(t *testing.T) {
	sess := &fakeChatSession{prompt: "a knight at the gate"}
	v := newChatModel(sess)

	_, _ = v.handleInput("/prompt")

	assert.Contains(t, v.View(), "a knight at the gate")
}

func TestChatModel_StartOverResetsAndQuits(t *testing.T) {
	sess := &fakeChatSession{prompt: "a prompt"}
	v := newChatModel(sess)

	_, cmd := v.handleInput("/startover")

	assert.True(t, sess.resetCalled)
	assert.True(t, v.restart)
	require.NotNil(t, cmd)
}

func TestChatModel_ImageWithoutPromptShowsGuidance(t *testing.T) {
	sess := &fakeChatSession{imageErr: session.ErrNoPrompt}
	v := newChatModel(sess)

	_, _ = v.handleInput("/image")

	assert.Contains(t, v.View(), "generate an initial manifestation first")
}

func TestChatModel_ImageSavesFile(t *testing.T) {
	t.Setenv("MANIFEST_IMAGE_DIR", t.TempDir())
	sess := &fakeChatSession{
		prompt:   "a prompt",
		imageURL: "data:image/png;base64,aGVsbG8=",
	}
	v := newChatModel(sess)

	_, _ = v.handleInput("/image")

	assert.Contains(t, v.View(), "Image saved to")
}

func TestChatModel_EditUpdatesPrompt(t *testing.T) {
	sess := &fakeChatSession{prompt: "old"}
	v := newChatModel(sess)

	_, _ = v.handleInput("/edit a hand-tuned prompt")

	assert.Equal(t, "a hand-tuned prompt", sess.prompt)
	assert.Contains(t, v.View(), "Prompt updated manually:")
}

func TestChatModel_EditWithoutTextShowsUsage(t *testing.T) {
	sess := &fakeChatSession{prompt: "old", editErr: session.ErrEmptyEdit}
	v := newChatModel(sess)

	_, _ = v.handleInput("/edit")

	assert.Contains(t, v.View(), "usage: /edit")
	assert.Equal(t, "old", sess.prompt)
}

func TestChatModel_UnknownCommand(t *testing.T) {
	sess := &fakeChatSession{prompt: "a prompt"}
	v := newChatModel(sess)

	_, _ = v.handleInput("/wat")

	assert.Contains(t, v.View(), "unknown command /wat")
	assert.Empty(t, sess.queries)
}

func TestChatModel_QuitCommands(t *testing.T) {
	for _, input := range []string{"/quit", "/q", "quit", "exit"} {
		t.Run(input, func(t *testing.T) {
			v := newChatModel(&fakeChatSession{})
			_, cmd := v.handleInput(input)
			require.NotNil(t, cmd, fmt.Sprintf("%s should quit", input))
			assert.False(t, v.restart)
		})
	}
}
