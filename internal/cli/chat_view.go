package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/alexanderramin/manifest/internal/cli/formatter"
	"github.com/alexanderramin/manifest/internal/domain"
	"github.com/alexanderramin/manifest/internal/intelligence"
	"github.com/alexanderramin/manifest/internal/session"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chatSession is the slice of the session surface the chat view needs.
type chatSession interface {
	SubmitRefinement(ctx context.Context, query string) (*intelligence.Resolution, error)
	GenerateImage(ctx context.Context) (string, error)
	EditPrompt(text string) error
	Reset() error
	CurrentPrompt() string
	History() []domain.ChatTurn
}

// chatModel is the refinement chat loop. All session calls run
// synchronously inside Update; the session rejects overlapping
// pipelines on its own.
type chatModel struct {
	sess  chatSession
	input textinput.Model

	lines    []string
	rendered int // history turns already rendered into lines

	restart bool
}

func newChatModel(sess chatSession) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	v := &chatModel{
		sess:  sess,
		input: ti,
		lines: []string{formatter.FormatChatWelcome()},
	}
	v.syncHistory()
	return v
}

// syncHistory renders any session history turns not yet shown.
func (v *chatModel) syncHistory() {
	history := v.sess.History()
	for _, turn := range history[v.rendered:] {
		v.lines = append(v.lines, formatter.FormatTurn(turn))
	}
	v.rendered = len(history)
}

func (v *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return v, tea.Quit
		case tea.KeyEnter:
			input := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if input == "" {
				return v, nil
			}
			return v.handleInput(input)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatModel) View() string {
	var b strings.Builder

	for _, line := range v.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	prompt := formatter.StylePurple.Render("manifest") + formatter.Dim("> ")
	b.WriteString(prompt)
	b.WriteString(v.input.View())

	return b.String()
}

func (v *chatModel) handleInput(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/quit", "/q", "quit", "exit":
		return v, tea.Quit
	case "/prompt":
		v.lines = append(v.lines, formatter.FormatPromptBlock(v.sess.CurrentPrompt()))
		return v, nil
	case "/startover":
		if err := v.sess.Reset(); err != nil {
			v.lines = append(v.lines, formatter.FormatErrorLine(err.Error()))
			return v, nil
		}
		v.restart = true
		return v, tea.Quit
	case "/image":
		return v.handleImage()
	}

	if input == "/edit" {
		return v.handleEdit("")
	}
	if rest, ok := strings.CutPrefix(input, "/edit "); ok {
		return v.handleEdit(rest)
	}
	if strings.HasPrefix(input, "/") {
		v.lines = append(v.lines, formatter.FormatErrorLine("unknown command "+input))
		return v, nil
	}

	_, err := v.sess.SubmitRefinement(context.Background(), input)
	v.syncHistory()
	if errors.Is(err, session.ErrBusy) {
		v.lines = append(v.lines, formatter.FormatErrorLine(err.Error()))
	}
	return v, nil
}

func (v *chatModel) handleImage() (tea.Model, tea.Cmd) {
	dataURL, err := v.sess.GenerateImage(context.Background())
	v.syncHistory()
	if err != nil {
		if errors.Is(err, session.ErrNoPrompt) {
			v.lines = append(v.lines, formatter.FormatErrorLine("Please generate an initial manifestation first using the form."))
		}
		return v, nil
	}

	path, err := saveImage(dataURL, imageOutputDir())
	if err != nil {
		v.lines = append(v.lines, formatter.FormatErrorLine(err.Error()))
		return v, nil
	}
	v.lines = append(v.lines, formatter.FormatImageSaved(path))
	return v, nil
}

func (v *chatModel) handleEdit(rest string) (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(rest)
	if err := v.sess.EditPrompt(text); err != nil {
		if errors.Is(err, session.ErrEmptyEdit) {
			v.lines = append(v.lines, formatter.FormatErrorLine("usage: /edit <new prompt text>"))
		} else {
			v.lines = append(v.lines, formatter.FormatErrorLine(err.Error()))
		}
		return v, nil
	}
	v.syncHistory()
	return v, nil
}

// runChat runs the chat loop and reports whether the user asked to
// start over with a fresh form.
func runChat(sess chatSession) (bool, error) {
	model := newChatModel(sess)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return false, err
	}
	return model.restart, nil
}
