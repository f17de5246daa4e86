package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/manifest/internal/cli/formatter"
	"github.com/alexanderramin/manifest/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// manifestHuhTheme returns the huh theme matching the formatter palette.
func manifestHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// requiredInput returns a huh.Input for a mandatory manifest field.
func requiredInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", title)
			}
			return nil
		})
}

// advancedTitle turns an attribute key like "color_palette" into a
// form title like "Color Palette".
func advancedTitle(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// runManifestWizard collects the manifest through a two-group form:
// the four required basics, then the optional advanced attributes.
func runManifestWizard(seed domain.Manifest) (domain.Manifest, error) {
	m := seed.Clone()
	includeAdvanced := false

	advanced := make([]string, len(domain.AdvancedKeys))
	for i, key := range domain.AdvancedKeys {
		advanced[i] = seed.Advanced[key]
	}

	advancedFields := make([]huh.Field, 0, len(domain.AdvancedKeys))
	for i, key := range domain.AdvancedKeys {
		advancedFields = append(advancedFields, huh.NewInput().
			Title(advancedTitle(key)).
			Placeholder("optional").
			Value(&advanced[i]))
	}

	form := huh.NewForm(
		huh.NewGroup(
			requiredInput("Characters", "a knight whose armor is overgrown with moss", &m.Characters),
			requiredInput("Setting", "a castle gate at dusk", &m.Setting),
			requiredInput("Story", "guarding against an unseen threat", &m.Story),
			requiredInput("Style", "moody chiaroscuro oil painting", &m.Style),
			huh.NewConfirm().
				Title("Add advanced options?").
				Value(&includeAdvanced),
		),
		huh.NewGroup(advancedFields...).
			WithHideFunc(func() bool { return !includeAdvanced }),
	).WithTheme(manifestHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return domain.Manifest{}, err
	}

	m.Advanced = map[string]string{}
	if includeAdvanced {
		for i, key := range domain.AdvancedKeys {
			if v := strings.TrimSpace(advanced[i]); v != "" {
				m.Advanced[key] = v
			}
		}
	}

	return m, nil
}
