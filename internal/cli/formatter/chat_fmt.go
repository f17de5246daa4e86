package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/manifest/internal/domain"
)

// FormatUserLine renders a user chat line with the input prompt marker.
func FormatUserLine(text string) string {
	return Dim("you> ") + text
}

// FormatAssistantBlock renders an assistant reply with a marker on the
// first line and continuation lines indented beneath it.
func FormatAssistantBlock(content string) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder
	b.WriteString(StyleGreen.Render("manifest> "))
	b.WriteString(lines[0])
	for _, line := range lines[1:] {
		b.WriteString("\n  ")
		b.WriteString(line)
	}
	return b.String()
}

// FormatTurn renders one chat turn for the terminal. Image turns show a
// placeholder since the content is a data URL.
func FormatTurn(turn domain.ChatTurn) string {
	if turn.Role == domain.RoleUser {
		return FormatUserLine(turn.Content)
	}
	if turn.IsImage {
		return FormatAssistantBlock(Dim("[image generated]"))
	}
	return FormatAssistantBlock(turn.Content)
}

// FormatPromptBlock renders the current prompt under a section header.
func FormatPromptBlock(prompt string) string {
	return fmt.Sprintf("%s\n%s", Header("current prompt"), prompt)
}

// FormatImageSaved renders the saved-image confirmation line.
func FormatImageSaved(path string) string {
	return FormatAssistantBlock(fmt.Sprintf("Image saved to %s", Bold(path)))
}

// FormatErrorLine renders a non-fatal error message.
func FormatErrorLine(msg string) string {
	return StyleRed.Render("✗ ") + msg
}

// FormatChatWelcome renders the chat view banner with the available commands.
func FormatChatWelcome() string {
	var b strings.Builder
	b.WriteString(Header("manifest chat"))
	b.WriteString("\n")
	b.WriteString(Dim("Refine your manifestation or ask for the next scene.\n"))
	b.WriteString(Dim("Commands: /image  /prompt  /edit <text>  /startover  /quit\n"))
	return b.String()
}
