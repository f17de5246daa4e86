package cli

import (
	"context"

	"github.com/alexanderramin/manifest/internal/session"
	"github.com/spf13/cobra"
)

// App holds the wiring CLI commands need. NewSession builds a fully
// initialized session, including the reference-index bootstrap.
type App struct {
	NewSession    func(ctx context.Context) (*session.Session, error)
	IsInteractive func() bool
	Version       string
}

// NewRootCmd creates the top-level "manifest" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "manifest",
		Short:        "Conversational prompt crafting for AI image generation",
		Version:      app.Version,
		SilenceUsage: true,
	}

	root.AddCommand(
		newCreateCmd(app),
	)

	return root
}
