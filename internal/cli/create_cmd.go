package cli

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/alexanderramin/manifest/internal/cli/formatter"
	"github.com/alexanderramin/manifest/internal/domain"
	"github.com/spf13/cobra"
)

// newCreateCmd builds the "create" command: a guided form for the
// manifest, initial prompt composition, then the refinement chat loop.
func newCreateCmd(app *App) *cobra.Command {
	var example string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Craft an image prompt through a guided form and chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return errors.New("create requires an interactive terminal")
			}

			seed, err := exampleManifest(example)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			stop := formatter.StartSpinner("Preparing role definitions...")
			sess, err := app.NewSession(ctx)
			stop()
			if err != nil {
				return fmt.Errorf("initializing session: %w", err)
			}

			for {
				m, err := runManifestWizard(seed)
				if err != nil {
					return err
				}

				stop := formatter.StartSpinner("Generating your initial manifestation...")
				_, err = sess.SubmitManifest(ctx, m)
				stop()
				if err != nil {
					return fmt.Errorf("generating initial manifestation: %w", err)
				}

				restart, err := runChat(sess)
				if err != nil || !restart {
					return err
				}
				// Start over: the chat view already reset the session;
				// fall through to a fresh, unseeded form.
				seed = domain.Manifest{}
			}
		},
	}

	cmd.Flags().StringVar(&example, "example", "", "pre-fill the form (fantasy, scifi, random)")

	return cmd
}

// exampleManifest resolves the --example flag into a form seed.
func exampleManifest(name string) (domain.Manifest, error) {
	switch name {
	case "":
		return domain.Manifest{}, nil
	case "fantasy":
		return domain.FantasyExample(), nil
	case "scifi":
		return domain.SciFiExample(), nil
	case "random":
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		return domain.RandomManifest(rng), nil
	default:
		return domain.Manifest{}, fmt.Errorf("unknown example %q (want fantasy, scifi, or random)", name)
	}
}
