package cli

import (
	"fmt"
	"os"
	"strings"

	"craft-cli/internal/api"
	"craft-cli/internal/format"
	"craft-cli/internal/store"
	"craft-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	APIBase    string
	Token      string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "craft",
		Short:        "CrafT form builder CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI (forms dashboard)
  craft

  # Scriptable commands
  craft forms list
  craft forms create --title "Customer survey"

  # Open the builder on a form
  craft edit 6f1c9f2e-8a13-4c0b-9a0e-2f9d4a5b6c7d

  # Direct form lookup (shortcut for: craft forms show <form-id>)
  craft 6f1c9f2e-8a13-4c0b-9a0e-2f9d4a5b6c7d
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.APIBase, "api", envOr("CRAFT_API_URL", ""), "CrafT API base URL (default: config, then "+api.DefaultBaseURL+")")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("CRAFT_TOKEN", ""), "Bearer token (overrides config)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newFormsCmd(app))
	cmd.AddCommand(newSubmissionsCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newPreviewCmd(app))
	cmd.AddCommand(newSubmitCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDraftsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, err := newAPIClient(app)
	if err != nil {
		return err
	}
	st, err := store.DefaultStore()
	if err != nil {
		return err
	}
	return tui.Run(client, st)
}

// newAPIClient resolves connection settings: flags (already env-defaulted)
// win over config, config over the localhost default.
func newAPIClient(app *App) (*api.Client, error) {
	base := app.APIBase
	token := app.Token
	if base == "" || token == "" {
		cfg, err := store.LoadConfig()
		if err != nil {
			return nil, err
		}
		if base == "" {
			base = cfg.APIBaseURL
		}
		if token == "" {
			token = cfg.Token
		}
	}
	return api.NewClient(base, token), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
