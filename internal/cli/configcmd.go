package cli

import (
	"craft-cli/internal/store"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Connection settings",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			// Don't echo the full token back into scrollback.
			masked := *cfg
			if len(masked.Token) > 8 {
				masked.Token = masked.Token[:8] + "..."
			}
			return writeOut(cmd, app, map[string]any{"data": masked})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var apiBase string
	var token string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store API endpoint and token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("api") {
				cfg.APIBaseURL = apiBase
			}
			if cmd.Flags().Changed("token") {
				cfg.Token = token
			}
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"config": "saved"}})
		},
	}

	cmd.Flags().StringVar(&apiBase, "api", "", "CrafT API base URL (including /api/v1)")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token")
	return cmd
}
