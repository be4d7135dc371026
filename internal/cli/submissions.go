package cli

import (
	"github.com/spf13/cobra"
)

func newSubmissionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "Submission commands",
	}
	cmd.AddCommand(newSubmissionsListCmd(app))
	return cmd
}

func newSubmissionsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <form-id>",
		Short: "List responses collected by a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			subs, err := client.GetFormSubmissions(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": subs})
		},
	}
}
