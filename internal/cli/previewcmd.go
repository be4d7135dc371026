package cli

import (
	"craft-cli/internal/api"
	"craft-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newPreviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <form-id>",
		Short: "Walk through a form the way respondents will see it",
		Long:  "Preview simulates the answer-collection wizard locally; nothing is submitted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := client.GetForm(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return tui.RunPreview(f.Title, derefStr(f.Description), api.QuestionsFromWire(f.Questions))
		},
	}
}
