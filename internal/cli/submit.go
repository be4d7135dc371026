package cli

import (
	"encoding/json"
	"io"
	"os"

	"craft-cli/internal/api"

	"github.com/spf13/cobra"
)

func newSubmitCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "submit <form-id>",
		Short: "Submit a response to a published public form",
		Long: `Submit sends answers to a public form's submit endpoint.

Answers are read as a JSON array from --file (or stdin):
  [{"question_id": "...", "value": "OptionA"},
   {"question_id": "...", "value": ["Cheese", "Olives"]}]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}

			var answers []api.SubmitAnswer
			if err := json.NewDecoder(r).Decode(&answers); err != nil {
				return writeErr(cmd, err)
			}

			id, err := client.SubmitForm(cmd.Context(), args[0], answers)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"id": id}})
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read answers JSON from this file instead of stdin")
	return cmd
}
