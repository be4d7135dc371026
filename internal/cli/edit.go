package cli

import (
	"craft-cli/internal/api"
	"craft-cli/internal/builder"
	"craft-cli/internal/store"
	"craft-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newEditCmd(app *App) *cobra.Command {
	var fromDraft bool

	cmd := &cobra.Command{
		Use:   "edit [form-id]",
		Short: "Open the interactive builder on a form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := store.DefaultStore()
			if err != nil {
				return writeErr(cmd, err)
			}

			formID := ""
			if len(args) == 1 {
				formID = args[0]
			} else {
				cfg, err := store.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				formID = cfg.CurrentFormID
			}
			if formID == "" {
				return writeErr(cmd, errMissingFormID)
			}

			f, err := client.GetForm(cmd.Context(), formID)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc := builder.FromForm(f.ID, f.Title, derefStr(f.Description), api.QuestionsFromWire(f.Questions))

			// A local draft newer than the server copy means the last session
			// ended before autosave landed; resume from it unless refused.
			if d, ok, err := st.LoadDraft(cmd.Context(), formID); err == nil && ok {
				if fromDraft || d.SavedAt.After(f.UpdatedAt) {
					doc = d.Document()
				}
			}

			rememberCurrentForm(formID)
			return tui.RunBuilder(client, st, doc)
		},
	}

	cmd.Flags().BoolVar(&fromDraft, "from-draft", false, "Resume from the local draft even if the server copy is newer")
	return cmd
}

// rememberCurrentForm is best-effort; a read-only config dir should not block
// the builder from opening.
func rememberCurrentForm(formID string) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return
	}
	if cfg.CurrentFormID == formID {
		return
	}
	cfg.CurrentFormID = formID
	_ = store.SaveConfig(cfg)
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
