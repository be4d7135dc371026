package cli

import (
	"craft-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDraftsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Local draft cache",
		Long:  "Drafts are builder snapshots kept locally so `craft edit` can resume work that autosave had not pushed yet.",
	}
	cmd.AddCommand(newDraftsListCmd(app))
	cmd.AddCommand(newDraftsRmCmd(app))
	return cmd
}

func newDraftsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached drafts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.DefaultStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			drafts, err := st.ListDrafts(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if drafts == nil {
				drafts = []store.Draft{}
			}
			return writeOut(cmd, app, map[string]any{"data": drafts})
		},
	}
}

func newDraftsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <form-id>",
		Short: "Discard the cached draft for a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.DefaultStore()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.DeleteDraft(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[0]}})
		},
	}
}
