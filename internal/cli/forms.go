package cli

import (
	"github.com/spf13/cobra"
)

func newFormsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forms",
		Short: "Form commands",
	}
	cmd.AddCommand(newFormsListCmd(app))
	cmd.AddCommand(newFormsCreateCmd(app))
	cmd.AddCommand(newFormsShowCmd(app))
	cmd.AddCommand(newFormsDeleteCmd(app))
	cmd.AddCommand(newFormsDuplicateCmd(app))
	cmd.AddCommand(newFormsPublishCmd(app))
	cmd.AddCommand(newFormsUnpublishCmd(app))
	cmd.AddCommand(newFormsPublicCmd(app))
	return cmd
}

func newFormsPublicCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "public <username> <slug>",
		Short: "Show a published form the way respondents fetch it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := client.GetPublicForm(cmd.Context(), args[0], args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": f})
		},
	}
}

func newFormsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your forms (dashboard)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := client.Dashboard(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": d.Forms, "stats": d.Stats})
		},
	}
}

func newFormsCreateCmd(app *App) *cobra.Command {
	var title string
	var description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a form",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := client.CreateForm(cmd.Context(), title, description)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": f})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Form title")
	cmd.Flags().StringVar(&description, "description", "", "Form description")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newFormsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <form-id>",
		Short: "Show a form with its questions",
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
			return writeOut(cmd, app, map[string]any{"data": f})
		},
	}
}

func newFormsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <form-id>",
		Short: "Delete a form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.DeleteForm(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"deleted": args[0]}})
		},
	}
}

func newFormsDuplicateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <form-id>",
		Short: "Duplicate a form (questions included, status reset to draft)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := client.DuplicateForm(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": f})
		},
	}
}

func newFormsPublishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <form-id>",
		Short: "Publish a form to its public URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// Publishing has an externally visible effect; unlike autosave,
			// its failure is reported loudly instead of retried quietly.
			if err := client.PublishForm(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"published": args[0]}})
		},
	}
}

func newFormsUnpublishCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "unpublish <form-id>",
		Short: "Take a form back to draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := client.UnpublishForm(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]string{"unpublished": args[0]}})
		},
	}
}
