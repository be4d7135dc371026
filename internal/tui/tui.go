package tui

import (
	"craft-cli/internal/api"
	"craft-cli/internal/builder"
	"craft-cli/internal/model"
	"craft-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive TUI on the forms dashboard.
func Run(client *api.Client, st store.Store) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(client, st)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// RunBuilder opens the builder directly on doc, skipping the dashboard.
func RunBuilder(client *api.Client, st store.Store, doc *builder.Document) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(client, st)
	m.openBuilder(doc)
	m.standalone = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	// The saver is shared by pointer across model copies; closing here cancels
	// any timer still pending after the program exits.
	m.closeBuilder()
	return err
}

// RunPreview runs the respondent-view wizard for a set of questions.
func RunPreview(title, description string, questions []model.Question) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(nil, store.Store{})
	m.openPreview(title, description, questions)
	m.standalone = true
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
