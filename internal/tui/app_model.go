package tui

import (
	"context"
	"time"

	"craft-cli/internal/api"
	"craft-cli/internal/autosave"
	"craft-cli/internal/builder"
	"craft-cli/internal/model"
	"craft-cli/internal/preview"
	"craft-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appModel struct {
	client *api.Client
	store  store.Store

	width  int
	height int
	// We treat the very first WindowSizeMsg as initial sizing rather than a
	// user-driven resize.
	seenWindowSize bool

	// standalone is set when the builder or preview was opened directly from
	// the CLI; quitting then exits instead of returning to the dashboard.
	standalone bool

	view view

	// Dashboard.
	formsList list.Model
	stats     api.DashboardStats
	loading   bool

	// Builder.
	doc           *builder.Document
	saver         *autosave.Saver
	questionsList list.Model
	focus         builderFocus
	// grabbedID is non-empty while a keyboard drag is in progress; the move
	// resolves both ids at drop time.
	grabbedID   string
	titleInput  textinput.Model
	descInput   textinput.Model
	emojiInput  textinput.Model
	optionsArea textarea.Model
	settingsIdx int
	saveStatus  autosave.Status
	draftDirty  bool

	// Preview.
	runner          *preview.Runner
	previewText     textinput.Model
	previewArea     textarea.Model
	choiceCursor    int
	choiceSel       map[int]bool
	previewFromDoc  bool
	previewRestores view

	modal       modalKind
	input       textinput.Model
	typeCursor  int
	deleteForID string

	minibufferText string
}

const (
	maxContentW = 96

	// Server autosave debounce. Local draft writes piggyback on the status
	// tick instead.
	autosaveDebounce = 2 * time.Second
	saveTickEvery    = 500 * time.Millisecond
)

func newAppModel(client *api.Client, st store.Store) appModel {
	m := appModel{
		client:  client,
		store:   st,
		view:    viewDashboard,
		loading: true,
	}

	m.formsList = newList("Forms", []list.Item{})
	m.questionsList = newList("Questions", []list.Item{})

	m.input = textinput.New()
	m.input.Placeholder = "Form title"
	m.input.CharLimit = 200
	m.input.Width = 40

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "Title"
	m.titleInput.CharLimit = 200
	m.titleInput.Width = 48

	m.descInput = textinput.New()
	m.descInput.Placeholder = "Description"
	m.descInput.CharLimit = 500
	m.descInput.Width = 48

	m.emojiInput = textinput.New()
	m.emojiInput.Placeholder = "Emoji"
	m.emojiInput.CharLimit = 8
	m.emojiInput.Width = 8

	m.optionsArea = textarea.New()
	m.optionsArea.Placeholder = "One option per line"
	m.optionsArea.CharLimit = 0
	m.optionsArea.SetWidth(48)
	m.optionsArea.SetHeight(6)
	m.optionsArea.ShowLineNumbers = false

	m.previewText = textinput.New()
	m.previewText.CharLimit = 500
	m.previewText.Width = 48

	m.previewArea = textarea.New()
	m.previewArea.CharLimit = 0
	m.previewArea.SetWidth(64)
	m.previewArea.SetHeight(6)
	m.previewArea.ShowLineNumbers = false

	return m
}

func (m appModel) Init() tea.Cmd {
	if m.view == viewDashboard {
		return m.loadDashboardCmd()
	}
	if m.view == viewBuilder {
		return saveTickCmd()
	}
	return nil
}

func saveTickCmd() tea.Cmd {
	return tea.Tick(saveTickEvery, func(time.Time) tea.Msg { return saveTickMsg{} })
}

// openBuilder wires a document to a fresh Saver and switches to the builder
// view. The Saver pushes form snapshots to the server; SelectedID never
// leaves the client.
func (m *appModel) openBuilder(doc *builder.Document) {
	m.closeBuilder()
	m.doc = doc
	client := m.client
	formID := doc.FormID
	m.saver = autosave.New(autosave.Options{
		Debounce: autosaveDebounce,
		Save: func(ctx context.Context, upd api.FormUpdate) error {
			return client.UpdateForm(ctx, formID, upd)
		},
	})
	m.saveStatus = m.saver.Status()
	m.view = viewBuilder
	m.focus = focusList
	m.grabbedID = ""
	m.refreshQuestions()
	m.syncSettingsInputs()
}

func (m *appModel) closeBuilder() {
	if m.saver != nil {
		m.saver.Close()
		m.saver = nil
	}
}

func (m *appModel) openPreview(title, description string, questions []model.Question) {
	m.runner = preview.NewRunner(title, description, questions)
	m.previewRestores = m.view
	m.previewFromDoc = m.view == viewBuilder
	m.view = viewPreview
	m.choiceCursor = 0
	m.choiceSel = map[int]bool{}
	m.previewText.SetValue("")
	m.previewArea.SetValue("")
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, newRowDelegate(), 0, 0)
	l.Title = title
	// We render our own header and footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	// ESC is "back/cancel" here, never quit.
	l.KeyMap.Quit.SetKeys("ctrl+c")

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}
