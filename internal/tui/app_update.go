package tui

import (
	"context"
	"strings"
	"time"

	"craft-cli/internal/api"
	"craft-cli/internal/builder"
	"craft-cli/internal/model"
	"craft-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.resizeLists()
		return m, nil

	case saveTickMsg:
		if m.view != viewBuilder || m.saver == nil {
			return m, nil
		}
		m.saveStatus = m.saver.Status()
		var cmd tea.Cmd
		if m.draftDirty && m.doc != nil {
			m.draftDirty = false
			cmd = m.writeDraftCmd(store.DraftFromDocument(m.doc, time.Now()))
		}
		return m, tea.Batch(saveTickCmd(), cmd)

	case dashboardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.minibufferText = msg.err.Error()
			return m, nil
		}
		m.stats = msg.dashboard.Stats
		items := make([]list.Item, 0, len(msg.dashboard.Forms))
		for _, f := range msg.dashboard.Forms {
			items = append(items, formRow{form: f})
		}
		m.formsList.SetItems(items)
		return m, nil

	case formOpenedMsg:
		m.loading = false
		if msg.err != nil {
			m.minibufferText = msg.err.Error()
			return m, nil
		}
		m.openBuilder(msg.doc)
		return m, saveTickCmd()

	case formPreviewMsg:
		m.loading = false
		if msg.err != nil {
			m.minibufferText = msg.err.Error()
			return m, nil
		}
		m.openPreview(msg.title, msg.description, msg.questions)
		return m, nil

	case formCreatedMsg:
		if msg.err != nil {
			m.minibufferText = msg.err.Error()
			return m, nil
		}
		// Drop straight into the builder on the fresh form.
		doc := builder.FromForm(msg.form.ID, msg.form.Title, msg.form.Description, nil)
		m.openBuilder(doc)
		return m, saveTickCmd()

	case formMutatedMsg:
		if msg.err != nil {
			m.minibufferText = msg.err.Error()
			return m, nil
		}
		m.loading = true
		return m, m.loadDashboardCmd()

	case draftWrittenMsg:
		if msg.err != nil {
			m.minibufferText = "draft: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.closeBuilder()
			return m, tea.Quit
		}
		m.minibufferText = ""
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		switch m.view {
		case viewDashboard:
			return m.updateDashboard(msg)
		case viewBuilder:
			return m.updateBuilder(msg)
		case viewPreview:
			return m.updatePreview(msg)
		}
	}

	return m, nil
}

func (m *appModel) resizeLists() {
	w := m.width
	if w > maxContentW {
		w = maxContentW
	}
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	m.formsList.SetSize(w, h)
	m.questionsList.SetSize(w/2, h)
}

func (m appModel) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit

	case "r":
		m.loading = true
		return m, m.loadDashboardCmd()

	case "n":
		m.modal = modalNewForm
		m.input.SetValue("")
		m.input.Focus()
		return m, nil

	case "enter":
		if r, ok := m.formsList.SelectedItem().(formRow); ok {
			m.loading = true
			return m, m.openFormCmd(r.form.ID)
		}
		return m, nil

	case "p":
		if r, ok := m.formsList.SelectedItem().(formRow); ok {
			m.loading = true
			return m, m.previewFormCmd(r.form.ID)
		}
		return m, nil

	case "P":
		if r, ok := m.formsList.SelectedItem().(formRow); ok {
			return m, m.publishToggleCmd(r.form)
		}
		return m, nil

	case "D":
		if r, ok := m.formsList.SelectedItem().(formRow); ok {
			return m, m.duplicateFormCmd(r.form.ID)
		}
		return m, nil

	case "x":
		if r, ok := m.formsList.SelectedItem().(formRow); ok {
			m.modal = modalConfirmDelete
			m.deleteForID = r.form.ID
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.formsList, cmd = m.formsList.Update(msg)
	return m, cmd
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalNewForm:
		switch msg.String() {
		case "esc":
			m.modal = modalNone
			m.input.Blur()
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				title = builder.DefaultFormTitle
			}
			m.modal = modalNone
			m.input.Blur()
			return m, m.createFormCmd(title)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case modalAddQuestion:
		return m.updateAddQuestionModal(msg)

	case modalConfirmDelete:
		switch msg.String() {
		case "y", "enter":
			id := m.deleteForID
			m.modal = modalNone
			m.deleteForID = ""
			if m.view == viewBuilder {
				m.deleteSelectedQuestion(id)
				return m, nil
			}
			return m, m.deleteFormCmd(id)
		case "n", "esc":
			m.modal = modalNone
			m.deleteForID = ""
			return m, nil
		}
		return m, nil
	}

	m.modal = modalNone
	return m, nil
}

func (m appModel) loadDashboardCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		d, err := client.Dashboard(context.Background())
		return dashboardLoadedMsg{dashboard: d, err: err}
	}
}

func (m appModel) openFormCmd(id string) tea.Cmd {
	client := m.client
	st := m.store
	return func() tea.Msg {
		f, err := client.GetForm(context.Background(), id)
		if err != nil {
			return formOpenedMsg{err: err}
		}
		doc := builder.FromForm(f.ID, f.Title, strDeref(f.Description), api.QuestionsFromWire(f.Questions))
		// A newer local draft means the last session ended before autosave
		// landed; resume from it.
		if d, ok, err := st.LoadDraft(context.Background(), id); err == nil && ok && d.SavedAt.After(f.UpdatedAt) {
			doc = d.Document()
		}
		return formOpenedMsg{doc: doc}
	}
}

func (m appModel) previewFormCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		f, err := client.GetForm(context.Background(), id)
		if err != nil {
			return formPreviewMsg{err: err}
		}
		return formPreviewMsg{
			title:       f.Title,
			description: strDeref(f.Description),
			questions:   api.QuestionsFromWire(f.Questions),
		}
	}
}

func (m appModel) createFormCmd(title string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		f, err := client.CreateForm(context.Background(), title, "")
		return formCreatedMsg{form: f, err: err}
	}
}

func (m appModel) publishToggleCmd(f model.FormSummary) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		var err error
		if f.Status == model.FormStatusPublished {
			err = client.UnpublishForm(context.Background(), f.ID)
		} else {
			err = client.PublishForm(context.Background(), f.ID)
		}
		return formMutatedMsg{err: err}
	}
}

func (m appModel) duplicateFormCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.DuplicateForm(context.Background(), id)
		return formMutatedMsg{err: err}
	}
}

func (m appModel) deleteFormCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.DeleteForm(context.Background(), id)
		return formMutatedMsg{err: err}
	}
}

func (m appModel) writeDraftCmd(d store.Draft) tea.Cmd {
	st := m.store
	return func() tea.Msg {
		return draftWrittenMsg{err: st.SaveDraft(context.Background(), d)}
	}
}

func strDeref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
