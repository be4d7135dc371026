package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"craft-cli/internal/api"
	"craft-cli/internal/builder"
	"craft-cli/internal/model"
	"craft-cli/internal/store"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Settings panel field indices. Emoji/required/options only exist for
// question selections; cycling skips them on the form row.
const (
	fieldTitle = iota
	fieldDescription
	fieldEmoji
	fieldRequired
	fieldOptions
)

func (m appModel) updateBuilder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.focus == focusSettings {
		return m.updateBuilderSettings(msg)
	}

	switch msg.String() {
	case "q", "esc":
		if m.grabbedID != "" {
			// Cancel the in-progress move, keep the order untouched.
			m.grabbedID = ""
			m.refreshQuestions()
			return m, nil
		}
		return m.leaveBuilder()

	case "enter", "tab":
		if m.grabbedID != "" {
			return m.dropGrabbed()
		}
		if r, ok := m.questionsList.SelectedItem().(questionRow); ok {
			m.doc.Select(r.id)
			m.focus = focusSettings
			m.settingsIdx = fieldTitle
			m.syncSettingsInputs()
			m.focusSettingsField()
		}
		return m, nil

	case " ":
		if m.grabbedID != "" {
			return m.dropGrabbed()
		}
		if r, ok := m.questionsList.SelectedItem().(questionRow); ok && r.id != "" {
			m.grabbedID = r.id
			m.doc.Select(r.id)
			m.refreshQuestions()
		}
		return m, nil

	case "a":
		m.modal = modalAddQuestion
		m.typeCursor = 0
		return m, nil

	case "x", "d":
		if r, ok := m.questionsList.SelectedItem().(questionRow); ok && r.id != "" {
			m.modal = modalConfirmDelete
			m.deleteForID = r.id
		}
		return m, nil

	case "K", "shift+up":
		if r, ok := m.questionsList.SelectedItem().(questionRow); ok && r.id != "" {
			if m.doc.MoveQuestionBy(r.id, -1) {
				m.noteEdit()
			}
			m.doc.Select(r.id)
			m.refreshQuestions()
		}
		return m, nil

	case "J", "shift+down":
		if r, ok := m.questionsList.SelectedItem().(questionRow); ok && r.id != "" {
			if m.doc.MoveQuestionBy(r.id, 1) {
				m.noteEdit()
			}
			m.doc.Select(r.id)
			m.refreshQuestions()
		}
		return m, nil

	case "p":
		m.openPreview(m.doc.Title, m.doc.Description, m.doc.Questions)
		return m, nil
	}

	var cmd tea.Cmd
	m.questionsList, cmd = m.questionsList.Update(msg)
	if r, ok := m.questionsList.SelectedItem().(questionRow); ok {
		m.doc.Select(r.id)
	}
	return m, cmd
}

// dropGrabbed completes a keyboard move. Both endpoints are ids, resolved
// only now; if either question disappeared meanwhile the move is abandoned.
func (m appModel) dropGrabbed() (tea.Model, tea.Cmd) {
	grabbed := m.grabbedID
	m.grabbedID = ""
	if r, ok := m.questionsList.SelectedItem().(questionRow); ok && r.id != "" {
		if m.doc.MoveQuestion(grabbed, r.id) {
			m.noteEdit()
		}
		m.doc.Select(grabbed)
	}
	m.refreshQuestions()
	return m, nil
}

func (m appModel) leaveBuilder() (tea.Model, tea.Cmd) {
	// Flush the local draft before tearing down; the ticker that normally
	// writes it is about to stop.
	if m.draftDirty && m.doc != nil {
		_ = m.store.SaveDraft(context.Background(), store.DraftFromDocument(m.doc, time.Now()))
		m.draftDirty = false
	}
	m.closeBuilder()
	if m.standalone {
		return m, tea.Quit
	}
	m.doc = nil
	m.view = viewDashboard
	m.loading = true
	return m, m.loadDashboardCmd()
}

func (m appModel) updateAddQuestionModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return m, nil
	case "up", "k", "ctrl+p":
		if m.typeCursor > 0 {
			m.typeCursor--
		}
		return m, nil
	case "down", "j", "ctrl+n":
		if m.typeCursor < len(model.QuestionTypes)-1 {
			m.typeCursor++
		}
		return m, nil
	case "enter":
		m.modal = modalNone
		// AddQuestion selects the new question; land in its settings panel.
		m.doc.AddQuestion(model.QuestionTypes[m.typeCursor])
		m.noteEdit()
		m.refreshQuestions()
		m.focus = focusSettings
		m.settingsIdx = fieldTitle
		m.syncSettingsInputs()
		m.focusSettingsField()
		return m, nil
	}
	return m, nil
}

func (m *appModel) deleteSelectedQuestion(id string) {
	if m.doc == nil {
		return
	}
	if m.doc.DeleteQuestion(id) {
		m.noteEdit()
	}
	m.refreshQuestions()
	m.syncSettingsInputs()
}

func (m appModel) updateBuilderSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind, q := m.doc.Selection()
	if kind == builder.SelectionNone {
		// Selection went stale (question deleted); fall back to the list.
		m.focus = focusList
		m.blurSettingsFields()
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.focus = focusList
		m.blurSettingsFields()
		m.refreshQuestions()
		return m, nil

	case "tab":
		m.settingsIdx = m.nextSettingsField(m.settingsIdx, +1)
		m.focusSettingsField()
		return m, nil

	case "shift+tab":
		m.settingsIdx = m.nextSettingsField(m.settingsIdx, -1)
		m.focusSettingsField()
		return m, nil
	}

	if m.settingsIdx == fieldRequired && q != nil {
		switch msg.String() {
		case " ", "enter":
			req := !q.Required
			m.doc.UpdateQuestion(q.ID, builder.QuestionPatch{Required: &req})
			m.noteEdit()
			m.refreshQuestions()
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.settingsIdx {
	case fieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case fieldDescription:
		m.descInput, cmd = m.descInput.Update(msg)
	case fieldEmoji:
		m.emojiInput, cmd = m.emojiInput.Update(msg)
	case fieldOptions:
		m.optionsArea, cmd = m.optionsArea.Update(msg)
	}
	m.applySettingsField()
	return m, cmd
}

// nextSettingsField cycles through the fields valid for the current selection.
func (m appModel) nextSettingsField(from, dir int) int {
	fields := m.settingsFields()
	if len(fields) == 0 {
		return from
	}
	idx := 0
	for i, f := range fields {
		if f == from {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(fields)) % len(fields)
	return fields[idx]
}

func (m appModel) settingsFields() []int {
	kind, q := m.doc.Selection()
	switch kind {
	case builder.SelectionForm:
		return []int{fieldTitle, fieldDescription}
	case builder.SelectionQuestion:
		fields := []int{fieldTitle, fieldDescription, fieldEmoji, fieldRequired}
		if q.Type.HasOptions() {
			fields = append(fields, fieldOptions)
		}
		return fields
	}
	return nil
}

func (m *appModel) focusSettingsField() {
	m.blurSettingsFields()
	switch m.settingsIdx {
	case fieldTitle:
		m.titleInput.Focus()
	case fieldDescription:
		m.descInput.Focus()
	case fieldEmoji:
		m.emojiInput.Focus()
	case fieldOptions:
		m.optionsArea.Focus()
	}
}

func (m *appModel) blurSettingsFields() {
	m.titleInput.Blur()
	m.descInput.Blur()
	m.emojiInput.Blur()
	m.optionsArea.Blur()
}

// syncSettingsInputs loads the current selection into the panel inputs.
func (m *appModel) syncSettingsInputs() {
	if m.doc == nil {
		return
	}
	kind, q := m.doc.Selection()
	switch kind {
	case builder.SelectionForm:
		m.titleInput.SetValue(m.doc.Title)
		m.descInput.SetValue(m.doc.Description)
		m.emojiInput.SetValue("")
		m.optionsArea.SetValue("")
	case builder.SelectionQuestion:
		m.titleInput.SetValue(q.Title)
		m.descInput.SetValue(q.Description)
		m.emojiInput.SetValue(q.Emoji)
		m.optionsArea.SetValue(strings.Join(q.Options, "\n"))
	default:
		m.titleInput.SetValue("")
		m.descInput.SetValue("")
	}
}

// applySettingsField writes the focused input back into the document. Edits
// apply immediately; the server only sees them after the autosave debounce.
func (m *appModel) applySettingsField() {
	kind, q := m.doc.Selection()
	switch kind {
	case builder.SelectionForm:
		switch m.settingsIdx {
		case fieldTitle:
			if m.doc.Title != m.titleInput.Value() {
				m.doc.SetTitle(m.titleInput.Value())
				m.noteEdit()
			}
		case fieldDescription:
			if m.doc.Description != m.descInput.Value() {
				m.doc.SetDescription(m.descInput.Value())
				m.noteEdit()
			}
		}

	case builder.SelectionQuestion:
		var p builder.QuestionPatch
		changed := false
		switch m.settingsIdx {
		case fieldTitle:
			if v := m.titleInput.Value(); v != q.Title {
				p.Title = &v
				changed = true
			}
		case fieldDescription:
			if v := m.descInput.Value(); v != q.Description {
				p.Description = &v
				changed = true
			}
		case fieldEmoji:
			if v := m.emojiInput.Value(); v != q.Emoji {
				p.Emoji = &v
				changed = true
			}
		case fieldOptions:
			opts := optionLines(m.optionsArea.Value())
			if !sameStrings(opts, q.Options) {
				p.Options = &opts
				changed = true
			}
		}
		if changed {
			m.doc.UpdateQuestion(q.ID, p)
			m.noteEdit()
			m.refreshQuestions()
		}
	}
}

// optionLines turns textarea content into an options list, one per line.
// Blank lines vanish; deleting every line yields an empty list, which keeps
// the question a choice question with no choices.
func optionLines(s string) []string {
	out := []string{}
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		out = append(out, ln)
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// noteEdit marks the document dirty for the local draft and hands the server
// snapshot to the debounced saver.
func (m *appModel) noteEdit() {
	m.draftDirty = true
	if m.saver != nil {
		m.saver.Notify(api.NewFormUpdate(m.doc.Title, m.doc.Description, m.doc.Questions))
	}
}

// refreshQuestions rebuilds the list rows from the document and keeps the
// cursor on the selected row.
func (m *appModel) refreshQuestions() {
	if m.doc == nil {
		return
	}
	items := make([]list.Item, 0, m.doc.Len()+1)
	items = append(items, questionRow{id: "", line: "Form settings"})
	cursor := 0
	for i, q := range m.doc.Questions {
		marker := ""
		if m.grabbedID == q.ID {
			marker = "↕ "
		}
		title := strings.TrimSpace(q.Title)
		if title == "" {
			title = "(untitled)"
		}
		emoji := ""
		if q.Emoji != "" {
			emoji = q.Emoji + " "
		}
		req := ""
		if q.Required {
			req = " *"
		}
		line := fmt.Sprintf("%s%d. %s%s%s  %s", marker, i+1, emoji, title, req, styleMuted().Render(q.Type.Label()))
		items = append(items, questionRow{id: q.ID, line: line})
		if q.ID == m.doc.SelectedID && m.doc.SelectedID != "" {
			cursor = i + 1
		}
	}
	m.questionsList.SetItems(items)
	m.questionsList.Select(cursor)
}
