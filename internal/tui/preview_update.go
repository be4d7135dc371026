package tui

import (
	"craft-cli/internal/model"
	"craft-cli/internal/preview"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.runner

	// Welcome page.
	if r.Index() < 0 {
		switch msg.String() {
		case "enter", " ":
			r.Advance()
			m.enterQuestion()
			return m, nil
		case "q", "esc":
			return m.leavePreview()
		}
		return m, nil
	}

	// Thank-you page.
	if r.Done() {
		switch msg.String() {
		case "r":
			r.Restart()
			return m, nil
		case "q", "esc", "enter":
			return m.leavePreview()
		}
		return m, nil
	}

	q := r.Current()

	switch msg.String() {
	case "esc":
		return m.leavePreview()

	case "shift+tab":
		m.recordCurrentAnswer(*q)
		r.Retreat()
		m.enterQuestion()
		return m, nil
	}

	if q.Type.HasOptions() {
		return m.updatePreviewChoice(msg, *q)
	}

	submitKey := "enter"
	if q.Type == model.QuestionLongText {
		// Enter inserts a newline in the textarea; submit is ctrl+d.
		submitKey = "ctrl+d"
	}
	if msg.String() == submitKey {
		m.recordCurrentAnswer(*q)
		if r.Advance() {
			m.enterQuestion()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if q.Type == model.QuestionLongText {
		m.previewArea, cmd = m.previewArea.Update(msg)
	} else {
		m.previewText, cmd = m.previewText.Update(msg)
	}
	return m, cmd
}

func (m appModel) updatePreviewChoice(msg tea.KeyMsg, q model.Question) (tea.Model, tea.Cmd) {
	r := m.runner

	switch msg.String() {
	case "up", "k", "ctrl+p":
		if m.choiceCursor > 0 {
			m.choiceCursor--
		}
		return m, nil

	case "down", "j", "ctrl+n":
		if m.choiceCursor < len(q.Options)-1 {
			m.choiceCursor++
		}
		return m, nil

	case " ":
		if len(q.Options) == 0 {
			return m, nil
		}
		if q.Type == model.QuestionMultiSelect {
			m.choiceSel[m.choiceCursor] = !m.choiceSel[m.choiceCursor]
		} else {
			// Single choice: picking one clears the rest.
			m.choiceSel = map[int]bool{m.choiceCursor: true}
		}
		return m, nil

	case "enter":
		m.recordCurrentAnswer(q)
		if r.Advance() {
			m.enterQuestion()
		}
		return m, nil
	}

	return m, nil
}

// recordCurrentAnswer snapshots the on-screen input into the runner. An
// untouched input records nothing, so a required question stays unanswered;
// once an entry exists it is overwritten, even with an empty value.
func (m *appModel) recordCurrentAnswer(q model.Question) {
	var a preview.Answer
	switch {
	case q.Type == model.QuestionLongText:
		a.Text = m.previewArea.Value()
	case q.Type.HasOptions():
		for i, opt := range q.Options {
			if m.choiceSel[i] {
				a.Choices = append(a.Choices, opt)
			}
		}
	default:
		a.Text = m.previewText.Value()
	}

	_, exists := m.runner.AnswerFor(q.ID)
	if !exists && a.Text == "" && len(a.Choices) == 0 {
		return
	}
	m.runner.RecordAnswer(q.ID, a)
}

// enterQuestion loads any previously recorded answer for the page the runner
// now points at, so going back shows what was entered.
func (m *appModel) enterQuestion() {
	m.previewText.SetValue("")
	m.previewArea.SetValue("")
	m.previewText.Blur()
	m.previewArea.Blur()
	m.choiceCursor = 0
	m.choiceSel = map[int]bool{}

	q := m.runner.Current()
	if q == nil {
		return
	}

	prior, ok := m.runner.AnswerFor(q.ID)
	switch {
	case q.Type == model.QuestionLongText:
		if ok {
			m.previewArea.SetValue(prior.Text)
		}
		m.previewArea.Focus()
	case q.Type.HasOptions():
		if ok {
			for i, opt := range q.Options {
				for _, c := range prior.Choices {
					if c == opt {
						m.choiceSel[i] = true
					}
				}
			}
		}
	default:
		if ok {
			m.previewText.SetValue(prior.Text)
		}
		m.previewText.Focus()
	}
}

func (m appModel) leavePreview() (tea.Model, tea.Cmd) {
	m.runner = nil
	if m.previewFromDoc {
		m.view = viewBuilder
		m.focus = focusList
		m.refreshQuestions()
		// The status tick died while the preview had the screen.
		return m, saveTickCmd()
	}
	if m.standalone {
		return m, tea.Quit
	}
	m.view = viewDashboard
	m.loading = true
	return m, m.loadDashboardCmd()
}
