package tui

import (
	"fmt"
	"strings"

	"craft-cli/internal/autosave"
	"craft-cli/internal/builder"
	"craft-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	var body string
	switch m.view {
	case viewDashboard:
		body = m.renderDashboard()
	case viewBuilder:
		body = m.renderBuilder()
	case viewPreview:
		body = m.renderPreview()
	}

	if m.modal != modalNone {
		return m.renderModal()
	}
	return body
}

func (m appModel) renderDashboard() string {
	var b strings.Builder

	b.WriteString(styleHeading().Render("CrafT"))
	b.WriteString("\n")
	stats := fmt.Sprintf("%d forms · %d live · %d responses",
		m.stats.TotalForms, m.stats.ActiveForms, m.stats.TotalResponses)
	b.WriteString(styleMuted().Render(stats))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(styleMuted().Render("Loading…"))
	} else if len(m.formsList.Items()) == 0 {
		b.WriteString(styleMuted().Render("No forms yet. Press n to create one."))
	} else {
		b.WriteString(m.formsList.View())
	}

	b.WriteString("\n")
	b.WriteString(m.footer("enter edit · p preview · n new · P publish/unpublish · D duplicate · x delete · r refresh · q quit"))
	return b.String()
}

func (m appModel) renderBuilder() string {
	var b strings.Builder

	title := strings.TrimSpace(m.doc.Title)
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(styleHeading().Render(title))
	b.WriteString("\n\n")

	left := m.questionsList.View()
	right := m.renderSettingsPanel()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))

	b.WriteString("\n")
	help := "enter settings · a add · x delete · space move · K/J nudge · p preview · esc back"
	if m.focus == focusSettings {
		help = "tab next field · shift+tab previous · esc back to list"
	}
	if m.grabbedID != "" {
		help = "space/enter drop here · esc cancel move"
	}
	b.WriteString(m.footerWithSave(help))
	return b.String()
}

func (m appModel) renderSettingsPanel() string {
	kind, q := m.doc.Selection()

	var b strings.Builder
	label := func(idx int, name string) string {
		if m.focus == focusSettings && m.settingsIdx == idx {
			return lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Render(name)
		}
		return styleMuted().Render(name)
	}

	switch kind {
	case builder.SelectionForm:
		b.WriteString(styleHeading().Render("Form settings"))
		b.WriteString("\n\n")
		b.WriteString(label(fieldTitle, "Title"))
		b.WriteString("\n")
		b.WriteString(m.titleInput.View())
		b.WriteString("\n\n")
		b.WriteString(label(fieldDescription, "Description"))
		b.WriteString("\n")
		b.WriteString(m.descInput.View())

	case builder.SelectionQuestion:
		b.WriteString(styleHeading().Render(q.Type.Label() + " question"))
		b.WriteString("\n\n")
		b.WriteString(label(fieldTitle, "Title"))
		b.WriteString("\n")
		b.WriteString(m.titleInput.View())
		b.WriteString("\n\n")
		b.WriteString(label(fieldDescription, "Description"))
		b.WriteString("\n")
		b.WriteString(m.descInput.View())
		b.WriteString("\n\n")
		b.WriteString(label(fieldEmoji, "Emoji"))
		b.WriteString("\n")
		b.WriteString(m.emojiInput.View())
		b.WriteString("\n\n")
		check := "[ ]"
		if q.Required {
			check = "[x]"
		}
		b.WriteString(label(fieldRequired, "Required"))
		b.WriteString(" " + check)
		if q.Type.HasOptions() {
			b.WriteString("\n\n")
			b.WriteString(label(fieldOptions, "Options"))
			b.WriteString("\n")
			b.WriteString(m.optionsArea.View())
		}

	default:
		b.WriteString(styleMuted().Render("Nothing selected"))
	}

	return b.String()
}

func (m appModel) renderPreview() string {
	r := m.runner

	var b strings.Builder

	if r.Index() < 0 {
		b.WriteString(styleHeading().Render(r.Title()))
		b.WriteString("\n\n")
		if d := r.Description(); d != "" {
			b.WriteString(renderMarkdown(d, m.contentWidth()))
			b.WriteString("\n\n")
		}
		b.WriteString(m.footer("enter start · esc exit"))
		return b.String()
	}

	if r.Done() {
		b.WriteString(styleHeading().Render("Thank you!"))
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("Your response has been recorded (preview only, nothing was sent)."))
		b.WriteString("\n\n")
		b.WriteString(m.footer("r restart · q exit"))
		return b.String()
	}

	q := r.Current()

	b.WriteString(styleMuted().Render(fmt.Sprintf("Question %d of %d", r.Index()+1, r.Len())))
	b.WriteString("\n\n")

	title := strings.TrimSpace(q.Title)
	if q.Emoji != "" {
		title = q.Emoji + " " + title
	}
	if q.Required {
		title += " *"
	}
	b.WriteString(styleHeading().Render(title))
	b.WriteString("\n")
	if q.Description != "" {
		b.WriteString(renderMarkdown(q.Description, m.contentWidth()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case q.Type == model.QuestionLongText:
		b.WriteString(m.previewArea.View())
	case q.Type.HasOptions():
		b.WriteString(m.renderChoices(*q))
	default:
		b.WriteString(m.previewText.View())
	}

	if v := r.ValidationMessage(); v != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorValidation).Render(v))
	}

	b.WriteString("\n")
	help := "enter continue · shift+tab back · esc exit"
	if q.Type == model.QuestionLongText {
		help = "ctrl+d continue · shift+tab back · esc exit"
	} else if q.Type.HasOptions() {
		help = "space select · enter continue · shift+tab back · esc exit"
	}
	b.WriteString(m.footer(help))
	return b.String()
}

func (m appModel) renderChoices(q model.Question) string {
	if len(q.Options) == 0 {
		return styleMuted().Render("(no options)")
	}

	mark := func(on bool) string {
		if q.Type == model.QuestionMultiSelect {
			if on {
				return "[x]"
			}
			return "[ ]"
		}
		if on {
			return "(•)"
		}
		return "( )"
	}

	var b strings.Builder
	for i, opt := range q.Options {
		cursor := "  "
		if i == m.choiceCursor {
			cursor = "> "
		}
		line := cursor + mark(m.choiceSel[i]) + " " + opt
		if i == m.choiceCursor {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(line)
		if i < len(q.Options)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m appModel) renderModal() string {
	var content string

	switch m.modal {
	case modalNewForm:
		content = styleHeading().Render("New form") + "\n\n" + m.input.View() + "\n\n" +
			styleMuted().Render("enter create · esc cancel")

	case modalAddQuestion:
		var b strings.Builder
		b.WriteString(styleHeading().Render("Add question"))
		b.WriteString("\n\n")
		for i, t := range model.QuestionTypes {
			line := "  " + t.Label()
			if i == m.typeCursor {
				line = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("> " + t.Label())
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(styleMuted().Render("enter add · esc cancel"))
		content = b.String()

	case modalConfirmDelete:
		what := "form"
		if m.view == viewBuilder {
			what = "question"
		}
		content = styleHeading().Render("Delete "+what+"?") + "\n\n" +
			styleMuted().Render("y delete · n cancel")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorChromeMutedFg).
		Padding(1, 2).
		Render(content)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m appModel) contentWidth() int {
	w := m.width - 2
	if w > maxContentW {
		w = maxContentW
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) footer(help string) string {
	line := styleMuted().Render(help)
	if m.minibufferText != "" {
		line += "\n" + lipgloss.NewStyle().Foreground(colorSaveErr).Render(m.minibufferText)
	}
	return line
}

// footerWithSave appends the autosave indicator to the builder footer. A
// failed save shows as a stale indicator, never a blocking dialog.
func (m appModel) footerWithSave(help string) string {
	return m.footer(help) + "\n" + m.saveIndicator()
}

func (m appModel) saveIndicator() string {
	st := m.saveStatus
	switch st.State {
	case autosave.StatePending:
		return lipgloss.NewStyle().Foreground(colorSaveBusy).Render("Unsaved changes…")
	case autosave.StateSaving:
		return lipgloss.NewStyle().Foreground(colorSaveBusy).Render("Saving…")
	case autosave.StateSaved:
		return lipgloss.NewStyle().Foreground(colorSaveOK).Render("Saved " + st.LastSavedAt.Format("15:04:05"))
	case autosave.StateFailed:
		return lipgloss.NewStyle().Foreground(colorSaveErr).Render("Autosave failed; retrying on next edit")
	}
	return styleMuted().Render("Up to date")
}
