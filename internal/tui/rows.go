package tui

import (
	"fmt"
	"io"
	"strings"

	"craft-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type rowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newRowDelegate() rowDelegate {
	return rowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d rowDelegate) Height() int  { return 1 }
func (d rowDelegate) Spacing() int { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}

	line := " " + txt
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}

type formRow struct {
	form model.FormSummary
}

func (r formRow) FilterValue() string { return r.form.Title }

func (r formRow) Title() string {
	title := strings.TrimSpace(r.form.Title)
	if title == "" {
		title = "(untitled)"
	}

	badge := "draft"
	if r.form.Status == model.FormStatusPublished {
		badge = "live"
	}

	meta := fmt.Sprintf("%d %s", r.form.Responses, pluralize(r.form.Responses, "response", "responses"))
	return title + "  " + styleMuted().Render("["+badge+"] "+meta)
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// questionRow is one row of the builder's question list. The first row (id "")
// stands for the form settings.
type questionRow struct {
	id   string
	line string
}

func (r questionRow) FilterValue() string { return r.line }
func (r questionRow) Title() string       { return r.line }
