package builder

import (
	"strings"

	"craft-cli/internal/model"
)

const (
	DefaultFormTitle     = "Untitled Form"
	DefaultQuestionTitle = "Untitled Question"
)

// defaultOptions seeds new choice questions so they render with something
// selectable immediately.
var defaultOptions = []string{"Option 1", "Option 2"}

// Document is the form being edited: title, description, and the ordered
// question list. Question order is the single source of truth for display and
// submission order; wire positions are derived from it at serialization time.
//
// SelectedID is a UI focus pointer, not ownership: empty means the form's own
// settings are focused, otherwise it names a question id. It may briefly point
// at an id that no longer exists (see Selection), which readers treat as
// nothing selected.
type Document struct {
	FormID      string
	Title       string
	Description string
	Questions   []model.Question
	SelectedID  string
}

// New returns an empty document with the default title, matching what the
// backend seeds for a freshly created form.
func New(formID string) *Document {
	return &Document{
		FormID: formID,
		Title:  DefaultFormTitle,
	}
}

// FromForm builds a document from a loaded form. Questions are taken in the
// given order (the codec has already sorted by wire position).
func FromForm(formID, title, description string, questions []model.Question) *Document {
	return &Document{
		FormID:      formID,
		Title:       title,
		Description: description,
		Questions:   questions,
	}
}

// Reset discards all local edits and returns the document to its zero form.
// Used when the builder unmounts or switches to a different form id.
func (d *Document) Reset() {
	*d = *New("")
}

func (d *Document) SetTitle(title string) {
	d.Title = title
}

func (d *Document) SetDescription(description string) {
	d.Description = description
}

// AddQuestion appends a new question of the given type, seeds choice variants
// with two default options, and moves the selection to it. It never fails.
func (d *Document) AddQuestion(t model.QuestionType) model.Question {
	q := model.Question{
		ID:    newQuestionID(),
		Type:  t,
		Title: DefaultQuestionTitle,
	}
	if t.HasOptions() {
		q.Options = append([]string{}, defaultOptions...)
	}
	d.Questions = append(d.Questions, q)
	d.SelectedID = q.ID
	return q
}

// QuestionPatch is a partial update; nil fields are left unchanged.
// Options, when set, replaces the whole list.
type QuestionPatch struct {
	Title       *string
	Description *string
	Required    *bool
	Emoji       *string
	Options     *[]string
}

// UpdateQuestion merges the patch into the question with the given id.
// Unknown ids are a silent no-op; other questions and the selection are never
// touched.
func (d *Document) UpdateQuestion(id string, p QuestionPatch) bool {
	q := d.FindQuestion(id)
	if q == nil {
		return false
	}
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Description != nil {
		q.Description = *p.Description
	}
	if p.Required != nil {
		q.Required = *p.Required
	}
	if p.Emoji != nil {
		q.Emoji = *p.Emoji
	}
	if p.Options != nil {
		q.Options = *p.Options
	}
	return true
}

// DeleteQuestion removes the question with the given id, preserving the
// relative order of the rest. If the deleted question was selected, the
// selection falls back to the form settings. Unknown ids are a no-op.
func (d *Document) DeleteQuestion(id string) bool {
	i := d.IndexOf(id)
	if i < 0 {
		return false
	}
	d.Questions = append(d.Questions[:i], d.Questions[i+1:]...)
	if d.SelectedID == id {
		d.SelectedID = ""
	}
	return true
}

// Select moves the focus pointer. Empty id focuses the form settings.
// No existence check: a stale id degrades to "nothing selected" on read.
func (d *Document) Select(id string) {
	d.SelectedID = id
}

// Reorder removes the question at from and reinserts it at to. Callers derive
// both indices from the live question list (see MoveQuestion); indices outside
// the list are ignored.
func (d *Document) Reorder(from, to int) {
	n := len(d.Questions)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	q := d.Questions[from]
	d.Questions = append(d.Questions[:from], d.Questions[from+1:]...)
	rest := d.Questions
	d.Questions = make([]model.Question, 0, n)
	d.Questions = append(d.Questions, rest[:to]...)
	d.Questions = append(d.Questions, q)
	d.Questions = append(d.Questions, rest[to:]...)
}

func (d *Document) Len() int {
	return len(d.Questions)
}

// FindQuestion returns a pointer into the live question list, or nil.
func (d *Document) FindQuestion(id string) *model.Question {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	for i := range d.Questions {
		if d.Questions[i].ID == id {
			return &d.Questions[i]
		}
	}
	return nil
}

func (d *Document) IndexOf(id string) int {
	for i := range d.Questions {
		if d.Questions[i].ID == id {
			return i
		}
	}
	return -1
}
