package builder

import "craft-cli/internal/model"

type SelectionKind int

const (
	// SelectionForm: no question focused; the form's own settings are edited.
	SelectionForm SelectionKind = iota
	// SelectionQuestion: a live question is focused.
	SelectionQuestion
	// SelectionNone: the pointer names an id that no longer exists.
	// Settings panels degrade to showing nothing rather than erroring.
	SelectionNone
)

// Selection resolves the focus pointer against the current question list.
// The returned question pointer is non-nil only for SelectionQuestion.
func (d *Document) Selection() (SelectionKind, *model.Question) {
	if d.SelectedID == "" {
		return SelectionForm, nil
	}
	if q := d.FindQuestion(d.SelectedID); q != nil {
		return SelectionQuestion, q
	}
	return SelectionNone, nil
}
