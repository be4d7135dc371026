package builder

import (
	"testing"

	"craft-cli/internal/model"
)

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestAddQuestion_SeedsChoiceOptions(t *testing.T) {
	d := New("form-1")

	q := d.AddQuestion(model.QuestionSingleSelect)
	if len(q.Options) != 2 {
		t.Fatalf("expected 2 seeded options; got %v", q.Options)
	}
	if d.SelectedID != q.ID {
		t.Fatalf("expected new question selected; got %q", d.SelectedID)
	}

	q2 := d.AddQuestion(model.QuestionShortText)
	if q2.Options != nil {
		t.Fatalf("expected no options for short-text; got %v", q2.Options)
	}
	if q2.Title != DefaultQuestionTitle {
		t.Fatalf("expected default title; got %q", q2.Title)
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 questions; got %d", d.Len())
	}
}

func TestAddDelete_LengthAccounting(t *testing.T) {
	d := New("form-1")
	q1 := d.AddQuestion(model.QuestionShortText)
	d.AddQuestion(model.QuestionLongText)
	d.AddQuestion(model.QuestionDropdown)

	if !d.DeleteQuestion(q1.ID) {
		t.Fatalf("expected delete of %s to succeed", q1.ID)
	}
	// Deletes of unknown ids are no-ops and must not shrink the list.
	if d.DeleteQuestion("q-nope") {
		t.Fatalf("expected delete of unknown id to be a no-op")
	}
	if d.DeleteQuestion(q1.ID) {
		t.Fatalf("expected second delete of same id to be a no-op")
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 questions; got %d", d.Len())
	}
}

func TestDeleteQuestion_ClearsSelectionOnlyForDeletedID(t *testing.T) {
	d := New("form-1")
	q1 := d.AddQuestion(model.QuestionShortText)
	q2 := d.AddQuestion(model.QuestionLongText)

	// q2 is selected (last add). Deleting q1 must not touch the selection.
	d.DeleteQuestion(q1.ID)
	if d.SelectedID != q2.ID {
		t.Fatalf("expected selection unchanged; got %q", d.SelectedID)
	}

	d.DeleteQuestion(q2.ID)
	if d.SelectedID != "" {
		t.Fatalf("expected selection cleared after deleting selected question; got %q", d.SelectedID)
	}
}

func TestUpdateQuestion_PartialMerge(t *testing.T) {
	d := New("form-1")
	q := d.AddQuestion(model.QuestionMultiSelect)
	other := d.AddQuestion(model.QuestionShortText)

	ok := d.UpdateQuestion(q.ID, QuestionPatch{
		Title:    strPtr("Favourite colours"),
		Required: boolPtr(true),
	})
	if !ok {
		t.Fatalf("expected update to find question")
	}

	got := d.FindQuestion(q.ID)
	if got.Title != "Favourite colours" || !got.Required {
		t.Fatalf("patch not applied: %+v", got)
	}
	// Untouched fields survive.
	if len(got.Options) != 2 {
		t.Fatalf("expected options untouched; got %v", got.Options)
	}
	// Other questions are never affected.
	if o := d.FindQuestion(other.ID); o.Title != DefaultQuestionTitle {
		t.Fatalf("unrelated question mutated: %+v", o)
	}

	if d.UpdateQuestion("q-nope", QuestionPatch{Title: strPtr("x")}) {
		t.Fatalf("expected update of unknown id to be a no-op")
	}
}

func TestUpdateQuestion_OptionsReplacedWholesale(t *testing.T) {
	d := New("form-1")
	q := d.AddQuestion(model.QuestionDropdown)

	// Deleting every option leaves an empty but present list; the question
	// stays a choice question.
	empty := []string{}
	d.UpdateQuestion(q.ID, QuestionPatch{Options: &empty})
	got := d.FindQuestion(q.ID)
	if got.Options == nil || len(got.Options) != 0 {
		t.Fatalf("expected empty non-nil options; got %#v", got.Options)
	}

	// Duplicate labels are distinct choices by position.
	dupes := []string{"Yes", "Yes"}
	d.UpdateQuestion(q.ID, QuestionPatch{Options: &dupes})
	if got := d.FindQuestion(q.ID); len(got.Options) != 2 {
		t.Fatalf("expected duplicate options kept; got %v", got.Options)
	}
}

func TestSelect_IdempotentAndUnchecked(t *testing.T) {
	d := New("form-1")
	q := d.AddQuestion(model.QuestionShortText)

	d.Select(q.ID)
	d.Select(q.ID)
	if d.SelectedID != q.ID {
		t.Fatalf("expected %q selected; got %q", q.ID, d.SelectedID)
	}

	// Selecting an unknown id is allowed; reads degrade to nothing selected.
	d.Select("q-stale")
	kind, sel := d.Selection()
	if kind != SelectionNone || sel != nil {
		t.Fatalf("expected SelectionNone for stale id; got %v %v", kind, sel)
	}

	d.Select("")
	kind, _ = d.Selection()
	if kind != SelectionForm {
		t.Fatalf("expected SelectionForm; got %v", kind)
	}
}

func TestReorder_IsPermutation(t *testing.T) {
	d := New("form-1")
	var ids []string
	for i := 0; i < 5; i++ {
		ids = append(ids, d.AddQuestion(model.QuestionShortText).ID)
	}

	d.Reorder(1, 3)

	if d.Len() != 5 {
		t.Fatalf("length changed: %d", d.Len())
	}
	want := []string{ids[0], ids[2], ids[3], ids[1], ids[4]}
	for i, id := range want {
		if d.Questions[i].ID != id {
			t.Fatalf("position %d: want %s got %s", i, id, d.Questions[i].ID)
		}
	}

	// Out-of-range indices are ignored.
	d.Reorder(0, 9)
	d.Reorder(-1, 2)
	for i, id := range want {
		if d.Questions[i].ID != id {
			t.Fatalf("out-of-range reorder mutated list at %d", i)
		}
	}
}

func TestReorder_MoveToFrontAndBack(t *testing.T) {
	d := New("form-1")
	a := d.AddQuestion(model.QuestionShortText).ID
	b := d.AddQuestion(model.QuestionShortText).ID
	c := d.AddQuestion(model.QuestionShortText).ID

	d.Reorder(2, 0)
	if d.Questions[0].ID != c || d.Questions[1].ID != a || d.Questions[2].ID != b {
		t.Fatalf("unexpected order after move to front: %v", idsOf(d))
	}

	d.Reorder(0, 2)
	if d.Questions[0].ID != a || d.Questions[1].ID != b || d.Questions[2].ID != c {
		t.Fatalf("unexpected order after move to back: %v", idsOf(d))
	}
}

func TestEndToEndScenario(t *testing.T) {
	d := New("form-1")

	q1 := d.AddQuestion(model.QuestionShortText)
	if q1.Title != "Untitled Question" || d.SelectedID != q1.ID {
		t.Fatalf("unexpected first question: %+v selected=%q", q1, d.SelectedID)
	}

	q2 := d.AddQuestion(model.QuestionMultiSelect)
	if len(q2.Options) != 2 || d.SelectedID != q2.ID || d.Len() != 2 {
		t.Fatalf("unexpected second question: %+v selected=%q len=%d", q2, d.SelectedID, d.Len())
	}

	d.Reorder(1, 0)
	if d.Questions[0].ID != q2.ID {
		t.Fatalf("expected q2 first after reorder; got %v", idsOf(d))
	}

	d.DeleteQuestion(q1.ID)
	if d.Len() != 1 || d.Questions[0].ID != q2.ID {
		t.Fatalf("expected only q2 left; got %v", idsOf(d))
	}
	// Deleted id != selected id, so the selection is untouched.
	if d.SelectedID != q2.ID {
		t.Fatalf("expected q2 still selected; got %q", d.SelectedID)
	}
}

func TestReset(t *testing.T) {
	d := New("form-1")
	d.SetTitle("Survey")
	d.SetDescription("About you")
	d.AddQuestion(model.QuestionShortText)

	d.Reset()
	if d.Title != DefaultFormTitle || d.Description != "" || d.Len() != 0 || d.SelectedID != "" {
		t.Fatalf("reset incomplete: %+v", d)
	}
}

func idsOf(d *Document) []string {
	out := make([]string, 0, len(d.Questions))
	for _, q := range d.Questions {
		out = append(out, q.ID)
	}
	return out
}
