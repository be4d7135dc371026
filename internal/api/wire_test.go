package api

import (
	"reflect"
	"testing"

	"craft-cli/internal/model"
)

func TestQuestionsToWire_PositionsFromIndex(t *testing.T) {
	qs := []model.Question{
		{ID: "q-a", Type: model.QuestionShortText, Title: "Name"},
		{ID: "q-b", Type: model.QuestionSingleSelect, Title: "Colour", Options: []string{"Red", "Blue"}},
	}

	ws := QuestionsToWire(qs)
	if len(ws) != 2 {
		t.Fatalf("expected 2 wire questions; got %d", len(ws))
	}
	if ws[0].Position != 0 || ws[1].Position != 1 {
		t.Fatalf("positions not derived from index: %d %d", ws[0].Position, ws[1].Position)
	}

	// Text questions carry no options field at all.
	if ws[0].Options != nil {
		t.Fatalf("expected no options field for text question; got %v", *ws[0].Options)
	}

	opts := *ws[1].Options
	if len(opts) != 2 || opts[0].Label != "Red" || opts[0].Position != 0 || opts[1].Position != 1 {
		t.Fatalf("unexpected wire options: %v", opts)
	}
}

func TestQuestionsToWire_EmptyChoiceOptionsStayPresent(t *testing.T) {
	qs := []model.Question{
		{ID: "q-a", Type: model.QuestionDropdown, Title: "Pick", Options: []string{}},
	}
	ws := QuestionsToWire(qs)
	if ws[0].Options == nil {
		t.Fatalf("expected options field present for choice question")
	}
	if got := *ws[0].Options; len(got) != 0 {
		t.Fatalf("expected empty options; got %v", got)
	}
}

func TestQuestionsFromWire_SortsByPosition(t *testing.T) {
	ws := []Question{
		{ID: "q-c", Type: "short-text", Title: "Third", Position: 2},
		{ID: "q-a", Type: "short-text", Title: "First", Position: 0},
		{ID: "q-b", Type: "multi-select", Title: "Second", Position: 1, Options: &[]Option{
			{Label: "B", Position: 1},
			{Label: "A", Position: 0},
		}},
	}

	qs := QuestionsFromWire(ws)
	if qs[0].ID != "q-a" || qs[1].ID != "q-b" || qs[2].ID != "q-c" {
		t.Fatalf("questions not ordered by position: %v", qs)
	}
	if !reflect.DeepEqual(qs[1].Options, []string{"A", "B"}) {
		t.Fatalf("options not ordered by position: %v", qs[1].Options)
	}
	// Text questions come back with nil options.
	if qs[0].Options != nil {
		t.Fatalf("expected nil options for text question; got %v", qs[0].Options)
	}
}

func TestQuestionsFromWire_ChoiceWithoutOptionsFieldGetsEmptyList(t *testing.T) {
	qs := QuestionsFromWire([]Question{{ID: "q-a", Type: "single-select", Title: "Pick"}})
	if qs[0].Options == nil || len(qs[0].Options) != 0 {
		t.Fatalf("expected empty non-nil options; got %#v", qs[0].Options)
	}
}

func TestWireRoundTrip(t *testing.T) {
	orig := []model.Question{
		{ID: "q-a", Type: model.QuestionShortText, Title: "Name", Required: true},
		{ID: "q-b", Type: model.QuestionMultiSelect, Title: "Toppings", Emoji: "🍕",
			Options: []string{"Cheese", "Cheese", "Olives"}}, // duplicates are distinct by position
		{ID: "q-c", Type: model.QuestionLongText, Title: "Story", Description: "Tell us"},
		{ID: "q-d", Type: model.QuestionDropdown, Title: "Pick", Options: []string{}},
	}

	got := QuestionsFromWire(QuestionsToWire(orig))
	if !reflect.DeepEqual(got, orig) {
		t.Fatalf("round trip mismatch:\n got: %#v\nwant: %#v", got, orig)
	}
}
