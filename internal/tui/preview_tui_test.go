package tui

import (
	"strings"
	"testing"

	"craft-cli/internal/model"
	"craft-cli/internal/store"
)

func newPreviewTestModel(questions []model.Question) appModel {
	m := newAppModel(nil, store.Store{})
	m.openPreview("Customer survey", "Tell us things.", questions)
	m.standalone = true
	return m
}

func TestPreviewRequired_GatesAdvance(t *testing.T) {
	m := newPreviewTestModel([]model.Question{
		{ID: "q1", Type: model.QuestionSingleSelect, Title: "Pick one", Required: true, Options: []string{"A", "B"}},
	})

	// Welcome page -> first question.
	m = apply(t, m, key("enter"))
	if m.runner.Index() != 0 {
		t.Fatalf("expected index 0, got %d", m.runner.Index())
	}

	// No answer recorded: advance must refuse and surface the message.
	m = apply(t, m, key("enter"))
	if m.runner.Index() != 0 {
		t.Fatalf("expected to stay on the required question")
	}
	if m.runner.ValidationMessage() == "" {
		t.Fatalf("expected a validation message")
	}
	if !strings.Contains(m.View(), "This question is required") {
		t.Fatalf("expected the validation message rendered")
	}

	// Select an option, then advance lands on the thank-you page.
	m = apply(t, m, key("space"))
	m = apply(t, m, key("enter"))
	if !m.runner.Done() {
		t.Fatalf("expected runner done, index %d", m.runner.Index())
	}
}

func TestPreviewMultiSelect_EmptySelectionStaysUnanswered(t *testing.T) {
	m := newPreviewTestModel([]model.Question{
		{ID: "q1", Type: model.QuestionMultiSelect, Title: "Pick some", Required: true, Options: []string{"A", "B"}},
	})

	m = apply(t, m, key("enter"))

	// Toggle on, then off again: an empty choice set is not an answer.
	m = apply(t, m, key("space"))
	m = apply(t, m, key("space"))
	m = apply(t, m, key("enter"))
	if m.runner.Done() {
		t.Fatalf("expected empty multi-select to refuse advance")
	}

	m = apply(t, m, key("space"))
	m = apply(t, m, key("enter"))
	if !m.runner.Done() {
		t.Fatalf("expected advance after selecting an option")
	}
}

func TestPreviewRetreat_KeepsAnswer(t *testing.T) {
	m := newPreviewTestModel([]model.Question{
		{ID: "q1", Type: model.QuestionShortText, Title: "Name"},
		{ID: "q2", Type: model.QuestionShortText, Title: "Email"},
	})

	m = apply(t, m, key("enter"))
	m = apply(t, m, key("h"))
	m = apply(t, m, key("i"))
	m = apply(t, m, key("enter"))
	if m.runner.Index() != 1 {
		t.Fatalf("expected second question, got index %d", m.runner.Index())
	}

	m = apply(t, m, key("shift+tab"))
	if m.runner.Index() != 0 {
		t.Fatalf("expected retreat to the first question")
	}
	if m.previewText.Value() != "hi" {
		t.Fatalf("expected the recorded answer reloaded, got %q", m.previewText.Value())
	}
}

func TestPreviewRestart_ResetsToWelcome(t *testing.T) {
	m := newPreviewTestModel([]model.Question{
		{ID: "q1", Type: model.QuestionShortText, Title: "Name"},
	})

	m = apply(t, m, key("enter"))
	m = apply(t, m, key("x"))
	m = apply(t, m, key("enter"))
	if !m.runner.Done() {
		t.Fatalf("expected done")
	}

	m = apply(t, m, key("r"))
	if m.runner.Index() != -1 {
		t.Fatalf("expected restart back to the welcome page, got %d", m.runner.Index())
	}
}
