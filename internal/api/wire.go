package api

import (
	"sort"

	"craft-cli/internal/model"
)

// QuestionsFromWire flattens wire questions into the in-memory model:
// questions ordered by wire position, options collapsed to an ordered label
// list (position re-derived from index from here on).
func QuestionsFromWire(ws []Question) []model.Question {
	sorted := append([]Question{}, ws...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position < sorted[j].Position })

	out := make([]model.Question, 0, len(sorted))
	for _, w := range sorted {
		q := model.Question{
			ID:          w.ID,
			Type:        model.QuestionType(w.Type),
			Title:       w.Title,
			Description: strFromPtr(w.Description),
			Required:    w.Required,
			Emoji:       strFromPtr(w.Emoji),
		}
		if q.Type.HasOptions() {
			q.Options = []string{}
			if w.Options != nil {
				opts := append([]Option{}, *w.Options...)
				sort.SliceStable(opts, func(i, j int) bool { return opts[i].Position < opts[j].Position })
				for _, o := range opts {
					q.Options = append(q.Options, o.Label)
				}
			}
		}
		out = append(out, q)
	}
	return out
}

// QuestionsToWire projects the model to the wire shape. Question position is
// the index in the list at this moment, never an independently tracked field;
// options become {label, position} pairs the same way. Choice questions emit
// an options field even when empty; text questions never emit one.
func QuestionsToWire(qs []model.Question) []Question {
	out := make([]Question, 0, len(qs))
	for i, q := range qs {
		w := Question{
			ID:          q.ID,
			Type:        string(q.Type),
			Title:       q.Title,
			Description: ptrFromStr(q.Description),
			Emoji:       ptrFromStr(q.Emoji),
			Position:    i,
			Required:    q.Required,
		}
		if q.Type.HasOptions() {
			opts := make([]Option, 0, len(q.Options))
			for j, label := range q.Options {
				opts = append(opts, Option{Label: label, Position: j})
			}
			w.Options = &opts
		}
		out = append(out, w)
	}
	return out
}

// NewFormUpdate snapshots a document into the update payload.
func NewFormUpdate(title, description string, questions []model.Question) FormUpdate {
	return FormUpdate{
		Title:       title,
		Description: ptrFromStr(description),
		Questions:   QuestionsToWire(questions),
	}
}
