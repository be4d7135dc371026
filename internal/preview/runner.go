package preview

import "craft-cli/internal/model"

// RequiredMessage is the inline validation message shown when advancing past
// an unanswered required question.
const RequiredMessage = "This question is required"

// Answer holds a recorded response. Text carries the value for short/long
// text, single-select and dropdown questions; Choices carries multi-select
// picks. Only one of the two is meaningful for a given question type.
type Answer struct {
	Text    string
	Choices []string
}

// Runner walks a question list as an answer-collection wizard. The index is
// -1 on the welcome screen, len(questions) on the completion screen, and an
// answer slot in between. It is a local simulation: nothing is submitted.
type Runner struct {
	title       string
	description string
	questions   []model.Question

	index      int
	answers    map[string]Answer
	validation string
}

func NewRunner(title, description string, questions []model.Question) *Runner {
	return &Runner{
		title:       title,
		description: description,
		questions:   questions,
		index:       -1,
		answers:     map[string]Answer{},
	}
}

func (r *Runner) Title() string       { return r.title }
func (r *Runner) Description() string { return r.description }
func (r *Runner) Index() int          { return r.index }
func (r *Runner) Len() int            { return len(r.questions) }

// Done reports whether the wizard reached the completion screen.
func (r *Runner) Done() bool { return r.index == len(r.questions) }

// Current returns the question under the cursor, or nil on the welcome and
// completion screens.
func (r *Runner) Current() *model.Question {
	if r.index < 0 || r.index >= len(r.questions) {
		return nil
	}
	return &r.questions[r.index]
}

// ValidationMessage is non-empty while a refused Advance is unresolved.
func (r *Runner) ValidationMessage() string { return r.validation }

// Advance moves forward one step. On a required question with no recorded
// answer (no entry, or an empty choice list for multi-select) it refuses and
// raises the validation message instead.
func (r *Runner) Advance() bool {
	if q := r.Current(); q != nil && q.Required && !r.answered(*q) {
		r.validation = RequiredMessage
		return false
	}
	r.validation = ""
	if r.index < len(r.questions) {
		r.index++
	}
	return true
}

// Retreat moves back one step (floored at the welcome screen), clearing any
// pending validation message. Recorded answers are kept.
func (r *Runner) Retreat() {
	r.validation = ""
	if r.index > -1 {
		r.index--
	}
}

// RecordAnswer stores the answer for a question, overwriting any prior value,
// and clears the validation message (editing is how the user resolves it).
func (r *Runner) RecordAnswer(questionID string, a Answer) {
	r.answers[questionID] = a
	r.validation = ""
}

func (r *Runner) AnswerFor(questionID string) (Answer, bool) {
	a, ok := r.answers[questionID]
	return a, ok
}

// Restart wipes all answers and returns to the welcome screen
// ("submit another response").
func (r *Runner) Restart() {
	r.answers = map[string]Answer{}
	r.index = -1
	r.validation = ""
}

func (r *Runner) answered(q model.Question) bool {
	a, ok := r.answers[q.ID]
	if !ok {
		return false
	}
	if q.Type == model.QuestionMultiSelect {
		return len(a.Choices) > 0
	}
	return true
}
