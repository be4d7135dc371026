package model

import (
	"encoding/json"
	"time"
)

type QuestionType string

const (
	QuestionShortText    QuestionType = "short-text"
	QuestionLongText     QuestionType = "long-text"
	QuestionSingleSelect QuestionType = "single-select"
	QuestionMultiSelect  QuestionType = "multi-select"
	QuestionDropdown     QuestionType = "dropdown"
)

// QuestionTypes lists the supported variants in the order builders offer them.
var QuestionTypes = []QuestionType{
	QuestionShortText,
	QuestionLongText,
	QuestionSingleSelect,
	QuestionMultiSelect,
	QuestionDropdown,
}

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionShortText, QuestionLongText, QuestionSingleSelect, QuestionMultiSelect, QuestionDropdown:
		return true
	}
	return false
}

// HasOptions reports whether the variant carries an options list.
// The wire format relies on this: text variants have no options field at all,
// choice variants always have one (possibly empty).
func (t QuestionType) HasOptions() bool {
	switch t {
	case QuestionSingleSelect, QuestionMultiSelect, QuestionDropdown:
		return true
	}
	return false
}

func (t QuestionType) Label() string {
	switch t {
	case QuestionShortText:
		return "Short text"
	case QuestionLongText:
		return "Long text"
	case QuestionSingleSelect:
		return "Single select"
	case QuestionMultiSelect:
		return "Multi select"
	case QuestionDropdown:
		return "Dropdown"
	}
	return string(t)
}

type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Required    bool         `json:"required"`
	Emoji       string       `json:"emoji,omitempty"`

	// Options is nil for text variants and non-nil for choice variants.
	// A choice question whose options were all deleted keeps an empty
	// (non-nil) slice; it renders with no choices but stays a choice question.
	Options []string `json:"options,omitempty"`
}

type FormStatus string

const (
	FormStatusDraft     FormStatus = "draft"
	FormStatusPublished FormStatus = "published"
	FormStatusClosed    FormStatus = "closed"
)

// FormSummary is the dashboard projection of a form (no questions).
type FormSummary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      FormStatus `json:"status"`
	IsPublic    bool       `json:"isPublic"`
	Responses   int        `json:"responses"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Submission struct {
	ID              string             `json:"id"`
	RespondentEmail string             `json:"respondentEmail,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	Answers         []SubmissionAnswer `json:"answers"`
}

// SubmissionAnswer keeps the raw value: the backend stores answers as JSON
// (a string for text/single-choice questions, an array for multi-select).
type SubmissionAnswer struct {
	QuestionID string          `json:"questionId"`
	Value      json.RawMessage `json:"value"`
}
