package api

import (
	"encoding/json"
	"fmt"
	"time"

	"craft-cli/internal/model"
)

// Wire types mirror the CrafT backend's JSON (snake_case, nullable text
// columns as pointers). The in-memory model is flattened separately; see
// wire.go for the codec.

type Option struct {
	Label    string `json:"label"`
	Position int    `json:"position"`
}

type Question struct {
	ID          string  `json:"id,omitempty"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Emoji       *string `json:"emoji,omitempty"`
	Position    int     `json:"position"`
	Required    bool    `json:"required"`

	// Options is present (possibly empty) for choice questions and absent
	// for text questions. The distinction is load-bearing on the wire.
	Options *[]Option `json:"options,omitempty"`
}

type FormDetail struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	IsPublic    bool       `json:"is_public"`
	Responses   int        `json:"responses"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Questions   []Question `json:"questions,omitempty"`
}

// FormUpdate is the document pushed by autosave: metadata plus the full
// question list. The backend replaces questions wholesale on every update.
type FormUpdate struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Questions   []Question `json:"questions"`
}

type DashboardStats struct {
	TotalForms     int `json:"total_forms"`
	ActiveForms    int `json:"active_forms"`
	DraftForms     int `json:"draft_forms"`
	TotalResponses int `json:"total_responses"`
}

type Dashboard struct {
	Forms []model.FormSummary
	Stats DashboardStats
}

type SubmitAnswer struct {
	QuestionID string `json:"question_id"`
	Value      any    `json:"value"`
}

type wireForm struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	IsPublic    bool      `json:"is_public"`
	Responses   int       `json:"responses"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (w wireForm) summary() model.FormSummary {
	return model.FormSummary{
		ID:          w.ID,
		Title:       w.Title,
		Description: strFromPtr(w.Description),
		Status:      model.FormStatus(w.Status),
		IsPublic:    w.IsPublic,
		Responses:   w.Responses,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

type wireSubmission struct {
	ID              string    `json:"id"`
	RespondentEmail *string   `json:"respondent_email"`
	CreatedAt       time.Time `json:"created_at"`
	Answers         []struct {
		QuestionID string          `json:"question_id"`
		Value      json.RawMessage `json:"value"`
	} `json:"answers"`
}

func (w wireSubmission) submission() model.Submission {
	s := model.Submission{
		ID:              w.ID,
		RespondentEmail: strFromPtr(w.RespondentEmail),
		CreatedAt:       w.CreatedAt,
	}
	for _, a := range w.Answers {
		s.Answers = append(s.Answers, model.SubmissionAnswer{
			QuestionID: a.QuestionID,
			Value:      a.Value,
		})
	}
	return s
}

// Error is a non-2xx response from the backend, carrying its error envelope.
type Error struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (%s)", e.Message, e.Detail)
	}
	return "api: " + e.Message
}

func strFromPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ptrFromStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
