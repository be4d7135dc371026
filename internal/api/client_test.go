package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"craft-cli/internal/model"
)

func TestClient_GetForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/user/forms/form-1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("missing bearer token; got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "form-1",
			"title": "Customer survey",
			"description": "How did we do?",
			"status": "draft",
			"is_public": false,
			"questions": [
				{"id": "q-b", "type": "single-select", "title": "Rating", "position": 1, "required": true,
				 "options": [{"label": "Good", "position": 0}, {"label": "Bad", "position": 1}]},
				{"id": "q-a", "type": "short-text", "title": "Name", "position": 0, "required": false}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	f, err := c.GetForm(context.Background(), "form-1")
	if err != nil {
		t.Fatalf("GetForm: %v", err)
	}
	if f.Title != "Customer survey" {
		t.Fatalf("unexpected title: %q", f.Title)
	}

	qs := QuestionsFromWire(f.Questions)
	if len(qs) != 2 || qs[0].ID != "q-a" || qs[1].ID != "q-b" {
		t.Fatalf("questions not sorted by position: %v", qs)
	}
	if len(qs[1].Options) != 2 || qs[1].Options[0] != "Good" {
		t.Fatalf("unexpected options: %v", qs[1].Options)
	}
}

func TestClient_UpdateForm_SendsWireShape(t *testing.T) {
	var got FormUpdate
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/user/forms/form-1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	upd := NewFormUpdate("Survey", "", []model.Question{
		{ID: "q-a", Type: model.QuestionMultiSelect, Title: "Pick", Options: []string{"A", "B"}},
		{ID: "q-b", Type: model.QuestionShortText, Title: "Why"},
	})

	c := NewClient(srv.URL, "tok")
	if err := c.UpdateForm(context.Background(), "form-1", upd); err != nil {
		t.Fatalf("UpdateForm: %v", err)
	}

	if len(got.Questions) != 2 {
		t.Fatalf("expected 2 questions sent; got %d", len(got.Questions))
	}
	if got.Questions[0].Position != 0 || got.Questions[1].Position != 1 {
		t.Fatalf("positions not assigned from index: %+v", got.Questions)
	}
	if got.Questions[1].Options != nil {
		t.Fatalf("text question must not carry an options field")
	}
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "Form not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.GetForm(context.Background(), "form-x")
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error; got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "Form not found" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestClient_Dashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/dashboard" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"forms": [{"id": "form-1", "title": "Survey", "status": "published", "is_public": true, "responses": 3}],
			"stats": {"total_forms": 1, "active_forms": 1, "draft_forms": 0, "total_responses": 3}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	d, err := c.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if len(d.Forms) != 1 || d.Forms[0].Status != model.FormStatusPublished || d.Forms[0].Responses != 3 {
		t.Fatalf("unexpected forms: %+v", d.Forms)
	}
	if d.Stats.TotalResponses != 3 {
		t.Fatalf("unexpected stats: %+v", d.Stats)
	}
}
