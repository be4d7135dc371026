package tui

import (
	"craft-cli/internal/api"
	"craft-cli/internal/builder"
	"craft-cli/internal/model"
)

type view int

const (
	viewDashboard view = iota
	viewBuilder
	viewPreview
)

// Which part of the builder screen receives keystrokes.
type builderFocus int

const (
	focusList builderFocus = iota
	focusSettings
)

// Modal overlays on top of the current view.
type modalKind int

const (
	modalNone modalKind = iota
	modalNewForm
	modalAddQuestion
	modalConfirmDelete
)

type dashboardLoadedMsg struct {
	dashboard *api.Dashboard
	err       error
}

type formOpenedMsg struct {
	doc *builder.Document
	err error
}

type formPreviewMsg struct {
	title       string
	description string
	questions   []model.Question
	err         error
}

type formCreatedMsg struct {
	form *model.FormSummary
	err  error
}

type formMutatedMsg struct {
	// list/publish/duplicate/delete round-trips end with a dashboard refresh.
	err error
}

type draftWrittenMsg struct {
	err error
}

// saveTickMsg drives the autosave footer; the Saver runs on its own timer and
// the tick only re-reads its status.
type saveTickMsg struct{}
