package lineedit

// PromptViMode is the sub-mode shown by a Vi-mode indicator.
type PromptViMode int

const (
	PromptViInsert PromptViMode = iota
	PromptViNormal
	PromptViVisual
)

// PromptHelixMode is the sub-mode shown by a Helix-mode indicator.
type PromptHelixMode int

const (
	PromptHelixNormal PromptHelixMode = iota
	PromptHelixInsert
	PromptHelixSelect
)

// PromptEditModeKind discriminates the PromptEditMode union.
type PromptEditModeKind int

const (
	PromptModeDefault PromptEditModeKind = iota
	PromptModeEmacs
	PromptModeVi
	PromptModeHelix
	PromptModeCustom
)

// PromptEditMode reports the active editing mode to a Prompt, carrying
// the relevant sub-mode payload for Vi/Helix and a label for Custom.
type PromptEditMode struct {
	Kind   PromptEditModeKind
	Vi     PromptViMode
	Helix  PromptHelixMode
	Custom string
}

// HistorySearchStatus reports whether the current history search found
// a match, for render_prompt_history_search_indicator.
type HistorySearchStatus int

const (
	HistorySearchPassing HistorySearchStatus = iota
	HistorySearchFailing
)

// HistorySearchIndicator is the payload passed to
// render_prompt_history_search_indicator.
type HistorySearchIndicator struct {
	Status HistorySearchStatus
	Term   string
}

// Color is an embedder-chosen terminal color (an ANSI escape body, not
// interpreted by this package beyond being concatenated into output).
type Color string

// Prompt is the contract an embedder implements to control what is
// displayed around the editable buffer.
type Prompt interface {
	RenderPromptLeft() string
	RenderPromptRight() string
	RenderPromptIndicator(mode PromptEditMode) string
	RenderPromptMultilineIndicator() string
	RenderPromptHistorySearchIndicator(ind HistorySearchIndicator) string
	GetPromptColor() Color
}

// DefaultPrompt is a minimal Prompt with no left/right/indicator text
// beyond a plain "> ", usable out of the box.
type DefaultPrompt struct{}

func (DefaultPrompt) RenderPromptLeft() string  { return "> " }
func (DefaultPrompt) RenderPromptRight() string { return "" }
func (DefaultPrompt) RenderPromptIndicator(PromptEditMode) string {
	return ""
}
func (DefaultPrompt) RenderPromptMultilineIndicator() string { return "::: " }
func (DefaultPrompt) RenderPromptHistorySearchIndicator(ind HistorySearchIndicator) string {
	if ind.Status == HistorySearchFailing {
		return "(failed reverse-i-search)`" + ind.Term + "': "
	}
	return "(reverse-i-search)`" + ind.Term + "': "
}
func (DefaultPrompt) GetPromptColor() Color { return "" }
