package models

// SummarizeTextRequest is the body of POST /api/summarize-text.
type SummarizeTextRequest struct {
	Note     string   `json:"note"`
	Language Language `json:"language,omitempty"`
}

// AskRequest is the body of POST /api/ask. Note may be the original clinical
// note or a summary produced earlier.
type AskRequest struct {
	Note     string `json:"note"`
	Question string `json:"question"`
}
