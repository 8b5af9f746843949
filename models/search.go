package models

// SearchResponse is the subset of a SerpAPI Google result page the fallback
// search reads. Pointer fields distinguish "absent" from "empty".
type SearchResponse struct {
	AnswerBox      *AnswerBox      `json:"answer_box,omitempty"`
	OrganicResults []OrganicResult `json:"organic_results,omitempty"`
	Error          string          `json:"error,omitempty"`
}

type AnswerBox struct {
	Snippet *string `json:"snippet,omitempty"`
}

type OrganicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchResult is the displayable outcome of a fallback search.
type SearchResult struct {
	Snippet string
	Links   []Link
}

type Link struct {
	Title string
	URL   string
}
