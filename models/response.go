package models

type SummaryResponse struct {
	Summary   string     `json:"summary"`
	FollowUps []FollowUp `json:"follow_ups"`
}

type AnswerResponse struct {
	Answer string `json:"answer"`
}

type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	Provider string `json:"provider"`
}
