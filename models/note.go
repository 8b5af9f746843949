package models

import "strings"

// Language is the target language of a summary, given by name ("Hindi",
// "spanish", "German"). The generation provider does the translating; the
// value only selects a prompt template.
type Language string

// Languages with a natively authored prompt template.
const (
	English Language = "English"
	Hindi   Language = "Hindi"
	Spanish Language = "Spanish"
	French  Language = "French"
)

// Normalize trims the name and falls back to English when it is empty.
func (l Language) Normalize() Language {
	trimmed := strings.TrimSpace(string(l))
	if trimmed == "" {
		return English
	}
	return Language(trimmed)
}

// Is reports a case-insensitive match against another language name.
func (l Language) Is(other Language) bool {
	return strings.EqualFold(strings.TrimSpace(string(l)), string(other))
}

// FollowUp is a follow-up instruction found in a summary, with a calendar
// link that schedules a reminder for it.
type FollowUp struct {
	Text         string `json:"text"`
	CalendarLink string `json:"calendar_link,omitempty"`
}
