package services

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/healthsnap/summarizer/models"
)

var followUpPatterns = []*regexp.Regexp{
	// Common follow-up phrasing
	regexp.MustCompile(`(?i)\bfollow[-\s]?up\s?(in|after)?\s?\d+\s?(days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)\bcome back\s?(in|after)?\s?\d+\s?(days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)\breturn\s?(in|after)?\s?\d+\s?(days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)\brevisit\s?(in|after)?\s?\d+\s?(days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)\bcheck[-\s]?up\s?(in|after)?\s?\d+\s?(days?|weeks?|months?)`),

	// Loosely phrased "see/check" statements
	regexp.MustCompile(`(?i)\b(?:we|you).{0,20}?(?:check|follow[-\s]?up|see|visit).{0,20}?(?:in|after)\s\d+\s(?:days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)\b(come\sback|return|revisit|check[\s-]?up|follow[\s-]?up|see\s(us|me|a\sdoctor))\s(in|after)?\s?\d+\s?(days?|weeks?|months?)`),
	regexp.MustCompile(`(?i)\b(in|after)?\s?\d+\s?(days?|weeks?|months?)\s(to|for)\s(check[\s-]?up|follow[\s-]?up|appointment|monitoring|progress|visit)`),

	// Hindi. RE2's \b is ASCII-only, so these patterns are unanchored.
	regexp.MustCompile(`\d+\s?(दिन|दिवस|हफ्ते|सप्ताह|महीने)\s?(के बाद)?\s?(जाँच|फॉलो[-\s]?अप|मुलाकात)`),
	regexp.MustCompile(`(कृपया|आपको|आप)\s\d+\s?(दिन|हफ्ते|महीने)\s?(बाद)?\s?(जांच|मुलाकात|आना|फॉलो[-\s]?अप)`),
	regexp.MustCompile(`(\d+\s?(दिन|हफ्ते|महीने)).{0,15}(फिर\s?से\s?आएं|जांच)`),
	regexp.MustCompile(`(रोगी|आपको|कृपया).{0,20}(\d+)\s?(दिन|दिवस|हफ्ते|सप्ताह|महीने)\s?(बाद)?\s?(फिर\s?से\s?)?(देखने|मुलाकात|जांच|आने|आना)[^।\n]{0,20}`),
	regexp.MustCompile(`(रोगी|आपको|कृपया).{0,25}?(\d+)\s?(दिन|हफ्ते|सप्ताह|महीने)\s?(के\sलिए)?\s?(फॉलो[-\s]?अप|जांच|मुलाकात).{0,30}?(वापस\s?आने|मुलाकात|जांच|देखने)\s?की\s?(सलाह|अनुरोध)`),
}

var (
	englishIntervalPattern = regexp.MustCompile(`(?i)\b(?:in|after)\s+(\d+)\s*(day|week|month)s?\b`)
	hindiIntervalPattern   = regexp.MustCompile(`(\d+)\s?(दिन|दिवस|हफ्ते|सप्ताह|महीने)`)
)

const (
	calendarBaseURL  = "https://www.google.com/calendar/render"
	reminderDuration = 30 * time.Minute
)

// ExtractFollowUps returns the follow-up reminders found in a summary, in
// pattern order, without duplicates.
func ExtractFollowUps(summary string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range followUpPatterns {
		for _, m := range p.FindAllString(summary, -1) {
			m = strings.TrimSpace(m)
			key := strings.ToLower(m)
			if m == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	return out
}

// BuildFollowUps pairs every extracted reminder with its calendar link.
func BuildFollowUps(summary string, now time.Time) []models.FollowUp {
	texts := ExtractFollowUps(summary)
	followUps := make([]models.FollowUp, 0, len(texts))
	for _, text := range texts {
		followUps = append(followUps, models.FollowUp{
			Text:         text,
			CalendarLink: CalendarLink(text, now),
		})
	}
	return followUps
}

// CalendarLink builds a Google Calendar template link for a 30 minute
// reminder N days, weeks or months after now. It returns "" when the text
// carries no interval.
func CalendarLink(text string, now time.Time) string {
	start, ok := reminderTime(text, now)
	if !ok {
		return ""
	}
	end := start.Add(reminderDuration)

	query := strings.Join([]string{
		"action=TEMPLATE",
		"text=" + encodeURIComponent("Follow-up Appointment"),
		"dates=" + calendarStamp(start) + "/" + calendarStamp(end),
		"details=" + encodeURIComponent("HealthSnap follow-up reminder"),
		"location=" + encodeURIComponent("Clinic or Telehealth"),
	}, "&")
	return calendarBaseURL + "?" + query
}

func reminderTime(text string, now time.Time) (time.Time, bool) {
	if m := englishIntervalPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		return addInterval(now, n, strings.ToLower(m[2])), true
	}
	if m := hindiIntervalPattern.FindStringSubmatch(text); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		unit := "day"
		switch m[2] {
		case "हफ्ते", "सप्ताह":
			unit = "week"
		case "महीने":
			unit = "month"
		}
		return addInterval(now, n, unit), true
	}
	return time.Time{}, false
}

func addInterval(now time.Time, n int, unit string) time.Time {
	switch unit {
	case "week":
		return now.AddDate(0, 0, 7*n)
	case "month":
		return now.AddDate(0, n, 0)
	default:
		return now.AddDate(0, 0, n)
	}
}

// calendarStamp formats t as the basic ISO 8601 UTC form Google Calendar
// expects, truncated to the minute.
func calendarStamp(t time.Time) string {
	return t.UTC().Format("20060102T1504") + "00Z"
}

func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
