package events

import (
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"go-gia/news"
	"go-gia/types"
)

const (
	maxTitleLen       = 80
	maxDescriptionLen = 120
	ellipsis          = "..."

	noDescription = "No description available"
	globalRegion  = "Global"
)

// Lowercase substrings that mark a headline as high severity.
var highSeverityKeywords = []string{"war", "attack", "crisis"}

// regionLexicon is matched case-insensitively, in this order.
var regionLexicon = []string{
	"ukraine", "russia", "china", "israel", "iran",
	"middle east", "europe", "asia", "usa",
}

// Truncate shortens s to max runes and appends an ellipsis when it had to cut.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + ellipsis
}

func ClassifySeverity(title string) types.Severity {
	lower := strings.ToLower(title)
	for _, kw := range highSeverityKeywords {
		if strings.Contains(lower, kw) {
			return types.High
		}
	}
	return types.Medium
}

// ExtractRegions returns every lexicon region mentioned in text, normalized to
// hyphenated title case. Defaults to Global.
func ExtractRegions(text string) []string {
	lower := strings.ToLower(text)
	var regions []string
	for _, region := range regionLexicon {
		if strings.Contains(lower, region) {
			regions = append(regions, normalizeRegion(region))
		}
	}
	if len(regions) == 0 {
		return []string{globalRegion}
	}
	return regions
}

func normalizeRegion(region string) string {
	// Casers are stateful, so one per call.
	return strings.ReplaceAll(cases.Title(language.English).String(region), " ", "-")
}

// usable filters out empty and NewsAPI "[Removed]" placeholder articles.
func usable(a news.Article) bool {
	title := strings.TrimSpace(a.Title)
	return title != "" && title != "[Removed]"
}

// FromArticle maps an upstream article to the event at 1-based position pos.
func FromArticle(pos int, a news.Article, now time.Time) types.Event {
	title := strings.TrimSpace(a.Title)
	description := strings.TrimSpace(a.Description)
	if description == "" {
		description = noDescription
	}

	return types.Event{
		ID:          pos,
		Title:       Truncate(title, maxTitleLen),
		Description: Truncate(description, maxDescriptionLen),
		Severity:    ClassifySeverity(title),
		Date:        publishedDate(a.PublishedAt, now),
		Regions:     ExtractRegions(title + " " + description),
		Source:      a.Source.Name,
		URL:         a.URL,
	}
}

// publishedDate keeps the calendar date as published, without shifting zones.
func publishedDate(publishedAt string, now time.Time) string {
	if len(publishedAt) >= len(time.DateOnly) {
		if _, err := time.Parse(time.DateOnly, publishedAt[:len(time.DateOnly)]); err == nil {
			return publishedAt[:len(time.DateOnly)]
		}
	}
	return now.Format(time.DateOnly)
}
