package types

import "math"

type Category string

const (
	Energy   Category = "energy"
	Food     Category = "food"
	Travel   Category = "travel"
	Jobs     Category = "jobs"
	Currency Category = "currency"
)

// Categories is the fixed key set of every AnalysisResult, in display order.
var Categories = []Category{Energy, Food, Travel, Jobs, Currency}

const (
	SourceGemini   = "Google Gemini AI"
	SourceFallback = "Fallback Analysis"

	DefaultLocation = "India"
)

type ImpactCategory struct {
	Severity          int    `json:"severity"` // 1-10
	Timeframe         string `json:"timeframe"`
	Example           string `json:"example"`
	ImpactDescription string `json:"impact_description"`
}

type AnalysisResult struct {
	Event           string                      `json:"event"`
	Location        string                      `json:"location"`
	OverallSeverity float64                     `json:"overall_severity"`
	Impacts         map[Category]ImpactCategory `json:"impacts"`
	Source          string                      `json:"source,omitempty"`
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Event    string `json:"event"`
	Location string `json:"location"`
}

// OverallSeverity averages the category severities and rounds to one decimal.
func OverallSeverity(impacts map[Category]ImpactCategory) float64 {
	if len(impacts) == 0 {
		return 0
	}
	total := 0
	for _, impact := range impacts {
		total += impact.Severity
	}
	mean := float64(total) / float64(len(impacts))
	return math.Round(mean*10) / 10
}
