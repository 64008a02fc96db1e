package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go-gia/types"
)

const promptTemplate = `Analyze how the following geopolitical event affects everyday life for a person living in %s.

Event: %s

Return ONLY a JSON object with exactly these five keys: "energy", "food", "travel", "jobs", "currency".
Each key maps to an object with:
- "severity": integer from 1 (negligible) to 10 (severe)
- "timeframe": one of "immediate", "2 weeks", "1 month"
- "example": a short concrete example with local prices or figures
- "impact": one sentence describing the impact

Example shape:
{"energy": {"severity": 8, "timeframe": "immediate", "example": "Petrol +5%%", "impact": "Fuel prices rise"}, "food": {...}, "travel": {...}, "jobs": {...}, "currency": {...}}

Do not wrap the JSON in Markdown and do not add any other text.`

var errNoJSONObject = errors.New("no JSON object in reply")

func BuildPrompt(event, location string) string {
	return fmt.Sprintf(promptTemplate, location, event)
}

// CleanReply strips Markdown code fences and any prose around the outermost
// JSON object.
func CleanReply(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```JSON")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}
	return clean
}

type rawImpact struct {
	Severity  *float64 `json:"severity"`
	Timeframe string   `json:"timeframe"`
	Example   string   `json:"example"`
	Impact    string   `json:"impact"`
	// Some models echo the response field name instead of the prompt's.
	ImpactDescription string `json:"impact_description"`
}

// ParseImpacts decodes a cleaned model reply and checks it against the five
// category schema. Unknown extra keys are dropped; anything missing or out of
// range is an error.
func ParseImpacts(reply string) (map[types.Category]types.ImpactCategory, error) {
	if !strings.HasPrefix(reply, "{") {
		return nil, errNoJSONObject
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(reply), &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	impacts := make(map[types.Category]types.ImpactCategory, len(types.Categories))
	for _, category := range types.Categories {
		data, ok := raw[string(category)]
		if !ok {
			return nil, fmt.Errorf("missing category %q", category)
		}
		var r rawImpact
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("category %q: %w", category, err)
		}
		impact, err := r.validate()
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", category, err)
		}
		impacts[category] = impact
	}
	return impacts, nil
}

func (r rawImpact) validate() (types.ImpactCategory, error) {
	if r.Severity == nil {
		return types.ImpactCategory{}, errors.New("missing severity")
	}
	severity := *r.Severity
	if severity != math.Trunc(severity) || severity < 1 || severity > 10 {
		return types.ImpactCategory{}, fmt.Errorf("severity %v is not an integer in 1-10", severity)
	}

	description := strings.TrimSpace(r.Impact)
	if description == "" {
		description = strings.TrimSpace(r.ImpactDescription)
	}
	timeframe := strings.TrimSpace(r.Timeframe)
	example := strings.TrimSpace(r.Example)

	switch {
	case timeframe == "":
		return types.ImpactCategory{}, errors.New("missing timeframe")
	case example == "":
		return types.ImpactCategory{}, errors.New("missing example")
	case description == "":
		return types.ImpactCategory{}, errors.New("missing impact")
	}

	return types.ImpactCategory{
		Severity:          int(severity),
		Timeframe:         timeframe,
		Example:           example,
		ImpactDescription: description,
	}, nil
}
