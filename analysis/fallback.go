package analysis

import "go-gia/types"

// fallbackOverallSeverity is served as-is and not recomputed from the impacts.
const fallbackOverallSeverity = 7.2

// Fallback is the canned analysis served whenever the AI path is unavailable.
func Fallback(event, location string) types.AnalysisResult {
	return types.AnalysisResult{
		Event:           event,
		Location:        location,
		OverallSeverity: fallbackOverallSeverity,
		Impacts: map[types.Category]types.ImpactCategory{
			types.Energy: {
				Severity:          8,
				Timeframe:         "immediate",
				Example:           "Petrol ₹105/litre",
				ImpactDescription: "Oil supply disruption spikes fuel prices",
			},
			types.Food: {
				Severity:          6,
				Timeframe:         "2 weeks",
				Example:           "Wheat +25%",
				ImpactDescription: "Grain export blockade raises grocery costs",
			},
			types.Travel: {
				Severity:          7,
				Timeframe:         "immediate",
				Example:           "Flights +18%",
				ImpactDescription: "Airlines pass fuel surcharges to passengers",
			},
			types.Jobs: {
				Severity:          4,
				Timeframe:         "1 month",
				Example:           "500K jobs at risk",
				ImpactDescription: "Export industries face uncertainty",
			},
			types.Currency: {
				Severity:          5,
				Timeframe:         "2 weeks",
				Example:           "₹84/USD",
				ImpactDescription: "Oil imports pressure rupee value",
			},
		},
		Source: types.SourceFallback,
	}
}
