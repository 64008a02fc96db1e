package types

type Severity string

const (
	Low    Severity = "low"
	Medium Severity = "medium"
	High   Severity = "high"
)

// Event is a single entry of the news feed. IDs are positions within one response.
type Event struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Date        string   `json:"date"` // YYYY-MM-DD
	Regions     []string `json:"regions"`
	Source      string   `json:"source,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// StatusResponse is served on the root route.
type StatusResponse struct {
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
	Timestamp string   `json:"timestamp"`
}
