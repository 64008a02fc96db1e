package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-gia/types"
)

const upstreamName = "newsapi"

// DefaultQuery pulls recent English geopolitics coverage.
var DefaultQuery = Query{
	Keywords: []string{
		"geopolitics", "war", "sanctions", `"trade war"`,
		"ukraine", "china", "russia", "israel", "iran",
	},
	Language: "en",
	SortBy:   "publishedAt",
	PageSize: 10,
}

type Query struct {
	Keywords []string
	Language string
	SortBy   string
	PageSize int
}

// Values encodes the query for the /everything endpoint.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("q", strings.Join(q.Keywords, " OR "))
	if q.Language != "" {
		v.Set("language", q.Language)
	}
	if q.SortBy != "" {
		v.Set("sortBy", q.SortBy)
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	return v
}

type Article struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

type searchResponse struct {
	Status   string    `json:"status"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Articles []Article `json:"articles"`
}

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://newsapi.org/v2"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search calls /everything. Every failure comes back as a *types.UpstreamError.
func (c *Client) Search(ctx context.Context, q Query) ([]Article, error) {
	endpoint := c.baseURL + "/everything?" + q.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, types.Upstream(upstreamName, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, types.Upstream(upstreamName, err)
	}
	defer resp.Body.Close()

	var apiResp searchResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&apiResp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && apiResp.Message != "" {
			return nil, types.Upstream(upstreamName, fmt.Errorf("status %d: %s", resp.StatusCode, apiResp.Message))
		}
		return nil, types.Upstream(upstreamName, fmt.Errorf("status %d", resp.StatusCode))
	}
	if decodeErr != nil {
		return nil, types.Upstream(upstreamName, fmt.Errorf("decode response: %w", decodeErr))
	}
	if apiResp.Status != "ok" {
		return nil, types.Upstream(upstreamName, fmt.Errorf("api status %q: %s", apiResp.Status, apiResp.Message))
	}

	return apiResp.Articles, nil
}
