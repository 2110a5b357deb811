package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// reviewsPayload is the review feed envelope. Fetched raw rather than
// through the catalog library, whose review types predate the
// author_details and created_at fields this client needs.
type reviewsPayload struct {
	Results []struct {
		Author        string `json:"author"`
		AuthorDetails struct {
			Rating *float64 `json:"rating"`
		} `json:"author_details"`
		Content   string `json:"content"`
		CreatedAt string `json:"created_at"`
		URL       string `json:"url"`
	} `json:"results"`
	TotalResults int `json:"total_results"`
}

func (c *Client) fetchReviewFeed(ctx context.Context, id int) (*reviewsPayload, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	endpoint := fmt.Sprintf("%s/movie/%d/reviews?%s", c.baseURL, id, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tmdb: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload reviewsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// truncate bounds text to max runes, appending an ellipsis marker when
// anything was cut.
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// reviewRating renders the optional author rating, falling back to "N/A"
// when the reviewer left none.
func reviewRating(rating *float64) string {
	if rating == nil || *rating == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(*rating, 'f', -1, 64)
}

// formatReviewDate renders an RFC 3339 publish date as "Jan 2, 2006".
func formatReviewDate(value string) string {
	if value == "" {
		return "Unknown date"
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "Unknown date"
	}
	return t.Format("Jan 2, 2006")
}
