package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/emergencyai/emergency-assistant/internal/emergency"
)

const defaultNewsAPIBaseURL = "https://newsapi.org/v2"

// NewsAPIProvider implements emergency.NewsProvider for NewsAPI.org,
// querying recent articles on the fixed "emergency" topic.
type NewsAPIProvider struct {
	apiKey   string
	baseURL  string
	topic    string
	pageSize int
	up       upstream
}

// NewNewsAPIProvider creates a NewsAPI provider sharing the given HTTP client.
func NewNewsAPIProvider(client *http.Client, apiKey string) *NewsAPIProvider {
	return &NewsAPIProvider{
		apiKey:   apiKey,
		baseURL:  defaultNewsAPIBaseURL,
		topic:    "emergency",
		pageSize: 5,
		up:       newUpstream("newsapi", client),
	}
}

// Headlines implements emergency.NewsProvider. Article order follows the
// provider's publishedAt sorting; no reordering happens here.
func (p *NewsAPIProvider) Headlines(ctx context.Context) ([]emergency.Article, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("newsapi key missing")
	}

	values := url.Values{}
	values.Set("q", p.topic)
	values.Set("sortBy", "publishedAt")
	values.Set("apiKey", p.apiKey)
	values.Set("pageSize", strconv.Itoa(p.pageSize))

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			URL         string `json:"url"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
			PublishedAt string `json:"publishedAt"`
		} `json:"articles"`
	}

	u := fmt.Sprintf("%s/everything?%s", p.baseURL, values.Encode())
	if err := p.up.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}

	articles := make([]emergency.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, emergency.Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
