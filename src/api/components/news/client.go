package news

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://gnews.io/api/v4/search"

// Article is a normalized news search result used as grounding context
// for claim verification. Fields missing upstream stay empty strings.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

// Client queries the GNews search API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Search fetches up to max articles related to query, preserving provider
// order. Every failure mode (missing key, transport error, non-200 status,
// undecodable body) degrades to an empty result set so a broken news
// provider never blocks verification. Missing key makes no network call.
func (c *Client) Search(ctx context.Context, query string, max int) []Article {
	if c.apiKey == "" {
		return nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", "en")
	params.Set("country", "in")
	params.Set("max", strconv.Itoa(max))
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		log.Printf("news search request failed: %v", err)
		return nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("news search failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("news search returned status %d", resp.StatusCode)
		return nil
	}

	var raw gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		log.Printf("news search decode failed: %v", err)
		return nil
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		articles = append(articles, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}

	return articles
}

type gnewsResponse struct {
	Articles []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	PublishedAt string      `json:"publishedAt"`
	Source      gnewsSource `json:"source"`
}

type gnewsSource struct {
	Name string `json:"name"`
}
