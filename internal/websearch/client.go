package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/renthing/internal/retry"
)

// Result is a single external search hit
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

const maxResults = 5

// Client queries the DuckDuckGo Instant Answer API. The provider is
// treated as unreliable: every call is bounded by a context deadline
// and errors are returned to the caller, which is expected to fall
// back to synthesized results.
type Client struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	retryCfg   retry.Config
	cache      *Cache
}

// Option configures a Client
type Option func(*Client)

// WithCache attaches a result cache. A nil cache is ignored.
func WithCache(c *Cache) Option {
	return func(cl *Client) {
		if c != nil {
			cl.cache = c
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client (tests)
func WithHTTPClient(h *http.Client) Option {
	return func(cl *Client) { cl.httpClient = h }
}

func NewClient(endpoint string, timeout time.Duration, ratePerSecond float64, maxRetries int, opts ...Option) *Client {
	if ratePerSecond <= 0 {
		ratePerSecond = 2.0
	}
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), 1),
		retryCfg:   retry.WebSearchConfig(maxRetries),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search performs an external web search for the given query.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty web search query")
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, query); ok {
			return cached, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("web search rate limit wait: %w", err)
	}

	var results []Result
	res := retry.WithBackoff(ctx, c.retryCfg, "web_search", func() error {
		var err error
		results, err = c.doSearch(ctx, query)
		return err
	})
	if !res.Success {
		return nil, res.LastError
	}

	if c.cache != nil && len(results) > 0 {
		c.cache.Set(ctx, query, results)
	}
	return results, nil
}

// instantAnswer mirrors the subset of the DuckDuckGo response we consume
type instantAnswer struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (c *Client) doSearch(ctx context.Context, query string) ([]Result, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse web search endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("web search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("web search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read web search response: %w", err)
	}

	var ia instantAnswer
	if err := json.Unmarshal(body, &ia); err != nil {
		return nil, fmt.Errorf("decode web search response: %w", err)
	}

	results := make([]Result, 0, maxResults)
	if ia.AbstractText != "" {
		title := ia.Heading
		if title == "" {
			title = query
		}
		results = append(results, Result{Title: title, Snippet: ia.AbstractText, URL: ia.AbstractURL})
	}
	for _, rt := range ia.RelatedTopics {
		if len(results) >= maxResults {
			break
		}
		if rt.Text == "" || rt.FirstURL == "" {
			continue
		}
		results = append(results, Result{Title: topicTitle(rt.Text), Snippet: rt.Text, URL: rt.FirstURL})
	}

	log.Debug().Str("query", query).Int("results", len(results)).Msg("Web search completed")
	return results, nil
}

// topicTitle trims a related-topic blurb down to a title-sized string
func topicTitle(text string) string {
	if idx := strings.Index(text, " - "); idx > 0 {
		return text[:idx]
	}
	if len(text) > 60 {
		return text[:60]
	}
	return text
}
