// Package reddit provides a read-only client for the Reddit data API
// using application-only OAuth2.
package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultBaseURL  = "https://oauth.reddit.com"
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"
)

var ErrNotFound = errors.New("not found")

// Config carries the credentials and endpoints for a Client. BaseURL,
// TokenURL, and HTTPClient default when empty; the three credential
// fields have no defaults.
type Config struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	BaseURL      string
	TokenURL     string
	HTTPClient   *http.Client
}

// Client talks to the Reddit data API in read-only mode. The underlying
// http.Client carries an OAuth2 token source that fetches and refreshes
// the app-only token on demand.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
}

type userAgentTransport struct {
	base  http.RoundTripper
	agent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.agent)
	}
	return t.base.RoundTrip(req)
}

// New constructs a Client. Reddit rejects requests without a descriptive
// User-Agent, so the agent is attached to token requests and API calls alike.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	transport := httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	uaClient := &http.Client{
		Timeout:   httpClient.Timeout,
		Transport: &userAgentTransport{base: transport, agent: cfg.UserAgent},
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, uaClient)

	return &Client{
		http:      cc.Client(ctx),
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: cfg.UserAgent,
	}
}

// SearchPosts searches within a single subreddit, returning at most one
// page of results.
func (c *Client) SearchPosts(ctx context.Context, p SearchParams) ([]Post, error) {
	q := url.Values{}
	q.Set("q", p.Query)
	q.Set("restrict_sr", "1")
	q.Set("raw_json", "1")
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	if p.TimeFilter != "" {
		q.Set("t", p.TimeFilter)
	}

	var l listing
	path := fmt.Sprintf("/r/%s/search", url.PathEscape(p.Subreddit))
	if err := c.getJSON(ctx, path, q, &l); err != nil {
		return nil, err
	}
	return flatten(l), nil
}

// GetPostDetails fetches a single post by its short ID (without the t3_ prefix).
func (c *Client) GetPostDetails(ctx context.Context, postID string) (*Post, error) {
	q := url.Values{}
	q.Set("id", "t3_"+postID)
	q.Set("raw_json", "1")

	var l listing
	if err := c.getJSON(ctx, "/api/info", q, &l); err != nil {
		return nil, err
	}
	if len(l.Data.Children) == 0 {
		return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
	}
	post := l.Data.Children[0].Data
	return &post, nil
}

// GetSubredditInfo fetches the about record for a subreddit.
func (c *Client) GetSubredditInfo(ctx context.Context, name string) (*Subreddit, error) {
	q := url.Values{}
	q.Set("raw_json", "1")

	var t thing
	path := fmt.Sprintf("/r/%s/about", url.PathEscape(name))
	if err := c.getJSON(ctx, path, q, &t); err != nil {
		return nil, err
	}
	if t.Data.DisplayName == "" {
		return nil, fmt.Errorf("subreddit %s: %w", name, ErrNotFound)
	}
	return &t.Data, nil
}

// GetHotPosts returns one page of a subreddit's hot listing.
func (c *Client) GetHotPosts(ctx context.Context, subreddit string, limit int) ([]Post, error) {
	q := url.Values{}
	q.Set("raw_json", "1")
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var l listing
	path := fmt.Sprintf("/r/%s/hot", url.PathEscape(subreddit))
	if err := c.getJSON(ctx, path, q, &l); err != nil {
		return nil, err
	}
	return flatten(l), nil
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("reddit api status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func flatten(l listing) []Post {
	posts := make([]Post, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		posts = append(posts, child.Data)
	}
	return posts
}
