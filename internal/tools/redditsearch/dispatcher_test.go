package redditsearch

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/redditmcp/reddit-mcp/internal/reddit"
)

type fakeClient struct {
	searchParams *reddit.SearchParams
	searchPosts  []reddit.Post
	searchErr    error

	detailsID   string
	detailsPost *reddit.Post
	detailsErr  error

	infoName string
	info     *reddit.Subreddit
	infoErr  error

	hotSubreddit string
	hotLimit     int
	hotPosts     []reddit.Post
	hotErr       error

	calls int
}

func (f *fakeClient) SearchPosts(_ context.Context, p reddit.SearchParams) ([]reddit.Post, error) {
	f.calls++
	f.searchParams = &p
	return f.searchPosts, f.searchErr
}

func (f *fakeClient) GetPostDetails(_ context.Context, postID string) (*reddit.Post, error) {
	f.calls++
	f.detailsID = postID
	return f.detailsPost, f.detailsErr
}

func (f *fakeClient) GetSubredditInfo(_ context.Context, name string) (*reddit.Subreddit, error) {
	f.calls++
	f.infoName = name
	return f.info, f.infoErr
}

func (f *fakeClient) GetHotPosts(_ context.Context, subreddit string, limit int) ([]reddit.Post, error) {
	f.calls++
	f.hotSubreddit = subreddit
	f.hotLimit = limit
	return f.hotPosts, f.hotErr
}

func resultText(t *testing.T, d *Dispatcher, name string, args string) string {
	t.Helper()
	var raw json.RawMessage
	if args != "" {
		raw = json.RawMessage(args)
	}
	result := d.Call(context.Background(), name, raw)
	if result == nil {
		t.Fatal("expected a result, got nil")
	}
	if len(result.Content) != 1 {
		t.Fatalf("expected exactly one content block, got %d", len(result.Content))
	}
	if result.Content[0].Type != "text" {
		t.Fatalf("expected text content, got %q", result.Content[0].Type)
	}
	return result.Content[0].Text
}

func TestCatalogHasFourTools(t *testing.T) {
	d := NewDispatcher(&fakeClient{})
	catalog := d.Catalog()

	want := []string{
		"search_reddit_posts",
		"get_reddit_post_details",
		"get_subreddit_info",
		"get_hot_reddit_posts",
	}

	if len(catalog) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(catalog))
	}
	for i, name := range want {
		if catalog[i].Name != name {
			t.Errorf("tool %d: expected %q, got %q", i, name, catalog[i].Name)
		}
	}
}

func TestCatalogRequiredParameters(t *testing.T) {
	d := NewDispatcher(&fakeClient{})

	required := map[string][]string{
		"search_reddit_posts":     {"subreddit", "query"},
		"get_reddit_post_details": {"post_id"},
		"get_subreddit_info":      {"subreddit"},
		"get_hot_reddit_posts":    {"subreddit"},
	}

	for _, descriptor := range d.Catalog() {
		want, ok := required[descriptor.Name]
		if !ok {
			t.Errorf("unexpected tool %q in catalog", descriptor.Name)
			continue
		}

		got, ok := descriptor.InputSchema["required"].([]interface{})
		if !ok {
			t.Errorf("%s: schema has no required array", descriptor.Name)
			continue
		}
		if len(got) != len(want) {
			t.Errorf("%s: expected required %v, got %v", descriptor.Name, want, got)
			continue
		}
		for i, name := range want {
			if got[i] != name {
				t.Errorf("%s: required[%d] = %v, want %q", descriptor.Name, i, got[i], name)
			}
		}
	}
}

func TestCatalogOrderIsStable(t *testing.T) {
	d := NewDispatcher(&fakeClient{})

	first := d.Catalog()
	for i := 0; i < 10; i++ {
		again := d.Catalog()
		for j := range first {
			if again[j].Name != first[j].Name {
				t.Fatalf("catalog order changed between calls at index %d", j)
			}
		}
	}
}

func TestUnknownTool(t *testing.T) {
	d := NewDispatcher(&fakeClient{})

	for _, name := range []string{"delete_everything", "", "Search_Reddit_Posts", "get_hot_reddit_posts "} {
		text := resultText(t, d, name, "")
		if text != "Unknown tool: "+name {
			t.Errorf("name %q: got %q", name, text)
		}
	}
}

func TestNilClientNeverInvoked(t *testing.T) {
	d := NewDispatcher(nil)

	for _, name := range []string{"search_reddit_posts", "get_hot_reddit_posts", "nope"} {
		text := resultText(t, d, name, `{"subreddit":"golang"}`)
		if !strings.Contains(text, "Reddit client not initialized") {
			t.Errorf("name %q: expected not-initialized message, got %q", name, text)
		}
		if !strings.Contains(text, "REDDIT_CLIENT_ID") ||
			!strings.Contains(text, "REDDIT_CLIENT_SECRET") ||
			!strings.Contains(text, "REDDIT_USER_AGENT") {
			t.Errorf("name %q: message should name the env vars, got %q", name, text)
		}
	}

	if d.Catalog() == nil || len(d.Catalog()) != 4 {
		t.Error("catalog should still advertise four tools without a client")
	}
}

func TestHotPostsDefaultLimit(t *testing.T) {
	fake := &fakeClient{}
	d := NewDispatcher(fake)

	resultText(t, d, "get_hot_reddit_posts", `{"subreddit":"python"}`)

	if fake.hotSubreddit != "python" {
		t.Errorf("expected subreddit python, got %q", fake.hotSubreddit)
	}
	if fake.hotLimit != 10 {
		t.Errorf("expected default limit 10, got %d", fake.hotLimit)
	}
}

func TestSearchDefaults(t *testing.T) {
	fake := &fakeClient{}
	d := NewDispatcher(fake)

	resultText(t, d, "search_reddit_posts",
		`{"subreddit":"test","query":"foo","sort":"new","time_filter":"week"}`)

	p := fake.searchParams
	if p == nil {
		t.Fatal("search was not invoked")
	}
	if p.Limit != 10 {
		t.Errorf("expected default limit 10, got %d", p.Limit)
	}
	if p.Sort != "new" {
		t.Errorf("expected sort new, got %q", p.Sort)
	}
	if p.TimeFilter != "week" {
		t.Errorf("expected time_filter week, got %q", p.TimeFilter)
	}
	if p.Subreddit != "test" || p.Query != "foo" {
		t.Errorf("unexpected forwarding: %+v", p)
	}
}

func TestSearchAllDefaultsApplied(t *testing.T) {
	fake := &fakeClient{}
	d := NewDispatcher(fake)

	resultText(t, d, "search_reddit_posts", `{"subreddit":"golang","query":"generics"}`)

	p := fake.searchParams
	if p.Limit != 10 || p.Sort != "relevance" || p.TimeFilter != "all" {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestDispatcherForwardsZeroValues(t *testing.T) {
	// Required-parameter absence is deliberately not validated here; the
	// zero value goes straight to the client.
	fake := &fakeClient{}
	d := NewDispatcher(fake)

	resultText(t, d, "get_hot_reddit_posts", "")

	if fake.calls != 1 {
		t.Fatalf("expected one client call, got %d", fake.calls)
	}
	if fake.hotSubreddit != "" {
		t.Errorf("expected empty subreddit forwarded, got %q", fake.hotSubreddit)
	}
	if fake.hotLimit != 10 {
		t.Errorf("expected default limit even without arguments, got %d", fake.hotLimit)
	}
}

func TestClientErrorBecomesErrorText(t *testing.T) {
	fake := &fakeClient{detailsErr: errors.New("received 404 HTTP response")}
	d := NewDispatcher(fake)

	text := resultText(t, d, "get_reddit_post_details", `{"post_id":"abc123"}`)

	if !strings.HasPrefix(text, "Error: ") {
		t.Fatalf("expected Error: prefix, got %q", text)
	}
	if !strings.Contains(text, "received 404 HTTP response") {
		t.Errorf("expected the fault message, got %q", text)
	}
	if fake.detailsID != "abc123" {
		t.Errorf("expected post id forwarded, got %q", fake.detailsID)
	}
}

func TestSearchSuccessHeaderAndBody(t *testing.T) {
	fake := &fakeClient{
		searchPosts: []reddit.Post{
			{ID: "aaa", Title: "first"},
			{ID: "bbb", Title: "second"},
		},
	}
	d := NewDispatcher(fake)

	text := resultText(t, d, "search_reddit_posts", `{"subreddit":"golang","query":"generics"}`)

	if !strings.HasPrefix(text, "Found 2 posts in r/golang for query: 'generics'\n\n") {
		t.Fatalf("unexpected header: %q", text)
	}

	body := strings.SplitN(text, "\n\n", 2)[1]
	var posts []reddit.Post
	if err := json.Unmarshal([]byte(body), &posts); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != "aaa" || posts[1].Title != "second" {
		t.Errorf("unexpected serialized posts: %+v", posts)
	}
	if !strings.Contains(body, "\n  ") {
		t.Error("expected indented JSON body")
	}
}

func TestSubredditInfoHeader(t *testing.T) {
	fake := &fakeClient{info: &reddit.Subreddit{DisplayName: "golang", Subscribers: 250000}}
	d := NewDispatcher(fake)

	text := resultText(t, d, "get_subreddit_info", `{"subreddit":"golang"}`)

	if !strings.HasPrefix(text, "Subreddit information for r/golang:\n\n") {
		t.Fatalf("unexpected header: %q", text)
	}
	if fake.infoName != "golang" {
		t.Errorf("expected name forwarded, got %q", fake.infoName)
	}
}

func TestHotPostsHeader(t *testing.T) {
	fake := &fakeClient{hotPosts: []reddit.Post{{ID: "x"}}}
	d := NewDispatcher(fake)

	text := resultText(t, d, "get_hot_reddit_posts", `{"subreddit":"python","limit":5}`)

	if !strings.HasPrefix(text, "Hot posts from r/python:\n\n") {
		t.Fatalf("unexpected header: %q", text)
	}
	if fake.hotLimit != 5 {
		t.Errorf("expected explicit limit forwarded, got %d", fake.hotLimit)
	}
}

func TestInvalidArgumentsBecomeErrorText(t *testing.T) {
	fake := &fakeClient{}
	d := NewDispatcher(fake)

	text := resultText(t, d, "search_reddit_posts", `{"limit":"ten"}`)

	if !strings.HasPrefix(text, "Error: ") {
		t.Fatalf("expected Error: prefix, got %q", text)
	}
	if fake.calls != 0 {
		t.Errorf("client should not be invoked on undecodable arguments, got %d calls", fake.calls)
	}
}

func TestOutOfEnumSortForwardedAsIs(t *testing.T) {
	fake := &fakeClient{}
	d := NewDispatcher(fake)

	resultText(t, d, "search_reddit_posts", `{"subreddit":"a","query":"b","sort":"bogus"}`)

	if fake.searchParams.Sort != "bogus" {
		t.Errorf("enum validation is advisory; expected bogus forwarded, got %q", fake.searchParams.Sort)
	}
}
