// Package redditsearch exposes the read-only Reddit operations as MCP
// tools and dispatches tool calls to the Reddit client.
package redditsearch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redditmcp/reddit-mcp/internal/reddit"
	"github.com/redditmcp/reddit-mcp/internal/tools"
)

// Client is the collaborator performing the actual Reddit API calls.
// *reddit.Client satisfies it; tests substitute fakes.
type Client interface {
	SearchPosts(ctx context.Context, p reddit.SearchParams) ([]reddit.Post, error)
	GetPostDetails(ctx context.Context, postID string) (*reddit.Post, error)
	GetSubredditInfo(ctx context.Context, name string) (*reddit.Subreddit, error)
	GetHotPosts(ctx context.Context, subreddit string, limit int) ([]reddit.Post, error)
}

func GetTools(client Client) []tools.Tool {
	return []tools.Tool{
		&SearchPostsTool{client: client},
		&PostDetailsTool{client: client},
		&SubredditInfoTool{client: client},
		&HotPostsTool{client: client},
	}
}

type SearchPostsTool struct {
	client Client
}

func (t *SearchPostsTool) Name() string {
	return "search_reddit_posts"
}

func (t *SearchPostsTool) Description() string {
	return "Search for posts in a specific subreddit"
}

func (t *SearchPostsTool) Title() string {
	return "Search Reddit Posts"
}

func (t *SearchPostsTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *SearchPostsTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"subreddit": {
				"type": "string",
				"description": "The name of the subreddit to search in (without r/)"
			},
			"query": {
				"type": "string",
				"description": "The search query"
			},
			"limit": {
				"type": "integer",
				"description": "Number of posts to return (default: 10, max: 100)",
				"default": 10,
				"minimum": 1,
				"maximum": 100
			},
			"sort": {
				"type": "string",
				"description": "Sort method for search results",
				"enum": ["relevance", "hot", "top", "new", "comments"],
				"default": "relevance"
			},
			"time_filter": {
				"type": "string",
				"description": "Time filter for search results",
				"enum": ["all", "day", "week", "month", "year"],
				"default": "all"
			}
		},
		"required": ["subreddit", "query"]
	}`)
}

// searchArgs carries its defaults in the literal below so an absent
// optional parameter never needs a runtime lookup.
type searchArgs struct {
	Subreddit  string `json:"subreddit"`
	Query      string `json:"query"`
	Limit      int    `json:"limit"`
	Sort       string `json:"sort"`
	TimeFilter string `json:"time_filter"`
}

func (t *SearchPostsTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	a := searchArgs{Limit: 10, Sort: "relevance", TimeFilter: "all"}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &a); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}

	posts, err := t.client.SearchPosts(ctx, reddit.SearchParams{
		Subreddit:  a.Subreddit,
		Query:      a.Query,
		Limit:      a.Limit,
		Sort:       a.Sort,
		TimeFilter: a.TimeFilter,
	})
	if err != nil {
		return nil, err
	}

	return fmt.Sprintf("Found %d posts in r/%s for query: '%s'\n\n%s",
		len(posts), a.Subreddit, a.Query, formatJSON(posts)), nil
}

type PostDetailsTool struct {
	client Client
}

func (t *PostDetailsTool) Name() string {
	return "get_reddit_post_details"
}

func (t *PostDetailsTool) Description() string {
	return "Get detailed information about a specific Reddit post"
}

func (t *PostDetailsTool) Title() string {
	return "Get Reddit Post Details"
}

func (t *PostDetailsTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *PostDetailsTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"post_id": {
				"type": "string",
				"description": "The Reddit post ID"
			}
		},
		"required": ["post_id"]
	}`)
}

type postDetailsArgs struct {
	PostID string `json:"post_id"`
}

func (t *PostDetailsTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var a postDetailsArgs
	if len(input) > 0 {
		if err := json.Unmarshal(input, &a); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}

	post, err := t.client.GetPostDetails(ctx, a.PostID)
	if err != nil {
		return nil, err
	}

	return fmt.Sprintf("Post details for %s:\n\n%s", a.PostID, formatJSON(post)), nil
}

type SubredditInfoTool struct {
	client Client
}

func (t *SubredditInfoTool) Name() string {
	return "get_subreddit_info"
}

func (t *SubredditInfoTool) Description() string {
	return "Get information about a subreddit"
}

func (t *SubredditInfoTool) Title() string {
	return "Get Subreddit Info"
}

func (t *SubredditInfoTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *SubredditInfoTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"subreddit": {
				"type": "string",
				"description": "The name of the subreddit (without r/)"
			}
		},
		"required": ["subreddit"]
	}`)
}

type subredditInfoArgs struct {
	Subreddit string `json:"subreddit"`
}

func (t *SubredditInfoTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	var a subredditInfoArgs
	if len(input) > 0 {
		if err := json.Unmarshal(input, &a); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}

	info, err := t.client.GetSubredditInfo(ctx, a.Subreddit)
	if err != nil {
		return nil, err
	}

	return fmt.Sprintf("Subreddit information for r/%s:\n\n%s", a.Subreddit, formatJSON(info)), nil
}

type HotPostsTool struct {
	client Client
}

func (t *HotPostsTool) Name() string {
	return "get_hot_reddit_posts"
}

func (t *HotPostsTool) Description() string {
	return "Get hot posts from a subreddit"
}

func (t *HotPostsTool) Title() string {
	return "Get Hot Reddit Posts"
}

func (t *HotPostsTool) Annotations() map[string]bool {
	return tools.ReadOnlyAnnotations()
}

func (t *HotPostsTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"subreddit": {
				"type": "string",
				"description": "The name of the subreddit (without r/)"
			},
			"limit": {
				"type": "integer",
				"description": "Number of posts to return (default: 10, max: 100)",
				"default": 10,
				"minimum": 1,
				"maximum": 100
			}
		},
		"required": ["subreddit"]
	}`)
}

type hotPostsArgs struct {
	Subreddit string `json:"subreddit"`
	Limit     int    `json:"limit"`
}

func (t *HotPostsTool) Execute(ctx context.Context, input json.RawMessage) (interface{}, error) {
	a := hotPostsArgs{Limit: 10}
	if len(input) > 0 {
		if err := json.Unmarshal(input, &a); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}

	posts, err := t.client.GetHotPosts(ctx, a.Subreddit, a.Limit)
	if err != nil {
		return nil, err
	}

	return fmt.Sprintf("Hot posts from r/%s:\n\n%s", a.Subreddit, formatJSON(posts)), nil
}
