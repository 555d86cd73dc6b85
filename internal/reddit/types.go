package reddit

// Post is a normalized view of a Reddit link (kind t3).
type Post struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	Selftext    string  `json:"selftext"`
	Over18      bool    `json:"over_18"`
	Stickied    bool    `json:"stickied"`
}

// Subreddit is a normalized view of a subreddit record (kind t5).
type Subreddit struct {
	DisplayName       string  `json:"display_name"`
	Title             string  `json:"title"`
	PublicDescription string  `json:"public_description"`
	Subscribers       int     `json:"subscribers"`
	CreatedUTC        float64 `json:"created_utc"`
	Over18            bool    `json:"over18"`
	URL               string  `json:"url"`
}

// SearchParams are the filters for a subreddit post search. Zero values
// for Sort/TimeFilter are forwarded untouched; Reddit applies its own
// defaults, which keeps this layer's validation advisory.
type SearchParams struct {
	Subreddit  string
	Query      string
	Limit      int
	Sort       string
	TimeFilter string
}

// listing is the Reddit API envelope around search/hot/info results.
type listing struct {
	Data struct {
		Children []struct {
			Data Post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// thing wraps single-object responses such as /r/{name}/about.
type thing struct {
	Kind string    `json:"kind"`
	Data Subreddit `json:"data"`
}
