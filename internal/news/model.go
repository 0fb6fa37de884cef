package news

import (
	"encoding/json"
	"time"
)

// pubDateLayout is the NewsData pubDate format.
const pubDateLayout = "2006-01-02 15:04:05"

// Article is one normalized news item.
type Article struct {
	ArticleID   string `json:"article_id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
	ImageURL    string `json:"image_url"`
	SourceID    string `json:"source_id"`
}

// PublishedAt parses the publication date; ok is false when it is missing
// or malformed.
func (a Article) PublishedAt() (time.Time, bool) {
	at, err := time.Parse(pubDateLayout, a.PubDate)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// dedupKey is the composite identity used to drop repeated articles across
// pages.
func (a Article) dedupKey() string {
	return a.Title + "\x1f" + a.PubDate + "\x1f" + a.SourceID
}

// Query selects a page of headlines.
type Query struct {
	Keyword  string
	Category string
	Page     string
	Size     int
}

// Page is one de-duplicated page of results. HasMore is true only when a
// next-page cursor was returned and the page itself was non-empty.
type Page struct {
	Articles     []Article `json:"articles"`
	NextPage     string    `json:"next_page"`
	TotalResults int       `json:"total_results"`
	HasMore      bool      `json:"has_more"`
}

// latestResponse keeps results raw: the upstream sends an article array on
// success but an error object on failure.
type latestResponse struct {
	Status       string          `json:"status"`
	TotalResults int             `json:"totalResults"`
	Results      json.RawMessage `json:"results"`
	NextPage     string          `json:"nextPage"`
}

type latestError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
