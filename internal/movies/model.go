package movies

import (
	"fmt"
	"strings"
	"time"
)

// releaseDateLayout is the TMDB release_date format.
const releaseDateLayout = "2006-01-02"

// nowPlayingWindow is the rolling lookback used to classify a movie as
// currently in theaters.
const nowPlayingWindow = 45 * 24 * time.Hour

// Movie is one TMDB listing entry.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	GenreIDs         []int   `json:"genre_ids"`
	Adult            bool    `json:"adult"`
	OriginalLanguage string  `json:"original_language"`
	OriginalTitle    string  `json:"original_title"`
	Popularity       float64 `json:"popularity"`
	Video            bool    `json:"video"`
}

// ReleaseTime parses the release date; ok is false when it is missing or
// malformed.
func (m Movie) ReleaseTime() (time.Time, bool) {
	at, err := time.Parse(releaseDateLayout, m.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return at, true
}

// IsUpcoming reports whether the movie releases strictly after now.
func (m Movie) IsUpcoming(now time.Time) bool {
	release, ok := m.ReleaseTime()
	return ok && release.After(now)
}

// IsNowPlaying reports whether the release date falls in (now-45d, now].
// Mutually exclusive with IsUpcoming.
func (m Movie) IsNowPlaying(now time.Time) bool {
	release, ok := m.ReleaseTime()
	return ok && !release.After(now) && release.After(now.Add(-nowPlayingWindow))
}

// PosterURL returns the w500 poster image URL, or "" without a poster.
func (m Movie) PosterURL() string {
	if m.PosterPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w500" + m.PosterPath
}

// BackdropURL returns the w780 backdrop image URL, or "" without a
// backdrop.
func (m Movie) BackdropURL() string {
	if m.BackdropPath == "" {
		return ""
	}
	return "https://image.tmdb.org/t/p/w780" + m.BackdropPath
}

// ShortOverview truncates the overview to 150 characters.
func (m Movie) ShortOverview() string {
	overview := []rune(m.Overview)
	if len(overview) <= 150 {
		return m.Overview
	}
	return string(overview[:147]) + "..."
}

// Genre is one TMDB genre list entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Video is one TMDB video entry, a trailer candidate.
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Official bool   `json:"official"`
}

// IsTrailer reports whether the video type is "Trailer", case-insensitively.
func (v Video) IsTrailer() bool {
	return strings.EqualFold(v.Type, "Trailer")
}

// IsYouTube reports whether the video is hosted on YouTube,
// case-insensitively.
func (v Video) IsYouTube() bool {
	return strings.EqualFold(v.Site, "YouTube")
}

// WatchURL returns the YouTube watch URL, or "" for non-YouTube videos.
func (v Video) WatchURL() string {
	if !v.IsYouTube() || v.Key == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.Key)
}

// EmbedURL returns the YouTube embed URL, or "" for non-YouTube videos.
func (v Video) EmbedURL() string {
	if !v.IsYouTube() || v.Key == "" {
		return ""
	}
	return fmt.Sprintf("https://www.youtube.com/embed/%s", v.Key)
}

// Billboard combines the two theater listings.
type Billboard struct {
	NowPlaying []Movie `json:"now_playing"`
	Upcoming   []Movie `json:"upcoming"`
}

type listResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type genreResponse struct {
	Genres []Genre `json:"genres"`
}

type videoResponse struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}
