// Package movies wraps the TMDB listings, search, genre and video
// endpoints.
package movies

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mvdapps/panorama/internal/config"
	"github.com/mvdapps/panorama/internal/httpapi"
)

// Service exposes the movie query surface. Listings are not cached; every
// call hits the network.
type Service struct {
	api httpapi.Getter
	cfg config.MoviesConfig
	now func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a movie Service.
func NewService(api httpapi.Getter, cfg config.MoviesConfig, opts ...ServiceOption) *Service {
	s := &Service{
		api: api,
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) baseQuery() url.Values {
	return url.Values{
		"api_key":  []string{s.cfg.APIKey},
		"language": []string{s.cfg.Language},
	}
}

func (s *Service) list(ctx context.Context, path string, query url.Values) ([]Movie, error) {
	body, err := s.api.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("api.Get > %w", err)
	}
	response, err := httpapi.Decode[listResponse](body)
	if err != nil {
		return nil, err
	}
	return response.Results, nil
}

// Upcoming returns movies releasing strictly after now, ascending by
// release date. Entries without a parseable release date are excluded.
func (s *Service) Upcoming(ctx context.Context) ([]Movie, error) {
	query := s.baseQuery()
	query.Set("page", "1")
	query.Set("region", s.cfg.Region)
	results, err := s.list(ctx, "/movie/upcoming", query)
	if err != nil {
		return nil, fmt.Errorf("movies: upcoming > %w", err)
	}

	now := s.now()
	upcoming := filterMovies(results, func(m Movie) bool {
		return m.IsUpcoming(now)
	})
	sortByReleaseDate(upcoming, true)
	return upcoming, nil
}

// NowPlaying returns movies released within the last 45 days, descending
// by release date.
func (s *Service) NowPlaying(ctx context.Context) ([]Movie, error) {
	query := s.baseQuery()
	query.Set("page", "1")
	query.Set("region", s.cfg.Region)
	results, err := s.list(ctx, "/movie/now_playing", query)
	if err != nil {
		return nil, fmt.Errorf("movies: now playing > %w", err)
	}

	now := s.now()
	nowPlaying := filterMovies(results, func(m Movie) bool {
		return m.IsNowPlaying(now)
	})
	sortByReleaseDate(nowPlaying, false)
	return nowPlaying, nil
}

// Billboard fetches the now-playing and upcoming listings concurrently and
// combines them once both resolve.
func (s *Service) Billboard(ctx context.Context) (Billboard, error) {
	var billboard Billboard
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		nowPlaying, err := s.NowPlaying(ctx)
		if err != nil {
			return err
		}
		billboard.NowPlaying = nowPlaying
		return nil
	})
	group.Go(func() error {
		upcoming, err := s.Upcoming(ctx)
		if err != nil {
			return err
		}
		billboard.Upcoming = upcoming
		return nil
	})
	if err := group.Wait(); err != nil {
		return Billboard{}, err
	}
	return billboard, nil
}

// Search returns movies matching query in the raw API order. An empty or
// whitespace query returns an empty slice without a network call.
func (s *Service) Search(ctx context.Context, query string) ([]Movie, error) {
	if strings.TrimSpace(query) == "" {
		return []Movie{}, nil
	}

	params := s.baseQuery()
	params.Set("query", query)
	params.Set("page", "1")
	results, err := s.list(ctx, "/search/movie", params)
	if err != nil {
		return nil, fmt.Errorf("movies: search > %w", err)
	}
	return results, nil
}

// Genres returns the movie genre list.
func (s *Service) Genres(ctx context.Context) ([]Genre, error) {
	body, err := s.api.Get(ctx, "/genre/movie/list", s.baseQuery())
	if err != nil {
		return nil, fmt.Errorf("movies: genres > %w", err)
	}
	response, err := httpapi.Decode[genreResponse](body)
	if err != nil {
		return nil, fmt.Errorf("movies: genres > %w", err)
	}
	return response.Genres, nil
}

// ByGenre returns movies of the given genre, most popular first (the
// upstream sorts; the raw order is preserved).
func (s *Service) ByGenre(ctx context.Context, genreID int) ([]Movie, error) {
	query := s.baseQuery()
	query.Set("with_genres", strconv.Itoa(genreID))
	query.Set("sort_by", "popularity.desc")
	query.Set("page", "1")
	results, err := s.list(ctx, "/discover/movie", query)
	if err != nil {
		return nil, fmt.Errorf("movies: by genre > %w", err)
	}
	return results, nil
}

// Videos returns the YouTube trailers for a movie, highest resolution
// first with official trailers breaking ties. Trailer absence is benign,
// so any failure degrades to an empty slice.
func (s *Service) Videos(ctx context.Context, movieID int) ([]Video, error) {
	body, err := s.api.Get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), s.baseQuery())
	if err != nil {
		slog.Default().Warn("failed to fetch movie videos",
			slog.Int("movieID", movieID),
			slog.Any("error", err),
		)
		return []Video{}, nil
	}
	response, err := httpapi.Decode[videoResponse](body)
	if err != nil {
		slog.Default().Warn("failed to decode movie videos",
			slog.Int("movieID", movieID),
			slog.Any("error", err),
		)
		return []Video{}, nil
	}

	trailers := make([]Video, 0, len(response.Results))
	for _, video := range response.Results {
		if video.IsTrailer() && video.IsYouTube() {
			trailers = append(trailers, video)
		}
	}
	sort.SliceStable(trailers, func(i, j int) bool {
		if trailers[i].Size != trailers[j].Size {
			return trailers[i].Size > trailers[j].Size
		}
		return trailers[i].Official && !trailers[j].Official
	})
	return trailers, nil
}

func filterMovies(results []Movie, keep func(Movie) bool) []Movie {
	filtered := make([]Movie, 0, len(results))
	for _, movie := range results {
		if keep(movie) {
			filtered = append(filtered, movie)
		}
	}
	return filtered
}

func sortByReleaseDate(results []Movie, ascending bool) {
	sort.SliceStable(results, func(i, j int) bool {
		left, _ := results[i].ReleaseTime()
		right, _ := results[j].ReleaseTime()
		if ascending {
			return left.Before(right)
		}
		return right.Before(left)
	})
}
