// Package news fetches paginated headlines from NewsData and de-duplicates
// articles across pages.
package news

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mvdapps/panorama/internal/config"
	"github.com/mvdapps/panorama/internal/httpapi"
)

const (
	defaultPageSize = 10
	maxPageSize     = 10
)

// Service exposes the headline query surface. The seen-set is per service
// instance: articles repeated across successive pages are dropped.
type Service struct {
	api  httpapi.Getter
	cfg  config.NewsConfig
	seen *lru.Cache[string, struct{}]
}

// NewService creates a news Service.
func NewService(api httpapi.Getter, cfg config.NewsConfig) (*Service, error) {
	limit := cfg.SeenLimit
	if limit <= 0 {
		limit = 1024
	}
	seen, err := lru.New[string, struct{}](limit)
	if err != nil {
		return nil, fmt.Errorf("lru.New > %w", err)
	}
	return &Service{
		api:  api,
		cfg:  cfg,
		seen: seen,
	}, nil
}

// Latest returns one page of headlines. Size is clamped to [1, 10];
// keyword, category and page cursor are included only when non-blank.
func (s *Service) Latest(ctx context.Context, query Query) (Page, error) {
	size := query.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	params := url.Values{
		"apikey":          []string{s.cfg.APIKey},
		"country":         []string{s.cfg.Country},
		"language":        []string{s.cfg.Language},
		"removeduplicate": []string{"1"},
		"image":           []string{"1"},
		"size":            []string{strconv.Itoa(size)},
		"q":               []string{query.Keyword},
		"category":        []string{query.Category},
		"page":            []string{query.Page},
	}

	body, err := s.api.Get(ctx, "/latest", params)
	if err != nil {
		return Page{}, fmt.Errorf("news: latest > %w", err)
	}
	response, err := httpapi.Decode[latestResponse](body)
	if err != nil {
		return Page{}, fmt.Errorf("news: latest > %w", err)
	}
	if response.Status == "error" {
		return Page{}, fmt.Errorf("news: latest > %w", upstreamError(response.Results))
	}

	var results []Article
	if len(response.Results) > 0 {
		results, err = httpapi.Decode[[]Article](response.Results)
		if err != nil {
			return Page{}, fmt.Errorf("news: latest > %w", err)
		}
	}

	articles := make([]Article, 0, len(results))
	for _, article := range results {
		key := article.dedupKey()
		if s.seen.Contains(key) {
			continue
		}
		s.seen.Add(key, struct{}{})
		articles = append(articles, article)
	}

	return Page{
		Articles:     articles,
		NextPage:     response.NextPage,
		TotalResults: response.TotalResults,
		HasMore:      response.NextPage != "" && len(results) > 0,
	}, nil
}

// upstreamError extracts the provider's diagnostic from an error-status
// results object.
func upstreamError(raw []byte) *httpapi.UpstreamError {
	upstream := &httpapi.UpstreamError{Info: "error"}
	detail, err := httpapi.Decode[latestError](raw)
	if err != nil {
		return upstream
	}
	if detail.Message != "" {
		upstream.Info = detail.Message
	}
	if detail.Code != "" {
		upstream.Info = fmt.Sprintf("%s (%s)", upstream.Info, detail.Code)
	}
	return upstream
}

// Reset clears the seen-set, e.g. before a pull-to-refresh style reload.
func (s *Service) Reset() {
	s.seen.Purge()
}
