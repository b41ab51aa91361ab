package app

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"india_travel/internal/adapters/observability"
	"india_travel/internal/catalog"
	"india_travel/internal/domain"
)

type QueryService struct {
	catalog *catalog.Catalog
}

func NewQueryService(c *catalog.Catalog) *QueryService {
	return &QueryService{catalog: c}
}

func (s *QueryService) List() []domain.Destination {
	return s.catalog.List()
}

func (s *QueryService) GetDestination(id string) (domain.Destination, error) {
	d, ok := s.catalog.Get(id)
	if !ok {
		return domain.Destination{}, fmt.Errorf("destination %q: %w", id, domain.ErrNotFound)
	}
	return d, nil
}

// Search returns, in catalog order, every destination whose name, region or
// description contains query, ignoring case. The empty query matches all.
func (s *QueryService) Search(query string) []domain.Destination {
	q := strings.ToLower(query)
	out := make([]domain.Destination, 0)
	s.catalog.Each(func(d *domain.Destination) {
		if strings.Contains(strings.ToLower(d.Name), q) ||
			strings.Contains(strings.ToLower(d.Region), q) ||
			strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, d.Clone())
		}
	})
	observability.ObserveSearch(len(out))
	return out
}

// ParseSearchQuery extracts q from request parameters. A missing q is the
// empty query.
func ParseSearchQuery(v url.Values) (string, error) {
	qs, ok := v["q"]
	if !ok {
		return "", nil
	}
	if len(qs) != 1 {
		return "", fmt.Errorf("q given %d times: %w", len(qs), domain.ErrInvalidArgument)
	}
	if !utf8.ValidString(qs[0]) {
		return "", fmt.Errorf("q is not valid UTF-8: %w", domain.ErrInvalidArgument)
	}
	return qs[0], nil
}
