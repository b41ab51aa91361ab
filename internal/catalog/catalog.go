// Package catalog holds the immutable destination catalog and the sources
// it can be loaded from at startup.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"india_travel/internal/domain"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Catalog is read-only after New returns; it is safe for concurrent use.
type Catalog struct {
	items []domain.Destination
	byID  map[string]int
}

// ErrEmpty is returned when a source yields no destinations.
var ErrEmpty = errors.New("catalog: no destinations")

func New(records []domain.Destination) (*Catalog, error) {
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	v, err := newValidator()
	if err != nil {
		return nil, err
	}
	c := &Catalog{
		items: make([]domain.Destination, 0, len(records)),
		byID:  make(map[string]int, len(records)),
	}
	for i, d := range records {
		if err := v.Struct(d); err != nil {
			return nil, fmt.Errorf("catalog: record %d (%q): %w", i, d.ID, err)
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate destination id %q", d.ID)
		}
		c.byID[d.ID] = len(c.items)
		c.items = append(c.items, d.Clone())
	}
	return c, nil
}

// Open loads every record from src and builds the catalog.
func Open(ctx context.Context, src domain.CatalogSource) (*Catalog, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog: load: %w", err)
	}
	return New(records)
}

// List returns the records in dataset order.
func (c *Catalog) List() []domain.Destination {
	out := make([]domain.Destination, len(c.items))
	for i, d := range c.items {
		out[i] = d.Clone()
	}
	return out
}

// Get is an exact, case-sensitive lookup by id.
func (c *Catalog) Get(id string) (domain.Destination, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Destination{}, false
	}
	return c.items[i].Clone(), true
}

func (c *Catalog) Len() int { return len(c.items) }

// Each calls fn for every record in order without copying; fn must not
// retain or modify the record.
func (c *Catalog) Each(fn func(d *domain.Destination)) {
	for i := range c.items {
		fn(&c.items[i])
	}
}

func newValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: register slug validation: %w", err)
	}
	return v, nil
}
