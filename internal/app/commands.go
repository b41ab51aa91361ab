package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"india_travel/internal/domain"
)

type SeedService struct {
	src     domain.CatalogSource
	store   domain.DestinationStore
	workers int64
}

func NewSeedService(src domain.CatalogSource, store domain.DestinationStore, workers int) *SeedService {
	if workers <= 0 {
		workers = 1
	}
	return &SeedService{src: src, store: store, workers: int64(workers)}
}

// Seed copies every record from the source into the store, keeping the
// source order in the position column. It returns the number of records
// written and the joined errors of the ones that failed.
func (s *SeedService) Seed(ctx context.Context) (int, error) {
	records, err := s.src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed: load source: %w", err)
	}

	sem := semaphore.NewWeighted(s.workers)
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		ok   int
	)

	for pos, d := range records {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}

		wg.Add(1)
		go func(pos int, d domain.Destination) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.store.UpsertDestination(ctx, pos, d); err != nil {
				log.Warn().Str("id", d.ID).Err(err).Msg("seed failed")
				mu.Lock()
				errs = append(errs, fmt.Errorf("seed %s: %w", d.ID, err))
				mu.Unlock()
				return
			}
			log.Debug().Str("id", d.ID).Int("position", pos).Msg("seed ok")
			mu.Lock()
			ok++
			mu.Unlock()
		}(pos, d)
	}

	wg.Wait()
	return ok, errors.Join(errs...)
}
