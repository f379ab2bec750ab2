package service

import (
	"context"

	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/rs/zerolog"
)

// MovieService serves movie aggregates, reading through the cache when
// one is configured.
type MovieService struct {
	repo  MovieRepository
	cache MovieCache
	log   zerolog.Logger
}

// NewMovieService accepts a nil cache.
func NewMovieService(repo MovieRepository, cache MovieCache, logger *zerolog.Logger) *MovieService {
	return &MovieService{
		repo:  repo,
		cache: cache,
		log:   logger.With().Str("service", "movie").Logger(),
	}
}

func (s *MovieService) Get(ctx context.Context, id int64) (model.Movie, error) {
	if s.cache != nil {
		if m, ok := s.cache.Get(ctx, id); ok {
			return m, nil
		}
	}

	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, m)
	}
	return m, nil
}

func (s *MovieService) List(ctx context.Context) ([]model.Movie, error) {
	return s.repo.GetAll(ctx)
}

// Create inserts m and returns the stored aggregate. On a duplicate the
// error carries the id of the movie already stored.
func (s *MovieService) Create(ctx context.Context, m model.Movie) (model.Movie, error) {
	id, err := s.repo.Insert(ctx, m)
	if err != nil {
		return model.Movie{}, err
	}

	s.log.Info().Int64("movie_id", id).Str("title", m.Title).Msg("movie created")
	return s.Get(ctx, id)
}

// Update overwrites the movie's scalar fields.
func (s *MovieService) Update(ctx context.Context, m model.Movie) error {
	if err := s.repo.Update(ctx, m); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, m.ID)
	}
	s.log.Info().Int64("movie_id", m.ID).Msg("movie updated")
	return nil
}

func (s *MovieService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, model.Movie{ID: id}); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.log.Info().Int64("movie_id", id).Msg("movie deleted")
	return nil
}

// InvalidateAll empties the movie cache.
func (s *MovieService) InvalidateAll(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}
}
