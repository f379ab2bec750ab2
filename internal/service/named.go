package service

import (
	"context"

	"github.com/rs/zerolog"
)

// NamedService manages actors or directors. afterWrite runs after every
// successful update or delete.
type NamedService[T any] struct {
	entity     string
	repo       NamedRepository[T]
	afterWrite func(ctx context.Context)
	log        zerolog.Logger
}

func NewNamedService[T any](entity string, repo NamedRepository[T], afterWrite func(ctx context.Context), logger *zerolog.Logger) *NamedService[T] {
	if afterWrite == nil {
		afterWrite = func(context.Context) {}
	}
	return &NamedService[T]{
		entity:     entity,
		repo:       repo,
		afterWrite: afterWrite,
		log:        logger.With().Str("service", entity).Logger(),
	}
}

func (s *NamedService[T]) Get(ctx context.Context, id int64) (T, error) {
	return s.repo.Get(ctx, id)
}

func (s *NamedService[T]) List(ctx context.Context) ([]T, error) {
	return s.repo.GetAll(ctx)
}

func (s *NamedService[T]) FindByName(ctx context.Context, name string) (T, error) {
	return s.repo.FindByName(ctx, name)
}

// Create inserts item and returns the stored row.
func (s *NamedService[T]) Create(ctx context.Context, item T) (T, error) {
	id, err := s.repo.Insert(ctx, item)
	if err != nil {
		var zero T
		return zero, err
	}

	s.log.Info().Int64("id", id).Msgf("%s created", s.entity)
	return s.repo.Get(ctx, id)
}

func (s *NamedService[T]) Update(ctx context.Context, item T) error {
	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}
	s.afterWrite(ctx)
	return nil
}

func (s *NamedService[T]) Delete(ctx context.Context, item T) error {
	if err := s.repo.Delete(ctx, item); err != nil {
		return err
	}
	s.afterWrite(ctx)
	return nil
}
