// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives
// validated data from the handlers, calls the repositories and keeps the
// movie cache consistent with what they write.
package service

import (
	"context"

	"github.com/deppfellow/rental-catalog/internal/model"
)

// MovieRepository is the persistence the movie service needs.
type MovieRepository interface {
	Get(ctx context.Context, id int64) (model.Movie, error)
	GetAll(ctx context.Context) ([]model.Movie, error)
	Insert(ctx context.Context, m model.Movie) (int64, error)
	Update(ctx context.Context, m model.Movie) error
	Delete(ctx context.Context, m model.Movie) error
}

// NamedRepository is the persistence for actors and directors.
type NamedRepository[T any] interface {
	Get(ctx context.Context, id int64) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	FindByName(ctx context.Context, name string) (T, error)
	Insert(ctx context.Context, item T) (int64, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, item T) error
}

// MovieCache is the read-through cache the movie service fills.
type MovieCache interface {
	Get(ctx context.Context, id int64) (model.Movie, bool)
	Set(ctx context.Context, m model.Movie)
	Invalidate(ctx context.Context, id int64)
	InvalidateAll(ctx context.Context)
}
