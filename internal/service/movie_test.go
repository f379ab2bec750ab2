package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/rental-catalog/internal/cache"
	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMovies is an in-memory MovieRepository that counts reads.
type fakeMovies struct {
	movies map[int64]model.Movie
	nextID int64
	gets   int
}

func newFakeMovies() *fakeMovies {
	return &fakeMovies{movies: map[int64]model.Movie{}, nextID: 1}
}

func (f *fakeMovies) Get(_ context.Context, id int64) (model.Movie, error) {
	f.gets++
	m, ok := f.movies[id]
	if !ok {
		return model.Movie{}, errs.NotFoundError("movie", id)
	}
	return m, nil
}

func (f *fakeMovies) GetAll(context.Context) ([]model.Movie, error) {
	out := make([]model.Movie, 0, len(f.movies))
	for id := int64(1); id < f.nextID; id++ {
		if m, ok := f.movies[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMovies) Insert(_ context.Context, m model.Movie) (int64, error) {
	for id, stored := range f.movies {
		if stored.Title == m.Title && model.SameDirectors(stored.Directors, m.Directors) {
			return id, errs.DuplicateError("movie", id)
		}
	}
	m.ID = f.nextID
	f.nextID++
	f.movies[m.ID] = m
	return m.ID, nil
}

func (f *fakeMovies) Update(_ context.Context, m model.Movie) error {
	stored, ok := f.movies[m.ID]
	if !ok {
		return errs.NotFoundError("movie", m.ID)
	}
	if stored.ScalarEqual(m) {
		return errs.NoChangeError("movie", m.ID)
	}
	m.Actors, m.Directors = stored.Actors, stored.Directors
	f.movies[m.ID] = m
	return nil
}

func (f *fakeMovies) Delete(_ context.Context, m model.Movie) error {
	if _, ok := f.movies[m.ID]; !ok {
		return errs.NotFoundError("movie", m.ID)
	}
	delete(f.movies, m.ID)
	return nil
}

func johnWick() model.Movie {
	return model.Movie{
		Title:     "John Wick",
		Year:      2014,
		Length:    101,
		Actors:    []model.Actor{{Name: "Keanu Reeves"}},
		Directors: []model.Director{{Name: "Chad Stahelski"}, {Name: "David Leitch"}},
	}
}

func newCachedService(t *testing.T) (*fakeMovies, *miniredis.Miniredis, *MovieService) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zerolog.Nop()
	repo := newFakeMovies()
	return repo, mr, NewMovieService(repo, cache.NewMovieCache(client, time.Minute, &logger), &logger)
}

func TestMovieService_GetReadsThrough(t *testing.T) {
	repo, mr, svc := newCachedService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, johnWick())
	require.NoError(t, err)
	assert.True(t, mr.Exists("rental:movie:1"))

	reads := repo.gets
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, reads, repo.gets)
	assert.True(t, created.Equal(got))
}

func TestMovieService_UpdateInvalidates(t *testing.T) {
	repo, mr, svc := newCachedService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, johnWick())
	require.NoError(t, err)

	changed := created
	changed.IsRented = true
	require.NoError(t, svc.Update(ctx, changed))
	assert.False(t, mr.Exists("rental:movie:1"))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRented)
	assert.Len(t, repo.movies, 1)
}

func TestMovieService_UpdateNoChangeKeepsCache(t *testing.T) {
	_, mr, svc := newCachedService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, johnWick())
	require.NoError(t, err)

	err = svc.Update(ctx, created)

	assert.True(t, errors.Is(err, errs.ErrNoChange))
	assert.True(t, mr.Exists("rental:movie:1"))
}

func TestMovieService_CreateDuplicate(t *testing.T) {
	_, _, svc := newCachedService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, johnWick())
	require.NoError(t, err)

	again := johnWick()
	again.Directors = []model.Director{{Name: "David Leitch"}, {Name: "Chad Stahelski"}}
	_, err = svc.Create(ctx, again)

	assert.True(t, errors.Is(err, errs.ErrDuplicate))
	id, ok := errs.DuplicateID(err)
	assert.True(t, ok)
	assert.Equal(t, created.ID, id)
}

func TestMovieService_DeleteInvalidates(t *testing.T) {
	_, mr, svc := newCachedService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, johnWick())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.False(t, mr.Exists("rental:movie:1"))

	_, err = svc.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestMovieService_WithoutCache(t *testing.T) {
	logger := zerolog.Nop()
	repo := newFakeMovies()
	svc := NewMovieService(repo, nil, &logger)
	ctx := context.Background()

	created, err := svc.Create(ctx, johnWick())
	require.NoError(t, err)

	_, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	svc.InvalidateAll(ctx)

	movies, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 1)
}
