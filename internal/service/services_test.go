package service

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/rental-catalog/internal/config"
	"github.com/deppfellow/rental-catalog/internal/repository"
	"github.com/deppfellow/rental-catalog/internal/server"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServicesServer(t *testing.T) (*server.Server, *repository.Repositories) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	s := &server.Server{Config: config.DefaultConfig(), Logger: &logger}
	return s, repository.New(mock, &logger)
}

func TestNewService_WithoutRedisHasNoCache(t *testing.T) {
	s, repos := newServicesServer(t)

	services := NewService(s, repos)

	// A typed nil pointer in the interface would pass assert.Nil.
	assert.True(t, services.Movies.cache == nil)
	assert.NotNil(t, services.Actors)
	assert.NotNil(t, services.Directors)
}

func TestNewService_WithRedisCaches(t *testing.T) {
	s, repos := newServicesServer(t)

	mr := miniredis.RunT(t)
	s.Redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = s.Redis.Close() })

	services := NewService(s, repos)

	assert.NotNil(t, services.Movies.cache)
}
