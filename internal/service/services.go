package service

import (
	"time"

	"github.com/deppfellow/rental-catalog/internal/cache"
	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/deppfellow/rental-catalog/internal/repository"
	"github.com/deppfellow/rental-catalog/internal/server"
)

type Services struct {
	Movies    *MovieService
	Actors    *NamedService[model.Actor]
	Directors *NamedService[model.Director]
}

func NewService(s *server.Server, repos *repository.Repositories) *Services {
	movies := NewMovieService(repos.Movies, movieCache(s), s.Logger)

	return &Services{
		Movies:    movies,
		Actors:    NewNamedService[model.Actor]("actor", repos.Actors, movies.InvalidateAll, s.Logger),
		Directors: NewNamedService[model.Director]("director", repos.Directors, movies.InvalidateAll, s.Logger),
	}
}

// movieCache returns a nil interface, not a nil *cache.MovieCache, when
// Redis is not configured.
func movieCache(s *server.Server) MovieCache {
	c := cache.NewMovieCache(s.Redis, time.Duration(s.Config.Redis.CacheTTL)*time.Second, s.Logger)
	if c == nil {
		return nil
	}
	return c
}
