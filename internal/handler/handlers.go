package handler

import (
	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/deppfellow/rental-catalog/internal/server"
	"github.com/deppfellow/rental-catalog/internal/service"
)

// Handlers groups all HTTP handlers for the router.
type Handlers struct {
	Health    *HealthHandler
	Movies    *MovieHandler
	Actors    *NamedHandler[model.Actor]
	Directors *NamedHandler[model.Director]
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(s),
		Movies: NewMovieHandler(s, services.Movies),
		Actors: NewNamedHandler(s, services.Actors, func(id int64, name string) model.Actor {
			return model.Actor{ID: id, Name: name}
		}),
		Directors: NewNamedHandler(s, services.Directors, func(id int64, name string) model.Director {
			return model.Director{ID: id, Name: name}
		}),
	}
}
