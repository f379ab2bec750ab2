package repository

import (
	"github.com/deppfellow/rental-catalog/internal/model"
)

// ActorRepository reads and writes the actors table.
type ActorRepository struct {
	*namedRepository[model.Actor]
}

func NewActorRepository(store *Store) *ActorRepository {
	return &ActorRepository{
		namedRepository: &namedRepository[model.Actor]{
			store:  store,
			log:    store.log.With().Str("repository", "actor").Logger(),
			entity: "actor",
			q:      newNamedQueries("actors", "actor_id"),
			build: func(id int64, name string) model.Actor {
				return model.Actor{ID: id, Name: name}
			},
			split: func(a model.Actor) (int64, string) {
				return a.ID, a.Name
			},
		},
	}
}
