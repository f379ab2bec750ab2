package repository

import (
	"github.com/deppfellow/rental-catalog/internal/model"
)

// DirectorRepository reads and writes the directors table.
type DirectorRepository struct {
	*namedRepository[model.Director]
}

func NewDirectorRepository(store *Store) *DirectorRepository {
	return &DirectorRepository{
		namedRepository: &namedRepository[model.Director]{
			store:  store,
			log:    store.log.With().Str("repository", "director").Logger(),
			entity: "director",
			q:      newNamedQueries("directors", "director_id"),
			build: func(id int64, name string) model.Director {
				return model.Director{ID: id, Name: name}
			},
			split: func(d model.Director) (int64, string) {
				return d.ID, d.Name
			},
		},
	}
}
