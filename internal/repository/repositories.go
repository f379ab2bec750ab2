package repository

import (
	"github.com/deppfellow/rental-catalog/internal/server"
	"github.com/rs/zerolog"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Actors    *ActorRepository
	Directors *DirectorRepository
	Movies    *MovieRepository
}

// NewRepositories builds the repositories on the server's database pool.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.Pool, s.Logger)
}

// New builds the repositories on any DB, a pool in production or a mock in tests.
func New(db DB, logger *zerolog.Logger) *Repositories {
	store := NewStore(db, logger)
	actors := NewActorRepository(store)
	directors := NewDirectorRepository(store)

	return &Repositories{
		Actors:    actors,
		Directors: directors,
		Movies:    NewMovieRepository(store, actors, directors),
	}
}
