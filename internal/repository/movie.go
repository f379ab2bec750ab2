package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/deppfellow/rental-catalog/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const (
	qMovieGet = `SELECT movie_id, title, year, length, media_type, media_cover, media_origin, num_of_rents, is_rented
FROM movies WHERE movie_id = $1`

	qMovieExists  = "SELECT EXISTS (SELECT 1 FROM movies WHERE movie_id = $1)"
	qMovieIDs     = "SELECT movie_id FROM movies ORDER BY movie_id"
	qMovieByTitle = "SELECT movie_id FROM movies WHERE title = $1 ORDER BY movie_id"

	qMovieActors = `SELECT a.actor_id, a.name FROM actors a
INNER JOIN movies_actors ma ON ma.actor_id = a.actor_id WHERE ma.movie_id = $1
ORDER BY ma.actor_id`

	qMovieDirectors = `SELECT d.director_id, d.name FROM directors d
INNER JOIN movies_directors md ON md.director_id = d.director_id WHERE md.movie_id = $1
ORDER BY md.director_id`

	qMovieInsert = `INSERT INTO movies (title, year, length, media_type, media_cover, media_origin, num_of_rents, is_rented)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING movie_id`

	qMovieUpdate = `UPDATE movies SET title = $1, year = $2, length = $3, media_type = $4, media_cover = $5,
media_origin = $6, num_of_rents = $7, is_rented = $8 WHERE movie_id = $9`

	qMovieDelete = "DELETE FROM movies WHERE movie_id = $1"
)

// MovieRepository reads and writes movies together with their cast and crew.
type MovieRepository struct {
	store     *Store
	log       zerolog.Logger
	actors    *ActorRepository
	directors *DirectorRepository
}

func NewMovieRepository(store *Store, actors *ActorRepository, directors *DirectorRepository) *MovieRepository {
	return &MovieRepository{
		store:     store,
		log:       store.log.With().Str("repository", "movie").Logger(),
		actors:    actors,
		directors: directors,
	}
}

func (r *MovieRepository) fail(err error) error {
	return errs.WithEntity(sqlerr.HandleError(err), "movie")
}

// Get loads the movie with its actors and directors.
//
// A movie row that has lost all of its actors or all of its directors is
// reported as NotFound. The three reads share one snapshot, so a
// concurrent delete is seen either fully or not at all.
func (r *MovieRepository) Get(ctx context.Context, id int64) (model.Movie, error) {
	var m model.Movie
	err := r.store.InReadTx(ctx, func(q Querier) error {
		var err error
		m, err = r.load(ctx, q, id)
		return err
	})
	if err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

func (r *MovieRepository) load(ctx context.Context, q Querier, id int64) (model.Movie, error) {
	var m model.Movie
	err := q.QueryRow(ctx, qMovieGet, id).Scan(
		&m.ID, &m.Title, &m.Year, &m.Length,
		&m.MediaType, &m.MediaCover, &m.MediaOrigin,
		&m.NumOfRents, &m.IsRented,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Movie{}, errs.NotFoundError("movie", id)
	}
	if err != nil {
		return model.Movie{}, r.fail(err)
	}

	if m.Actors, err = r.actorsOf(ctx, q, id); err != nil {
		return model.Movie{}, err
	}
	if len(m.Actors) == 0 {
		return model.Movie{}, &errs.Error{Kind: errs.NotFound, Entity: "movie", ID: id, Message: "movie has no actors"}
	}

	if m.Directors, err = r.directorsOf(ctx, q, id); err != nil {
		return model.Movie{}, err
	}
	if len(m.Directors) == 0 {
		return model.Movie{}, &errs.Error{Kind: errs.NotFound, Entity: "movie", ID: id, Message: "movie has no directors"}
	}

	return m, nil
}

func (r *MovieRepository) actorsOf(ctx context.Context, q Querier, movieID int64) ([]model.Actor, error) {
	rows, err := q.Query(ctx, qMovieActors, movieID)
	if err != nil {
		return nil, r.fail(err)
	}
	actors, err := pgx.CollectRows(rows, r.actors.scan)
	if err != nil {
		return nil, r.fail(err)
	}
	return actors, nil
}

func (r *MovieRepository) directorsOf(ctx context.Context, q Querier, movieID int64) ([]model.Director, error) {
	rows, err := q.Query(ctx, qMovieDirectors, movieID)
	if err != nil {
		return nil, r.fail(err)
	}
	directors, err := pgx.CollectRows(rows, r.directors.scan)
	if err != nil {
		return nil, r.fail(err)
	}
	return directors, nil
}

func (r *MovieRepository) collectIDs(ctx context.Context, sql string, args ...any) ([]int64, error) {
	rows, err := r.store.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, r.fail(err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, r.fail(err)
	}
	return ids, nil
}

// GetAll returns every complete movie ordered by id. Movies without actors
// or directors are skipped.
func (r *MovieRepository) GetAll(ctx context.Context) ([]model.Movie, error) {
	ids, err := r.collectIDs(ctx, qMovieIDs)
	if err != nil {
		return nil, err
	}

	movies := make([]model.Movie, 0, len(ids))
	for _, id := range ids {
		m, err := r.Get(ctx, id)
		if errors.Is(err, errs.ErrNotFound) {
			r.log.Warn().Err(err).Int64("movie_id", id).Msg("skipping incomplete movie")
			continue
		}
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// ExistsByTitleAndDirectors reports whether a movie with exactly this title
// and the same set of director names is already stored, and returns its id.
func (r *MovieRepository) ExistsByTitleAndDirectors(ctx context.Context, title string, directors []model.Director) (int64, bool, error) {
	ids, err := r.collectIDs(ctx, qMovieByTitle, title)
	if err != nil {
		return 0, false, err
	}

	for _, id := range ids {
		stored, err := r.directorsOf(ctx, r.store.db, id)
		if err != nil {
			return 0, false, err
		}
		if model.SameDirectors(stored, directors) {
			return id, true, nil
		}
	}
	return 0, false, nil
}

// Insert stores m with its actors and directors and returns the movie id.
//
// Actors and directors are matched by name and created when missing. The
// whole write runs in one transaction: if any step fails, or the movie
// would end up without an actor or a director, nothing is kept. A movie
// with the same title and directors as a stored one is rejected as a
// Duplicate carrying the stored id, before anything is written.
func (r *MovieRepository) Insert(ctx context.Context, m model.Movie) (int64, error) {
	if strings.TrimSpace(m.Title) == "" {
		return 0, errs.InvalidError("movie", "title is required")
	}

	existingID, found, err := r.ExistsByTitleAndDirectors(ctx, m.Title, m.Directors)
	if err != nil {
		return 0, err
	}
	if found {
		r.log.Debug().Str("operation", "insert").Int64("movie_id", existingID).Str("title", m.Title).Msg("movie already stored")
		return existingID, errs.DuplicateError("movie", existingID)
	}

	var movieID int64
	err = r.store.InTx(ctx, func(q Querier) error {
		id, err := r.insertRow(ctx, q, m)
		if err != nil {
			return err
		}

		actorIDs, err := r.resolveActors(ctx, q, m.Actors)
		if err != nil {
			return err
		}
		directorIDs, err := r.resolveDirectors(ctx, q, m.Directors)
		if err != nil {
			return err
		}

		actorLinks, err := r.linkActors(ctx, q, id, actorIDs)
		if err != nil {
			return err
		}
		directorLinks, err := r.linkDirectors(ctx, q, id, directorIDs)
		if err != nil {
			return err
		}

		switch {
		case actorLinks+directorLinks == 0:
			return errs.OperationFailedError("movie", "movie has no actors or directors", nil)
		case actorLinks == 0:
			return errs.OperationFailedError("movie", "movie has no actors", nil)
		case directorLinks == 0:
			return errs.OperationFailedError("movie", "movie has no directors", nil)
		}

		movieID = id
		return nil
	})
	if err != nil {
		r.log.Warn().Err(err).Str("operation", "insert").Str("title", m.Title).Msg("movie insert rolled back")
		return 0, err
	}

	r.log.Debug().Str("operation", "insert").Int64("movie_id", movieID).Str("title", m.Title).Msg("inserted")
	return movieID, nil
}

func (r *MovieRepository) insertRow(ctx context.Context, q Querier, m model.Movie) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, qMovieInsert,
		m.Title, m.Year, m.Length,
		m.MediaType, m.MediaCover, m.MediaOrigin,
		m.NumOfRents, m.IsRented,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && id == 0) {
		return 0, errs.OperationFailedError("movie", "store returned no generated id", err)
	}
	if err != nil {
		return 0, r.fail(err)
	}
	return id, nil
}

// Update overwrites the scalar fields of the stored movie. Actors and
// directors are left as they are.
//
// It fails with NotFound when no complete movie has m.ID and with NoChange
// when the stored scalars already equal m's.
func (r *MovieRepository) Update(ctx context.Context, m model.Movie) error {
	if strings.TrimSpace(m.Title) == "" {
		return errs.InvalidError("movie", "title is required")
	}

	current, err := r.Get(ctx, m.ID)
	if err != nil {
		return err
	}
	if current.ScalarEqual(m) {
		r.log.Debug().Str("operation", "update").Int64("movie_id", m.ID).Msg("stored state identical")
		return errs.NoChangeError("movie", m.ID)
	}

	err = r.store.InTx(ctx, func(q Querier) error {
		tag, err := q.Exec(ctx, qMovieUpdate,
			m.Title, m.Year, m.Length,
			m.MediaType, m.MediaCover, m.MediaOrigin,
			m.NumOfRents, m.IsRented, m.ID,
		)
		if err != nil {
			return r.fail(err)
		}
		if n := tag.RowsAffected(); n != 1 {
			return errs.OperationFailedError("movie", fmt.Sprintf("update affected %d rows", n), nil)
		}
		return nil
	})
	if err != nil {
		r.log.Warn().Err(err).Str("operation", "update").Int64("movie_id", m.ID).Msg("movie update rolled back")
		return err
	}

	r.log.Debug().Str("operation", "update").Int64("movie_id", m.ID).Msg("updated")
	return nil
}

// Delete removes the movie row and its join rows. Actor and director rows
// are kept.
func (r *MovieRepository) Delete(ctx context.Context, m model.Movie) error {
	var exists bool
	if err := r.store.db.QueryRow(ctx, qMovieExists, m.ID).Scan(&exists); err != nil {
		return r.fail(err)
	}
	if !exists {
		return errs.NotFoundError("movie", m.ID)
	}

	err := r.store.InTx(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, qUnlinkActors, m.ID); err != nil {
			return errs.WithEntity(sqlerr.HandleError(err), "movie actor")
		}
		if _, err := q.Exec(ctx, qUnlinkDirectors, m.ID); err != nil {
			return errs.WithEntity(sqlerr.HandleError(err), "movie director")
		}

		tag, err := q.Exec(ctx, qMovieDelete, m.ID)
		if err != nil {
			return r.fail(err)
		}
		if n := tag.RowsAffected(); n != 1 {
			return errs.OperationFailedError("movie", fmt.Sprintf("delete affected %d rows", n), nil)
		}
		return nil
	})
	if err != nil {
		r.log.Warn().Err(err).Str("operation", "delete").Int64("movie_id", m.ID).Msg("movie delete rolled back")
		return err
	}

	r.log.Debug().Str("operation", "delete").Int64("movie_id", m.ID).Msg("deleted")
	return nil
}
