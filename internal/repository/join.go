package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/deppfellow/rental-catalog/internal/sqlerr"
)

const (
	qLinkActor    = "INSERT INTO movies_actors (movie_id, actor_id) VALUES ($1, $2)"
	qLinkDirector = "INSERT INTO movies_directors (movie_id, director_id) VALUES ($1, $2)"

	qUnlinkActors    = "DELETE FROM movies_actors WHERE movie_id = $1"
	qUnlinkDirectors = "DELETE FROM movies_directors WHERE movie_id = $1"
)

// resolveIDs maps every item to a row id, creating rows for unseen names.
// Ids come back in input order with repeats removed.
func resolveIDs[T any](ctx context.Context, q Querier, repo *namedRepository[T], items []T) ([]int64, error) {
	ids := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))

	for _, item := range items {
		id, err := repo.findOrCreate(ctx, q, item)
		if err != nil {
			if errs.KindOf(err) == errs.StoreUnavailable {
				return nil, err
			}
			_, name := repo.split(item)
			return nil, errs.OperationFailedError(repo.entity, fmt.Sprintf("could not resolve %q", name), err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *MovieRepository) resolveActors(ctx context.Context, q Querier, actors []model.Actor) ([]int64, error) {
	return resolveIDs(ctx, q, r.actors.namedRepository, actors)
}

func (r *MovieRepository) resolveDirectors(ctx context.Context, q Querier, directors []model.Director) ([]int64, error) {
	return resolveIDs(ctx, q, r.directors.namedRepository, directors)
}

// link writes one join row per id and returns how many were written.
func (r *MovieRepository) link(ctx context.Context, q Querier, sql, entity string, movieID int64, ids []int64) (int, error) {
	linked := 0
	for _, id := range ids {
		tag, err := q.Exec(ctx, sql, movieID, id)
		if err != nil {
			return linked, errs.WithEntity(sqlerr.HandleError(err), entity)
		}
		if tag.RowsAffected() != 1 {
			return linked, errs.OperationFailedError(entity, fmt.Sprintf("link to movie %d not written", movieID), nil)
		}
		linked++
	}
	return linked, nil
}

func (r *MovieRepository) linkActors(ctx context.Context, q Querier, movieID int64, ids []int64) (int, error) {
	return r.link(ctx, q, qLinkActor, "movie actor", movieID, ids)
}

func (r *MovieRepository) linkDirectors(ctx context.Context, q Querier, movieID int64, ids []int64) (int, error) {
	return r.link(ctx, q, qLinkDirector, "movie director", movieID, ids)
}
