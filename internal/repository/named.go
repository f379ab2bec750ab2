package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/deppfellow/rental-catalog/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// namedQueries is the SQL for a two-column (id, name) table.
type namedQueries struct {
	get        string
	getAll     string
	findByName string
	insert     string
	update     string
	delete     string
}

func newNamedQueries(table, idColumn string) namedQueries {
	return namedQueries{
		get:        fmt.Sprintf("SELECT %s, name FROM %s WHERE %s = $1", idColumn, table, idColumn),
		getAll:     fmt.Sprintf("SELECT %s, name FROM %s ORDER BY %s", idColumn, table, idColumn),
		findByName: fmt.Sprintf("SELECT %s, name FROM %s WHERE lower(name) = lower($1) ORDER BY %s LIMIT 1", idColumn, table, idColumn),
		insert:     fmt.Sprintf("INSERT INTO %s (name) VALUES ($1) RETURNING %s", table, idColumn),
		update:     fmt.Sprintf("UPDATE %s SET name = $1 WHERE %s = $2", table, idColumn),
		delete:     fmt.Sprintf("DELETE FROM %s WHERE %s = $1", table, idColumn),
	}
}

// namedRepository implements CRUD with duplicate-by-name detection for
// entities that are just an id and a name. Actors and directors share it.
type namedRepository[T any] struct {
	store  *Store
	log    zerolog.Logger
	entity string
	q      namedQueries

	build func(id int64, name string) T
	split func(T) (int64, string)
}

func (r *namedRepository[T]) scan(row pgx.CollectableRow) (T, error) {
	var (
		id   int64
		name string
	)
	err := row.Scan(&id, &name)
	return r.build(id, name), err
}

// fail classifies a store error and tags it with this repository's entity.
func (r *namedRepository[T]) fail(err error) error {
	return errs.WithEntity(sqlerr.HandleError(err), r.entity)
}

// Get returns the row with the given primary key.
func (r *namedRepository[T]) Get(ctx context.Context, id int64) (T, error) {
	var zero T

	rows, err := r.store.db.Query(ctx, r.q.get, id)
	if err != nil {
		return zero, r.fail(err)
	}
	item, err := pgx.CollectOneRow(rows, r.scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, errs.NotFoundError(r.entity, id)
	}
	if err != nil {
		return zero, r.fail(err)
	}
	return item, nil
}

// GetAll returns every row ordered by id. An empty table gives an empty slice.
func (r *namedRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	rows, err := r.store.db.Query(ctx, r.q.getAll)
	if err != nil {
		return nil, r.fail(err)
	}
	items, err := pgx.CollectRows(rows, r.scan)
	if err != nil {
		return nil, r.fail(err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// FindByName looks a row up by case-insensitive name.
func (r *namedRepository[T]) FindByName(ctx context.Context, name string) (T, error) {
	return r.findByNameWith(ctx, r.store.db, name)
}

func (r *namedRepository[T]) findByNameWith(ctx context.Context, q Querier, name string) (T, error) {
	var zero T

	rows, err := q.Query(ctx, r.q.findByName, name)
	if err != nil {
		return zero, r.fail(err)
	}
	item, err := pgx.CollectOneRow(rows, r.scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return zero, &errs.Error{
			Kind:    errs.NotFound,
			Entity:  r.entity,
			Message: fmt.Sprintf("no %s named %q", r.entity, name),
		}
	}
	if err != nil {
		return zero, r.fail(err)
	}
	return item, nil
}

// Insert stores item and returns the generated id.
//
// When a row with the same name already exists nothing is written and the
// existing id is returned together with a Duplicate error, so callers can
// tell "already there" apart from "inserted".
func (r *namedRepository[T]) Insert(ctx context.Context, item T) (int64, error) {
	_, name := r.split(item)
	if strings.TrimSpace(name) == "" {
		return 0, errs.InvalidError(r.entity, "name is required")
	}

	if existingID, err := r.existing(ctx, r.store.db, name); err != nil || existingID != 0 {
		return existingID, err
	}

	var id int64
	err := r.store.InTx(ctx, func(q Querier) error {
		var err error
		id, err = r.insertRow(ctx, q, name)
		return err
	})
	if err != nil {
		return 0, err
	}

	r.log.Debug().Str("operation", "insert").Int64("id", id).Str("name", name).Msg("inserted")
	return id, nil
}

// insertWith is Insert on a caller-owned Querier, usually a transaction.
func (r *namedRepository[T]) insertWith(ctx context.Context, q Querier, item T) (int64, error) {
	_, name := r.split(item)
	if strings.TrimSpace(name) == "" {
		return 0, errs.InvalidError(r.entity, "name is required")
	}

	if existingID, err := r.existing(ctx, q, name); err != nil || existingID != 0 {
		return existingID, err
	}
	return r.insertRow(ctx, q, name)
}

// existing returns (id, Duplicate) when name is taken, (0, nil) when it is free.
func (r *namedRepository[T]) existing(ctx context.Context, q Querier, name string) (int64, error) {
	found, err := r.findByNameWith(ctx, q, name)
	if errors.Is(err, errs.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	id, _ := r.split(found)
	return id, errs.DuplicateError(r.entity, id)
}

func (r *namedRepository[T]) insertRow(ctx context.Context, q Querier, name string) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, r.q.insert, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) || (err == nil && id == 0) {
		return 0, errs.OperationFailedError(r.entity, "store returned no generated id", err)
	}
	if err != nil {
		return 0, r.fail(err)
	}
	return id, nil
}

// findOrCreate resolves item to a row id, inserting it when its name is new.
func (r *namedRepository[T]) findOrCreate(ctx context.Context, q Querier, item T) (int64, error) {
	id, err := r.insertWith(ctx, q, item)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, errs.ErrDuplicate) {
		return 0, err
	}
	if id, ok := errs.DuplicateID(err); ok {
		return id, nil
	}

	_, name := r.split(item)
	found, err := r.findByNameWith(ctx, q, name)
	if err != nil {
		return 0, err
	}
	id, _ = r.split(found)
	return id, nil
}

// Update renames the row identified by item's id.
//
//   - NotFound when the id does not exist
//   - NoChange when the stored row already equals item
//   - Duplicate when another row already carries the new name
//   - OperationFailed when the update does not touch exactly one row
func (r *namedRepository[T]) Update(ctx context.Context, item T) error {
	id, name := r.split(item)
	if strings.TrimSpace(name) == "" {
		return errs.InvalidError(r.entity, "name is required")
	}

	current, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if currentID, currentName := r.split(current); currentID == id && currentName == name {
		r.log.Debug().Str("operation", "update").Int64("id", id).Msg("stored state identical")
		return errs.NoChangeError(r.entity, id)
	}

	found, err := r.FindByName(ctx, name)
	switch {
	case err == nil:
		if foundID, _ := r.split(found); foundID != id {
			return errs.DuplicateError(r.entity, foundID)
		}
	case !errors.Is(err, errs.ErrNotFound):
		return err
	}

	err = r.store.InTx(ctx, func(q Querier) error {
		tag, err := q.Exec(ctx, r.q.update, name, id)
		if err != nil {
			return r.fail(err)
		}
		if n := tag.RowsAffected(); n != 1 {
			return errs.OperationFailedError(r.entity, fmt.Sprintf("update affected %d rows", n), nil)
		}
		return nil
	})
	if err != nil {
		r.log.Warn().Err(err).Str("operation", "update").Int64("id", id).Msg("update failed")
		return err
	}

	r.log.Debug().Str("operation", "update").Int64("id", id).Str("name", name).Msg("updated")
	return nil
}

// Delete removes the row identified by item's id. Rows still referenced by
// a movie are rejected by the schema and reported as OperationFailed.
func (r *namedRepository[T]) Delete(ctx context.Context, item T) error {
	id, _ := r.split(item)

	if _, err := r.Get(ctx, id); err != nil {
		return err
	}

	err := r.store.InTx(ctx, func(q Querier) error {
		tag, err := q.Exec(ctx, r.q.delete, id)
		if err != nil {
			return r.fail(err)
		}
		if n := tag.RowsAffected(); n != 1 {
			return errs.OperationFailedError(r.entity, fmt.Sprintf("delete affected %d rows", n), nil)
		}
		return nil
	})
	if err != nil {
		r.log.Warn().Err(err).Str("operation", "delete").Int64("id", id).Msg("delete failed")
		return err
	}

	r.log.Debug().Str("operation", "delete").Int64("id", id).Msg("deleted")
	return nil
}
