package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/deppfellow/rental-catalog/internal/errs"
	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorRepository_Get(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.get)).
		WithArgs(int64(3)).
		WillReturnRows(nameRows("actor_id", entry{3, "Keanu Reeves"}))

	actor, err := f.repos.Actors.Get(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, model.Actor{ID: 3, Name: "Keanu Reeves"}, actor)
	f.verify(t)
}

func TestActorRepository_GetMissing(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.get)).
		WithArgs(int64(99)).
		WillReturnRows(nameRows("actor_id"))

	_, err := f.repos.Actors.Get(context.Background(), 99)

	var e *errs.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, errs.NotFound, e.Kind)
	assert.Equal(t, "actor", e.Entity)
	assert.Equal(t, int64(99), e.ID)
	f.verify(t)
}

func TestActorRepository_GetAll(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.getAll)).
		WillReturnRows(nameRows("actor_id", entry{1, "Keanu Reeves"}, entry{2, "Alfie Allen"}))

	actors, err := f.repos.Actors.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Actor{{ID: 1, Name: "Keanu Reeves"}, {ID: 2, Name: "Alfie Allen"}}, actors)
	f.verify(t)
}

func TestActorRepository_GetAllEmpty(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta(f.repos.Actors.q.getAll)).
		WillReturnRows(nameRows("actor_id"))

	actors, err := f.repos.Actors.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, actors)
	assert.Empty(t, actors)
	f.verify(t)
}

func TestActorRepository_StoreUnavailable(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta(f.repos.Actors.q.getAll)).
		WillReturnError(&pgconn.PgError{Code: "57P01", Message: "terminating connection"})

	_, err := f.repos.Actors.GetAll(context.Background())

	assert.True(t, errors.Is(err, errs.ErrStoreUnavailable))
	f.verify(t)
}

func TestActorRepository_Insert(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.findByName)).
		WithArgs("Keanu Reeves").
		WillReturnRows(nameRows("actor_id"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(q.insert)).
		WithArgs("Keanu Reeves").
		WillReturnRows(pgxmock.NewRows([]string{"actor_id"}).AddRow(int64(7)))
	f.mock.ExpectCommit()

	id, err := f.repos.Actors.Insert(context.Background(), model.Actor{Name: "Keanu Reeves"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	f.verify(t)
}

func TestActorRepository_InsertTwiceIsDuplicate(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.findByName)).
		WithArgs("Keanu Reeves").
		WillReturnRows(nameRows("actor_id"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(q.insert)).
		WithArgs("Keanu Reeves").
		WillReturnRows(pgxmock.NewRows([]string{"actor_id"}).AddRow(int64(7)))
	f.mock.ExpectCommit()

	// The second attempt differs only in case and writes nothing.
	f.mock.ExpectQuery(regexp.QuoteMeta(q.findByName)).
		WithArgs("keanu reeves").
		WillReturnRows(nameRows("actor_id", entry{7, "Keanu Reeves"}))

	first, err := f.repos.Actors.Insert(context.Background(), model.Actor{Name: "Keanu Reeves"})
	require.NoError(t, err)

	second, err := f.repos.Actors.Insert(context.Background(), model.Actor{Name: "keanu reeves"})
	assert.True(t, errors.Is(err, errs.ErrDuplicate))
	assert.Equal(t, first, second)

	existing, ok := errs.DuplicateID(err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), existing)
	f.verify(t)
}

func TestActorRepository_InsertEmptyName(t *testing.T) {
	f := newFixture(t)

	_, err := f.repos.Actors.Insert(context.Background(), model.Actor{Name: "  "})

	assert.True(t, errors.Is(err, errs.ErrInvalid))
	f.verify(t)
}

func TestActorRepository_InsertNoGeneratedID(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.findByName)).
		WithArgs("Keanu Reeves").
		WillReturnRows(nameRows("actor_id"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(q.insert)).
		WithArgs("Keanu Reeves").
		WillReturnRows(pgxmock.NewRows([]string{"actor_id"}))
	f.mock.ExpectRollback()

	_, err := f.repos.Actors.Insert(context.Background(), model.Actor{Name: "Keanu Reeves"})

	assert.True(t, errors.Is(err, errs.ErrOperationFailed))
	f.verify(t)
}

func TestActorRepository_Update(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.get)).
		WithArgs(int64(3)).
		WillReturnRows(nameRows("actor_id", entry{3, "Keanu Reves"}))
	f.mock.ExpectQuery(regexp.QuoteMeta(q.findByName)).
		WithArgs("Keanu Reeves").
		WillReturnRows(nameRows("actor_id"))
	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta(q.update)).
		WithArgs("Keanu Reeves", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	f.mock.ExpectCommit()

	err := f.repos.Actors.Update(context.Background(), model.Actor{ID: 3, Name: "Keanu Reeves"})

	require.NoError(t, err)
	f.verify(t)
}

func TestActorRepository_UpdateNoChange(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta(f.repos.Actors.q.get)).
		WithArgs(int64(3)).
		WillReturnRows(nameRows("actor_id", entry{3, "Keanu Reeves"}))

	err := f.repos.Actors.Update(context.Background(), model.Actor{ID: 3, Name: "Keanu Reeves"})

	assert.True(t, errors.Is(err, errs.ErrNoChange))
	f.verify(t)
}

func TestActorRepository_UpdateNameTaken(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.get)).
		WithArgs(int64(3)).
		WillReturnRows(nameRows("actor_id", entry{3, "Alfie Allen"}))
	f.mock.ExpectQuery(regexp.QuoteMeta(q.findByName)).
		WithArgs("Keanu Reeves").
		WillReturnRows(nameRows("actor_id", entry{1, "Keanu Reeves"}))

	err := f.repos.Actors.Update(context.Background(), model.Actor{ID: 3, Name: "Keanu Reeves"})

	assert.True(t, errors.Is(err, errs.ErrDuplicate))
	id, _ := errs.DuplicateID(err)
	assert.Equal(t, int64(1), id)
	f.verify(t)
}

func TestActorRepository_UpdateMissing(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta(f.repos.Actors.q.get)).
		WithArgs(int64(42)).
		WillReturnRows(nameRows("actor_id"))

	err := f.repos.Actors.Update(context.Background(), model.Actor{ID: 42, Name: "Nobody"})

	assert.True(t, errors.Is(err, errs.ErrNotFound))
	f.verify(t)
}

func TestActorRepository_UpdateRowCountMismatch(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.get)).
		WithArgs(int64(3)).
		WillReturnRows(nameRows("actor_id", entry{3, "Keanu Reves"}))
	f.mock.ExpectQuery(regexp.QuoteMeta(q.findByName)).
		WithArgs("Keanu Reeves").
		WillReturnRows(nameRows("actor_id"))
	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta(q.update)).
		WithArgs("Keanu Reeves", int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	f.mock.ExpectRollback()

	err := f.repos.Actors.Update(context.Background(), model.Actor{ID: 3, Name: "Keanu Reeves"})

	assert.True(t, errors.Is(err, errs.ErrOperationFailed))
	f.verify(t)
}

func TestActorRepository_Delete(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.get)).
		WithArgs(int64(3)).
		WillReturnRows(nameRows("actor_id", entry{3, "Keanu Reeves"}))
	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta(q.delete)).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	f.mock.ExpectCommit()

	err := f.repos.Actors.Delete(context.Background(), model.Actor{ID: 3})

	require.NoError(t, err)
	f.verify(t)
}

func TestActorRepository_DeleteStillCast(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Actors.q

	f.mock.ExpectQuery(regexp.QuoteMeta(q.get)).
		WithArgs(int64(3)).
		WillReturnRows(nameRows("actor_id", entry{3, "Keanu Reeves"}))
	f.mock.ExpectBegin()
	f.mock.ExpectExec(regexp.QuoteMeta(q.delete)).
		WithArgs(int64(3)).
		WillReturnError(&pgconn.PgError{
			Code:           "23503",
			Message:        "update or delete on table \"actors\" violates foreign key constraint",
			TableName:      "movies_actors",
			ConstraintName: "movies_actors_actor_id_fkey",
		})
	f.mock.ExpectRollback()

	err := f.repos.Actors.Delete(context.Background(), model.Actor{ID: 3})

	assert.True(t, errors.Is(err, errs.ErrOperationFailed))
	f.verify(t)
}

func TestActorRepository_DeleteMissing(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta(f.repos.Actors.q.get)).
		WithArgs(int64(3)).
		WillReturnRows(nameRows("actor_id"))

	err := f.repos.Actors.Delete(context.Background(), model.Actor{ID: 3})

	assert.True(t, errors.Is(err, errs.ErrNotFound))
	f.verify(t)
}

func TestDirectorRepository_InsertAndDuplicate(t *testing.T) {
	f := newFixture(t)
	q := f.repos.Directors.q

	assert.Contains(t, q.insert, "INSERT INTO directors")

	f.mock.ExpectQuery(regexp.QuoteMeta(q.findByName)).
		WithArgs("Chad Stahelski").
		WillReturnRows(nameRows("director_id"))
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta(q.insert)).
		WithArgs("Chad Stahelski").
		WillReturnRows(pgxmock.NewRows([]string{"director_id"}).AddRow(int64(11)))
	f.mock.ExpectCommit()
	f.mock.ExpectQuery(regexp.QuoteMeta(q.findByName)).
		WithArgs("CHAD STAHELSKI").
		WillReturnRows(nameRows("director_id", entry{11, "Chad Stahelski"}))

	id, err := f.repos.Directors.Insert(context.Background(), model.Director{Name: "Chad Stahelski"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	_, err = f.repos.Directors.Insert(context.Background(), model.Director{Name: "CHAD STAHELSKI"})
	var e *errs.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, errs.Duplicate, e.Kind)
	assert.Equal(t, "director", e.Entity)
	f.verify(t)
}

func TestDirectorRepository_FindByName(t *testing.T) {
	f := newFixture(t)

	f.mock.ExpectQuery(regexp.QuoteMeta(f.repos.Directors.q.findByName)).
		WithArgs("david leitch").
		WillReturnRows(nameRows("director_id", entry{12, "David Leitch"}))

	d, err := f.repos.Directors.FindByName(context.Background(), "david leitch")

	require.NoError(t, err)
	assert.Equal(t, model.Director{ID: 12, Name: "David Leitch"}, d)
	f.verify(t)
}
