package repository

import (
	"testing"

	"github.com/deppfellow/rental-catalog/internal/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	mock  pgxmock.PgxPoolIface
	repos *Repositories
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	logger := zerolog.Nop()
	return &fixture{mock: mock, repos: New(mock, &logger)}
}

// verify fails the test when an expected statement was never issued.
func (f *fixture) verify(t *testing.T) {
	t.Helper()
	require.NoError(t, f.mock.ExpectationsWereMet())
}

type entry struct {
	id   int64
	name string
}

func nameRows(idColumn string, entries ...entry) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{idColumn, "name"})
	for _, e := range entries {
		rows.AddRow(e.id, e.name)
	}
	return rows
}

func idRows(ids ...int64) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"movie_id"})
	for _, id := range ids {
		rows.AddRow(id)
	}
	return rows
}

func movieRows(m model.Movie) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"movie_id", "title", "year", "length", "media_type",
		"media_cover", "media_origin", "num_of_rents", "is_rented",
	}).AddRow(
		m.ID, m.Title, m.Year, m.Length, m.MediaType,
		m.MediaCover, m.MediaOrigin, m.NumOfRents, m.IsRented,
	)
}

func johnWick() model.Movie {
	return model.Movie{
		Title:       "John Wick",
		Year:        2014,
		Length:      101,
		MediaType:   "dvd",
		MediaCover:  "john-wick.jpg",
		MediaOrigin: "USA",
		Actors: []model.Actor{
			{Name: "Keanu Reeves"},
			{Name: "Michael Nyqvist"},
			{Name: "Alfie Allen"},
		},
		Directors: []model.Director{
			{Name: "Chad Stahelski"},
			{Name: "David Leitch"},
		},
	}
}
