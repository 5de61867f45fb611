package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"movieapi/movie"
	"movieapi/movie/movietest"
	"movieapi/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDatabase(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "movies.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestMovieRepository(t *testing.T) {
	movietest.RunRepositoryTests(t, func(t *testing.T) movie.Repository {
		return sqlite.NewMovieRepository(openTestDatabase(t))
	})
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "movies.db")

	first, err := sqlite.Open(path)
	require.NoError(t, err)
	saved, err := sqlite.NewMovieRepository(first).Save(context.Background(), movietest.Inception())
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := sqlite.Open(path)
	require.NoError(t, err)
	defer second.Close()

	found, err := sqlite.NewMovieRepository(second).FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, &saved, found)
}

func TestMovieRepository_ClosedDatabase(t *testing.T) {
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "movies.db"))
	require.NoError(t, err)
	repo := sqlite.NewMovieRepository(db)
	require.NoError(t, db.Close())

	_, err = repo.FindAll(context.Background())

	assert.Error(t, err)
}
