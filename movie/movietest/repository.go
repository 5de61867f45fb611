// Package movietest holds a conformance suite every movie.Repository
// implementation is expected to pass.
package movietest

import (
	"context"
	"testing"

	"movieapi/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Inception is the movie used across the suite.
func Inception() movie.Movie {
	return movie.Movie{
		Title:       "Inception",
		Director:    "Christopher Nolan",
		ReleaseYear: 2010,
		Genre:       "Sci-Fi",
		ImdbRating:  8.8,
	}
}

// Matrix is a second movie for listing tests.
func Matrix() movie.Movie {
	return movie.Movie{
		Title:       "The Matrix",
		Director:    "Wachowski Sisters",
		ReleaseYear: 1999,
		Genre:       "Sci-Fi",
		ImdbRating:  8.7,
	}
}

// RunRepositoryTests runs the suite. newRepo must return an empty
// repository on every call.
// nolint: funlen
func RunRepositoryTests(t *testing.T, newRepo func(t *testing.T) movie.Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("FindAll on empty store", func(t *testing.T) {
		r := newRepo(t)

		movies, err := r.FindAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, movies)
	})

	t.Run("Save assigns an identifier", func(t *testing.T) {
		r := newRepo(t)

		saved, err := r.Save(ctx, Inception())

		require.NoError(t, err)
		assert.NotZero(t, saved.ID)
		expected := Inception()
		expected.ID = saved.ID
		assert.Equal(t, expected, saved)
	})

	t.Run("Save assigns distinct identifiers", func(t *testing.T) {
		r := newRepo(t)

		first, err := r.Save(ctx, Inception())
		require.NoError(t, err)
		second, err := r.Save(ctx, Inception())
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("FindByID returns the saved movie", func(t *testing.T) {
		r := newRepo(t)
		saved, err := r.Save(ctx, Inception())
		require.NoError(t, err)

		found, err := r.FindByID(ctx, saved.ID)

		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, saved, *found)
	})

	t.Run("FindByID on unknown id returns nil", func(t *testing.T) {
		r := newRepo(t)

		found, err := r.FindByID(ctx, 999)

		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Save with identifier overwrites", func(t *testing.T) {
		r := newRepo(t)
		saved, err := r.Save(ctx, Inception())
		require.NoError(t, err)

		changed := saved
		changed.Title = "Inception Updated"
		changed.ImdbRating = 9.0
		_, err = r.Save(ctx, changed)
		require.NoError(t, err)

		found, err := r.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, changed, *found)

		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("FindAll returns every movie ordered by id", func(t *testing.T) {
		r := newRepo(t)
		first, err := r.Save(ctx, Inception())
		require.NoError(t, err)
		second, err := r.Save(ctx, Matrix())
		require.NoError(t, err)

		movies, err := r.FindAll(ctx)

		require.NoError(t, err)
		assert.Equal(t, []movie.Movie{first, second}, movies)
	})

	t.Run("DeleteByID removes the movie", func(t *testing.T) {
		r := newRepo(t)
		saved, err := r.Save(ctx, Inception())
		require.NoError(t, err)

		require.NoError(t, r.DeleteByID(ctx, saved.ID))

		found, err := r.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("DeleteByID on unknown id is a no-op", func(t *testing.T) {
		r := newRepo(t)
		saved, err := r.Save(ctx, Inception())
		require.NoError(t, err)

		assert.NoError(t, r.DeleteByID(ctx, 999))
		assert.NoError(t, r.DeleteByID(ctx, 999))

		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []movie.Movie{saved}, all)
	})

	t.Run("identifiers are not reused after delete", func(t *testing.T) {
		r := newRepo(t)
		first, err := r.Save(ctx, Inception())
		require.NoError(t, err)
		require.NoError(t, r.DeleteByID(ctx, first.ID))

		second, err := r.Save(ctx, Matrix())

		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
	})
}
