package movie_test

import (
	"testing"

	"movieapi/movie"

	"github.com/stretchr/testify/assert"
)

func TestParseMergePolicy(t *testing.T) {
	tests := []struct {
		in       string
		expected movie.MergePolicy
		wantErr  bool
	}{
		{in: "", expected: movie.MergeOverwrite},
		{in: "overwrite", expected: movie.MergeOverwrite},
		{in: " Sparse ", expected: movie.MergeSparse},
		{in: "merge", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := movie.ParseMergePolicy(tt.in)
			if tt.wantErr {
				assert.Equal(t, movie.ErrInvalidMergePolicy, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMergePolicy_Apply(t *testing.T) {
	stored := movie.Movie{
		ID:          3,
		Title:       "Inception",
		Director:    "Christopher Nolan",
		ReleaseYear: 2010,
		Genre:       "Sci-Fi",
		ImdbRating:  8.8,
	}
	rating := 9.1
	patch := movie.Patch{ImdbRating: &rating}

	t.Run("overwrite", func(t *testing.T) {
		got := movie.MergeOverwrite.Apply(stored, patch)

		assert.Equal(t, movie.Movie{ID: 3, ImdbRating: 9.1}, got)
	})

	t.Run("sparse", func(t *testing.T) {
		expected := stored
		expected.ImdbRating = 9.1

		got := movie.MergeSparse.Apply(stored, patch)

		assert.Equal(t, expected, got)
	})

	t.Run("full patch gives the same result under both policies", func(t *testing.T) {
		full := movie.PatchOf(movie.Movie{Title: "Tenet", Director: "Christopher Nolan", ReleaseYear: 2020, Genre: "Action", ImdbRating: 7.3})

		assert.Equal(t, movie.MergeOverwrite.Apply(stored, full), movie.MergeSparse.Apply(stored, full))
		assert.Equal(t, int64(3), movie.MergeSparse.Apply(stored, full).ID)
	})
}
