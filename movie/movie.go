package movie

import (
	"strings"

	"movieapi/errs"
)

var (
	ErrInvalidID          = errs.Errorf(errs.EINVALID, "movie: invalid id")
	ErrInvalidMergePolicy = errs.Errorf(errs.EINVALID, "movie: invalid merge policy")
)

type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	ReleaseYear int     `json:"releaseYear"`
	Genre       string  `json:"genre"`
	ImdbRating  float64 `json:"imdbRating"`
}

// Patch carries the fields of an update request. A nil field was not sent
// by the caller.
type Patch struct {
	Title       *string
	Director    *string
	ReleaseYear *int
	Genre       *string
	ImdbRating  *float64
}

// MergePolicy decides how a Patch is applied to a stored Movie.
type MergePolicy string

const (
	// MergeOverwrite replaces every field, unset patch fields become zero values.
	MergeOverwrite MergePolicy = "overwrite"
	// MergeSparse replaces only the fields present in the patch.
	MergeSparse MergePolicy = "sparse"
)

// ParseMergePolicy accepts "overwrite", "sparse" or an empty string,
// which selects MergeOverwrite.
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", MergeOverwrite:
		return MergeOverwrite, nil
	case MergeSparse:
		return MergeSparse, nil
	default:
		return "", ErrInvalidMergePolicy
	}
}

// Apply returns m with the patch applied under policy p. The identifier of
// m is always kept.
func (p MergePolicy) Apply(m Movie, patch Patch) Movie {
	if p == MergeSparse {
		return patch.merge(m)
	}
	return patch.overwrite(m)
}

func (patch Patch) overwrite(m Movie) Movie {
	return Movie{
		ID:          m.ID,
		Title:       valueOf(patch.Title),
		Director:    valueOf(patch.Director),
		ReleaseYear: valueOf(patch.ReleaseYear),
		Genre:       valueOf(patch.Genre),
		ImdbRating:  valueOf(patch.ImdbRating),
	}
}

func (patch Patch) merge(m Movie) Movie {
	if patch.Title != nil {
		m.Title = *patch.Title
	}
	if patch.Director != nil {
		m.Director = *patch.Director
	}
	if patch.ReleaseYear != nil {
		m.ReleaseYear = *patch.ReleaseYear
	}
	if patch.Genre != nil {
		m.Genre = *patch.Genre
	}
	if patch.ImdbRating != nil {
		m.ImdbRating = *patch.ImdbRating
	}
	return m
}

// PatchOf builds a patch that sets every field to the value held by m.
func PatchOf(m Movie) Patch {
	return Patch{
		Title:       &m.Title,
		Director:    &m.Director,
		ReleaseYear: &m.ReleaseYear,
		Genre:       &m.Genre,
		ImdbRating:  &m.ImdbRating,
	}
}

func valueOf[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
