package httpserver

import (
	"movieapi/movie"
)

// MovieRequest is the body of create and update calls. Pointer fields tell
// a missing field apart from a zero value; the id is accepted for wire
// compatibility and ignored.
type MovieRequest struct {
	ID          *int64   `json:"id"`
	Title       *string  `json:"title" validate:"omitempty,max=255"`
	Director    *string  `json:"director" validate:"omitempty,max=255"`
	ReleaseYear *int     `json:"releaseYear"`
	Genre       *string  `json:"genre" validate:"omitempty,max=100"`
	ImdbRating  *float64 `json:"imdbRating"`
}

func (r MovieRequest) ToPatch() movie.Patch {
	return movie.Patch{
		Title:       r.Title,
		Director:    r.Director,
		ReleaseYear: r.ReleaseYear,
		Genre:       r.Genre,
		ImdbRating:  r.ImdbRating,
	}
}

// ToMovie returns the movie described by the request. Missing fields are
// zero valued.
func (r MovieRequest) ToMovie() movie.Movie {
	return movie.MergeOverwrite.Apply(movie.Movie{}, r.ToPatch())
}
