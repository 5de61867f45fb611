// Package memory provides an in-process movie store. Data is lost on
// restart; it backs tests and the "memory" DB driver.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"movieapi/movie"
)

// MovieRepository implements movie.Repository with a map guarded by a
// RWMutex. Identifiers come from a monotonic sequence and are never reused.
type MovieRepository struct {
	mu     sync.RWMutex
	movies map[int64]movie.Movie
	lastID int64
}

func NewMovieRepository() *MovieRepository {
	return &MovieRepository{
		movies: make(map[int64]movie.Movie),
	}
}

func (r *MovieRepository) FindAll(ctx context.Context) ([]movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("memory: find movies: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := make([]movie.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		movies = append(movies, m)
	}
	sort.Slice(movies, func(i, j int) bool {
		return movies[i].ID < movies[j].ID
	})
	return movies, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (*movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("memory: find movie: %w", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.movies[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MovieRepository) Save(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if err := ctx.Err(); err != nil {
		return movie.Movie{}, fmt.Errorf("memory: save movie: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == 0 {
		r.lastID++
		m.ID = r.lastID
	} else if m.ID > r.lastID {
		r.lastID = m.ID
	}
	r.movies[m.ID] = m
	return m, nil
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("memory: delete movie: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.movies, id)
	return nil
}
