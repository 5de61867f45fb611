package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"movieapi/movie"
)

const movieColumns = `id, title, director, release_year, genre, imdb_rating`

type MovieRepository struct {
	db *sql.DB
}

func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(row scanner) (movie.Movie, error) {
	var m movie.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Director, &m.ReleaseYear, &m.Genre, &m.ImdbRating)
	return m, err
}

func (r *MovieRepository) FindAll(ctx context.Context) ([]movie.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: find movies: %w", err)
	}
	defer rows.Close()

	movies := []movie.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (*movie.Movie, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)

	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: find movie: %w", err)
	}
	return &m, nil
}

func (r *MovieRepository) Save(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	if m.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO movies (title, director, release_year, genre, imdb_rating)
			 VALUES (?, ?, ?, ?, ?)`,
			m.Title, m.Director, m.ReleaseYear, m.Genre, m.ImdbRating,
		)
		if err != nil {
			return movie.Movie{}, fmt.Errorf("sqlite: insert movie: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return movie.Movie{}, fmt.Errorf("sqlite: insert movie: %w", err)
		}
		m.ID = id
		return m, nil
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (`+movieColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			director = excluded.director,
			release_year = excluded.release_year,
			genre = excluded.genre,
			imdb_rating = excluded.imdb_rating`,
		m.ID, m.Title, m.Director, m.ReleaseYear, m.Genre, m.ImdbRating,
	)
	if err != nil {
		return movie.Movie{}, fmt.Errorf("sqlite: upsert movie: %w", err)
	}
	return m, nil
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id); err != nil {
		return fmt.Errorf("sqlite: delete movie: %w", err)
	}
	return nil
}
