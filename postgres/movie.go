package postgres

import (
	"context"
	"errors"

	"movieapi/movie"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieModel represents the database model for movies
type MovieModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Title       string  `gorm:"size:255;not null"`
	Director    string  `gorm:"size:255;not null"`
	ReleaseYear int     `gorm:"column:release_year;not null"`
	Genre       string  `gorm:"size:100;not null"`
	ImdbRating  float64 `gorm:"column:imdb_rating;not null"`
}

// TableName specifies the table name for GORM
func (MovieModel) TableName() string {
	return "movies"
}

func newMovieModel(m movie.Movie) MovieModel {
	return MovieModel{
		ID:          m.ID,
		Title:       m.Title,
		Director:    m.Director,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		ImdbRating:  m.ImdbRating,
	}
}

func (model MovieModel) toMovie() movie.Movie {
	return movie.Movie{
		ID:          model.ID,
		Title:       model.Title,
		Director:    model.Director,
		ReleaseYear: model.ReleaseYear,
		Genre:       model.Genre,
		ImdbRating:  model.ImdbRating,
	}
}

// MovieRepository implements movie.Repository interface
type MovieRepository struct {
	db *gorm.DB
}

// NewMovieRepository creates a new movie repository
func NewMovieRepository(db *gorm.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

func (r *MovieRepository) FindAll(ctx context.Context) ([]movie.Movie, error) {
	var models []MovieModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}

	movies := make([]movie.Movie, len(models))
	for i, model := range models {
		movies[i] = model.toMovie()
	}
	return movies, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id int64) (*movie.Movie, error) {
	var model MovieModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	m := model.toMovie()
	return &m, nil
}

// Save inserts the movie, letting the id sequence assign its identifier,
// or upserts on the primary key when the movie already carries one.
func (r *MovieRepository) Save(ctx context.Context, m movie.Movie) (movie.Movie, error) {
	model := newMovieModel(m)

	tx := r.db.WithContext(ctx)
	if model.ID != 0 {
		tx = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		})
	}
	if err := tx.Create(&model).Error; err != nil {
		return movie.Movie{}, err
	}

	return model.toMovie(), nil
}

func (r *MovieRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&MovieModel{}, id).Error
}
