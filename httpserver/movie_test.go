package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movieapi/httpserver"
	"movieapi/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) ListMovies(ctx context.Context) ([]movie.Movie, error) {
	args := m.Called(ctx)
	movies, _ := args.Get(0).([]movie.Movie)
	return movies, args.Error(1)
}

func (m *MockMovieService) GetMovie(ctx context.Context, id int64) (*movie.Movie, error) {
	args := m.Called(ctx, id)
	found, _ := args.Get(0).(*movie.Movie)
	return found, args.Error(1)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, mv movie.Movie) (movie.Movie, error) {
	args := m.Called(ctx, mv)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, id int64, patch movie.Patch) (*movie.Movie, error) {
	args := m.Called(ctx, id, patch)
	updated, _ := args.Get(0).(*movie.Movie)
	return updated, args.Error(1)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const inceptionJSON = `{"title":"Inception","director":"Christopher Nolan","releaseYear":2010,"genre":"Sci-Fi","imdbRating":8.8}`

func inception() movie.Movie {
	return movie.Movie{
		Title:       "Inception",
		Director:    "Christopher Nolan",
		ReleaseYear: 2010,
		Genre:       "Sci-Fi",
		ImdbRating:  8.8,
	}
}

func newMovieServer(t *testing.T) (*httpserver.Server, *MockMovieService) {
	t.Helper()
	svc := new(MockMovieService)
	server := mustCreateServer(t,
		httpserver.WithConfig(testConfig()),
		httpserver.WithMovieService(svc),
	)
	return server, svc
}

func TestCreateMovie(t *testing.T) {
	t.Run("should returns 200 with the stored movie", func(t *testing.T) {
		server, svc := newMovieServer(t)
		stored := inception()
		stored.ID = 1
		svc.On("CreateMovie", mock.Anything, inception()).Return(stored, nil).Once()

		recorder := serveMovieRequest(server, http.MethodPost, "/api/movies", inceptionJSON)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, stored, decodeMovie(t, recorder))
		svc.AssertExpectations(t)
	})

	t.Run("should ignore the id in the body", func(t *testing.T) {
		server, svc := newMovieServer(t)
		stored := inception()
		stored.ID = 7
		svc.On("CreateMovie", mock.Anything, inception()).Return(stored, nil).Once()
		body := `{"id":42,` + strings.TrimPrefix(inceptionJSON, "{")

		recorder := serveMovieRequest(server, http.MethodPost, "/api/movies", body)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, int64(7), decodeMovie(t, recorder).ID)
		svc.AssertExpectations(t)
	})

	t.Run("should store zero values for missing fields", func(t *testing.T) {
		server, svc := newMovieServer(t)
		svc.On("CreateMovie", mock.Anything, movie.Movie{Title: "Untitled"}).
			Return(movie.Movie{ID: 3, Title: "Untitled"}, nil).Once()

		recorder := serveMovieRequest(server, http.MethodPost, "/api/movies", `{"title":"Untitled"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
		svc.AssertExpectations(t)
	})

	t.Run("should returns 400 when JSON is malformed", func(t *testing.T) {
		server, svc := newMovieServer(t)

		recorder := serveMovieRequest(server, http.MethodPost, "/api/movies", `{"title": "Inception", invalid json`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		svc.AssertNotCalled(t, "CreateMovie")
	})

	t.Run("should returns 400 when a field has the wrong type", func(t *testing.T) {
		server, svc := newMovieServer(t)

		recorder := serveMovieRequest(server, http.MethodPost, "/api/movies", `{"releaseYear":"twenty ten"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		svc.AssertNotCalled(t, "CreateMovie")
	})

	t.Run("should returns 400 when title is too long", func(t *testing.T) {
		server, svc := newMovieServer(t)
		body := `{"title":"` + strings.Repeat("x", 256) + `"}`

		recorder := serveMovieRequest(server, http.MethodPost, "/api/movies", body)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		assert.Equal(t, "validation error: title failed on max", resp.Message)
		svc.AssertNotCalled(t, "CreateMovie")
	})

	t.Run("should accept any rating and year", func(t *testing.T) {
		server, svc := newMovieServer(t)
		unusual := movie.Movie{Title: "Future Cut", ReleaseYear: 12000, ImdbRating: 11}
		stored := unusual
		stored.ID = 4
		svc.On("CreateMovie", mock.Anything, unusual).Return(stored, nil).Once()

		recorder := serveMovieRequest(server, http.MethodPost, "/api/movies",
			`{"title":"Future Cut","releaseYear":12000,"imdbRating":11}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, stored, decodeMovie(t, recorder))
		svc.AssertExpectations(t)
	})

	t.Run("should returns 400 when body is empty", func(t *testing.T) {
		server, svc := newMovieServer(t)

		recorder := serveMovieRequest(server, http.MethodPost, "/api/movies", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		assert.Equal(t, "request body is required", resp.Message)
		svc.AssertNotCalled(t, "CreateMovie")
	})

	t.Run("should returns 500 when the store fails", func(t *testing.T) {
		server, svc := newMovieServer(t)
		svc.On("CreateMovie", mock.Anything, inception()).Return(movie.Movie{}, errors.New("disk full")).Once()

		recorder := serveMovieRequest(server, http.MethodPost, "/api/movies", inceptionJSON)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "Internal server error", resp.Message)
		assert.NotContains(t, recorder.Body.String(), "disk full")
	})
}

func TestGetMovie(t *testing.T) {
	t.Run("should returns 200 with the movie", func(t *testing.T) {
		server, svc := newMovieServer(t)
		stored := inception()
		stored.ID = 1
		svc.On("GetMovie", mock.Anything, int64(1)).Return(&stored, nil).Once()

		recorder := serveMovieRequest(server, http.MethodGet, "/api/movies/1", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, stored, decodeMovie(t, recorder))
		svc.AssertExpectations(t)
	})

	t.Run("should returns 404 with empty body when absent", func(t *testing.T) {
		server, svc := newMovieServer(t)
		svc.On("GetMovie", mock.Anything, int64(999)).Return(nil, nil).Once()

		recorder := serveMovieRequest(server, http.MethodGet, "/api/movies/999", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Empty(t, recorder.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("should returns 400 when id is not an integer", func(t *testing.T) {
		server, svc := newMovieServer(t)

		recorder := serveMovieRequest(server, http.MethodGet, "/api/movies/abc", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		svc.AssertNotCalled(t, "GetMovie")
	})
}

func TestListMovies(t *testing.T) {
	t.Run("should returns 200 with every movie", func(t *testing.T) {
		server, svc := newMovieServer(t)
		first, second := inception(), movie.Movie{ID: 2, Title: "The Matrix", ReleaseYear: 1999}
		first.ID = 1
		svc.On("ListMovies", mock.Anything).Return([]movie.Movie{first, second}, nil).Once()

		recorder := serveMovieRequest(server, http.MethodGet, "/api/movies", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		var movies []movie.Movie
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &movies))
		assert.Equal(t, []movie.Movie{first, second}, movies)
		svc.AssertExpectations(t)
	})

	t.Run("should returns an empty array when there are no movies", func(t *testing.T) {
		server, svc := newMovieServer(t)
		svc.On("ListMovies", mock.Anything).Return([]movie.Movie{}, nil).Once()

		recorder := serveMovieRequest(server, http.MethodGet, "/api/movies", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `[]`, recorder.Body.String())
	})
}

func TestUpdateMovie(t *testing.T) {
	t.Run("should returns 200 with the updated movie", func(t *testing.T) {
		server, svc := newMovieServer(t)
		updated := inception()
		updated.ID = 1
		updated.ImdbRating = 9.0
		patch := movie.PatchOf(inception())
		rating := 9.0
		patch.ImdbRating = &rating
		svc.On("UpdateMovie", mock.Anything, int64(1), patch).Return(&updated, nil).Once()
		body := strings.Replace(inceptionJSON, `"imdbRating":8.8`, `"imdbRating":9.0`, 1)

		recorder := serveMovieRequest(server, http.MethodPut, "/api/movies/1", body)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, updated, decodeMovie(t, recorder))
		svc.AssertExpectations(t)
	})

	t.Run("should pass only the sent fields", func(t *testing.T) {
		server, svc := newMovieServer(t)
		title := "Inception (2010)"
		svc.On("UpdateMovie", mock.Anything, int64(1), movie.Patch{Title: &title}).
			Return(&movie.Movie{ID: 1, Title: title}, nil).Once()

		recorder := serveMovieRequest(server, http.MethodPut, "/api/movies/1", `{"id":5,"title":"Inception (2010)"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, int64(1), decodeMovie(t, recorder).ID)
		svc.AssertExpectations(t)
	})

	t.Run("should returns 404 with empty body when absent", func(t *testing.T) {
		server, svc := newMovieServer(t)
		svc.On("UpdateMovie", mock.Anything, int64(999), mock.Anything).Return(nil, nil).Once()

		recorder := serveMovieRequest(server, http.MethodPut, "/api/movies/999", inceptionJSON)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Empty(t, recorder.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("should returns 400 when JSON is malformed", func(t *testing.T) {
		server, svc := newMovieServer(t)

		recorder := serveMovieRequest(server, http.MethodPut, "/api/movies/1", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		svc.AssertNotCalled(t, "UpdateMovie")
	})

	t.Run("should returns 400 when body is empty", func(t *testing.T) {
		server, svc := newMovieServer(t)

		recorder := serveMovieRequest(server, http.MethodPut, "/api/movies/1", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeAPIResponse(t, recorder)
		assert.Equal(t, "100010", resp.Code)
		svc.AssertNotCalled(t, "UpdateMovie")
	})

	t.Run("should returns 400 when id is not an integer", func(t *testing.T) {
		server, svc := newMovieServer(t)

		recorder := serveMovieRequest(server, http.MethodPut, "/api/movies/1.5", inceptionJSON)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		svc.AssertNotCalled(t, "UpdateMovie")
	})
}

func TestDeleteMovie(t *testing.T) {
	t.Run("should returns 204", func(t *testing.T) {
		server, svc := newMovieServer(t)
		svc.On("DeleteMovie", mock.Anything, int64(1)).Return(nil).Once()

		recorder := serveMovieRequest(server, http.MethodDelete, "/api/movies/1", "")

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("should returns 500 when the store fails", func(t *testing.T) {
		server, svc := newMovieServer(t)
		svc.On("DeleteMovie", mock.Anything, int64(1)).Return(errors.New("connection reset")).Once()

		recorder := serveMovieRequest(server, http.MethodDelete, "/api/movies/1", "")

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestMovieRoutesWithoutService(t *testing.T) {
	server := mustCreateServer(t)

	recorder := serveMovieRequest(server, http.MethodGet, "/api/movies", "")

	assert.Equal(t, http.StatusNotImplemented, recorder.Code)
	resp := decodeAPIResponse(t, recorder)
	assert.Equal(t, "100501", resp.Code)
}

func serveMovieRequest(server *httpserver.Server, method, path, body string) *httptest.ResponseRecorder {
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, path, nil)
	} else {
		request = httptest.NewRequest(method, path, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	server.Router.ServeHTTP(recorder, request)
	return recorder
}

func decodeMovie(t *testing.T, recorder *httptest.ResponseRecorder) movie.Movie {
	t.Helper()
	var m movie.Movie
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &m))
	return m
}
