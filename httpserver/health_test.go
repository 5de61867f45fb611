package httpserver_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"movieapi/httpserver"
	"movieapi/memory"
	"movieapi/movie"

	"github.com/stretchr/testify/assert"
)

func TestHealthcheck(t *testing.T) {
	t.Run("reports OK with a movie service", func(t *testing.T) {
		server := mustCreateServer(t,
			httpserver.WithConfig(testConfig()),
			httpserver.WithMovieService(movie.NewUsecase(memory.NewMovieRepository())),
		)

		req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		rec := httptest.NewRecorder()

		server.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"200"`)
		assert.Contains(t, rec.Body.String(), `"message":"OK"`)
		assert.Contains(t, rec.Body.String(), `"status":"OK"`)
		assert.Contains(t, rec.Body.String(), `"store":"memory"`)
	})

	t.Run("reports DEGRADED without a movie service", func(t *testing.T) {
		server := mustCreateServer(t)

		req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
		rec := httptest.NewRecorder()

		server.Router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"DEGRADED"`)
	})
}
