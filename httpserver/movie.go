package httpserver

import (
	"net/http"
	"strconv"

	"movieapi/errs"
	"movieapi/movie"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("", s.handleListMovies)
	g.POST("", s.handleCreateMovie)
	g.GET("/:id", s.handleGetMovie)
	g.PUT("/:id", s.handleUpdateMovie)
	g.DELETE("/:id", s.handleDeleteMovie)
}

func (s *Server) movieService() (movie.Service, error) {
	if s.MovieService == nil {
		return nil, errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	return s.MovieService, nil
}

func movieID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, movie.ErrInvalidID
	}
	return id, nil
}

func bindMovieRequest(c echo.Context) (MovieRequest, error) {
	var req MovieRequest
	if c.Request().ContentLength == 0 {
		return req, errs.Errorf(errs.EINVALID, "request body is required")
	}
	if err := c.Bind(&req); err != nil {
		return req, errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

// handleListMovies godoc
// @Summary List Movies
// @Description Get every stored movie
// @Tags movies
// @Produce json
// @Success 200 {array} movie.Movie
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	movies, err := svc.ListMovies(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, movies)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Description Get a movie by id
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 404
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	m, err := svc.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if m == nil {
		return c.NoContent(http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, m)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Add a new movie, any id in the body is ignored
// @Tags movies
// @Accept json
// @Produce json
// @Param movie body MovieRequest true "Movie Data"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}
	req, err := bindMovieRequest(c)
	if err != nil {
		return err
	}

	created, err := svc.CreateMovie(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, created)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Description Apply the body fields to an existing movie
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param movie body MovieRequest true "Movie Data"
// @Success 200 {object} movie.Movie
// @Failure 400 {object} APIResponse
// @Failure 404
// @Router /api/movies/{id} [put]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}
	req, err := bindMovieRequest(c)
	if err != nil {
		return err
	}

	updated, err := svc.UpdateMovie(c.Request().Context(), id, req.ToPatch())
	if err != nil {
		return err
	}
	if updated == nil {
		return c.NoContent(http.StatusNotFound)
	}

	return c.JSON(http.StatusOK, updated)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Remove a movie, deleting an unknown id also succeeds
// @Tags movies
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 400 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}
	id, err := movieID(c)
	if err != nil {
		return err
	}

	if err := svc.DeleteMovie(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
