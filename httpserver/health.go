package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterHealthRoutes() {
	s.Router.GET("/healthcheck", s.healthCheck)
}

// healthCheck godoc
// @Summary Health Check
// @Description Check if server is alive and which movie store it uses
// @Tags health
// @Success 200 {object} APIResponse
// @Router /healthcheck [get]
func (s *Server) healthCheck(c echo.Context) error {
	status := "OK"
	if s.MovieService == nil {
		status = "DEGRADED"
	}

	return writeSuccess(c, http.StatusOK, map[string]string{
		"status": status,
		"store":  s.Config.DB.Driver,
	})
}
