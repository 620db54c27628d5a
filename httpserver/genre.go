package httpserver

import (
	"moviecatalog/errs"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterGenreRoutes(g *echo.Group) {
	g.GET("/genres", s.handleListGenres)
}

// handleListGenres godoc
// @Summary List Genres
// @Description List every genre in the catalog ordered by id
// @Tags genres
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Failure 501 {object} APIResponse
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	if s.GenreService == nil {
		return errs.Errorf(errs.ENOTIMPLEMENTED, "genre service not configured")
	}

	genres, err := s.GenreService.ListGenres(c.Request().Context())
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, genres)
}
