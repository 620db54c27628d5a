package httpserver

import (
	"fmt"
	"moviecatalog/errs"
	"moviecatalog/movie"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterPublicMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/search", s.handleSearchMovies)
	g.GET("/movies/:id", s.handleGetMovie)
}

func (s *Server) RegisterPrivateMovieRoutes(g *echo.Group) {
	g.POST("/movies", s.handleCreateMovie)
	g.DELETE("/movies/:id", s.handleDeleteMovie)
}

// handleListMovies godoc
// @Summary List Movies
// @Description List every movie ordered by id, without relations
// @Tags movies
// @Produce json
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
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

	return writeList(c, http.StatusOK, movies)
}

// handleSearchMovies godoc
// @Summary Search Movies
// @Description Filter movies by genre names and a title fragment. Both are optional and case-insensitive.
// @Tags movies
// @Produce json
// @Param genres query string false "Comma separated genre names"
// @Param query query string false "Title fragment"
// @Success 200 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /api/movies/search [get]
func (s *Server) handleSearchMovies(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	f := movie.Filter{
		Genres: movie.ParseGenreNames(strings.Join(c.QueryParams()["genres"], ",")),
		Query:  c.QueryParam("query"),
	}

	movies, err := svc.SearchMovies(c.Request().Context(), f)
	if err != nil {
		return err
	}

	return writeList(c, http.StatusOK, movies)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Description Get a movie by id, optionally with its genres and actors
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Param includeGenres query bool false "Load genres"
// @Param includeActors query bool false "Load actors"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
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
	includeGenres, err := queryBool(c, "includeGenres", false)
	if err != nil {
		return err
	}
	includeActors, err := queryBool(c, "includeActors", false)
	if err != nil {
		return err
	}

	m, err := svc.GetMovie(c.Request().Context(), id, movie.GetOptions{
		IncludeGenres: includeGenres,
		IncludeActors: includeActors,
	})
	if err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, m)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Description Create a movie referencing existing genres and actors by id
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movie body CreateMovieRequest true "Movie"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	svc, err := s.movieService()
	if err != nil {
		return err
	}

	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return errs.Errorf(errs.EINVALID, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := svc.CreateMovie(c.Request().Context(), req.ToMovie())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/movies/%d", created.ID))
	return writeSuccess(c, http.StatusCreated, created)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Description Delete a movie. Actor associations are removed unless cascadeActors is false.
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param cascadeActors query bool false "Remove actor associations (default true)"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
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
	cascade, err := queryBool(c, "cascadeActors", movie.DefaultCascadeActors)
	if err != nil {
		return err
	}

	if err := svc.DeleteMovie(c.Request().Context(), id, cascade); err != nil {
		return err
	}

	return writeSuccess(c, http.StatusOK, nil)
}

func (s *Server) movieService() (movie.Service, error) {
	if s.MovieService == nil {
		return nil, errs.Errorf(errs.ENOTIMPLEMENTED, "movie service not configured")
	}
	return s.MovieService, nil
}

func movieID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, errs.Errorf(errs.EINVALID, "invalid movie id")
	}
	return id, nil
}

func queryBool(c echo.Context, name string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, errs.Errorf(errs.EINVALID, "invalid %s value", name)
	}
	return v, nil
}
