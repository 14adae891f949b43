package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/koenekelschot/imdbscraper/internal/config"
	"github.com/koenekelschot/imdbscraper/internal/imdb"
)

// Server handles HTTP requests for the scraper API.
type Server struct {
	echo   *echo.Echo
	client *imdb.Client
	logger zerolog.Logger
	cfg    *config.Config
}

// NewServer creates a new API server instance.
func NewServer(client *imdb.Client, cfg *config.Config, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	s := &Server{
		echo:   e,
		client: client,
		logger: logger.With().Str("component", "api").Logger(),
		cfg:    cfg,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.health)

	v1 := s.echo.Group("/api/v1")

	v1.GET("/search", s.search)
	v1.GET("/resolve", s.resolveTitle)

	v1.GET("/titles/:id", s.getTitle)
	v1.GET("/titles/:id/credits", s.getTitleCredits)
	v1.GET("/titles/:id/similar", s.getSimilarTitles)
	v1.GET("/titles/:id/seasons/:season", s.getSeason)
	v1.GET("/titles/:id/seasons/:season/episodes/:episode", s.getEpisode)
	v1.GET("/titles/:id/seasons/:season/episodes/:episode/credits", s.getEpisodeCredits)
	v1.GET("/episodes/:id", s.getEpisodeByID)

	v1.GET("/persons/:id", s.getPerson)
	v1.GET("/persons/:id/credits", s.getPersonCredits)

	v1.GET("/charts/popular-movies", s.chart(func(ctx context.Context) (any, error) {
		return s.client.GetPopularMovies(ctx)
	}))
	v1.GET("/charts/popular-shows", s.chart(func(ctx context.Context) (any, error) {
		return s.client.GetPopularShows(ctx)
	}))
	v1.GET("/charts/top-movies", s.chart(func(ctx context.Context) (any, error) {
		return s.client.GetTopRatedMovies(ctx)
	}))
	v1.GET("/charts/top-shows", s.chart(func(ctx context.Context) (any, error) {
		return s.client.GetTopRatedShows(ctx)
	}))

	v1.GET("/releases/in-theaters", s.chart(func(ctx context.Context) (any, error) {
		return s.client.GetNowPlayingMovies(ctx)
	}))
	v1.GET("/releases/coming-soon", s.chart(func(ctx context.Context) (any, error) {
		return s.client.GetUpcomingMovies(ctx)
	}))
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	return s.echo.Start(s.cfg.Server.Address())
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// writeError maps client errors onto HTTP statuses: bad ids are the
// caller's fault, a missing episode is a 404, and both upstream fetch
// failures and structural parse failures are gateway problems.
func (s *Server) writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	var parseErr *imdb.ParseError
	switch {
	case errors.Is(err, imdb.ErrInvalidTitleID), errors.Is(err, imdb.ErrInvalidPersonID):
		status = http.StatusBadRequest
	case errors.Is(err, imdb.ErrEpisodeNotFound), errors.Is(err, imdb.ErrTitleNotFound), errors.Is(err, imdb.ErrNotAnEpisode):
		status = http.StatusNotFound
	case errors.Is(err, imdb.ErrUpstreamStatus), errors.As(err, &parseErr):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
