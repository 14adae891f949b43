package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// search queries the suggest endpoint.
// GET /api/v1/search?q=
func (s *Server) search(c echo.Context) error {
	results, err := s.client.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

// resolveTitle resolves a free-text title to a title id.
// GET /api/v1/resolve?title=
func (s *Server) resolveTitle(c echo.Context) error {
	id, err := s.client.GetIDOfTitle(c.Request().Context(), c.QueryParam("title"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"id": id})
}

// getTitle returns the concrete variant a title page describes.
// GET /api/v1/titles/:id
func (s *Server) getTitle(c echo.Context) error {
	record, err := s.client.GetTitle(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"kind":  record.Kind(),
		"title": record,
	})
}

// getTitleCredits returns the full cast and crew of a title.
// GET /api/v1/titles/:id/credits
func (s *Server) getTitleCredits(c echo.Context) error {
	credits, err := s.client.GetTitleCredits(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, credits)
}

// getSimilarTitles returns the recommendations of a title page.
// GET /api/v1/titles/:id/similar
func (s *Server) getSimilarTitles(c echo.Context) error {
	titles, err := s.client.GetSimilarTitles(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, titles)
}

// getSeason returns one season of a show with its episode list.
// GET /api/v1/titles/:id/seasons/:season
func (s *Server) getSeason(c echo.Context) error {
	seasonNumber, ok := intParam(c, "season")
	if !ok {
		return nil
	}
	season, err := s.client.GetSeason(c.Request().Context(), c.Param("id"), seasonNumber)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, season)
}

// getEpisode resolves an episode through its show.
// GET /api/v1/titles/:id/seasons/:season/episodes/:episode
func (s *Server) getEpisode(c echo.Context) error {
	seasonNumber, ok := intParam(c, "season")
	if !ok {
		return nil
	}
	episodeNumber, ok := intParam(c, "episode")
	if !ok {
		return nil
	}
	episode, err := s.client.GetEpisodeByShowID(c.Request().Context(), c.Param("id"), seasonNumber, episodeNumber)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, episode)
}

// getEpisodeCredits resolves an episode through its show and returns its
// full credits.
// GET /api/v1/titles/:id/seasons/:season/episodes/:episode/credits
func (s *Server) getEpisodeCredits(c echo.Context) error {
	seasonNumber, ok := intParam(c, "season")
	if !ok {
		return nil
	}
	episodeNumber, ok := intParam(c, "episode")
	if !ok {
		return nil
	}
	credits, err := s.client.GetEpisodeCredits(c.Request().Context(), c.Param("id"), seasonNumber, episodeNumber)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, credits)
}

// getEpisodeByID fetches an episode title page directly.
// GET /api/v1/episodes/:id
func (s *Server) getEpisodeByID(c echo.Context) error {
	episode, err := s.client.GetEpisodeByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, episode)
}

// getPerson returns a person's bio page fields.
// GET /api/v1/persons/:id
func (s *Server) getPerson(c echo.Context) error {
	person, err := s.client.GetPerson(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, person)
}

// getPersonCredits returns a person's filmography.
// GET /api/v1/persons/:id/credits
func (s *Server) getPersonCredits(c echo.Context) error {
	credits, err := s.client.GetPersonCredits(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, credits)
}

// chart adapts the list-returning client calls to one handler shape.
func (s *Server) chart(fetch func(context.Context) (any, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := fetch(c.Request().Context())
		if err != nil {
			return s.writeError(c, err)
		}
		return c.JSON(http.StatusOK, entries)
	}
}

// health reports liveness.
// GET /health
func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// intParam reads an integer path parameter, writing a 400 response itself
// when the value does not parse.
func intParam(c echo.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid " + name + " number",
		})
		return 0, false
	}
	return value, true
}
