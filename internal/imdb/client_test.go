package imdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/koenekelschot/imdbscraper/internal/config"
)

func newTestClient(server *httptest.Server) *Client {
	cfg := config.ImdbConfig{
		SearchURL:      server.URL + "/suggests",
		TitleURL:       server.URL + "/title/",
		PersonURL:      server.URL + "/name/",
		FilmographyURL: server.URL + "/filmography/",
		ChartURL:       server.URL + "/chart",
		InTheatersURL:  server.URL + "/movies-in-theaters/",
		ComingSoonURL:  server.URL + "/movies-coming-soon/",
		TitleSearchURL: server.URL + "/find",
		Timeout:        5,
	}
	return NewClient(cfg, zerolog.Nop())
}

func fixtureServer(t *testing.T, wantPath, fixture string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != wantPath {
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(loadFixture(t, fixture)))
	}))
}

func TestClient_Search(t *testing.T) {
	server := fixtureServer(t, "/suggests/b/breaking_bad.json", "search.json")
	defer server.Close()

	results, err := newTestClient(server).Search(context.Background(), "Breaking Bad")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Search() returned %d results, want 3", len(results))
	}
	if results[0].ID != "tt0903747" {
		t.Errorf("first result = %q, want tt0903747", results[0].ID)
	}
}

func TestClient_Search_BlankQuery(t *testing.T) {
	client := NewClient(config.ImdbConfig{}, zerolog.Nop())

	results, err := client.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() returned %d results, want 0", len(results))
	}
}

func TestClient_GetTitle(t *testing.T) {
	server := fixtureServer(t, "/title/tt2241351", "movie_complete.html")
	defer server.Close()

	record, err := newTestClient(server).GetTitle(context.Background(), "tt2241351")
	if err != nil {
		t.Fatalf("GetTitle() error = %v", err)
	}
	if record.Kind() != KindMovie {
		t.Errorf("Kind() = %q, want movie", record.Kind())
	}
	if record.Base().ID != "tt2241351" {
		t.Errorf("ID = %q, want tt2241351", record.Base().ID)
	}
}

func TestClient_GetTitle_InvalidID(t *testing.T) {
	client := NewClient(config.ImdbConfig{}, zerolog.Nop())

	_, err := client.GetTitle(context.Background(), "not-an-id")
	if !errors.Is(err, ErrInvalidTitleID) {
		t.Errorf("GetTitle() error = %v, want ErrInvalidTitleID", err)
	}
}

func TestClient_GetTitle_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server).GetTitle(context.Background(), "tt2241351")
	if !errors.Is(err, ErrUpstreamStatus) {
		t.Errorf("GetTitle() error = %v, want ErrUpstreamStatus", err)
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		t.Errorf("GetTitle() upstream failure should not be a ParseError, got %v", err)
	}
}

func TestClient_GetPerson(t *testing.T) {
	server := fixtureServer(t, "/name/nm0000199/bio", "person.html")
	defer server.Close()

	person, err := newTestClient(server).GetPerson(context.Background(), "nm0000199")
	if err != nil {
		t.Fatalf("GetPerson() error = %v", err)
	}
	if person.Name != "Al Pacino" {
		t.Errorf("Name = %q, want Al Pacino", person.Name)
	}
}

func TestClient_GetPerson_InvalidID(t *testing.T) {
	client := NewClient(config.ImdbConfig{}, zerolog.Nop())

	_, err := client.GetPerson(context.Background(), "tt2241351")
	if !errors.Is(err, ErrInvalidPersonID) {
		t.Errorf("GetPerson() error = %v, want ErrInvalidPersonID", err)
	}
}

func TestClient_GetPersonCredits(t *testing.T) {
	server := fixtureServer(t, "/filmography/nm0186505", "filmography.html")
	defer server.Close()

	credits, err := newTestClient(server).GetPersonCredits(context.Background(), "nm0186505")
	if err != nil {
		t.Fatalf("GetPersonCredits() error = %v", err)
	}
	if len(credits.Cast) != 3 {
		t.Errorf("GetPersonCredits() returned %d entries, want 3", len(credits.Cast))
	}
}

func TestClient_GetSeason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/title/tt0903747/episodes" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("season"); got != "2" {
			t.Errorf("season query = %q, want 2", got)
		}
		w.Write([]byte(loadFixture(t, "season.html")))
	}))
	defer server.Close()

	season, err := newTestClient(server).GetSeason(context.Background(), "tt0903747", 2)
	if err != nil {
		t.Fatalf("GetSeason() error = %v", err)
	}
	if season.SeasonNumber != 2 {
		t.Errorf("SeasonNumber = %d, want 2", season.SeasonNumber)
	}
	if len(season.Episodes) != 3 {
		t.Errorf("GetSeason() returned %d episodes, want 3", len(season.Episodes))
	}
}

func TestClient_GetEpisodeByShowID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/title/tt0903747/episodes":
			w.Write([]byte(loadFixture(t, "season.html")))
		case "/title/tt1232244":
			w.Write([]byte(loadFixture(t, "episode.html")))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	episode, err := newTestClient(server).GetEpisodeByShowID(context.Background(), "tt0903747", 2, 1)
	if err != nil {
		t.Fatalf("GetEpisodeByShowID() error = %v", err)
	}
	if episode.Kind() != KindEpisode {
		t.Errorf("Kind() = %q, want episode", episode.Kind())
	}
}

func TestClient_GetEpisodeByShowID_NotFound(t *testing.T) {
	server := fixtureServer(t, "/title/tt0903747/episodes", "season.html")
	defer server.Close()

	_, err := newTestClient(server).GetEpisodeByShowID(context.Background(), "tt0903747", 2, 99)
	if !errors.Is(err, ErrEpisodeNotFound) {
		t.Errorf("GetEpisodeByShowID() error = %v, want ErrEpisodeNotFound", err)
	}
}

func TestClient_GetEpisodeByID_NotAnEpisode(t *testing.T) {
	server := fixtureServer(t, "/title/tt2241351", "movie_complete.html")
	defer server.Close()

	_, err := newTestClient(server).GetEpisodeByID(context.Background(), "tt2241351")
	if !errors.Is(err, ErrNotAnEpisode) {
		t.Errorf("GetEpisodeByID() error = %v, want ErrNotAnEpisode", err)
	}
}

func TestClient_GetTitleCredits(t *testing.T) {
	server := fixtureServer(t, "/title/tt2241351/fullcredits", "credits.html")
	defer server.Close()

	credits, err := newTestClient(server).GetTitleCredits(context.Background(), "tt2241351")
	if err != nil {
		t.Fatalf("GetTitleCredits() error = %v", err)
	}
	if len(credits.Cast) != 2 {
		t.Errorf("GetTitleCredits() returned %d cast entries, want 2", len(credits.Cast))
	}
}

func TestClient_GetSimilarTitles(t *testing.T) {
	server := fixtureServer(t, "/title/tt0903747", "similar.html")
	defer server.Close()

	titles, err := newTestClient(server).GetSimilarTitles(context.Background(), "tt0903747")
	if err != nil {
		t.Fatalf("GetSimilarTitles() error = %v", err)
	}
	if len(titles) != 2 {
		t.Errorf("GetSimilarTitles() returned %d titles, want 2", len(titles))
	}
}

func TestClient_Charts(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(*Client) (int, error)
	}{
		{"top rated movies", "/chart/top", func(c *Client) (int, error) {
			movies, err := c.GetTopRatedMovies(context.Background())
			return len(movies), err
		}},
		{"popular movies", "/chart/moviemeter", func(c *Client) (int, error) {
			movies, err := c.GetPopularMovies(context.Background())
			return len(movies), err
		}},
		{"top rated shows", "/chart/toptv", func(c *Client) (int, error) {
			shows, err := c.GetTopRatedShows(context.Background())
			return len(shows), err
		}},
		{"popular shows", "/chart/tvmeter", func(c *Client) (int, error) {
			shows, err := c.GetPopularShows(context.Background())
			return len(shows), err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := fixtureServer(t, tt.path, "chart.html")
			defer server.Close()

			count, err := tt.call(newTestClient(server))
			if err != nil {
				t.Fatalf("chart call error = %v", err)
			}
			if count != 3 {
				t.Errorf("chart returned %d entries, want 3", count)
			}
		})
	}
}

func TestClient_GetNowPlayingMovies(t *testing.T) {
	server := fixtureServer(t, "/movies-in-theaters/", "new_movies.html")
	defer server.Close()

	movies, err := newTestClient(server).GetNowPlayingMovies(context.Background())
	if err != nil {
		t.Fatalf("GetNowPlayingMovies() error = %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("GetNowPlayingMovies() returned %d movies, want 2", len(movies))
	}
}

func TestClient_GetUpcomingMovies(t *testing.T) {
	server := fixtureServer(t, "/movies-coming-soon/", "new_movies.html")
	defer server.Close()

	movies, err := newTestClient(server).GetUpcomingMovies(context.Background())
	if err != nil {
		t.Fatalf("GetUpcomingMovies() error = %v", err)
	}
	if len(movies) != 2 {
		t.Errorf("GetUpcomingMovies() returned %d movies, want 2", len(movies))
	}
}

func TestClient_GetIDOfTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/find" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "Plastic" {
			t.Errorf("q = %q, want Plastic", got)
		}
		w.Write([]byte(`<html><body>
			<a href="https://en.wikipedia.org/wiki/Plastic_(film)">Wikipedia</a>
			<a href="http://www.imdb.com/title/tt2241351/">Plastic (2014) - IMDb</a>
		</body></html>`))
	}))
	defer server.Close()

	id, err := newTestClient(server).GetIDOfTitle(context.Background(), "Plastic")
	if err != nil {
		t.Fatalf("GetIDOfTitle() error = %v", err)
	}
	if id != "tt2241351" {
		t.Errorf("GetIDOfTitle() = %q, want tt2241351", id)
	}
}

func TestClient_GetIDOfTitle_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="/other">nothing here</a></body></html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetIDOfTitle(context.Background(), "Plastic")
	if !errors.Is(err, ErrTitleNotFound) {
		t.Errorf("GetIDOfTitle() error = %v, want ErrTitleNotFound", err)
	}
}

func TestClient_GetIDOfTitle_BlankTitle(t *testing.T) {
	client := NewClient(config.ImdbConfig{}, zerolog.Nop())

	id, err := client.GetIDOfTitle(context.Background(), "  ")
	if err != nil {
		t.Fatalf("GetIDOfTitle() error = %v", err)
	}
	if id != "" {
		t.Errorf("GetIDOfTitle() = %q, want empty", id)
	}
}
