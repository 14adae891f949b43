package imdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/koenekelschot/imdbscraper/internal/config"
)

var (
	ErrInvalidTitleID  = errors.New("imdb: not a valid title id")
	ErrInvalidPersonID = errors.New("imdb: not a valid person id")
	ErrEpisodeNotFound = errors.New("imdb: episode not found in season")
	ErrNotAnEpisode    = errors.New("imdb: title is not an episode")
	ErrTitleNotFound   = errors.New("imdb: no title id found")
	ErrUpstreamStatus  = errors.New("imdb: unexpected upstream status")
)

// anchorPattern matches links in the title-id search response; the parsers
// proper never see that document, so a structural anchor is not warranted.
var anchorPattern = regexp.MustCompile(`(?is)<a[^>]*? href="([^"]+)"[^>]*?>.*?</a>`)

// Client is the retrieval layer: it builds request URLs, fetches raw
// document text and hands it to the matching parser. It keeps no state
// between calls and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	cfg        config.ImdbConfig
	logger     zerolog.Logger
}

// NewClient creates a new IMDB client.
func NewClient(cfg config.ImdbConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		cfg:    cfg,
		logger: logger.With().Str("component", "imdb").Logger(),
	}
}

// Search queries the suggest endpoint. A blank query yields an empty result
// without a request.
func (c *Client) Search(ctx context.Context, query string) ([]SearchResult, error) {
	slug := FormatSearchQuery(query)
	if slug == "" {
		return []SearchResult{}, nil
	}

	endpoint := fmt.Sprintf("%s/%s/%s.json", c.cfg.SearchURL, slug[:1], slug)
	payload, err := c.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	results, err := ParseSearchResults(payload)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("query", query).Int("results", len(results)).Msg("Search completed")
	return results, nil
}

// GetPerson fetches and parses a person bio page.
func (c *Client) GetPerson(ctx context.Context, id string) (*Person, error) {
	if !IsValidPersonID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPersonID, id)
	}
	payload, err := c.fetch(ctx, c.cfg.PersonURL+id+"/bio")
	if err != nil {
		return nil, err
	}
	return ParsePerson(payload)
}

// GetPersonCredits fetches and parses a person's filmography.
func (c *Client) GetPersonCredits(ctx context.Context, id string) (*PersonCredits, error) {
	if !IsValidPersonID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPersonID, id)
	}
	payload, err := c.fetch(ctx, c.cfg.FilmographyURL+id)
	if err != nil {
		return nil, err
	}
	return ParsePersonCredits(payload)
}

// GetTitle fetches a title page and returns the concrete variant the page
// classifies as.
func (c *Client) GetTitle(ctx context.Context, id string) (TitleRecord, error) {
	if !IsValidTitleID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTitleID, id)
	}
	payload, err := c.fetch(ctx, c.cfg.TitleURL+id)
	if err != nil {
		return nil, err
	}
	record, err := ParseTitle(payload)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().Str("id", id).Str("kind", string(record.Kind())).Msg("Got title")
	return record, nil
}

// GetSeason fetches and parses one season of a show.
func (c *Client) GetSeason(ctx context.Context, id string, season int) (*Season, error) {
	if !IsValidTitleID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTitleID, id)
	}
	payload, err := c.fetch(ctx, fmt.Sprintf("%s%s/episodes?season=%d", c.cfg.TitleURL, id, season))
	if err != nil {
		return nil, err
	}
	return ParseSeason(payload)
}

// GetEpisodeByShowID resolves an episode through its show: it fetches the
// season, locates the row with the requested episode number and then fetches
// that episode's own title page.
func (c *Client) GetEpisodeByShowID(ctx context.Context, id string, season, episode int) (*Episode, error) {
	row, err := c.episodeFromSeason(ctx, id, season, episode)
	if err != nil {
		return nil, err
	}
	return c.GetEpisodeByID(ctx, row.ID)
}

// GetEpisodeByID fetches an episode title page directly.
func (c *Client) GetEpisodeByID(ctx context.Context, id string) (*Episode, error) {
	record, err := c.GetTitle(ctx, id)
	if err != nil {
		return nil, err
	}
	ep, ok := record.(*Episode)
	if !ok {
		return nil, fmt.Errorf("%w: %s classified as %s", ErrNotAnEpisode, id, record.Kind())
	}
	return ep, nil
}

// GetTitleCredits fetches and parses a title's full credits page.
func (c *Client) GetTitleCredits(ctx context.Context, id string) (*MediaCredits, error) {
	if !IsValidTitleID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTitleID, id)
	}
	payload, err := c.fetch(ctx, c.cfg.TitleURL+id+"/fullcredits")
	if err != nil {
		return nil, err
	}
	return ParseMediaCredits(payload)
}

// GetEpisodeCredits resolves an episode through its show and fetches that
// episode's full credits.
func (c *Client) GetEpisodeCredits(ctx context.Context, id string, season, episode int) (*MediaCredits, error) {
	row, err := c.episodeFromSeason(ctx, id, season, episode)
	if err != nil {
		return nil, err
	}
	return c.GetTitleCredits(ctx, row.ID)
}

// GetSimilarTitles fetches a title page and parses its recommendation cards.
func (c *Client) GetSimilarTitles(ctx context.Context, id string) ([]*Title, error) {
	if !IsValidTitleID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTitleID, id)
	}
	payload, err := c.fetch(ctx, c.cfg.TitleURL+id)
	if err != nil {
		return nil, err
	}
	return ParseSimilarTitles(payload)
}

// GetPopularMovies fetches the most-popular movie chart.
func (c *Client) GetPopularMovies(ctx context.Context) ([]*Movie, error) {
	return c.movieChart(ctx, "/moviemeter")
}

// GetPopularShows fetches the most-popular show chart.
func (c *Client) GetPopularShows(ctx context.Context) ([]*Show, error) {
	return c.showChart(ctx, "/tvmeter")
}

// GetTopRatedMovies fetches the top-rated movie chart.
func (c *Client) GetTopRatedMovies(ctx context.Context) ([]*Movie, error) {
	return c.movieChart(ctx, "/top")
}

// GetTopRatedShows fetches the top-rated show chart.
func (c *Client) GetTopRatedShows(ctx context.Context) ([]*Show, error) {
	return c.showChart(ctx, "/toptv")
}

// GetNowPlayingMovies fetches the in-theaters listing.
func (c *Client) GetNowPlayingMovies(ctx context.Context) ([]*Movie, error) {
	payload, err := c.fetch(ctx, c.cfg.InTheatersURL)
	if err != nil {
		return nil, err
	}
	return ParseNewMovies(payload)
}

// GetUpcomingMovies fetches the coming-soon listing.
func (c *Client) GetUpcomingMovies(ctx context.Context) ([]*Movie, error) {
	payload, err := c.fetch(ctx, c.cfg.ComingSoonURL)
	if err != nil {
		return nil, err
	}
	return ParseNewMovies(payload)
}

// GetIDOfTitle resolves a free-text title to a title id through the search
// engine fallback. A blank title yields an empty id without a request.
func (c *Client) GetIDOfTitle(ctx context.Context, title string) (string, error) {
	if len(FormatSearchQuery(title)) == 0 {
		return "", nil
	}

	payload, err := c.fetch(ctx, c.cfg.TitleSearchURL+"?q="+url.QueryEscape(title))
	if err != nil {
		return "", err
	}

	for _, match := range anchorPattern.FindAllStringSubmatch(payload, -1) {
		if id := TitleIDFromURL(match[1]); id != "" {
			c.logger.Debug().Str("title", title).Str("id", id).Msg("Resolved title id")
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrTitleNotFound, title)
}

func (c *Client) movieChart(ctx context.Context, path string) ([]*Movie, error) {
	payload, err := c.fetch(ctx, c.cfg.ChartURL+path)
	if err != nil {
		return nil, err
	}
	return ParseMovieChart(payload)
}

func (c *Client) showChart(ctx context.Context, path string) ([]*Show, error) {
	payload, err := c.fetch(ctx, c.cfg.ChartURL+path)
	if err != nil {
		return nil, err
	}
	return ParseShowChart(payload)
}

func (c *Client) episodeFromSeason(ctx context.Context, id string, season, episode int) (*Episode, error) {
	parsed, err := c.GetSeason(ctx, id, season)
	if err != nil {
		return nil, err
	}
	for i := range parsed.Episodes {
		if parsed.Episodes[i].EpisodeNumber == episode {
			return &parsed.Episodes[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s s%de%d", ErrEpisodeNotFound, id, season, episode)
}

// fetch retrieves raw document text. Fetch failures are reported distinctly
// from parse failures: a non-OK status wraps ErrUpstreamStatus, never
// ParseError.
func (c *Client) fetch(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("imdb: request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Str("url", endpoint).Int("status", resp.StatusCode).Msg("Upstream request failed")
		return "", fmt.Errorf("%w: %d from %s", ErrUpstreamStatus, resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("imdb: reading %s: %w", endpoint, err)
	}
	return string(body), nil
}
