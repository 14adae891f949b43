package imdb

import (
	"strings"
	"time"
)

// Kind identifies the concrete variant behind a title page.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindShow    Kind = "show"
	KindEpisode Kind = "episode"
)

// Title holds the fields shared by every title variant. Optional fields are
// pointers (numbers, dates) or empty strings and stay unset when the page
// does not carry them.
type Title struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Overview    string       `json:"overview"`
	Poster      string       `json:"poster,omitempty"`
	Genres      []Genre      `json:"genres"`
	Keywords    []Keyword    `json:"keywords"`
	Credits     MediaCredits `json:"credits"`
	VoteAverage *float64     `json:"voteAverage,omitempty"`
	VoteCount   *int         `json:"voteCount,omitempty"`
	Runtime     *int         `json:"runtime,omitempty"` // minutes
	ReleaseDate *time.Time   `json:"releaseDate,omitempty"`
}

// HasGenre reports whether the title carries the named genre
// (case-insensitive).
func (t *Title) HasGenre(name string) bool {
	for _, g := range t.Genres {
		if strings.EqualFold(g.Name, name) {
			return true
		}
	}
	return false
}

// TitleRecord is implemented by Movie, Show and Episode, the three concrete
// variants a title page can describe.
type TitleRecord interface {
	Base() *Title
	Kind() Kind
}

// Movie is a feature film title.
type Movie struct {
	Title
	Tagline  string `json:"tagline,omitempty"`
	Director Person `json:"director"`
	Adult    bool   `json:"adult"`
}

func (m *Movie) Base() *Title { return &m.Title }
func (m *Movie) Kind() Kind   { return KindMovie }

// Show is a TV series title. FirstAirDate doubles as the base ReleaseDate;
// LastAirDate stays nil while the show is still airing.
type Show struct {
	Title
	CreatedBy    []Person   `json:"createdBy"`
	FirstAirDate *time.Time `json:"firstAirDate,omitempty"`
	LastAirDate  *time.Time `json:"lastAirDate,omitempty"`
	EpisodeCount int        `json:"episodeCount"`
	SeasonCount  int        `json:"seasonCount"`
	Seasons      []Season   `json:"seasons"`
}

func (s *Show) Base() *Title { return &s.Title }
func (s *Show) Kind() Kind   { return KindShow }

// Episode is a single TV episode title. AirDate doubles as the base
// ReleaseDate. Episode numbering can start at zero.
type Episode struct {
	Title
	AirDate       *time.Time `json:"airDate,omitempty"`
	SeasonNumber  int        `json:"seasonNumber"`
	EpisodeNumber int        `json:"episodeNumber"`
	Adult         bool       `json:"adult"`
}

func (e *Episode) Base() *Title { return &e.Title }
func (e *Episode) Kind() Kind   { return KindEpisode }

// Person is a cast or crew member. Credits are only populated by the
// filmography page; the bio page leaves them empty.
type Person struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Adult      bool          `json:"adult"`
	KnownAs    []string      `json:"knownAs,omitempty"`
	Biography  string        `json:"biography,omitempty"`
	BirthDay   *time.Time    `json:"birthDay,omitempty"`
	BirthPlace string        `json:"birthPlace,omitempty"`
	DeathDay   *time.Time    `json:"deathDay,omitempty"`
	DeathPlace string        `json:"deathPlace,omitempty"`
	DeathCause string        `json:"deathCause,omitempty"`
	Poster     string        `json:"poster,omitempty"`
	Credits    PersonCredits `json:"credits"`
}

// Season is one season of a show together with its episode list. The
// embedded episodes carry only the lightweight fields the season page
// exposes.
type Season struct {
	Name         string     `json:"name"` // name of the show, not the season
	AirDate      *time.Time `json:"airDate,omitempty"`
	Poster       string     `json:"poster,omitempty"`
	SeasonNumber int        `json:"seasonNumber"`
	Episodes     []Episode  `json:"episodes"`
}

// MediaCredits are the cast and crew of a single title.
type MediaCredits struct {
	Cast []MediaCast `json:"cast"`
	Crew []MediaCrew `json:"crew"`
}

// MediaCast is one actor-to-character credit on a title.
type MediaCast struct {
	ID        string `json:"id"` // person id
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

// MediaCrew is one contributor credit on a title. Job is empty for
// departments whose credit column carries no useful text.
type MediaCrew struct {
	ID         string `json:"id"` // person id
	Name       string `json:"name"`
	Department string `json:"department"`
	Job        string `json:"job,omitempty"`
}

// PersonCredits are the titles a person appeared in. The filmography page
// only sources cast entries; Crew stays empty.
type PersonCredits struct {
	Cast []PersonCast `json:"cast"`
	Crew []PersonCrew `json:"crew"`
}

// PersonCast is one title appearance of a person.
type PersonCast struct {
	ID          string     `json:"id"` // title id
	Title       string     `json:"title"`
	Character   string     `json:"character,omitempty"`
	Poster      string     `json:"poster,omitempty"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	Adult       bool       `json:"adult"`
}

// PersonCrew is one crew contribution of a person.
type PersonCrew struct {
	ID          string     `json:"id"` // title id
	Title       string     `json:"title"`
	Department  string     `json:"department"`
	Job         string     `json:"job,omitempty"`
	Poster      string     `json:"poster,omitempty"`
	ReleaseDate *time.Time `json:"releaseDate,omitempty"`
	Adult       bool       `json:"adult"`
}

// SearchResult is one entry of the suggest endpoint payload.
type SearchResult struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Details string `json:"details,omitempty"`
	Type    string `json:"type"`
	Image   string `json:"image,omitempty"`
	Year    *int   `json:"year,omitempty"`
}

// Genre is a single genre label.
type Genre struct {
	Name string `json:"name"`
}

// Keyword is a single plot keyword.
type Keyword struct {
	Name string `json:"name"`
}

const adultGenre = "adult"

// isAdult derives the adult flag from genre membership; the pages never
// expose it directly.
func isAdult(genres []Genre) bool {
	for _, g := range genres {
		if strings.EqualFold(g.Name, adultGenre) {
			return true
		}
	}
	return false
}
