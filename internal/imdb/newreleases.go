package imdb

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const newMoviesEntity = "NewMovies"

// ParseNewMovies parses an in-theaters or coming-soon listing page. The
// cards expose a reduced field set: the cast list never carries character
// names on these pages.
func ParseNewMovies(htmlText string) ([]*Movie, error) {
	doc, err := parseDocument(htmlText, newMoviesEntity)
	if err != nil {
		return nil, err
	}

	var movies []*Movie
	var cardErr error
	doc.Find("div#main div.list.detail div.list_item").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		movie, err := parseNewMovieCard(card)
		if err != nil {
			cardErr = err
			return false
		}
		movies = append(movies, movie)
		return true
	})
	if cardErr != nil {
		return nil, cardErr
	}

	return movies, nil
}

func parseNewMovieCard(card *goquery.Selection) (*Movie, error) {
	titleLink := card.Find("h4[itemprop='name'] a").First()
	if titleLink.Length() == 0 {
		return nil, parseErrorf(newMoviesEntity, "card without title link")
	}

	// The card title packs name and year as "Name (2016)".
	nameAndYear := strings.SplitN(titleLink.Text(), "(", 2)

	movie := &Movie{}
	movie.ID = TitleIDFromURL(attrOf(titleLink, "href"))
	if movie.ID == "" {
		return nil, parseErrorf(newMoviesEntity, "card without title id")
	}
	movie.Name = strings.TrimSpace(nameAndYear[0])
	if len(nameAndYear) == 2 {
		movie.ReleaseDate = parseYear(nameAndYear[1])
	}

	movie.Poster = attrOf(card.Find("td#img_primary div.image img.poster"), "src")
	movie.Overview = textOf(card.Find("div.outline[itemprop='description']"))

	details := card.Find("p.cert-runtime-genre")
	details.Find("span[itemprop='genre']").Each(func(_ int, genre *goquery.Selection) {
		movie.Genres = append(movie.Genres, Genre{Name: strings.TrimSpace(genre.Text())})
	})
	movie.Adult = isAdult(movie.Genres)
	if runtime := details.Find("time[itemprop='duration']"); runtime.Length() > 0 {
		if minutes, err := parseRuntimeMinutes(attrOf(runtime, "datetime")); err == nil {
			movie.Runtime = &minutes
		}
	}

	director := card.Find("span[itemprop='director'] a").First()
	if director.Length() == 0 {
		return nil, parseErrorf(newMoviesEntity, "card %s without director", movie.ID)
	}
	movie.Director = Person{
		ID:   PersonIDFromURL(attrOf(director, "href")),
		Name: textOf(director),
	}

	card.Find("span[itemprop='actors'] a").Each(func(_ int, actor *goquery.Selection) {
		movie.Credits.Cast = append(movie.Credits.Cast, MediaCast{
			ID:   PersonIDFromURL(attrOf(actor, "href")),
			Name: textOf(actor),
		})
	})

	return movie, nil
}
