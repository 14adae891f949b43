package imdb

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const similarEntity = "SimilarTitles"

// The recommendation card date string tags shows with a literal marker that
// would otherwise break year parsing.
const showIndicator = "TV Series"

// ParseSimilarTitles parses the recommendation cards of a title page into
// bare titles: the cards do not say whether an entry is a movie or a show
// beyond the date marker, so no variant is picked.
func ParseSimilarTitles(htmlText string) ([]*Title, error) {
	doc, err := parseDocument(htmlText, similarEntity)
	if err != nil {
		return nil, err
	}

	var titles []*Title
	var cardErr error
	doc.Find("div#title_recs div.rec_overview").EachWithBreak(func(_ int, card *goquery.Selection) bool {
		title, err := parseSimilarCard(card)
		if err != nil {
			cardErr = err
			return false
		}
		titles = append(titles, title)
		return true
	})
	if cardErr != nil {
		return nil, cardErr
	}

	return titles, nil
}

func parseSimilarCard(card *goquery.Selection) (*Title, error) {
	nameLink := card.Find("div.rec-title a").First()
	if nameLink.Length() == 0 {
		return nil, parseErrorf(similarEntity, "recommendation card without title link")
	}

	title := &Title{}
	title.ID = TitleIDFromURL(attrOf(nameLink, "href"))
	if title.ID == "" {
		return nil, parseErrorf(similarEntity, "recommendation card without title id")
	}
	title.Name = textOf(nameLink)

	title.Overview = textOf(card.Find("div.rec-outline"))
	if title.Overview == "" {
		return nil, parseErrorf(similarEntity, "recommendation card %s without outline", title.ID)
	}

	title.Poster = attrOf(card.Find("div.rec_poster img.rec_poster_img"), "src")

	// Genres come as one pipe-delimited string, not markup.
	for _, genre := range strings.Split(textOf(card.Find("div.rec-cert-genre")), "|") {
		if name := strings.TrimSpace(genre); name != "" {
			title.Genres = append(title.Genres, Genre{Name: name})
		}
	}

	dateText := card.Find("div.rec-title span.nobr").Text()
	dateText = strings.ReplaceAll(dateText, showIndicator, "")
	title.ReleaseDate = parseYear(dateText)

	return title, nil
}
