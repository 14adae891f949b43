package imdb

import (
	"github.com/PuerkitoBio/goquery"
)

const personCreditsEntity = "PersonCredits"

// ParsePersonCredits parses a filmography page into the titles a person is
// credited on. A person can be credited multiple ways per title; only the
// first occurrence of a title id is kept. The page never sources crew
// entries, so Crew stays empty.
func ParsePersonCredits(htmlText string) (*PersonCredits, error) {
	doc, err := parseDocument(htmlText, personCreditsEntity)
	if err != nil {
		return nil, err
	}

	credits := &PersonCredits{}
	seen := make(map[string]struct{})

	var itemErr error
	doc.Find("section#filmography ul li").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		casting, err := parseFilmographyItem(item)
		if err != nil {
			itemErr = err
			return false
		}
		if _, ok := seen[casting.ID]; ok {
			return true
		}
		seen[casting.ID] = struct{}{}
		credits.Cast = append(credits.Cast, casting)
		return true
	})
	if itemErr != nil {
		return nil, itemErr
	}

	return credits, nil
}

// parseFilmographyItem reads one list item. The caption carries either two
// small-text segments (title + date, common for crew and self appearances)
// or three (title + character + date). The date segment may be a year range;
// only the first year counts.
func parseFilmographyItem(item *goquery.Selection) (PersonCast, error) {
	captions := item.Find(".filmo-caption small")
	if captions.Length() < 2 {
		return PersonCast{}, parseErrorf(personCreditsEntity, "filmography item with %d caption segments", captions.Length())
	}

	titleSegment := captions.Eq(0)
	casting := PersonCast{
		ID:     TitleIDFromURL(attrOf(titleSegment.Find("a"), "href")),
		Title:  textOf(titleSegment),
		Poster: attrOf(item.Find(".filmo-image img"), "src"),
		Adult:  false,
	}

	if captions.Length() == 2 {
		casting.ReleaseDate = parseYear(captions.Eq(1).Text())
	} else {
		casting.Character = textOf(captions.Eq(1))
		casting.ReleaseDate = parseYear(captions.Eq(2).Text())
	}

	return casting, nil
}
