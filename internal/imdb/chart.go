package imdb

import (
	"github.com/PuerkitoBio/goquery"
)

const chartEntity = "TitleChart"

// ParseMovieChart parses a ranked movie chart page (top-250, most-popular).
func ParseMovieChart(htmlText string) ([]*Movie, error) {
	return parseChart(htmlText, func(base Title) *Movie {
		return &Movie{Title: base, Adult: isAdult(base.Genres)}
	})
}

// ParseShowChart parses a ranked show chart page.
func ParseShowChart(htmlText string) ([]*Show, error) {
	return parseChart(htmlText, func(base Title) *Show {
		return &Show{Title: base, FirstAirDate: base.ReleaseDate}
	})
}

// parseChart is generic over the produced variant: chart rows carry the same
// fields for movies and shows, so one routine serves all four chart pages.
func parseChart[T TitleRecord](htmlText string, build func(Title) T) ([]T, error) {
	doc, err := parseDocument(htmlText, chartEntity)
	if err != nil {
		return nil, err
	}

	var entries []T
	var rowErr error
	doc.Find("div#main table.chart tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		base, err := parseChartRow(row)
		if err != nil {
			rowErr = err
			return false
		}
		entries = append(entries, build(base))
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return entries, nil
}

// parseChartRow extracts the shared row fields: id, name, poster, a single
// release year and an optional rating.
func parseChartRow(row *goquery.Selection) (Title, error) {
	var base Title

	titleLink := row.Find("td.titleColumn a").First()
	if titleLink.Length() == 0 {
		return base, parseErrorf(chartEntity, "chart row without title link")
	}

	base.ID = TitleIDFromURL(attrOf(titleLink, "href"))
	if base.ID == "" {
		return base, parseErrorf(chartEntity, "chart row without title id")
	}
	base.Name = textOf(titleLink)
	base.Poster = attrOf(row.Find("td.posterColumn img"), "src")
	base.ReleaseDate = parseYear(row.Find("td.titleColumn span.secondaryInfo").Text())

	if rating := row.Find("td.imdbRating strong"); rating.Length() > 0 {
		if avg, err := parseDecimal(rating.Text()); err == nil {
			base.VoteAverage = &avg
		}
	}

	return base, nil
}
