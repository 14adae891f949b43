package imdb

import (
	"github.com/PuerkitoBio/goquery"
)

const seasonEntity = "Season"

// ParseSeason parses a show's season page into the season record and its
// ordered episode list.
func ParseSeason(htmlText string) (*Season, error) {
	doc, err := parseDocument(htmlText, seasonEntity)
	if err != nil {
		return nil, err
	}

	season := &Season{}

	season.Name = textOf(doc.Find("h3[itemprop='name'] a"))
	if season.Name == "" {
		return nil, parseErrorf(seasonEntity, "missing show name heading")
	}

	season.Poster = attrOf(doc.Find("div#main img[itemprop='image']"), "src")
	// The season air date is the first episode's; precision varies.
	season.AirDate = parseFlexibleDate(doc.Find("div.eplist div.info[itemprop='episodes'] div.airdate").First().Text())

	headingText := textOf(doc.Find("div#episodes_content h3#episode_top"))
	number, err := parseInt(seasonWordPattern.ReplaceAllString(headingText, ""))
	if err != nil {
		return nil, parseErrorf(seasonEntity, "season heading %q: %v", headingText, err)
	}
	season.SeasonNumber = number

	var rowErr error
	doc.Find("div#episodes_content div.eplist div.list_item").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		episode, err := parseSeasonEpisode(row, season.SeasonNumber)
		if err != nil {
			rowErr = err
			return false
		}
		season.Episodes = append(season.Episodes, *episode)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}

	return season, nil
}

// parseSeasonEpisode reads one episode row. Id, name, overview and the
// episode-number meta attribute are required; poster and air date are not.
// Air dates are parsed independently per row, so mixed precision within one
// page is fine. Episode numbering can start at zero.
func parseSeasonEpisode(row *goquery.Selection, seasonNumber int) (*Episode, error) {
	name := row.Find("div.image a").First()
	if name.Length() == 0 {
		return nil, parseErrorf(seasonEntity, "episode row without name anchor")
	}

	episode := &Episode{SeasonNumber: seasonNumber}
	episode.ID = TitleIDFromURL(attrOf(name, "href"))
	if episode.ID == "" {
		return nil, parseErrorf(seasonEntity, "episode row without title id")
	}
	episode.Name = attrOf(name, "title")
	if episode.Name == "" {
		return nil, parseErrorf(seasonEntity, "episode %s without name", episode.ID)
	}

	episode.Overview = textOf(row.Find("div[itemprop='description']"))
	if episode.Overview == "" {
		return nil, parseErrorf(seasonEntity, "episode %s without overview", episode.ID)
	}

	numberText := attrOf(row.Find("meta[itemprop='episodeNumber']"), "content")
	number, err := parseInt(numberText)
	if err != nil {
		return nil, parseErrorf(seasonEntity, "episode %s number %q: %v", episode.ID, numberText, err)
	}
	episode.EpisodeNumber = number

	episode.Poster = attrOf(row.Find("div.image img"), "src")
	if aired := parseFlexibleDate(row.Find("div.airdate").First().Text()); aired != nil {
		episode.AirDate = aired
		episode.ReleaseDate = aired
	}

	return episode, nil
}
