package imdb

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const titleEntity = "Title"

var (
	taglineHeaderPattern = regexp.MustCompile(`(?i)Taglines:`)
	seeMorePattern       = regexp.MustCompile(`(?i)See[ ]more\s»`)
	seasonWordPattern    = regexp.MustCompile(`(?i)Season`)
	episodeWordPattern   = regexp.MustCompile(`(?i)Episode`)
)

// ParseTitle parses a title page into the concrete variant the page
// describes. Classification runs first; field extraction then follows the
// matching branch only.
func ParseTitle(htmlText string) (TitleRecord, error) {
	doc, err := parseDocument(htmlText, titleEntity)
	if err != nil {
		return nil, err
	}

	base, err := parseTitleBase(doc)
	if err != nil {
		return nil, err
	}

	switch classifyTitle(doc) {
	case KindShow:
		return parseShowDetails(doc, base)
	case KindEpisode:
		return parseEpisodeDetails(doc, base)
	default:
		return parseMovieDetails(doc, base)
	}
}

// classifyTitle decides which variant a title document describes. The page
// carries no explicit type field, so classification rests on incidental
// markers: an episode-guide link marks a show, a navigation panel under the
// title overview marks an episode. Order matters: a show's landing page may
// carry navigation-panel markup incidentally, so the show check runs first
// and short-circuits the episode check. With neither marker the document
// defaults to a movie. Classification never fails.
func classifyTitle(doc *goquery.Document) Kind {
	if hasEpisodeGuide(doc) {
		return KindShow
	}
	if hasNavigationPanel(doc) {
		return KindEpisode
	}
	return KindMovie
}

func hasEpisodeGuide(doc *goquery.Document) bool {
	return doc.Find("a.np_episode_guide").Length() > 0
}

func hasNavigationPanel(doc *goquery.Document) bool {
	return doc.Find("div#title-overview-widget div.navigation_panel").Length() > 0
}

// parseTitleBase extracts the fields common to every variant. Id, name and
// overview are required anchors; everything else defaults to absent.
func parseTitleBase(doc *goquery.Document) (Title, error) {
	var base Title

	base.ID = attrOf(doc.Find("meta[property='pageId']"), "content")
	if !IsValidTitleID(base.ID) {
		return base, parseErrorf(titleEntity, "missing or malformed page id %q", base.ID)
	}

	base.Name = firstText(doc.Find("h1[itemprop='name']"))
	if base.Name == "" {
		return base, parseErrorf(titleEntity, "missing name heading")
	}

	base.Overview = firstText(doc.Find("div[itemprop='description'] p"))
	if base.Overview == "" {
		return base, parseErrorf(titleEntity, "missing summary paragraph")
	}

	base.Poster = attrOf(doc.Find("div.poster img"), "src")

	doc.Find("div.subtext span[itemprop='genre']").Each(func(_ int, s *goquery.Selection) {
		base.Genres = append(base.Genres, Genre{Name: strings.TrimSpace(s.Text())})
	})
	doc.Find("div[itemprop='keywords'] span[itemprop='keywords']").Each(func(_ int, s *goquery.Selection) {
		base.Keywords = append(base.Keywords, Keyword{Name: strings.TrimSpace(s.Text())})
	})

	if sel := doc.Find("div.imdbRating span[itemprop='ratingValue']"); sel.Length() > 0 {
		if avg, err := parseDecimal(sel.Text()); err == nil {
			base.VoteAverage = &avg
		}
	}
	if sel := doc.Find("div.imdbRating span[itemprop='ratingCount']"); sel.Length() > 0 {
		if count, err := parseInt(sel.Text()); err == nil {
			base.VoteCount = &count
		}
	}
	if sel := doc.Find("div.title-overview time[itemprop='duration']"); sel.Length() > 0 {
		if minutes, err := parseRuntimeMinutes(attrOf(sel, "datetime")); err == nil {
			base.Runtime = &minutes
		}
	}

	base.Credits.Cast = parseTitleCast(doc)

	return base, nil
}

// parseTitleCast walks the cast table shared by all three branches. Rows
// without a name anchor are decorative and skipped. Character names drop a
// trailing parenthetical or "/"-joined alternate suffix.
func parseTitleCast(doc *goquery.Document) []MediaCast {
	var cast []MediaCast
	doc.Find("div#titleCast table.cast_list tr").Each(func(_ int, row *goquery.Selection) {
		class, _ := row.Attr("class")
		if class != "odd" && class != "even" {
			return
		}
		actor := row.Find("td[itemprop='actor'] a")
		if actor.Length() == 0 {
			return
		}
		cast = append(cast, MediaCast{
			ID:        PersonIDFromURL(attrOf(actor, "href")),
			Name:      textOf(actor),
			Character: cleanCharacterName(row.Find("td.character").Text()),
		})
	})
	return cast
}

// cleanCharacterName keeps the first "/"-segment and the text before the
// first "(": "Gus Fring (uncredited)" becomes "Gus Fring".
func cleanCharacterName(name string) string {
	name = strings.SplitN(name, "/", 2)[0]
	name = strings.SplitN(name, "(", 2)[0]
	return strings.TrimSpace(name)
}

func parseMovieDetails(doc *goquery.Document, base Title) (*Movie, error) {
	director := doc.Find("div.title-overview span[itemprop='director'] a").First()
	if director.Length() == 0 {
		// A movie must credit a director; its absence means the layout
		// changed or the document is not really a movie page.
		return nil, parseErrorf(titleEntity, "missing director anchor")
	}

	movie := &Movie{
		Title:   base,
		Tagline: parseTagline(doc),
		Director: Person{
			ID:   PersonIDFromURL(attrOf(director, "href")),
			Name: textOf(director),
		},
		Adult: isAdult(base.Genres),
	}

	if content := attrOf(doc.Find("meta[itemprop='datePublished']"), "content"); content != "" {
		if released, err := parseISODate(content); err == nil {
			movie.ReleaseDate = &released
		}
	}

	return movie, nil
}

// parseTagline scans the story-line text blocks for the one headed
// "Taglines:" and strips the header label and the trailing "See more »"
// marker. Pages without a tagline block yield an empty tagline.
func parseTagline(doc *goquery.Document) string {
	var tagline string
	doc.Find("div#titleStoryLine div.txt-block").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		header := block.ChildrenFiltered("h4").First()
		if !strings.EqualFold(strings.TrimSpace(header.Text()), "Taglines:") {
			return true
		}
		contents := block.Text()
		contents = taglineHeaderPattern.ReplaceAllString(contents, "")
		contents = seeMorePattern.ReplaceAllString(contents, "")
		tagline = strings.TrimSpace(contents)
		return false
	})
	return tagline
}

func parseShowDetails(doc *goquery.Document, base Title) (*Show, error) {
	show := &Show{Title: base}

	doc.Find("div.title-overview span[itemprop='creator'] a").Each(func(_ int, s *goquery.Selection) {
		show.CreatedBy = append(show.CreatedBy, Person{
			ID:   PersonIDFromURL(attrOf(s, "href")),
			Name: textOf(s),
		})
	})

	airDates := doc.Find("div#title-overview-widget div.titleBar div.subtext a").Last()
	if airDates.Length() == 0 {
		return nil, parseErrorf(titleEntity, "missing air date range")
	}
	first, last, err := parseAirDateRange(textOf(airDates))
	if err != nil {
		return nil, err
	}
	show.FirstAirDate = first
	show.LastAirDate = last
	show.ReleaseDate = first

	episodeCountText := textOf(doc.Find("div.title-overview div.button_panel a.np_episode_guide span.bp_sub_heading"))
	fields := strings.Fields(episodeCountText)
	if len(fields) == 0 {
		return nil, parseErrorf(titleEntity, "missing episode count")
	}
	episodeCount, err := parseInt(fields[0])
	if err != nil {
		return nil, parseErrorf(titleEntity, "episode count %q: %v", episodeCountText, err)
	}
	show.EpisodeCount = episodeCount

	seasonCountText := textOf(doc.Find("div#title-episode-widget a"))
	seasonCount, err := parseInt(seasonCountText)
	if err != nil {
		return nil, parseErrorf(titleEntity, "season count %q: %v", seasonCountText, err)
	}
	show.SeasonCount = seasonCount

	return show, nil
}

// parseAirDateRange splits the "... (YYYY–YYYY)" suffix of the title bar on
// an en-dash. An empty second segment means the show is still airing, not a
// parse failure.
func parseAirDateRange(text string) (first, last *time.Time, err error) {
	open := strings.Index(text, "(")
	if open == -1 {
		return nil, nil, parseErrorf(titleEntity, "air date range %q has no year segment", text)
	}
	inner := strings.ReplaceAll(text[open+1:], ")", "")
	years := strings.SplitN(inner, "–", 2)

	firstYear, parseErr := time.Parse("2006", strings.TrimSpace(years[0]))
	if parseErr != nil {
		return nil, nil, parseErrorf(titleEntity, "first air year %q: %v", years[0], parseErr)
	}
	first = &firstYear

	if len(years) == 2 {
		if trimmed := strings.TrimSpace(years[1]); trimmed != "" {
			lastYear, parseErr := time.Parse("2006", trimmed)
			if parseErr != nil {
				return nil, nil, parseErrorf(titleEntity, "last air year %q: %v", years[1], parseErr)
			}
			last = &lastYear
		}
	}
	return first, last, nil
}

func parseEpisodeDetails(doc *goquery.Document, base Title) (*Episode, error) {
	episode := &Episode{Title: base, Adult: isAdult(base.Genres)}

	airDateContent := attrOf(doc.Find("div#title-overview-widget div.titleBar meta[itemprop='datePublished']"), "content")
	aired, err := parseISODate(airDateContent)
	if err != nil {
		return nil, parseErrorf(titleEntity, "air date %q: %v", airDateContent, err)
	}
	episode.AirDate = &aired
	episode.ReleaseDate = &aired

	heading := textOf(doc.Find("div#title-overview-widget div.navigation_panel div.bp_heading"))
	season, number, err := parseSeasonEpisodeNumbers(heading)
	if err != nil {
		return nil, err
	}
	episode.SeasonNumber = season
	episode.EpisodeNumber = number

	return episode, nil
}

// parseSeasonEpisodeNumbers parses the "Season N | Episode M" heading by
// stripping the literal words and reading the remaining integers. Zero is a
// valid episode number; some shows number their first episode 0.
func parseSeasonEpisodeNumbers(text string) (season, episode int, err error) {
	parts := strings.SplitN(text, "|", 2)
	if len(parts) != 2 {
		return 0, 0, parseErrorf(titleEntity, "season/episode heading %q", text)
	}
	season, err = parseInt(seasonWordPattern.ReplaceAllString(parts[0], ""))
	if err != nil {
		return 0, 0, parseErrorf(titleEntity, "season number in %q: %v", text, err)
	}
	episode, err = parseInt(episodeWordPattern.ReplaceAllString(parts[1], ""))
	if err != nil {
		return 0, 0, parseErrorf(titleEntity, "episode number in %q: %v", text, err)
	}
	return season, episode, nil
}
