package imdb

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const creditsEntity = "MediaCredits"

// crewTable maps a full-credits page heading to the department label the
// crew entries carry. Some departments repeat the heading in every credit
// cell, so their job column is dropped instead of copied.
type crewTable struct {
	Heading    string
	Department string
	IgnoreJob  bool
}

// crewTables enumerates every known crew heading in page order. Headings
// absent from a given document are skipped; not every title exposes every
// department.
var crewTables = []crewTable{
	{Heading: "Directed by", Department: "Directors", IgnoreJob: true},
	{Heading: "Writing Credits", Department: "Writers", IgnoreJob: true},
	{Heading: "Produced by", Department: "Producers"},
	{Heading: "Music by", Department: "Music by"},
	{Heading: "Cinematography by", Department: "Cinematography"},
	{Heading: "Film Editing by", Department: "Film Editing"},
	{Heading: "Production Design by", Department: "Production Design"},
	{Heading: "Art Direction by", Department: "Art Direction"},
	{Heading: "Set Decoration by", Department: "Set Decoration"},
	{Heading: "Costume Design by", Department: "Costume Design"},
	{Heading: "Makeup Department", Department: "Makeup"},
	{Heading: "Production Management", Department: "Production Management"},
	{Heading: "Second Unit Director or Assistant Director", Department: "Second Unit Director or Assistant Director"},
	{Heading: "Art Department", Department: "Art"},
	{Heading: "Sound Department", Department: "Sound"},
	{Heading: "Special Effects by", Department: "Special Effects"},
	{Heading: "Visual Effects by", Department: "Visual Effects"},
	{Heading: "Stunts", Department: "Stunts"},
	{Heading: "Camera and Electrical Department", Department: "Camera and Electrical"},
	{Heading: "Casting Department", Department: "Casting"},
	{Heading: "Costume and Wardrobe Department", Department: "Costume and Wardrobe"},
	{Heading: "Editorial Department", Department: "Editorial"},
	{Heading: "Location Management", Department: "Location Management"},
	{Heading: "Music Department", Department: "Music"},
	{Heading: "Transportation Department", Department: "Transportation"},
	{Heading: "Other crew", Department: "Other"},
}

// ParseMediaCredits parses a full-credits page into the cast and crew of a
// title.
func ParseMediaCredits(htmlText string) (*MediaCredits, error) {
	doc, err := parseDocument(htmlText, creditsEntity)
	if err != nil {
		return nil, err
	}

	credits := &MediaCredits{}
	parseFullCast(doc, credits)
	for _, table := range crewTables {
		parseCrewTable(doc, table, credits)
	}
	return credits, nil
}

// parseFullCast reads the cast table under the "#cast" heading. The heading
// is optional: episode credit pages occasionally omit the cast section.
func parseFullCast(doc *goquery.Document, credits *MediaCredits) {
	header := doc.Find("h4#cast").First()
	if header.Length() == 0 {
		return
	}

	header.Next().Find("tr").Each(func(_ int, row *goquery.Selection) {
		class, _ := row.Attr("class")
		if class != "odd" && class != "even" {
			return
		}
		name := row.Find("a[itemprop='url']").First()
		if name.Length() == 0 {
			return // decorative row
		}
		credits.Cast = append(credits.Cast, MediaCast{
			ID:        PersonIDFromURL(attrOf(name, "href")),
			Name:      textOf(name),
			Character: collapseSpace(row.Find(".character").Text()),
		})
	})
}

// parseCrewTable locates one named crew table by exact heading text
// (case-insensitive) and appends its rows. Rows without a name anchor are
// decorative separators.
func parseCrewTable(doc *goquery.Document, table crewTable, credits *MediaCredits) {
	var header *goquery.Selection
	doc.Find("#fullcredits_content h4").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(h.Text()), table.Heading) {
			header = h
			return false
		}
		return true
	})
	if header == nil {
		return
	}

	header.Next().Find("tr").Each(func(_ int, row *goquery.Selection) {
		name := row.Find("a").First()
		if name.Length() == 0 {
			return
		}
		job := ""
		if !table.IgnoreJob {
			job = textOf(row.Find(".credit"))
		}
		credits.Crew = append(credits.Crew, MediaCrew{
			ID:         PersonIDFromURL(attrOf(name, "href")),
			Name:       textOf(name),
			Department: table.Department,
			Job:        job,
		})
	})
}
