package imdb

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const personEntity = "Person"

// ParsePerson parses a person bio page. Id and name are required anchors;
// alternate names, biography, birth and death details are optional and stay
// unset when their rows are missing.
func ParsePerson(htmlText string) (*Person, error) {
	doc, err := parseDocument(htmlText, personEntity)
	if err != nil {
		return nil, err
	}

	person := &Person{}

	person.ID = attrOf(doc.Find("meta[property='pageId']"), "content")
	if !IsValidPersonID(person.ID) {
		return nil, parseErrorf(personEntity, "missing or malformed page id %q", person.ID)
	}

	person.Name = textOf(doc.Find("h3[itemprop='name'] a[itemprop='url']"))
	if person.Name == "" {
		return nil, parseErrorf(personEntity, "missing name heading")
	}

	// The adult flag is not sourced from any page; it is always false.
	person.Adult = false
	person.Poster = attrOf(doc.Find("img.poster"), "src")

	parseKnownAs(doc, person)
	parseBiography(doc, person)
	parseBirth(doc, person)
	parseDeath(doc, person)

	return person, nil
}

func parseKnownAs(doc *goquery.Document, person *Person) {
	doc.Find("table#overviewTable td.label").Each(func(_ int, label *goquery.Selection) {
		text := strings.TrimSpace(label.Text())
		if !strings.EqualFold(text, "Birth Name") && !strings.EqualFold(text, "Nickname") {
			return
		}
		if alias := strings.TrimSpace(label.Next().Text()); alias != "" {
			person.KnownAs = append(person.KnownAs, alias)
		}
	})
}

// parseBiography pulls the mini-bio block, preserving paragraph breaks that
// plain text extraction would flatten.
func parseBiography(doc *goquery.Document, person *Person) {
	anchor := doc.Find("div#bio_content a[name='mini_bio']").First()
	if anchor.Length() == 0 {
		return
	}
	container := anchor.Next().Next()
	if container.Length() == 0 {
		return
	}
	first := container.Children().First()
	if first.Length() == 0 {
		return
	}
	person.Biography = strings.TrimSpace(stringifyNode(first.Nodes[0]))
}

// stringifyNode renders an element's text with <br> turned into newlines.
func stringifyNode(node *html.Node) string {
	switch node.Type {
	case html.TextNode:
		return node.Data
	case html.ElementNode:
		if node.FirstChild == nil {
			if node.Data == "br" {
				return "\n"
			}
			return ""
		}
		var b strings.Builder
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			b.WriteString(stringifyNode(child))
		}
		return b.String()
	default:
		return ""
	}
}

func parseBirth(doc *goquery.Document, person *Person) {
	person.BirthDay = parseOverviewDate(doc, "Date of Birth")
	person.BirthPlace = parseOverviewLocation(doc, "Date of Birth")
}

func parseDeath(doc *goquery.Document, person *Person) {
	person.DeathDay = parseOverviewDate(doc, "Date of Death")

	details := parseOverviewLocation(doc, "Date of Death")
	if details == "" {
		return
	}
	// The death row packs place and cause as "place (cause)".
	if open := strings.Index(details, "("); open > -1 {
		person.DeathPlace = strings.TrimSpace(details[:open])
		cause := strings.TrimSpace(details[open+1:])
		person.DeathCause = strings.TrimSuffix(cause, ")")
	} else {
		person.DeathPlace = details
	}
}

// parseOverviewDate reads the date half of an overview-table row. The month
// and day live in one link and the year in a second; rows without both links
// yield no date rather than an error.
func parseOverviewDate(doc *goquery.Document, labelText string) *time.Time {
	var day *time.Time
	doc.Find("table#overviewTable td.label").EachWithBreak(func(_ int, label *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(label.Text()), labelText) {
			return true
		}
		links := label.Next().Find("a")
		if links.Length() < 2 {
			return false
		}
		monthDay := strings.TrimSpace(links.Eq(0).Text())
		year := strings.TrimSpace(links.Eq(1).Text())
		day = parseFlexibleDate(monthDay + " " + year)
		return false
	})
	return day
}

// parseOverviewLocation reads the place half of an overview-table row: the
// text after the first comma.
func parseOverviewLocation(doc *goquery.Document, labelText string) string {
	var location string
	doc.Find("table#overviewTable td.label").EachWithBreak(func(_ int, label *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(label.Text()), labelText) {
			return true
		}
		contents := strings.TrimSpace(label.Next().Text())
		parts := strings.SplitN(contents, ",", 2)
		if len(parts) == 2 {
			location = strings.TrimSpace(parts[1])
		}
		return false
	})
	return location
}
