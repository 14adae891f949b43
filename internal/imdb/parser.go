package imdb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ParseError signals a structural parse failure: a required anchor is
// missing or the document cannot be parsed at all. Optional anchors never
// produce a ParseError; their fields simply stay unset.
type ParseError struct {
	Entity string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("imdb: parsing %s: %v", e.Entity, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErrorf(entity, format string, args ...any) *ParseError {
	return &ParseError{Entity: entity, Err: fmt.Errorf(format, args...)}
}

// parseDocument builds a traversable document from raw markup. Each parse
// call constructs its own document; nothing is shared across calls.
func parseDocument(htmlText, entity string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, &ParseError{Entity: entity, Err: err}
	}
	return doc, nil
}

// textOf returns the trimmed text of the first matching element.
func textOf(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

// attrOf returns the trimmed attribute value of the first matching element.
func attrOf(sel *goquery.Selection, attr string) string {
	val, _ := sel.First().Attr(attr)
	return strings.TrimSpace(val)
}

// firstText returns the first non-empty text node directly under the
// element, skipping nested markup. Title headings interleave the name with
// decorated spans, so plain Text() would drag those in.
func firstText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	for node := sel.Nodes[0].FirstChild; node != nil; node = node.NextSibling {
		if node.Type != html.TextNode {
			continue
		}
		if text := strings.TrimSpace(node.Data); text != "" {
			return text
		}
	}
	return ""
}

// collapseSpace folds runs of whitespace into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// parseDecimal parses a decimal tolerating thousands separators ("1,234.5").
func parseDecimal(text string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}

// parseInt parses an integer tolerating thousands separators ("47,386").
func parseInt(text string) (int, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	return strconv.Atoi(cleaned)
}

// parseRuntimeMinutes parses the "PT98M" duration attribute. This is a
// narrow format assumption, not general ISO-8601 duration parsing; the site
// only ever encodes whole minutes.
func parseRuntimeMinutes(text string) (int, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "PT")
	cleaned = strings.TrimSuffix(cleaned, "M")
	return strconv.Atoi(cleaned)
}
