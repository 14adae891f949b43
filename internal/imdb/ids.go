package imdb

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// IMDB ids are a two letter prefix plus exactly seven digits. The patterns
// are anchored so that truncated or embedded ids never validate.
var (
	titleIDPattern     = regexp.MustCompile(`(?i)^tt[0-9]{7}$`)
	personIDPattern    = regexp.MustCompile(`(?i)^nm[0-9]{7}$`)
	characterIDPattern = regexp.MustCompile(`(?i)^ch[0-9]{7}$`)

	nonSlugPattern    = regexp.MustCompile(`[^A-Za-z0-9 _]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// IsValidTitleID reports whether id is a well-formed title id (tt0000000).
func IsValidTitleID(id string) bool {
	return titleIDPattern.MatchString(id)
}

// IsValidPersonID reports whether id is a well-formed person id (nm0000000).
func IsValidPersonID(id string) bool {
	return personIDPattern.MatchString(id)
}

// IsValidCharacterID reports whether id is a well-formed character id
// (ch0000000).
func IsValidCharacterID(id string) bool {
	return characterIDPattern.MatchString(id)
}

// IDFromURL returns the first id embedded in a URL path, trying title,
// person and character ids in that order. It returns "" when none is found.
func IDFromURL(url string) string {
	if id := TitleIDFromURL(url); id != "" {
		return id
	}
	if id := PersonIDFromURL(url); id != "" {
		return id
	}
	return CharacterIDFromURL(url)
}

// TitleIDFromURL returns the title id embedded in a URL path, or "".
func TitleIDFromURL(url string) string {
	return idFromURL(url, IsValidTitleID)
}

// PersonIDFromURL returns the person id embedded in a URL path, or "".
func PersonIDFromURL(url string) string {
	return idFromURL(url, IsValidPersonID)
}

// CharacterIDFromURL returns the character id embedded in a URL path, or "".
func CharacterIDFromURL(url string) string {
	return idFromURL(url, IsValidCharacterID)
}

func idFromURL(url string, valid func(string) bool) string {
	for _, part := range urlParts(url) {
		if valid(part) {
			return part
		}
	}
	return ""
}

func urlParts(url string) []string {
	if i := strings.Index(url, "?"); i > -1 {
		url = url[:i]
	}
	parts := strings.Split(url, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatSearchQuery builds the slug the suggest endpoint expects: trimmed,
// transliterated to ASCII, stripped of punctuation, whitespace collapsed to
// underscores, lowercased. Already-normalized input passes through unchanged.
func FormatSearchQuery(query string) string {
	query = strings.TrimSpace(query)
	query = unidecode.Unidecode(query)
	query = nonSlugPattern.ReplaceAllString(query, "")
	query = whitespacePattern.ReplaceAllString(query, "_")
	return strings.ToLower(query)
}
