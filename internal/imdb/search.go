package imdb

import (
	"encoding/json"
	"strings"
)

const searchEntity = "SearchResults"

// The suggest endpoint wraps its payload in a JSONP-style callback, so the
// short field keys live inside the outermost object substring.
type suggestResponse struct {
	Entries []suggestEntry `json:"d"`
}

type suggestEntry struct {
	ID      string `json:"id"`
	Label   string `json:"l"`
	Type    string `json:"q"`
	Details string `json:"s"`
	Year    *int   `json:"y"`
	Images  []any  `json:"i"` // image URL followed by pixel dimensions
}

// ParseSearchResults parses the suggest endpoint payload. Wrapper text
// around the JSON object is tolerated; a payload without an object, or an
// entry without an image URL, is a structural failure.
func ParseSearchResults(payload string) ([]SearchResult, error) {
	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start == -1 || end == -1 || end <= start {
		return []SearchResult{}, nil
	}

	var response suggestResponse
	if err := json.Unmarshal([]byte(payload[start:end+1]), &response); err != nil {
		return nil, &ParseError{Entity: searchEntity, Err: err}
	}

	results := make([]SearchResult, 0, len(response.Entries))
	for _, entry := range response.Entries {
		result, err := entry.toResult()
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (e suggestEntry) toResult() (SearchResult, error) {
	image, ok := firstString(e.Images)
	if !ok {
		return SearchResult{}, parseErrorf(searchEntity, "entry %q without image URL", e.ID)
	}

	resultType := e.Type
	if resultType == "" {
		// Person entries carry no type tag.
		resultType = "person"
	}

	return SearchResult{
		ID:      e.ID,
		Name:    e.Label,
		Details: e.Details,
		Type:    resultType,
		Image:   image,
		Year:    e.Year,
	}, nil
}

func firstString(values []any) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	s, ok := values[0].(string)
	return s, ok
}
