package imdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMediaCredits(t *testing.T) {
	credits, err := ParseMediaCredits(loadFixture(t, "credits.html"))
	require.NoError(t, err)

	// label and separator rows are skipped
	require.Len(t, credits.Cast, 2)
	assert.Equal(t, "nm1093951", credits.Cast[0].ID)
	assert.Equal(t, "Ed Speleers", credits.Cast[0].Name)
	// full-credits characters keep their suffix, whitespace collapsed
	assert.Equal(t, "Sam (as Ed Speleers)", credits.Cast[0].Character)
	assert.Equal(t, "Fordy", credits.Cast[1].Character)

	require.Len(t, credits.Crew, 5)

	// the credit cell is dropped for directors even when present
	directors := crewIn(credits, "Directors")
	require.Len(t, directors, 1)
	assert.Equal(t, "nm0000149", directors[0].ID)
	assert.Equal(t, "Julian Gilbey", directors[0].Name)
	assert.Empty(t, directors[0].Job)

	writers := crewIn(credits, "Writers")
	require.Len(t, writers, 2)
	assert.Empty(t, writers[0].Job)

	producers := crewIn(credits, "Producers")
	require.Len(t, producers, 2)
	assert.Equal(t, "Chris Howard", producers[0].Name)
	assert.Equal(t, "producer", producers[0].Job)
	assert.Equal(t, "executive producer", producers[1].Job)
}

func crewIn(credits *MediaCredits, department string) []MediaCrew {
	var out []MediaCrew
	for _, crew := range credits.Crew {
		if crew.Department == department {
			out = append(out, crew)
		}
	}
	return out
}

// Departments absent from the document are skipped, not an error.
func TestParseMediaCredits_MissingSections(t *testing.T) {
	html := `<html><body><div id="fullcredits_content">
		<h4>Produced by</h4>
		<table><tbody><tr>
			<td class="name"><a href="/name/nm0275553/">Chris Howard</a></td>
			<td class="credit">producer</td>
		</tr></tbody></table>
	</div></body></html>`

	credits, err := ParseMediaCredits(html)
	require.NoError(t, err)

	assert.Empty(t, credits.Cast)
	require.Len(t, credits.Crew, 1)
	assert.Equal(t, "Producers", credits.Crew[0].Department)
}

func TestParseMediaCredits_EmptyDocument(t *testing.T) {
	credits, err := ParseMediaCredits("<html><body></body></html>")
	require.NoError(t, err)
	assert.Empty(t, credits.Cast)
	assert.Empty(t, credits.Crew)
}
