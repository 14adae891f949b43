package imdb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePerson(t *testing.T) {
	person, err := ParsePerson(loadFixture(t, "person.html"))
	require.NoError(t, err)

	assert.Equal(t, "nm0000199", person.ID)
	assert.Equal(t, "Al Pacino", person.Name)
	assert.False(t, person.Adult)
	assert.Equal(t, "https://images-na.ssl-images-amazon.com/images/M/pacino.jpg", person.Poster)

	assert.Equal(t, []string{"Alfredo James Pacino", "Sonny"}, person.KnownAs)

	require.NotNil(t, person.BirthDay)
	assert.Equal(t, time.Date(1940, 4, 25, 0, 0, 0, 0, time.UTC), *person.BirthDay)
	assert.Equal(t, "Manhattan, New York City, New York, USA", person.BirthPlace)

	assert.Nil(t, person.DeathDay)
	assert.Empty(t, person.DeathPlace)
	assert.Empty(t, person.DeathCause)

	// paragraph breaks survive as newlines
	assert.Contains(t, person.Biography, "established himself as a film actor")
	assert.Contains(t, person.Biography, "\n\n")
	assert.NotContains(t, person.Biography, "Mini Biography By")
}

func TestParsePerson_Deceased(t *testing.T) {
	html := `<html>
	<head><meta property="pageId" content="nm0000008"></head>
	<body>
	<h3 itemprop="name"><a href="/name/nm0000008/" itemprop="url">Marlon Brando</a></h3>
	<div id="bio_content">
		<table id="overviewTable"><tbody>
			<tr>
				<td class="label">Date of Birth</td>
				<td><a href="#">3 April</a> <a href="#">1924</a>, Omaha, Nebraska, USA</td>
			</tr>
			<tr>
				<td class="label">Date of Death</td>
				<td><a href="#">1 July</a> <a href="#">2004</a>, Westwood, Los Angeles, California, USA (respiratory failure)</td>
			</tr>
		</tbody></table>
	</div>
	</body></html>`

	person, err := ParsePerson(html)
	require.NoError(t, err)

	require.NotNil(t, person.DeathDay)
	assert.Equal(t, time.Date(2004, 7, 1, 0, 0, 0, 0, time.UTC), *person.DeathDay)
	assert.Equal(t, "Westwood, Los Angeles, California, USA", person.DeathPlace)
	assert.Equal(t, "respiratory failure", person.DeathCause)
}

// A birth row without separate month and year links yields no date, not an
// error.
func TestParsePerson_PartialBirthRow(t *testing.T) {
	html := `<html>
	<head><meta property="pageId" content="nm0000199"></head>
	<body>
	<h3 itemprop="name"><a href="/name/nm0000199/" itemprop="url">Al Pacino</a></h3>
	<div id="bio_content">
		<table id="overviewTable"><tbody>
			<tr>
				<td class="label">Date of Birth</td>
				<td><a href="#">1940</a>, Manhattan, New York City, New York, USA</td>
			</tr>
		</tbody></table>
	</div>
	</body></html>`

	person, err := ParsePerson(html)
	require.NoError(t, err)

	assert.Nil(t, person.BirthDay)
	assert.Equal(t, "Manhattan, New York City, New York, USA", person.BirthPlace)
}

func TestParsePerson_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{"no page id", `<html><body><h3 itemprop="name"><a itemprop="url">X</a></h3></body></html>`},
		{"title id instead", `<html><head><meta property="pageId" content="tt0000199"></head><body></body></html>`},
		{"no name", `<html><head><meta property="pageId" content="nm0000199"></head><body></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePerson(tt.html)
			require.Error(t, err)

			var parseErr *ParseError
			assert.True(t, errors.As(err, &parseErr))
		})
	}
}
