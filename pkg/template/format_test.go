package template_test

import (
	"testing"

	"github.com/aretw0/baxter/pkg/domain"
	"github.com/aretw0/baxter/pkg/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	out, err := template.Format("Es ist {hour}:{minutes} Uhr.", map[string]any{"hour": 9, "minutes": "05"})
	require.NoError(t, err)
	assert.Equal(t, "Es ist 9:05 Uhr.", out)
}

func TestFormat_EscapedBraces(t *testing.T) {
	out, err := template.Format("{{literal}} {x}", map[string]any{"x": 1})
	require.NoError(t, err)
	assert.Equal(t, "{literal} 1", out)
}

func TestFormat_MissingKey(t *testing.T) {
	_, err := template.Format("Du sagtest: {response}", nil)
	var missing *domain.TemplateMissingKeyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "response", missing.Key)
}

func TestFormat_Unterminated(t *testing.T) {
	_, err := template.Format("oops {x", map[string]any{"x": 1})
	var syn *domain.TemplateSyntaxError
	assert.ErrorAs(t, err, &syn)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"song_name", "artist_name"}, template.Placeholders("{song_name} von {artist_name}"))
	assert.Empty(t, template.Placeholders("nothing"))
}
