package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManifest_Validate(t *testing.T) {
	m := Manifest{
		Characters: "a knight",
		Setting:    "a castle",
		Story:      "guarding the gate",
		Style:      "oil painting",
	}
	assert.NoError(t, m.Validate())

	m.Story = "   "
	assert.ErrorIs(t, m.Validate(), ErrIncompleteManifest)
	assert.Equal(t, []string{"Story"}, m.MissingFields())
}

func TestManifest_MissingFields_Order(t *testing.T) {
	m := Manifest{}
	assert.Equal(t, []string{"Characters", "Setting", "Story", "Style"}, m.MissingFields())
}

func TestManifest_Merged_SkipsEmptyAdvanced(t *testing.T) {
	m := Manifest{
		Characters: "a knight",
		Setting:    "a castle",
		Story:      "guarding the gate",
		Style:      "oil painting",
		Advanced: map[string]string{
			"lighting":      "dramatic rim light",
			"color_palette": "  ",
			"medium":        "",
		},
	}

	merged := m.Merged()

	assert.Equal(t, "a knight", merged["characters"])
	assert.Equal(t, "dramatic rim light", merged["lighting"])
	assert.NotContains(t, merged, "color_palette")
	assert.NotContains(t, merged, "medium")
	assert.Len(t, merged, 5)
}

func TestManifest_Clone_Independent(t *testing.T) {
	m := Manifest{
		Characters: "a knight",
		Advanced:   map[string]string{"lighting": "dusk"},
	}

	clone := m.Clone()
	clone.Advanced["lighting"] = "noon"

	assert.Equal(t, "dusk", m.Advanced["lighting"])
}

func TestRandomManifest_DeterministicForSeed(t *testing.T) {
	a := RandomManifest(rand.New(rand.NewSource(42)))
	b := RandomManifest(rand.New(rand.NewSource(42)))

	assert.Equal(t, a, b)
	require.NoError(t, a.Validate())
}

func TestExampleManifests_Complete(t *testing.T) {
	assert.NoError(t, FantasyExample().Validate())
	assert.NoError(t, SciFiExample().Validate())
}
