package region

import (
	"testing"

	"github.com/Egham-7/llm-router/internal/models"
	"github.com/Egham-7/llm-router/internal/services/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	r := NewResolver(catalog.Default())

	tests := []struct {
		name  string
		hints models.RegionHints
		want  bool
	}{
		{"explicit eu preference", models.RegionHints{UserPreference: "eu"}, true},
		{"explicit global overrides country", models.RegionHints{UserPreference: "global", CountryCode: "DE"}, false},
		{"german country code", models.RegionHints{CountryCode: "DE"}, true},
		{"lowercase country code", models.RegionHints{CountryCode: "fr"}, true},
		{"uk after brexit still in scope", models.RegionHints{CountryCode: "GB"}, true},
		{"switzerland in scope", models.RegionHints{CountryCode: "CH"}, true},
		{"us country code", models.RegionHints{CountryCode: "US"}, false},
		{"berlin timezone", models.RegionHints{Timezone: "Europe/Berlin"}, true},
		{"canary islands timezone", models.RegionHints{Timezone: "Atlantic/Canary"}, true},
		{"new york timezone", models.RegionHints{Timezone: "America/New_York"}, false},
		{"no hints defaults to global", models.RegionHints{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.hints))
		})
	}
}

func TestModelForUserDefaults(t *testing.T) {
	c := catalog.Default()
	r := NewResolver(c)

	// EU caller with no override gets an EU-hosted model.
	id := r.ModelForUser(true, "")
	m := c.ByID(id)
	require.NotNil(t, m)
	assert.True(t, m.EUHosted)

	// Global caller gets the platform default.
	assert.Equal(t, c.DefaultModel().ID, r.ModelForUser(false, ""))
}

func TestModelForUserKeepsExplicitSelection(t *testing.T) {
	r := NewResolver(catalog.Default())

	// An explicit selection is returned unchanged, even for EU callers.
	assert.Equal(t, "openai/gpt-5", r.ModelForUser(true, "openai/gpt-5"))
	assert.Equal(t, "openai/gpt-5", r.ModelForUser(false, "openai/gpt-5"))
}
