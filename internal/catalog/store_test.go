package catalog_test

import (
	"strings"
	"testing"

	"tarion/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFullDeck(t *testing.T) {
	ids, err := catalog.NewStore().IDs()
	require.NoError(t, err)
	assert.Len(t, ids, 78)

	majors, minors := 0, 0
	for _, id := range ids {
		switch {
		case strings.HasPrefix(id, "major_arcana."):
			majors++
		case strings.HasPrefix(id, "minor_arcana."):
			minors++
		default:
			t.Errorf("unexpected card id %q", id)
		}
	}
	assert.Equal(t, 22, majors)
	assert.Equal(t, 56, minors)
}

func TestStoreLookup(t *testing.T) {
	s := catalog.NewStore()

	c, err := s.Card("major_arcana.00")
	require.NoError(t, err)
	assert.Equal(t, "The Fool", c.DisplayName("en"))
	assert.Equal(t, "Шут", c.DisplayName("ru"))
	assert.Equal(t, "fool", c.Asset)
	assert.NotEmpty(t, c.Meaning("en", false))
	assert.NotEmpty(t, c.Meaning("en", true))

	_, err = s.Card("major_arcana.99")
	assert.ErrorIs(t, err, catalog.ErrCardNotFound)
}

func TestLocaleFallback(t *testing.T) {
	s := catalog.NewStore()

	c, err := s.Card("minor_arcana.cups.queen")
	require.NoError(t, err)
	// No Russian text for minors: every locale falls back to English.
	assert.Equal(t, c.DisplayName("en"), c.DisplayName("ru"))
	assert.Equal(t, "Queen of Cups", c.DisplayName("ru"))
}
