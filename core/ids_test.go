package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	t.Run("Generates prefixed ULID", func(t *testing.T) {
		id := NewID("si")

		assert.True(t, strings.HasPrefix(id, "si_"))
		assert.True(t, IsValidULID(id))
	})

	t.Run("Normalizes prefix casing and whitespace", func(t *testing.T) {
		id := NewID("  ORG ")

		assert.True(t, strings.HasPrefix(id, "org_"))
		assert.True(t, IsValidULID(id))
	})

	t.Run("Generates unique IDs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := NewID("state")
			assert.False(t, seen[id])
			seen[id] = true
		}
	})
}

func TestIsValidULID(t *testing.T) {
	t.Run("Valid generated ID", func(t *testing.T) {
		assert.True(t, IsValidULID(NewID("audit")))
	})

	t.Run("Rejects malformed values", func(t *testing.T) {
		cases := []string{
			"",
			"si",
			"si_",
			"_01G0EZ1XTM37C5X11SQTDNCTM1",
			"si_notaulid",
			"si_01G0EZ1XTM37C5X11SQTDNCTM1_extra",
			"SI_01G0EZ1XTM37C5X11SQTDNCTM1",
			"si_01g0ez1xtm37c5x11sqtdnctm1",
		}
		for _, c := range cases {
			assert.False(t, IsValidULID(c), "expected %q to be invalid", c)
		}
	})
}

func TestNewSecretKey(t *testing.T) {
	t.Run("Generates prefixed key", func(t *testing.T) {
		key, err := NewSecretKey("sk")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(key, "sk_"))
		assert.Greater(t, len(key), len("sk_")+32)
	})

	t.Run("Generates unique keys", func(t *testing.T) {
		first, err := NewSecretKey("sk")
		require.NoError(t, err)
		second, err := NewSecretKey("sk")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
