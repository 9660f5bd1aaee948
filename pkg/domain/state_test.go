package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sprig/pkg/domain"
)

func TestState_Clone(t *testing.T) {
	original := domain.State{"name": "Alice", "greeting": ""}

	clone := original.Clone()
	clone["name"] = "Bob"
	clone["extra"] = 42

	assert.Equal(t, "Alice", original["name"], "clone must not alias the original")
	assert.False(t, original.Has("extra"))
	assert.Equal(t, "Bob", clone["name"])
}

func TestState_Merge(t *testing.T) {
	t.Run("adds new fields", func(t *testing.T) {
		s := domain.State{"name": "Alice"}
		s.Merge(domain.Delta{"greeting": "hi"})

		assert.Equal(t, domain.State{"name": "Alice", "greeting": "hi"}, s)
	})

	t.Run("last writer wins", func(t *testing.T) {
		s := domain.State{"field": "first"}
		s.Merge(domain.Delta{"field": "second"})
		s.Merge(domain.Delta{"field": "third"})

		assert.Equal(t, "third", s["field"])
	})

	t.Run("empty delta is a no-op", func(t *testing.T) {
		s := domain.State{"name": "Alice"}
		s.Merge(domain.Delta{})

		assert.Equal(t, domain.State{"name": "Alice"}, s)
	})
}

func TestState_GetString(t *testing.T) {
	s := domain.State{"name": "Alice", "count": 3}

	name, ok := s.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name)

	_, ok = s.GetString("missing")
	assert.False(t, ok)

	_, ok = s.GetString("count")
	assert.False(t, ok, "non-string values must not coerce")
}
