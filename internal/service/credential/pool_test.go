package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytscout/ytscout/internal/model"
)

func TestPool_Add(t *testing.T) {
	tests := []struct {
		name      string
		existing  []string
		raw       string
		wantAdded int
		wantKeys  []string
	}{
		{
			name:      "new keys split on newlines and trimmed",
			raw:       "  key-a  \nkey-b\n\n  \nkey-c",
			wantAdded: 3,
			wantKeys:  []string{"key-a", "key-b", "key-c"},
		},
		{
			name:      "duplicates within input dropped",
			raw:       "key-a\nkey-a\nkey-b",
			wantAdded: 2,
			wantKeys:  []string{"key-a", "key-b"},
		},
		{
			name:      "duplicates against existing entries dropped, order stable",
			existing:  []string{"key-a", "key-b"},
			raw:       "key-b\nkey-c",
			wantAdded: 1,
			wantKeys:  []string{"key-a", "key-b", "key-c"},
		},
		{
			name:      "nothing new is a zero-effect call",
			existing:  []string{"key-a"},
			raw:       "key-a\n\n",
			wantAdded: 0,
			wantKeys:  []string{"key-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.existing)
			added := pool.Add(tt.raw)
			assert.Equal(t, tt.wantAdded, added)
			assert.Equal(t, tt.wantKeys, pool.Keys())
		})
	}
}

func TestPool_Rotate(t *testing.T) {
	t.Run("empty pool", func(t *testing.T) {
		pool := NewPool(nil)
		assert.False(t, pool.Rotate())
	})

	t.Run("single key is a no-op", func(t *testing.T) {
		pool := NewPool([]string{"only"})
		assert.False(t, pool.Rotate())
		assert.Equal(t, 0, pool.CurrentIndex())
	})

	t.Run("cycles through all indices before repeating", func(t *testing.T) {
		pool := NewPool([]string{"a", "b", "c"})
		seen := []int{pool.CurrentIndex()}
		for i := 0; i < 2; i++ {
			require.True(t, pool.Rotate())
			seen = append(seen, pool.CurrentIndex())
		}
		assert.Equal(t, []int{0, 1, 2}, seen)

		// Next rotation wraps back to the start
		require.True(t, pool.Rotate())
		assert.Equal(t, 0, pool.CurrentIndex())
	})
}

func TestPool_Remove(t *testing.T) {
	tests := []struct {
		name        string
		keys        []string
		rotations   int
		removeIndex int
		wantIndex   int
		wantKeys    []string
	}{
		{
			name:        "removal before pointer shifts it back",
			keys:        []string{"a", "b", "c"},
			rotations:   2, // pointer at c
			removeIndex: 0,
			wantIndex:   1, // still c
			wantKeys:    []string{"b", "c"},
		},
		{
			name:        "removal at pointer shifts it back",
			keys:        []string{"a", "b", "c"},
			rotations:   2,
			removeIndex: 2,
			wantIndex:   1,
			wantKeys:    []string{"a", "b"},
		},
		{
			name:        "removal after pointer leaves it alone",
			keys:        []string{"a", "b", "c"},
			rotations:   0,
			removeIndex: 2,
			wantIndex:   0,
			wantKeys:    []string{"a", "b"},
		},
		{
			name:        "pool emptied resets pointer",
			keys:        []string{"a"},
			rotations:   0,
			removeIndex: 0,
			wantIndex:   0,
			wantKeys:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.keys)
			for i := 0; i < tt.rotations; i++ {
				pool.Rotate()
			}
			require.NoError(t, pool.Remove(tt.removeIndex))
			assert.Equal(t, tt.wantIndex, pool.CurrentIndex())
			assert.Equal(t, tt.wantKeys, pool.Keys())
		})
	}

	t.Run("out of range", func(t *testing.T) {
		pool := NewPool([]string{"a"})
		assert.Error(t, pool.Remove(1))
		assert.Error(t, pool.Remove(-1))
	})
}

func TestPool_RemoveDropsValidity(t *testing.T) {
	pool := NewPool([]string{"a", "b"})
	pool.SetValidity("a", model.ValidityResult{Valid: true})
	pool.SetValidity("b", model.ValidityResult{Valid: false, Reason: "quota exceeded"})

	require.NoError(t, pool.Remove(0))

	_, ok := pool.Validity("a")
	assert.False(t, ok)
	result, ok := pool.Validity("b")
	assert.True(t, ok)
	assert.False(t, result.Valid)
}

func TestPool_Clear(t *testing.T) {
	pool := NewPool([]string{"a", "b"})
	pool.Rotate()
	pool.SetValidity("a", model.ValidityResult{Valid: true})

	pool.Clear()

	assert.Equal(t, 0, pool.Len())
	assert.Equal(t, 0, pool.CurrentIndex())
	_, ok := pool.Current()
	assert.False(t, ok)
	_, ok = pool.Validity("a")
	assert.False(t, ok)
}

func TestPool_Current(t *testing.T) {
	pool := NewPool(nil)
	_, ok := pool.Current()
	assert.False(t, ok)

	pool.Add("a\nb")
	key, ok := pool.Current()
	assert.True(t, ok)
	assert.Equal(t, "a", key)

	pool.Rotate()
	key, _ = pool.Current()
	assert.Equal(t, "b", key)
}
