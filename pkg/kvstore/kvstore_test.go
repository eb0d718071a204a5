package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	t.Run("get missing -> ErrNotFound", func(t *testing.T) {
		_, err := s.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "a", []byte("one")))
		v, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("one"), v)
	})

	t.Run("overwrite wins", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "a", []byte("two")))
		v, err := s.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), v)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, "a"))
		require.NoError(t, s.Delete(ctx, "a"))
		_, err := s.Get(ctx, "a")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "b", []byte("abc")))
		v, err := s.Get(ctx, "b")
		require.NoError(t, err)
		v[0] = 'x'
		again, err := s.Get(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFile(t.TempDir())
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "cart", []byte(`{"lines":[]}`)))
		v, err := s.Get(ctx, "cart")
		require.NoError(t, err)
		assert.JSONEq(t, `{"lines":[]}`, string(v))
	})

	t.Run("keys with separators stay disjoint", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "client:1:cart", []byte("a")))
		require.NoError(t, s.Set(ctx, "client:2:cart", []byte("b")))
		v, err := s.Get(ctx, "client:1:cart")
		require.NoError(t, err)
		assert.Equal(t, []byte("a"), v)
	})

	t.Run("delete missing is a no-op", func(t *testing.T) {
		assert.NoError(t, s.Delete(ctx, "never-set"))
	})

	t.Run("get missing -> ErrNotFound", func(t *testing.T) {
		_, err := s.Get(ctx, "never-set")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPrefixed(t *testing.T) {
	ctx := context.Background()
	base := NewMemory()

	a := Prefixed(base, "client:a:")
	b := Prefixed(base, "client:b:")

	require.NoError(t, a.Set(ctx, "session", []byte("alice")))
	require.NoError(t, b.Set(ctx, "session", []byte("bob")))

	v, err := a.Get(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte("alice"), v)

	require.NoError(t, a.Delete(ctx, "session"))
	_, err = a.Get(ctx, "session")
	assert.ErrorIs(t, err, ErrNotFound)

	v, err = b.Get(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte("bob"), v)
}
