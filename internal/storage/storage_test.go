package storage

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ref, err := store.NewRef()
	require.NoError(t, err)
	assert.Len(t, ref, 32)
	assert.False(t, store.Exists(ref))

	require.NoError(t, store.Save(ref, strings.NewReader("photo bytes")))
	assert.True(t, store.Exists(ref))

	f, err := store.Open(ref)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "photo bytes", string(data))
}

func TestSaveOverwrites(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	ref, err := store.NewRef()
	require.NoError(t, err)

	require.NoError(t, store.Save(ref, strings.NewReader("first")))
	require.NoError(t, store.Save(ref, strings.NewReader("second")))

	f, err := store.Open(ref)
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestRejectsMalformedRefs(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	for _, ref := range []string{"", "short", "../../etc/passwd", strings.Repeat("z", 32)} {
		err := store.Save(ref, strings.NewReader("x"))
		assert.ErrorIs(t, err, ErrInvalidRef, "ref %q", ref)
	}
}

func TestRefsAreUnique(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref, err := store.NewRef()
		require.NoError(t, err)
		assert.False(t, seen[ref])
		seen[ref] = true
	}
}
