package blob

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	backends := map[string]Store{
		BackendMemory: NewMemoryStore(),
	}

	bs, err := OpenBolt(filepath.Join(dir, "bolt", "lists.db"))
	require.NoError(t, err)
	backends[BackendBolt] = bs

	ss, err := OpenSQLite(filepath.Join(dir, "sqlite", "lists.db"))
	require.NoError(t, err)
	backends[BackendSQLite] = ss

	t.Cleanup(func() {
		for _, s := range backends {
			_ = s.Close()
		}
	})

	return backends
}

func TestStore_Contract(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, ok, err := s.Get(ctx, "grocery-items")
			require.NoError(t, err)
			assert.False(t, ok, "absent key should report ok=false")

			require.NoError(t, s.Set(ctx, "grocery-items", `[{"id":"1"}]`))
			got, ok, err := s.Get(ctx, "grocery-items")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `[{"id":"1"}]`, got)

			require.NoError(t, s.Set(ctx, "grocery-items", `[]`))
			got, _, err = s.Get(ctx, "grocery-items")
			require.NoError(t, err)
			assert.Equal(t, `[]`, got, "set should replace the previous value")

			require.NoError(t, s.Set(ctx, "grocery-list-bbq", "x"))
			got, _, err = s.Get(ctx, "grocery-items")
			require.NoError(t, err)
			assert.Equal(t, `[]`, got, "keys must not share values")
		})
	}
}

func TestStore_EmptyKey(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, _, err := s.Get(ctx, "")
			assert.ErrorIs(t, err, ErrEmptyKey)
			assert.ErrorIs(t, s.Set(ctx, "", "v"), ErrEmptyKey)
		})
	}
}

func TestStore_CancelledContext(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, _, err := s.Get(ctx, "k")
			assert.ErrorIs(t, err, context.Canceled)
			assert.ErrorIs(t, s.Set(ctx, "k", "v"), context.Canceled)
		})
	}
}

func TestBoltStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.db")
	ctx := context.Background()

	s, err := OpenBolt(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "grocery-items", "persisted"))
	require.NoError(t, s.Close())

	reopened, err := OpenBolt(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, "grocery-items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", got)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lists.sqlite")
	ctx := context.Background()

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "grocery-items", "persisted"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, "grocery-items")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		backend string
		path    string
		wantErr error
	}{
		{BackendMemory, "", nil},
		{BackendBolt, filepath.Join(dir, "a.db"), nil},
		{BackendSQLite, filepath.Join(dir, "b.db"), nil},
		{BackendBolt, "", ErrEmptyPath},
		{BackendSQLite, "", ErrEmptyPath},
		{"redis", "", ErrUnknownBackend},
	}

	for _, tt := range tests {
		t.Run(tt.backend+"/"+filepath.Base(tt.path), func(t *testing.T) {
			s, err := Open(tt.backend, tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, s.Close())
		})
	}
}
