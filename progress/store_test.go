// ABOUTME: Tests for the SQLite progress store: replace semantics, key validation, and reopen.
package progress

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "progress.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestPutGetReplacesSet(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "ai_maturity_progress_en", []string{"Technical-L2-1", "Personnel-L1-0", "Technical-L2-1", ""}))
	got, err := s.Get(ctx, "ai_maturity_progress_en")
	require.NoError(t, err)
	assert.Equal(t, []string{"Personnel-L1-0", "Technical-L2-1"}, got)

	require.NoError(t, s.Put(ctx, "ai_maturity_progress_en", []string{"Governance-L3-0"}))
	got, err = s.Get(ctx, "ai_maturity_progress_en")
	require.NoError(t, err)
	assert.Equal(t, []string{"Governance-L3-0"}, got)

	require.NoError(t, s.Put(ctx, "ai_maturity_progress_en", nil))
	got, err = s.Get(ctx, "ai_maturity_progress_en")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got, "empty progress encodes as [] not null")
}

func TestKeysAreIndependent(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "ai_maturity_progress", []string{"人员能力-L1-0"}))
	require.NoError(t, s.Put(ctx, "ai_maturity_progress_en", []string{"Personnel-L1-0", "Personnel-L1-1"}))

	zh, err := s.Get(ctx, "ai_maturity_progress")
	require.NoError(t, err)
	assert.Equal(t, []string{"人员能力-L1-0"}, zh)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ai_maturity_progress", "ai_maturity_progress_en"}, keys)
}

func TestInvalidKeys(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	for _, key := range []string{"", "has space", "../etc", string(make([]byte, 65))} {
		_, err := s.Get(ctx, key)
		assert.True(t, errors.Is(err, ErrInvalidKey), "get %q", key)
		err = s.Put(ctx, key, []string{"x"})
		assert.True(t, errors.Is(err, ErrInvalidKey), "put %q", key)
	}
	assert.True(t, ValidKey("team-a.v2_progress"))
}

func TestProgressSurvivesReopen(t *testing.T) {
	s, path := openTemp(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "k", []string{"a", "b"}))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	got, err := s2.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}
