package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/entitlements-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/absolute/path", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
		{name: "parent", key: "..", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutGetRoundTripAndPermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)
	key := "entitlements/session"

	require.NoError(t, store.Put(context.Background(), key, `{"access_token":"a"}`))
	require.NoError(t, store.Put(context.Background(), key, `{"access_token":"b"}`))

	got, err := store.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, `{"access_token":"b"}`, got)

	info, err := os.Stat(filepath.Join(root, key))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMod), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(root, "entitlements"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStoreGetMissingSecretIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := NewStore(t.TempDir()).Get(context.Background(), "entitlements/session")

	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	key := "entitlements/session"

	require.NoError(t, store.Put(context.Background(), key, "v"))
	require.NoError(t, store.Delete(context.Background(), key))
	require.NoError(t, store.Delete(context.Background(), key))

	_, err := store.Get(context.Background(), key)
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}
