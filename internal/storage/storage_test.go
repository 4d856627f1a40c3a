package storage_test

import (
	"testing"

	"storefront/internal/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_SetGetRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	st, err := storage.NewLocal(fs, "/state")
	require.NoError(t, err)

	_, ok, err := st.Get(storage.KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(storage.KeyCart, []byte(`[]`)))
	data, ok, err := st.Get(storage.KeyCart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(data))

	exists, err := afero.Exists(fs, "/state/voguemen_cart.json")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, st.Remove(storage.KeyCart))
	_, ok, err = st.Get(storage.KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing twice is fine.
	assert.NoError(t, st.Remove(storage.KeyCart))
}

func TestLocal_RejectsPathLikeKeys(t *testing.T) {
	st := storage.NewMemory()
	assert.Error(t, st.Set("../escape", []byte("x")))
	_, _, err := st.Get("a/b")
	assert.Error(t, err)
}

func TestLocal_SharesFilesAcrossInstances(t *testing.T) {
	fs := afero.NewMemMapFs()
	first, err := storage.NewLocal(fs, "/state")
	require.NoError(t, err)
	require.NoError(t, first.Set(storage.KeyToken, []byte(`"abc"`)))

	second, err := storage.NewLocal(fs, "/state")
	require.NoError(t, err)
	data, ok, err := second.Get(storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"abc"`, string(data))
}
