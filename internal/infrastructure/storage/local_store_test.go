//go:build unit
// +build unit

package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"
	"github.com/Wetooa/mentara-sub026/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T, maxSize int64) DocumentStore {
	t.Helper()
	store, err := NewLocalStore(&config.StorageSettings{
		BasePath:          t.TempDir(),
		MaxFileSizeBytes:  maxSize,
		AllowedExtensions: []string{".pdf", ".png", ".jpg", ".jpeg", ".doc", ".docx"},
	}, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return store
}

func TestLocalStore(t *testing.T) {
	store := setupStore(t, 10<<20)
	ctx := context.Background()

	t.Run("SaveOpenDelete", func(t *testing.T) {
		content := []byte("%PDF-1.4 license")
		form, err := testutil.CreateForm(map[string][]byte{"my license.pdf": content}, "files")
		require.NoError(t, err)

		stored, err := store.Save(ctx, "therapists/abc", form.File["files"][0])
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(stored.Path, "therapists/abc/"))
		assert.True(t, strings.HasSuffix(stored.Path, "-my_license.pdf"))
		assert.Equal(t, "my_license.pdf", stored.FileName)
		assert.Equal(t, int64(len(content)), stored.Size)

		data, err := store.Open(ctx, stored.Path)
		require.NoError(t, err)
		assert.Equal(t, content, data)

		require.NoError(t, store.Delete(ctx, stored.Path))
		_, err = store.Open(ctx, stored.Path)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})

	t.Run("RejectsExtension", func(t *testing.T) {
		form, err := testutil.CreateForm(map[string][]byte{"script.exe": []byte("MZ")}, "files")
		require.NoError(t, err)

		_, err = store.Save(ctx, "therapists/abc", form.File["files"][0])
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})

	t.Run("RejectsTraversal", func(t *testing.T) {
		_, err := store.Open(ctx, "../../etc/passwd")
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	})
}

func TestLocalStore_MaxSize(t *testing.T) {
	store := setupStore(t, 8)
	form, err := testutil.CreateForm(map[string][]byte{"scan.png": []byte("0123456789")}, "files")
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "x", form.File["files"][0])
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFileName("../../passwd"))
	assert.Equal(t, "a_b_c.pdf", SanitizeFileName("a b&c.pdf"))
	assert.Equal(t, "file", SanitizeFileName("..."))
	assert.Equal(t, "therapists/abc", SanitizePrefix("/therapists/../abc/"))
	assert.Equal(t, "misc", SanitizePrefix(""))
}
