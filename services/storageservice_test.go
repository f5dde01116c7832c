package services_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"personalhub/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreNeverOverwrites(t *testing.T) {
	root := t.TempDir()
	store, err := services.NewLocalStore(root, "/media/")
	require.NoError(t, err)
	ctx := context.Background()

	first, err := store.Save(ctx, "media/notes/lecture.pdf", strings.NewReader("one"))
	require.NoError(t, err)
	assert.Equal(t, "media/notes/lecture.pdf", first)

	second, err := store.Save(ctx, "media/notes/lecture.pdf", strings.NewReader("two"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "media/notes/lecture_"))
	assert.True(t, strings.HasSuffix(second, ".pdf"))

	body, err := os.ReadFile(filepath.Join(root, "media", "notes", "lecture.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "one", string(body))

	names, err := store.List(ctx, "media/notes/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, names)

	assert.Equal(t, "/media/media/notes/lecture.pdf", store.URL(first))
	assert.Empty(t, store.URL(""))
}

func TestLocalStoreExistsAndDelete(t *testing.T) {
	store, err := services.NewLocalStore(t.TempDir(), "/media")
	require.NoError(t, err)
	ctx := context.Background()

	name, err := store.Save(ctx, "static/site.css", strings.NewReader("body{}"))
	require.NoError(t, err)

	ok, err := store.Exists(ctx, name)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, name))
	require.NoError(t, store.Delete(ctx, name))

	ok, err = store.Exists(ctx, name)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCleanBlobName(t *testing.T) {
	clean, err := services.CleanBlobName(`media\photos\.\me.png`)
	require.NoError(t, err)
	assert.Equal(t, "media/photos/me.png", clean)

	for _, bad := range []string{"", ".", "/"} {
		_, err := services.CleanBlobName(bad)
		assert.ErrorIs(t, err, services.ErrInvalidInput, "name %q", bad)
	}

	escaped, err := services.CleanBlobName("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", escaped)
}

func TestMediaName(t *testing.T) {
	assert.Equal(t, "media/cv/resume.pdf", services.MediaName("media", "cv", `C:\Users\me\resume.pdf`))
	assert.Equal(t, "media/cv/resume.pdf", services.MediaName("media", "cv", "../../resume.pdf"))
}
