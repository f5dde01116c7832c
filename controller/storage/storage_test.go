package storage

import (
	"net/http"
	"testing"

	"personalhub/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listing struct {
	Prefix string `json:"prefix"`
	Files  []blob `json:"files"`
}

func TestStorageIsAdminOnly(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	StorageController(router, deps)

	testutil.CreateUser(t, deps.DB, "first@example.com")
	user := testutil.CreateUser(t, deps.DB, "second@example.com")
	w := testutil.Do(t, router, http.MethodGet, "/api/admin/storage", testutil.Token(t, deps, user), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = testutil.Do(t, router, http.MethodGet, "/api/admin/storage", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadListDelete(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	StorageController(router, deps)
	token := testutil.Token(t, deps, testutil.Admin(t, deps, "admin@example.com"))

	w := testutil.Upload(t, router, "/api/admin/storage/static?dir=/img/", token, "file", "logo.png", []byte("png"), nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var uploaded blob
	testutil.Decode(t, w, &uploaded)
	assert.Equal(t, blob{Name: "static/img/logo.png", URL: "/media/static/img/logo.png"}, uploaded)

	// a second upload under the same name keeps the first file
	w = testutil.Upload(t, router, "/api/admin/storage/static?dir=img", token, "file", "logo.png", []byte("png2"), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var second blob
	testutil.Decode(t, w, &second)
	assert.NotEqual(t, uploaded.Name, second.Name)

	w = testutil.Do(t, router, http.MethodGet, "/api/admin/storage?prefix=static", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list listing
	testutil.Decode(t, w, &list)
	assert.Equal(t, "static", list.Prefix)
	assert.Len(t, list.Files, 2)

	w = testutil.Do(t, router, http.MethodGet, "/api/admin/storage", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	testutil.Decode(t, w, &list)
	assert.Equal(t, "media", list.Prefix)
	assert.Empty(t, list.Files)

	w = testutil.Do(t, router, http.MethodDelete, "/api/admin/storage/static/img/logo.png", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	ok, err := deps.Store.Exists(t.Context(), "static/img/logo.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUploadRequiresFile(t *testing.T) {
	deps := testutil.NewDeps(t)
	router := testutil.NewRouter(t)
	StorageController(router, deps)
	token := testutil.Token(t, deps, testutil.Admin(t, deps, "admin@example.com"))

	w := testutil.Upload(t, router, "/api/admin/storage/static", token, "other", "x.txt", []byte("x"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
