package memory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocuments_CreateAssignsIDs(t *testing.T) {
	s := NewDocuments()

	id1, err := s.Create(context.Background(), "pets", map[string]string{"name": "Rex"})
	require.NoError(t, err)
	id2, err := s.Create(context.Background(), "pets", map[string]string{"name": "Mia"})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, s.Len("pets"))

	doc, err := s.Get("pets", id1)
	require.NoError(t, err)
	assert.Equal(t, "Rex", doc.(map[string]string)["name"])

	_, err = s.Get("pets", "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Create(context.Background(), " ", "x")
	assert.Error(t, err)
}

func TestDocuments_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDocuments().Create(ctx, "pets", "x")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObjects_UploadServeDelete(t *testing.T) {
	s := NewObjects("/objects/")

	url, err := s.Upload(context.Background(), "pets/u/1_cat.png", strings.NewReader("png!"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/objects/pets/u/1_cat.png", url)

	rr := httptest.NewRecorder()
	s.Handler("/objects").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "png!", rr.Body.String())

	require.NoError(t, s.Delete(context.Background(), "pets/u/1_cat.png"))
	assert.False(t, s.Has("pets/u/1_cat.png"))
	assert.ErrorIs(t, s.Delete(context.Background(), "pets/u/1_cat.png"), ErrNotFound)

	rr = httptest.NewRecorder()
	s.Handler("/objects").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
