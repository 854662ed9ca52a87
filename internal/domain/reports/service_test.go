package reports

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fakes
// -------------------------

type call struct {
	op   string // "upload" | "create" | "delete"
	path string
}

type recorder struct {
	calls []call
}

type fakeObjects struct {
	rec       *recorder
	uploadErr error
	deleteErr error
	uploaded  map[string][]byte
}

func (f *fakeObjects) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	f.rec.calls = append(f.rec.calls, call{op: "upload", path: path})
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	b, _ := io.ReadAll(r)
	if f.uploaded == nil {
		f.uploaded = map[string][]byte{}
	}
	f.uploaded[path] = b
	return "https://cdn.example.test/" + path, nil
}

func (f *fakeObjects) Delete(ctx context.Context, path string) error {
	f.rec.calls = append(f.rec.calls, call{op: "delete", path: path})
	return f.deleteErr
}

type fakeDocs struct {
	rec       *recorder
	createErr error
	saved     []Record
}

func (f *fakeDocs) Create(ctx context.Context, collection string, doc any) (string, error) {
	f.rec.calls = append(f.rec.calls, call{op: "create", path: collection})
	if f.createErr != nil {
		return "", f.createErr
	}
	f.saved = append(f.saved, doc.(Record))
	return "doc-1", nil
}

func newTestService() (*Service, *fakeDocs, *fakeObjects, *recorder) {
	rec := &recorder{}
	docs := &fakeDocs{rec: rec}
	objs := &fakeObjects{rec: rec}
	svc := NewService(docs, objs, nil)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, docs, objs, rec
}

func foundCatDraft() Draft {
	return Draft{Attributes: Attributes{
		Status:       StatusFound,
		Species:      "Cat",
		Color:        "Black",
		Date:         "2024-03-01",
		Location:     "Main St",
		ContactName:  "A",
		ContactPhone: "555-0100",
		ContactEmail: "a@b.com",
	}}
}

func jpeg() *Upload {
	data := []byte("\xff\xd8fake")
	return &Upload{Filename: "cat.jpg", ContentType: "image/jpeg", Size: int64(len(data)), Body: bytes.NewReader(data)}
}

// -------------------------
// Tests
// -------------------------

func TestService_Submit_NoPhoto_PersistsNullPhoto(t *testing.T) {
	svc, docs, _, rec := newTestService()

	rep, err := svc.Submit(context.Background(), foundCatDraft(), nil, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "doc-1", rep.ID)
	assert.False(t, rep.CreatedAt.IsZero())
	assert.True(t, rep.Photo.IsZero())

	require.Len(t, docs.saved, 1)
	assert.Nil(t, docs.saved[0].Photo)
	assert.Equal(t, "user-1", docs.saved[0].UserID)
	assert.Equal(t, rep.CreatedAt, docs.saved[0].CreatedAt)

	// sin foto => ninguna llamada de upload
	assert.Equal(t, []call{{op: "create", path: Collection}}, rec.calls)
}

func TestService_Submit_WithPhoto_UploadsBeforeCreate(t *testing.T) {
	svc, docs, objs, rec := newTestService()

	draft := foundCatDraft()
	draft.Photo = LocalPhoto("data:image/jpeg;base64,AAAA")

	rep, err := svc.Submit(context.Background(), draft, jpeg(), "user-1")
	require.NoError(t, err)

	require.Len(t, rec.calls, 2)
	assert.Equal(t, "upload", rec.calls[0].op)
	assert.Equal(t, "create", rec.calls[1].op)

	wantPath := "pets/user-1/1709294400000_cat.jpg"
	assert.Equal(t, wantPath, rec.calls[0].path)
	assert.Equal(t, []byte("\xff\xd8fake"), objs.uploaded[wantPath])

	require.Len(t, docs.saved, 1)
	require.NotNil(t, docs.saved[0].Photo)
	assert.Equal(t, "https://cdn.example.test/"+wantPath, *docs.saved[0].Photo)
	assert.False(t, strings.HasPrefix(*docs.saved[0].Photo, "data:"))

	// el view-model conserva el preview de la sesión
	assert.True(t, rep.Photo.IsLocal())
}

func TestService_Submit_WithPhotoNoPreview_UsesDurableURL(t *testing.T) {
	svc, _, _, _ := newTestService()

	rep, err := svc.Submit(context.Background(), foundCatDraft(), jpeg(), "user-1")
	require.NoError(t, err)
	assert.True(t, rep.Photo.IsRemote())
	assert.Contains(t, rep.Photo.Src(), "https://cdn.example.test/pets/user-1/")
}

func TestService_Submit_UploadFails_NoCreate(t *testing.T) {
	svc, docs, objs, rec := newTestService()
	objs.uploadErr = errors.New("quota exceeded")

	rep, err := svc.Submit(context.Background(), foundCatDraft(), jpeg(), "user-1")
	require.Error(t, err)

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Empty(t, rep.ID)
	assert.Empty(t, docs.saved)
	for _, c := range rec.calls {
		assert.NotEqual(t, "create", c.op)
	}
}

func TestService_Submit_NotAuthenticated_NoIO(t *testing.T) {
	svc, _, _, rec := newTestService()

	_, err := svc.Submit(context.Background(), foundCatDraft(), jpeg(), "  ")
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, rec.calls)
}

func TestService_Submit_CreateFails_DeletesUploadedPhoto(t *testing.T) {
	svc, docs, _, rec := newTestService()
	docs.createErr = errors.New("unavailable")

	_, err := svc.Submit(context.Background(), foundCatDraft(), jpeg(), "user-1")

	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)
	require.Len(t, rec.calls, 3)
	assert.Equal(t, "delete", rec.calls[2].op)
	assert.Equal(t, rec.calls[0].path, rec.calls[2].path)
}

func TestService_Submit_CreateFails_DeleteFailureKeepsPersistenceError(t *testing.T) {
	svc, docs, objs, _ := newTestService()
	docs.createErr = errors.New("unavailable")
	objs.deleteErr = errors.New("also down")

	_, err := svc.Submit(context.Background(), foundCatDraft(), jpeg(), "user-1")

	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.EqualError(t, errors.Unwrap(err), "unavailable")
}

func TestObjectPath_StripsDirectories(t *testing.T) {
	now := time.UnixMilli(42)
	assert.Equal(t, "pets/u/42_x.png", ObjectPath("u", `C:\fakepath\x.png`, now))
	assert.Equal(t, "pets/u/42_photo", ObjectPath("u", "", now))
}
