package document

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcrew/tripcrew/internal/writecoord"
)

type fakeStore struct {
	documents  map[int64]*Document
	nextID     int64
	failInsert bool
}

func newFakeMetaStore() *fakeStore {
	return &fakeStore{documents: make(map[int64]*Document)}
}

func (f *fakeStore) Insert(_ context.Context, d *Document) error {
	if f.failInsert {
		return errors.New("insert failed")
	}
	f.nextID++
	d.ID = f.nextID
	stored := *d
	f.documents[d.ID] = &stored
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int64) (*Document, error) {
	d, ok := f.documents[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (f *fakeStore) ListByGroupID(_ context.Context, groupID int64) ([]*Document, error) {
	var out []*Document
	for _, d := range f.documents {
		if d.GroupID == groupID {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	delete(f.documents, id)
	return nil
}

type fakeBlobStore struct {
	blobs      map[string][]byte
	nextKey    int
	failDelete bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, data []byte) (string, error) {
	f.nextKey++
	url := "/blobs/" + string(rune('a'+f.nextKey))
	f.blobs[url] = bytes.Clone(data)
	return url, nil
}

func (f *fakeBlobStore) Open(_ context.Context, url string) ([]byte, error) {
	data, ok := f.blobs[url]
	if !ok {
		return nil, errors.New("blob not found")
	}
	return bytes.Clone(data), nil
}

func (f *fakeBlobStore) Delete(_ context.Context, url string) error {
	if f.failDelete {
		return errors.New("blob delete failed")
	}
	delete(f.blobs, url)
	return nil
}

func TestServiceUpload(t *testing.T) {
	store := newFakeMetaStore()
	blobs := newFakeBlobStore()
	svc := NewService(store, blobs, writecoord.New(nil))

	doc, err := svc.Upload(context.Background(), 1, 2, "tickets.pdf", "application/pdf", []byte("pdf bytes"))
	require.NoError(t, err)
	assert.NotZero(t, doc.ID)
	assert.NotEmpty(t, doc.URL)
	assert.Equal(t, int64(9), doc.SizeBytes)

	assert.Len(t, store.documents, 1)
	assert.Len(t, blobs.blobs, 1)
	assert.Equal(t, []byte("pdf bytes"), blobs.blobs[doc.URL])
}

func TestServiceDownload(t *testing.T) {
	store := newFakeMetaStore()
	blobs := newFakeBlobStore()
	svc := NewService(store, blobs, writecoord.New(nil))

	doc, err := svc.Upload(context.Background(), 1, 2, "tickets.pdf", "application/pdf", []byte("pdf bytes"))
	require.NoError(t, err)

	got, data, err := svc.Download(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "application/pdf", got.ContentType)
	assert.Equal(t, []byte("pdf bytes"), data, "download returns the uploaded bytes")

	_, _, err = svc.Download(context.Background(), 999)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestServiceUploadMetadataFailureRemovesBlob(t *testing.T) {
	store := newFakeMetaStore()
	store.failInsert = true
	blobs := newFakeBlobStore()
	svc := NewService(store, blobs, writecoord.New(nil))

	_, err := svc.Upload(context.Background(), 1, 2, "tickets.pdf", "application/pdf", []byte("pdf bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document.upload")

	assert.Empty(t, store.documents)
	assert.Empty(t, blobs.blobs, "uploaded blob must be compensated away")
}

func TestServiceUploadRejectsBadInput(t *testing.T) {
	svc := NewService(newFakeMetaStore(), newFakeBlobStore(), writecoord.New(nil))

	_, err := svc.Upload(context.Background(), 1, 2, "empty.txt", "text/plain", nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = svc.Upload(context.Background(), 1, 2, "huge.bin", "application/octet-stream", make([]byte, MaxSizeBytes+1))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestServiceDelete(t *testing.T) {
	store := newFakeMetaStore()
	blobs := newFakeBlobStore()
	svc := NewService(store, blobs, writecoord.New(nil))

	doc, err := svc.Upload(context.Background(), 1, 2, "booking.pdf", "application/pdf", []byte("data"))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), doc.ID, 3)
	assert.ErrorIs(t, err, ErrNotUploader)

	err = svc.Delete(context.Background(), doc.ID, 2)
	require.NoError(t, err)
	assert.Empty(t, store.documents)
	assert.Empty(t, blobs.blobs)
}

func TestServiceDeleteToleratesBlobFailure(t *testing.T) {
	store := newFakeMetaStore()
	blobs := newFakeBlobStore()
	svc := NewService(store, blobs, writecoord.New(nil))

	doc, err := svc.Upload(context.Background(), 1, 2, "receipt.jpg", "image/jpeg", []byte("jpeg"))
	require.NoError(t, err)

	blobs.failDelete = true
	err = svc.Delete(context.Background(), doc.ID, 2)
	require.NoError(t, err, "metadata delete wins; orphaned blob is only logged")
	assert.Empty(t, store.documents)
	assert.Len(t, blobs.blobs, 1, "blob left behind when its delete fails")
}
