package document

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tripcrew/tripcrew/internal/blob"
	"github.com/tripcrew/tripcrew/internal/writecoord"
)

// Common errors
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrNotUploader      = errors.New("only the uploader can delete this document")
	ErrEmptyDocument    = errors.New("document has no content")
	ErrTooLarge         = errors.New("document exceeds the size limit")
)

// MaxSizeBytes caps uploads at 10 MiB
const MaxSizeBytes = 10 << 20

// Store is the metadata persistence surface the document service needs
type Store interface {
	Insert(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id int64) (*Document, error)
	ListByGroupID(ctx context.Context, groupID int64) ([]*Document, error)
	Delete(ctx context.Context, id int64) error
}

// Service handles document business logic
type Service struct {
	store Store
	blobs blob.Store
	coord *writecoord.Coordinator
	log   *slog.Logger
}

// NewService creates a new document service
func NewService(store Store, blobs blob.Store, coord *writecoord.Coordinator) *Service {
	return &Service{store: store, blobs: blobs, coord: coord, log: slog.Default()}
}

// Upload stores the document bytes and their metadata as one coordinated
// write. If the metadata insert fails the uploaded blob is removed again, so
// no unreferenced blobs accumulate.
func (s *Service) Upload(ctx context.Context, groupID, uploaderID int64, name, contentType string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDocument
	}
	if len(data) > MaxSizeBytes {
		return nil, ErrTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	doc := &Document{
		GroupID:     groupID,
		UploaderID:  uploaderID,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}

	err := s.coord.Execute(ctx, "document.upload",
		writecoord.Step{
			Name: "store blob",
			Run: func(ctx context.Context) error {
				url, err := s.blobs.Put(ctx, data)
				if err != nil {
					return err
				}
				doc.URL = url
				return nil
			},
			Compensate: func(ctx context.Context) error {
				return s.blobs.Delete(ctx, doc.URL)
			},
		},
		writecoord.Step{
			Name: "insert metadata",
			Run: func(ctx context.Context) error {
				return s.store.Insert(ctx, doc)
			},
			Compensate: func(ctx context.Context) error {
				return s.store.Delete(ctx, doc.ID)
			},
		},
	)
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// GetByID retrieves a document by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Document, error) {
	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDocumentNotFound
	}
	return d, nil
}

// Download returns a document's metadata together with its bytes
func (s *Service) Download(ctx context.Context, id int64) (*Document, []byte, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.blobs.Open(ctx, d.URL)
	if err != nil {
		return nil, nil, err
	}

	return d, data, nil
}

// ListByGroupID retrieves documents for a group
func (s *Service) ListByGroupID(ctx context.Context, groupID int64) ([]*Document, error) {
	return s.store.ListByGroupID(ctx, groupID)
}

// Delete removes a document. The metadata row goes first; if the blob delete
// then fails the blob is merely orphaned, which is logged and harmless,
// whereas metadata pointing at a missing blob would break downloads.
func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d == nil {
		return ErrDocumentNotFound
	}
	if d.UploaderID != actorID {
		return ErrNotUploader
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, d.URL); err != nil {
		s.log.Error("failed to delete document blob",
			"document_id", id,
			"url", d.URL,
			"error", err,
		)
	}

	return nil
}
