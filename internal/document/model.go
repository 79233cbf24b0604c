package document

import "time"

// Document represents an uploaded trip document (ticket, booking, receipt)
type Document struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	UploaderID  int64     `json:"uploader_id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentResponse represents the response for a document
type DocumentResponse struct {
	ID          int64  `json:"id"`
	GroupID     int64  `json:"group_id"`
	UploaderID  int64  `json:"uploader_id"`
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	URL         string `json:"url"`
	CreatedAt   string `json:"created_at"`
}

// ToResponse converts a Document model to a DocumentResponse DTO
func (d *Document) ToResponse() *DocumentResponse {
	return &DocumentResponse{
		ID:          d.ID,
		GroupID:     d.GroupID,
		UploaderID:  d.UploaderID,
		Name:        d.Name,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		URL:         d.URL,
		CreatedAt:   d.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
