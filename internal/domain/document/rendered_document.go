package document

import (
	"regexp"
	"time"
)

const (
	// StorageKeyPrefix is the object store prefix for rendered documents
	StorageKeyPrefix = "pdfs/"
	// StorageKeySuffix is the file extension of rendered documents
	StorageKeySuffix = ".pdf"
	// ContentType is the MIME type of rendered documents
	ContentType = "application/pdf"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// RenderedDocument is the metadata row recorded for a rendered record.
// Content is transient: it is filled on fetch and never persisted with the row.
type RenderedDocument struct {
	OwnerID     int64
	DisplayName string
	StorageKey  string
	Content     []byte
	UpdatedAt   time.Time
}

// NewRenderedDocument creates the metadata for a document rendered from ownerID
func NewRenderedDocument(ownerID int64, displayName string) *RenderedDocument {
	return &RenderedDocument{
		OwnerID:     ownerID,
		DisplayName: displayName,
		StorageKey:  StorageKeyFor(displayName),
		UpdatedAt:   time.Now(),
	}
}

// Sanitize replaces every run of whitespace with a single underscore.
func Sanitize(displayName string) string {
	return whitespaceRun.ReplaceAllString(displayName, "_")
}

// StorageKeyFor derives the object key for a display name.
// Two records with the same title share a key; the later upload overwrites.
func StorageKeyFor(displayName string) string {
	return StorageKeyPrefix + Sanitize(displayName) + StorageKeySuffix
}

// DownloadedDocument is the result of a fetch: the display name plus the stored bytes
type DownloadedDocument struct {
	DisplayName string
	Content     []byte
}

// FileName returns the attachment file name for the download
func (d *DownloadedDocument) FileName() string {
	return Sanitize(d.DisplayName) + StorageKeySuffix
}
