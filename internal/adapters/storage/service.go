// Package storage provides S3-compatible object storage for generated
// documents (quotes, invoices, contracts). All documents live in a single
// bucket, organized by project folder.
package storage

import (
	"context"
	"io"
	"time"
)

// PresignedURL contains the URL and metadata for a presigned download.
type PresignedURL struct {
	URL       string    `json:"url"`
	FileKey   string    `json:"file_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// UploadDocument stores a document under the given folder and returns
	// the full file key.
	UploadDocument(ctx context.Context, folder, fileName, contentType string, content io.Reader, size int64) (string, error)

	// PresignDownload creates a time-limited download URL for a stored document.
	PresignDownload(ctx context.Context, fileKey string) (*PresignedURL, error)

	// DownloadDocument streams a stored document.
	// The caller is responsible for closing the returned io.ReadCloser.
	DownloadDocument(ctx context.Context, fileKey string) (io.ReadCloser, error)

	// DeleteDocument removes a stored document.
	DeleteDocument(ctx context.Context, fileKey string) error

	// EnsureBucketExists creates the documents bucket if it doesn't exist.
	EnsureBucketExists(ctx context.Context) error
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinioBucketDocuments() string
	IsMinIOEnabled() bool
}
