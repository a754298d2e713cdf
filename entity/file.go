package entity

import (
	"io"
	"time"
)

// FileMetadata holds GridFS metadata for an uploaded payment screenshot.
type FileMetadata struct {
	MIMEType  string `bson:"mime_type"`
	SessionID string `bson:"session_id"`
}

// StoredFile is an opened screenshot. Content must be closed by the reader.
type StoredFile struct {
	Name       string
	Metadata   FileMetadata
	Size       int64
	UploadedAt time.Time
	Content    io.ReadCloser
}

func (f *StoredFile) ContentType() string {
	if f.Metadata.MIMEType == "" {
		return "application/octet-stream"
	}
	return f.Metadata.MIMEType
}
