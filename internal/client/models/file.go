// Package models holds the client-side data model: local files selected
// for upload, grants issued by the server, and upload results.
package models

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"
)

// FileBlob is one local file in a batch: its name, size, declared MIME
// type, and a way to open its bytes. The declared type is trusted as-is;
// the server applies its image/ allowlist to it.
type FileBlob struct {
	Name string
	Size int64
	Type string
	Open func() (io.ReadCloser, error)
}

// FileBlobFromPath builds a FileBlob for a file on disk. The MIME type is
// derived from the extension; files with an unknown extension get an empty
// type and will be rejected before any presign call.
func FileBlobFromPath(path string) (FileBlob, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileBlob{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return FileBlob{}, fmt.Errorf("%s is a directory", path)
	}

	return FileBlob{
		Name: filepath.Base(path),
		Size: info.Size(),
		Type: mime.TypeByExtension(filepath.Ext(path)),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// PresignGrant is the server's answer to a presign request: a signed,
// short-lived upload URL and the stable public URL, both embedding Key.
type PresignGrant struct {
	UploadURL string
	PublicURL string
	Key       string
}

// UploadedFile describes one durably stored object. Created only after a
// successful transfer; ID equals the object key from the grant that
// produced it. Immutable once created.
type UploadedFile struct {
	ID         string
	Name       string
	Size       int64
	Type       string
	URL        string
	UploadedAt time.Time
}

// BatchProgress is the orchestrator's view of the in-flight batch. Only
// the orchestrator mutates it; PercentComplete never decreases within one
// run and resets to 0 at the start of the next.
type BatchProgress struct {
	PercentComplete int
	IsUploading     bool
	Error           string
	CompletedFiles  []UploadedFile
}
