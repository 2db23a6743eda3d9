package portfolio

import (
	"context"
	"io"
)

// FileCategory segments uploaded files under the upload root. File
// references embed the category, e.g. "/uploads/certificates/<name>".
type FileCategory string

// File category constants (typed).
const (
	CategoryProfileImage     FileCategory = "profile"
	CategoryResume           FileCategory = "resume"
	CategoryCertificatePDF   FileCategory = "certificates"
	CategoryCertificateThumb FileCategory = "thumbs"
	CategoryPublicationFile  FileCategory = "publications"
)

// Valid reports whether c is one of the known file categories.
func (c FileCategory) Valid() bool {
	switch c {
	case CategoryProfileImage, CategoryResume, CategoryCertificatePDF,
		CategoryCertificateThumb, CategoryPublicationFile:
		return true
	}
	return false
}

// RefPrefix is the leading segment of every file reference.
const RefPrefix = "/uploads/"

// DefaultProfileImageRef is the placeholder profile image. Replacing the
// profile image never deletes it.
const DefaultProfileImageRef = "/uploads/profile/default.png"

// DocumentStore reads and writes the full portfolio document.
//
// Read fails soft: implementations return the default empty-shape document
// when the underlying storage is unreadable or malformed, so a corrupt
// store never takes down the public view. Write replaces the whole
// document; there is no schema versioning and no partial write.
type DocumentStore interface {
	Read(ctx context.Context) (*Document, error)
	Write(ctx context.Context, doc *Document) error
}

// FileStore manages uploaded binary assets in categorized locations.
//
// Save stores the blob under a generated collision-resistant name that
// preserves the original extension and returns a stable reference of the
// form "/uploads/<category>/<name>". Delete is a no-op for missing files
// and rejects references outside the upload root with ErrInvalidReference
// before touching any storage. Open streams a stored file back.
type FileStore interface {
	Save(ctx context.Context, category FileCategory, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
	Delete(ctx context.Context, ref string) error
}
