package portfolio

import "io"

// FileUpload is an uploaded file handle as handed over by the transport
// layer: the client-supplied filename (used only for its extension) and
// the content reader.
type FileUpload struct {
	Filename string
	Reader   io.Reader
}

// CreateCertificateRequest contains the metadata and the two mandatory
// files for a new certificate.
type CreateCertificateRequest struct {
	Name     string
	Platform string
	Date     string
	Category string

	PDF       *FileUpload
	Thumbnail *FileUpload
}

// UpdateCertificateRequest carries a metadata-only partial update. Nil
// fields are left untouched; file references cannot be changed here.
type UpdateCertificateRequest struct {
	Name     *string
	Platform *string
	Date     *string
	Category *string
}

// CreatePublicationRequest contains the metadata and the mandatory file
// for a new publication.
type CreatePublicationRequest struct {
	Name    string
	Type    PublicationType
	Year    string
	Summary string

	File *FileUpload
}

// UpdatePublicationRequest carries a metadata-only partial update. Nil
// fields are left untouched; the file reference cannot be changed here.
type UpdatePublicationRequest struct {
	Name    *string
	Type    *PublicationType
	Year    *string
	Summary *string
}

// UpdateProfileRequest merges onto the singleton profile. Nil fields are
// retained; a non-nil Links map replaces the stored one wholesale.
type UpdateProfileRequest struct {
	Name  *string
	Bio   *string
	Links map[string]string
}
