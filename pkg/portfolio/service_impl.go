package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	docs  DocumentStore
	files FileStore
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithDocumentStore sets the document store for the service
func WithDocumentStore(docs DocumentStore) Option {
	return func(s *service) {
		s.docs = docs
	}
}

// WithFileStore sets the file store for the service
func WithFileStore(files FileStore) Option {
	return func(s *service) {
		s.files = files
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.docs == nil {
		return nil, fmt.Errorf("document store is required")
	}
	if s.files == nil {
		return nil, fmt.Errorf("file store is required")
	}

	return s, nil
}

func (s *service) read(ctx context.Context) (*Document, error) {
	doc, err := s.docs.Read(ctx)
	if err != nil {
		return nil, &StorageError{Op: "read document", Err: err}
	}
	doc.Normalize()
	return doc, nil
}

func (s *service) write(ctx context.Context, doc *Document) error {
	if err := s.docs.Write(ctx, doc); err != nil {
		return &StorageError{Op: "write document", Err: err}
	}
	return nil
}

// discard removes files best-effort. Used for cleanup paths where the
// document state is already authoritative.
func (s *service) discard(ctx context.Context, refs ...string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		_ = s.files.Delete(ctx, ref)
	}
}

// Public read model

func (s *service) PortfolioData(ctx context.Context) (*PortfolioData, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return &PortfolioData{
		Profile:      doc.Profile,
		Certificates: doc.Certificates,
		Publications: doc.Publications,
	}, nil
}

// Profile operations

func (s *service) GetProfile(ctx context.Context) (*Profile, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	profile := doc.Profile
	return &profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doc.Profile.Name = *req.Name
	}
	if req.Bio != nil {
		doc.Profile.Bio = *req.Bio
	}
	if req.Links != nil {
		doc.Profile.Links = req.Links
	}

	if err := s.write(ctx, doc); err != nil {
		return nil, err
	}
	profile := doc.Profile
	return &profile, nil
}

func (s *service) ReplaceProfileImage(ctx context.Context, upload FileUpload) (*Profile, error) {
	return s.replaceProfileFile(ctx, CategoryProfileImage, upload,
		func(p *Profile) *string { return &p.ProfileImagePath }, DefaultProfileImageRef)
}

func (s *service) ReplaceResume(ctx context.Context, upload FileUpload) (*Profile, error) {
	return s.replaceProfileFile(ctx, CategoryResume, upload,
		func(p *Profile) *string { return &p.ResumePath }, "")
}

// replaceProfileFile stores the new file, swaps the profile reference and
// deletes the previous file. The reference swap is authoritative: if the
// document write fails the new file is removed and the old reference
// survives, so a stale reference never points at a deleted file.
func (s *service) replaceProfileFile(ctx context.Context, category FileCategory, upload FileUpload, field func(*Profile) *string, preserved string) (*Profile, error) {
	if upload.Reader == nil {
		return nil, &ValidationError{Field: string(category), Reason: "no file provided"}
	}

	newRef, err := s.files.Save(ctx, category, upload.Filename, upload.Reader)
	if err != nil {
		return nil, &StorageError{Op: fmt.Sprintf("save %s file", category), Err: err}
	}

	doc, err := s.read(ctx)
	if err != nil {
		s.discard(ctx, newRef)
		return nil, err
	}

	ref := field(&doc.Profile)
	oldRef := *ref
	*ref = newRef

	if err := s.write(ctx, doc); err != nil {
		s.discard(ctx, newRef)
		return nil, err
	}

	if oldRef != "" && oldRef != preserved {
		s.discard(ctx, oldRef)
	}

	profile := doc.Profile
	return &profile, nil
}

// Certificate operations

func (s *service) ListCertificates(ctx context.Context) ([]Certificate, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Certificates, nil
}

func (s *service) CreateCertificate(ctx context.Context, req CreateCertificateRequest) (*Certificate, error) {
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if req.PDF == nil || req.PDF.Reader == nil {
		return nil, &ValidationError{Field: "certificatePdf", Reason: "required"}
	}
	if req.Thumbnail == nil || req.Thumbnail.Reader == nil {
		return nil, &ValidationError{Field: "certificateThumb", Reason: "required"}
	}

	pdfRef, err := s.files.Save(ctx, CategoryCertificatePDF, req.PDF.Filename, req.PDF.Reader)
	if err != nil {
		return nil, &StorageError{Op: "save certificate pdf", Err: err}
	}
	thumbRef, err := s.files.Save(ctx, CategoryCertificateThumb, req.Thumbnail.Filename, req.Thumbnail.Reader)
	if err != nil {
		s.discard(ctx, pdfRef)
		return nil, &StorageError{Op: "save certificate thumbnail", Err: err}
	}

	doc, err := s.read(ctx)
	if err != nil {
		s.discard(ctx, pdfRef, thumbRef)
		return nil, err
	}

	cert := Certificate{
		ID:        uuid.New(),
		Name:      req.Name,
		Platform:  req.Platform,
		Date:      req.Date,
		Category:  req.Category,
		PDFPath:   pdfRef,
		ThumbPath: thumbRef,
	}
	doc.Certificates = append(doc.Certificates, cert)

	if err := s.write(ctx, doc); err != nil {
		s.discard(ctx, pdfRef, thumbRef)
		return nil, err
	}

	return &cert, nil
}

func (s *service) UpdateCertificate(ctx context.Context, id uuid.UUID, req UpdateCertificateRequest) (*Certificate, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.Certificates {
		if doc.Certificates[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	cert := &doc.Certificates[idx]
	if req.Name != nil {
		cert.Name = *req.Name
	}
	if req.Platform != nil {
		cert.Platform = *req.Platform
	}
	if req.Date != nil {
		cert.Date = *req.Date
	}
	if req.Category != nil {
		cert.Category = *req.Category
	}

	if err := s.write(ctx, doc); err != nil {
		return nil, err
	}

	out := *cert
	return &out, nil
}

func (s *service) DeleteCertificate(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	idx := -1
	for i := range doc.Certificates {
		if doc.Certificates[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return uuid.Nil, ErrNotFound
	}

	deleted := doc.Certificates[idx]
	doc.Certificates = append(doc.Certificates[:idx], doc.Certificates[idx+1:]...)

	// Metadata removal is authoritative. Files are only touched once the
	// document write succeeded; file deletion failures are non-fatal.
	if err := s.write(ctx, doc); err != nil {
		return uuid.Nil, err
	}
	s.discard(ctx, deleted.PDFPath, deleted.ThumbPath)

	return deleted.ID, nil
}

// Publication operations

func (s *service) ListPublications(ctx context.Context) ([]Publication, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Publications, nil
}

func (s *service) CreatePublication(ctx context.Context, req CreatePublicationRequest) (*Publication, error) {
	if req.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if req.Type != "" && !req.Type.Valid() {
		return nil, &ValidationError{Field: "type", Reason: "must be article, thesis or book"}
	}
	if req.File == nil || req.File.Reader == nil {
		return nil, &ValidationError{Field: "publicationFile", Reason: "required"}
	}

	fileRef, err := s.files.Save(ctx, CategoryPublicationFile, req.File.Filename, req.File.Reader)
	if err != nil {
		return nil, &StorageError{Op: "save publication file", Err: err}
	}

	doc, err := s.read(ctx)
	if err != nil {
		s.discard(ctx, fileRef)
		return nil, err
	}

	pub := Publication{
		ID:       uuid.New(),
		Name:     req.Name,
		Type:     req.Type,
		Year:     req.Year,
		Summary:  req.Summary,
		FilePath: fileRef,
	}
	doc.Publications = append(doc.Publications, pub)

	if err := s.write(ctx, doc); err != nil {
		s.discard(ctx, fileRef)
		return nil, err
	}

	return &pub, nil
}

func (s *service) UpdatePublication(ctx context.Context, id uuid.UUID, req UpdatePublicationRequest) (*Publication, error) {
	if req.Type != nil && !req.Type.Valid() {
		return nil, &ValidationError{Field: "type", Reason: "must be article, thesis or book"}
	}

	doc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range doc.Publications {
		if doc.Publications[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotFound
	}

	pub := &doc.Publications[idx]
	if req.Name != nil {
		pub.Name = *req.Name
	}
	if req.Type != nil {
		pub.Type = *req.Type
	}
	if req.Year != nil {
		pub.Year = *req.Year
	}
	if req.Summary != nil {
		pub.Summary = *req.Summary
	}

	if err := s.write(ctx, doc); err != nil {
		return nil, err
	}

	out := *pub
	return &out, nil
}

func (s *service) DeletePublication(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return uuid.Nil, err
	}

	idx := -1
	for i := range doc.Publications {
		if doc.Publications[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return uuid.Nil, ErrNotFound
	}

	deleted := doc.Publications[idx]
	doc.Publications = append(doc.Publications[:idx], doc.Publications[idx+1:]...)

	if err := s.write(ctx, doc); err != nil {
		return uuid.Nil, err
	}
	s.discard(ctx, deleted.FilePath)

	return deleted.ID, nil
}
