package portfolio

import (
	"context"

	"github.com/google/uuid"
)

// Service is the content façade combining the document store and the file
// store with the correct file lifecycle. Authentication is enforced by the
// transport layer in front of the mutating operations.
type Service interface {
	// PortfolioData returns the public read model: profile plus both
	// collections in insertion order.
	PortfolioData(ctx context.Context) (*PortfolioData, error)

	// Profile operations. The profile is a singleton: it is merged onto,
	// never deleted. The replace operations store the new file, swap the
	// reference and then delete the previous file (the default profile
	// image asset is preserved).
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error)
	ReplaceProfileImage(ctx context.Context, upload FileUpload) (*Profile, error)
	ReplaceResume(ctx context.Context, upload FileUpload) (*Profile, error)

	// Certificate operations.
	ListCertificates(ctx context.Context) ([]Certificate, error)
	CreateCertificate(ctx context.Context, req CreateCertificateRequest) (*Certificate, error)
	UpdateCertificate(ctx context.Context, id uuid.UUID, req UpdateCertificateRequest) (*Certificate, error)
	DeleteCertificate(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	// Publication operations.
	ListPublications(ctx context.Context) ([]Publication, error)
	CreatePublication(ctx context.Context, req CreatePublicationRequest) (*Publication, error)
	UpdatePublication(ctx context.Context, id uuid.UUID, req UpdatePublicationRequest) (*Publication, error)
	DeletePublication(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}
