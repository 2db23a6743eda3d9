package portfolio

import (
	"github.com/google/uuid"
)

// PublicationType is the domain type for publication kinds.
type PublicationType string

// Publication type constants (typed).
const (
	PublicationArticle PublicationType = "article"
	PublicationThesis  PublicationType = "thesis"
	PublicationBook    PublicationType = "book"
)

// Valid reports whether t is one of the known publication types.
func (t PublicationType) Valid() bool {
	switch t {
	case PublicationArticle, PublicationThesis, PublicationBook:
		return true
	}
	return false
}

// Profile is the singleton owner profile shown on the public page. It is
// only ever overwritten field-by-field, never deleted.
type Profile struct {
	Name             string            `json:"name"`
	Bio              string            `json:"bio"`
	Links            map[string]string `json:"links,omitempty"`
	ProfileImagePath string            `json:"profileImagePath,omitempty"`
	ResumePath       string            `json:"resumePath,omitempty"`
}

// Certificate is a course or training certificate with its PDF and a
// thumbnail image. Both file references are set at creation and only
// change through delete+recreate.
type Certificate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Platform  string    `json:"platform"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	PDFPath   string    `json:"pdfPath"`
	ThumbPath string    `json:"thumbPath"`
}

// Publication is a written work (article, thesis or book) with a single
// attached file.
type Publication struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Type     PublicationType `json:"type"`
	Year     string          `json:"year"`
	Summary  string          `json:"summary,omitempty"`
	FilePath string          `json:"filePath"`
}

// Credential is the single stored admin identity. It is never listed or
// exposed through the public API surface.
type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
}

// Document is the full persisted application state. The document store is
// the single source of truth; every operation re-reads it before mutating.
type Document struct {
	Profile      Profile       `json:"profile"`
	Certificates []Certificate `json:"certificates"`
	Publications []Publication `json:"publications"`
	User         Credential    `json:"user"`
}

// NewDocument returns the default empty-shape document. Document stores
// fall back to it when the underlying storage is unreadable or malformed.
func NewDocument() *Document {
	return &Document{
		Certificates: []Certificate{},
		Publications: []Publication{},
	}
}

// Normalize replaces nil collections with empty ones so callers can append
// without nil checks and the persisted JSON keeps its shape.
func (d *Document) Normalize() {
	if d.Certificates == nil {
		d.Certificates = []Certificate{}
	}
	if d.Publications == nil {
		d.Publications = []Publication{}
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := *d
	out.Certificates = make([]Certificate, len(d.Certificates))
	copy(out.Certificates, d.Certificates)
	out.Publications = make([]Publication, len(d.Publications))
	copy(out.Publications, d.Publications)
	if d.Profile.Links != nil {
		out.Profile.Links = make(map[string]string, len(d.Profile.Links))
		for k, v := range d.Profile.Links {
			out.Profile.Links[k] = v
		}
	}
	return &out
}

// PortfolioData is the public read model: everything the portfolio page
// needs in a single call. The credential record is deliberately absent.
type PortfolioData struct {
	Profile      Profile       `json:"profile"`
	Certificates []Certificate `json:"certificates"`
	Publications []Publication `json:"publications"`
}
