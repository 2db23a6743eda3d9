package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	store, err := New(Config{BaseDir: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return store, dir
}

func TestNewRequiresBaseDir(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() with empty base dir should fail")
	}
}

func TestSaveAndOpen(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Save(ctx, portfolio.CategoryCertificatePDF, "cert.pdf", strings.NewReader("pdf content"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if !strings.HasPrefix(ref, "/uploads/certificates/") {
		t.Errorf("ref = %q, want /uploads/certificates/ prefix", ref)
	}
	if !strings.HasSuffix(ref, ".pdf") {
		t.Errorf("ref = %q, want .pdf extension preserved", ref)
	}

	// The file lands in the category directory under the base dir
	entries, err := os.ReadDir(filepath.Join(dir, "certificates"))
	if err != nil {
		t.Fatalf("reading category dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("category dir has %d entries, want 1", len(entries))
	}

	rc, err := store.Open(ctx, ref)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("reading content: %v", err)
	}
	if string(data) != "pdf content" {
		t.Errorf("content = %q, want %q", data, "pdf content")
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ref1, err := store.Save(ctx, portfolio.CategoryProfileImage, "me.png", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	ref2, err := store.Save(ctx, portfolio.CategoryProfileImage, "me.png", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ref1 == ref2 {
		t.Errorf("two saves of the same filename produced the same ref %q", ref1)
	}
}

func TestOpenMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Open(context.Background(), "/uploads/resume/missing.pdf")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	ref, err := store.Save(ctx, portfolio.CategoryResume, "cv.pdf", strings.NewReader("resume"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Delete(ctx, ref); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Open(ctx, ref); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() after delete error = %v, want os.ErrNotExist", err)
	}

	// Deleting again is a no-op
	if err := store.Delete(ctx, ref); err != nil {
		t.Errorf("second Delete() error = %v, want nil", err)
	}
}

func TestRejectsEscapingRefs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	refs := []string{
		"",
		"certificates/a.pdf",
		"/etc/passwd",
		"/uploads/../etc/passwd",
		"/uploads/certificates/../../etc/passwd",
	}
	for _, ref := range refs {
		if _, err := store.Open(ctx, ref); !errors.Is(err, portfolio.ErrInvalidReference) {
			t.Errorf("Open(%q) error = %v, want ErrInvalidReference", ref, err)
		}
		if err := store.Delete(ctx, ref); !errors.Is(err, portfolio.ErrInvalidReference) {
			t.Errorf("Delete(%q) error = %v, want ErrInvalidReference", ref, err)
		}
	}
}
