package ntuple_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/samcharles93/dmmy/internal/ntupletest"
	"github.com/samcharles93/dmmy/pkg/bytecursor"
	"github.com/samcharles93/dmmy/pkg/ntuple"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	buf, _ := ntupletest.Build(twoPageFixture())
	path := filepath.Join(t.TempDir(), "doc.ntuple")
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc, err := ntuple.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	// The mapping is gone; the document must still be readable.
	if doc.Name != "events" || len(doc.Pages) != 2 || doc.Pages[1][2] != 3 {
		t.Fatalf("document: %+v", doc)
	}
}

func TestReadFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := ntuple.ReadFile(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v", err)
	}

	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ntuple.ReadFile(empty); !errors.Is(err, bytecursor.ErrOutOfBounds) {
		t.Fatalf("empty file: got %v", err)
	}
}

func TestReadFrom(t *testing.T) {
	t.Parallel()

	buf, offs := ntupletest.Build(twoPageFixture())
	doc, err := ntuple.ReadFrom(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		t.Fatalf("read from: %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("pages: got %d", len(doc.Pages))
	}

	buf[offs.Pages[1]] ^= 0x01
	_, err = ntuple.ReadFrom(bytes.NewReader(buf), int64(len(buf)))
	if idx, ok := ntuple.PageIndex(err); !ok || idx != 1 {
		t.Fatalf("corrupt page: got %v", err)
	}

	if _, err := ntuple.ReadFrom(bytes.NewReader(buf), -1); !errors.Is(err, ntuple.ErrFileTooLarge) {
		t.Fatalf("negative size: got %v", err)
	}
}
