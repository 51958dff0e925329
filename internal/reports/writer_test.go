package reports

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"donbalon-gateway/internal/providers"
)

func TestSaveWritesUnderKindDirectory(t *testing.T) {
	w := NewWriter(t.TempDir(), 30)

	path, err := w.Save(providers.ReportConfirmation, "reserva-42", []byte("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	want := filepath.Join(w.BasePath(), "confirmation", "reserva-42.pdf")
	if path != want {
		t.Fatalf("expected %q, got %q", want, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected archive content %q", data)
	}
}

func TestSaveSanitizesName(t *testing.T) {
	w := NewWriter(t.TempDir(), 30)

	path, err := w.Save(providers.ReportClient, "../cliente 3/../x", []byte("x"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(w.BasePath(), "client") {
		t.Fatalf("sanitized name escaped the kind directory: %q", path)
	}
}

func TestSaveRequiresName(t *testing.T) {
	w := NewWriter(t.TempDir(), 30)

	if _, err := w.Save(providers.ReportClient, "", []byte("x")); err == nil {
		t.Fatal("expected an error for an empty name")
	}
}

func TestSaveSkipsIdenticalArchive(t *testing.T) {
	w := NewWriter(t.TempDir(), 30)

	path, err := w.Save(providers.ReportConfirmation, "reserva-42", []byte("same"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := w.Save(providers.ReportConfirmation, "reserva-42", []byte("same")); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	second, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !second.ModTime().Equal(first.ModTime()) {
		t.Error("identical archive should be left untouched")
	}
}

func TestSaveOverwritesChangedArchive(t *testing.T) {
	w := NewWriter(t.TempDir(), 30)

	path, err := w.Save(providers.ReportConfirmation, "reserva-42", []byte("v1"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := w.Save(providers.ReportConfirmation, "reserva-42", []byte("v2")); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "v2" {
		t.Fatalf("expected updated archive, got %q", data)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should not survive the rename")
	}
}

func TestPruneRemovesExpiredArchives(t *testing.T) {
	w := NewWriter(t.TempDir(), 30)

	stale, err := w.Save(providers.ReportMonthlyUse, "viejo", []byte("old"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Age the first archive past the retention window.
	old := time.Now().AddDate(0, 0, -31)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	fresh, err := w.Save(providers.ReportMonthlyUse, "nuevo", []byte("new"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("expired archive should be pruned")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh archive must survive pruning: %v", err)
	}
}

func TestNilWriterIsSafe(t *testing.T) {
	var w *Writer

	if got := w.BasePath(); got != "" {
		t.Errorf("expected empty base path, got %q", got)
	}
	if _, err := w.Save(providers.ReportClient, "x", nil); err == nil {
		t.Error("saving on a nil writer must fail")
	}
}
