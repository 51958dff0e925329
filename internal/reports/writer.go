package reports

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"donbalon-gateway/internal/providers"
)

// Writer archives downloaded report PDFs under a base directory, one
// subdirectory per report kind, pruning archives past the retention
// window. Writes are atomic (tmp file plus rename).
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window
// retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

func (w *Writer) reportPath(kind providers.ReportKind, name string) string {
	return filepath.Join(w.basePath, string(kind), name+".pdf")
}

// Save archives one report under its kind. The name is sanitized to a
// flat file name; an identical existing archive is left untouched.
func (w *Writer) Save(kind providers.ReportKind, name string, data []byte) (string, error) {
	if w == nil {
		return "", fmt.Errorf("report writer not configured")
	}
	if name == "" {
		return "", fmt.Errorf("report name required")
	}

	target := w.reportPath(kind, sanitizeName(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", err
	}

	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, data) {
		return target, w.prune(kind)
	}

	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, target); err != nil {
		return "", err
	}

	return target, w.prune(kind)
}

// prune removes archives of the kind older than the retention window,
// judged by modification time.
func (w *Writer) prune(kind providers.ReportKind) error {
	dir := filepath.Join(w.basePath, string(kind))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	cutoff := w.now().UTC().AddDate(0, 0, -w.retentionDays)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".pdf" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, e.Name()))
		}
	}
	return nil
}

func sanitizeName(name string) string {
	replacer := strings.NewReplacer("/", "-", "\\", "-", "..", "-", " ", "-")
	return replacer.Replace(name)
}
