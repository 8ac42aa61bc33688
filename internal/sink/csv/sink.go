// Package csvsink serializes page records to a CSV file.
package csvsink

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/kitsunelab/blogmap/internal/scraper"
)

var header = []string{"Title", "URL", "Links"}

// Sink writes records to a single CSV file, truncating any existing content.
type Sink struct {
	path   string
	logger *zap.Logger
}

// New returns a Sink targeting path.
func New(path string, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{path: path, logger: logger}
}

// Write emits the header row followed by one row per record. The Links cell
// holds the record's links joined by newlines; encoding/csv quotes the cell
// so embedded newlines stay inside one field. A write failure is returned to
// the caller and is fatal to the run.
func (s *Sink) Write(records []scraper.PageRecord) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		row := []string{rec.Title, rec.URL, strings.Join(rec.Links, "\n")}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", rec.URL, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush output %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", s.path, err)
	}

	s.logger.Info("results written", zap.String("path", s.path), zap.Int("records", len(records)))
	return nil
}
