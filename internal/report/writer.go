package report

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Writer saves rendered reports and screenshots under one output directory.
type Writer struct {
	dir string
}

// NewWriter creates the output directory if needed. An empty dir selects
// the default ~/Documents/travel location.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, "Documents", "travel")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// FlightBase names a flight report for a route and date, extension excluded.
func FlightBase(fromCode, toCode, date string) string {
	return fmt.Sprintf("flights-%s-%s-%s", fromCode, toCode, date)
}

// TrainBase names a train report. Station names can carry non-ASCII or
// separator characters, so they are query-escaped into the filename.
func TrainBase(from, to, date string) string {
	return fmt.Sprintf("trains-%s-%s-%s", url.QueryEscape(from), url.QueryEscape(to), date)
}

// WriteHTML writes a rendered document and returns its full path.
func (w *Writer) WriteHTML(base, html string) (string, error) {
	path := filepath.Join(w.dir, base+".html")
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// WritePNG writes a page screenshot and returns its full path.
func (w *Writer) WritePNG(base string, png []byte) (string, error) {
	path := filepath.Join(w.dir, base+".png")
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("writing screenshot: %w", err)
	}
	return path, nil
}
