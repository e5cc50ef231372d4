// Package export serializes normalized rows to CSV with the fixed
// 13-column layout.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"li-sourcer/internal/engine"
)

// Exporter writes CSV files under a single output directory.
type Exporter struct {
	Dir string
}

// New creates the output directory if needed.
func New(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}
	return &Exporter{Dir: dir}, nil
}

// Filename returns name unchanged when set, otherwise a timestamped
// default.
func (e *Exporter) Filename(name string) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("profiles_%s.csv", time.Now().Format("20060102_150405"))
}

// WriteAll writes the header and every row to a fresh file, returning the
// full path.
func (e *Exporter) WriteAll(rows []*engine.Row, filename string) (string, error) {
	path := filepath.Join(e.Dir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(engine.Headers()); err != nil {
		return "", fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row.Record()); err != nil {
			return "", fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}

	return path, nil
}

// Append adds one row to the file, writing the header first when the file
// does not exist yet. Used for incremental saves during long fetches.
func (e *Exporter) Append(row *engine.Row, filename string) error {
	path := filepath.Join(e.Dir, filename)

	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if isNew {
		if err := w.Write(engine.Headers()); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	if err := w.Write(row.Record()); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// ProcessedURLs reads the linkedin_url column from an existing export so an
// interrupted run can resume. A missing file yields an empty set.
func (e *Exporter) ProcessedURLs(filename string) (map[string]struct{}, error) {
	path := filepath.Join(e.Dir, filename)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv %q: %w", path, err)
	}

	urlColumn := -1
	processed := make(map[string]struct{})
	for i, record := range records {
		if i == 0 {
			for col, header := range record {
				if header == "linkedin_url" {
					urlColumn = col
				}
			}
			if urlColumn == -1 {
				return nil, fmt.Errorf("csv %q has no linkedin_url column", path)
			}
			continue
		}
		if urlColumn < len(record) && record[urlColumn] != "" {
			processed[record[urlColumn]] = struct{}{}
		}
	}

	return processed, nil
}
