package rawstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const combinedFilename = "all_profiles_raw.json"

// Store reads and writes captures under a single directory: one
// profile_NNNN.json per capture plus a combined array file.
type Store struct {
	Dir string
}

// New creates the capture directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating raw data dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Save writes a single capture as profile_NNNN.json. The sequence number
// keeps directory listings in fetch order.
func (s *Store) Save(capture *Capture, seq int) error {
	path := filepath.Join(s.Dir, fmt.Sprintf("profile_%04d.json", seq))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating capture file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(capture); err != nil {
		return fmt.Errorf("encoding capture: %w", err)
	}
	return nil
}

// SaveCombined writes every capture into one combined JSON array.
func (s *Store) SaveCombined(captures []*Capture) error {
	path := filepath.Join(s.Dir, combinedFilename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating combined file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(captures); err != nil {
		return fmt.Errorf("encoding combined captures: %w", err)
	}
	return nil
}

// LoadDir loads every profile_*.json from a directory, sorted by filename.
// A file that fails to decode is skipped; the rest of the batch survives.
func LoadDir(dir string) ([]*Capture, []error) {
	matches, err := filepath.Glob(filepath.Join(dir, "profile_*.json"))
	if err != nil {
		return nil, []error{fmt.Errorf("globbing %q: %w", dir, err)}
	}
	sort.Strings(matches)

	var captures []*Capture
	var errs []error
	for _, path := range matches {
		capture, err := loadCapture(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		captures = append(captures, capture)
	}
	return captures, errs
}

// LoadCombined loads captures from a combined JSON array file.
func LoadCombined(path string) ([]*Capture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading combined file: %w", err)
	}

	var captures []*Capture
	if err := json.Unmarshal(data, &captures); err != nil {
		return nil, fmt.Errorf("decoding combined file %q: %w", path, err)
	}
	return captures, nil
}

func loadCapture(path string) (*Capture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading capture: %w", err)
	}

	var capture Capture
	if err := json.Unmarshal(data, &capture); err != nil {
		return nil, fmt.Errorf("decoding capture %q: %w", path, err)
	}
	return &capture, nil
}
