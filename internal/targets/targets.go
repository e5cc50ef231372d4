package targets

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// List is an ordered set of canonical reference names (target schools,
// target companies, food retailers). Declaration order is meaningful: it
// breaks ties between equally scored matches. A List is loaded once and
// never mutated afterwards.
type List []string

// FromLines builds a List from raw lines: values are trimmed, empty lines
// are dropped and duplicates are removed while preserving first occurrence.
func FromLines(lines []string) List {
	seen := make(map[string]struct{}, len(lines))
	list := make(List, 0, len(lines))

	for _, line := range lines {
		value := strings.TrimSpace(line)
		if value == "" {
			continue
		}
		key := strings.ToLower(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		list = append(list, value)
	}

	return list
}

// FromFile loads a List from a line-delimited text file.
func FromFile(path string) (List, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening list file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading list file %q: %w", path, err)
	}

	return FromLines(lines), nil
}

func (l List) Len() int {
	return len(l)
}
