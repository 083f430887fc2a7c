package model

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Error constant name validation regex:
// - Must start with "E"
// - Followed by uppercase letters or digits
var nameRegex = regexp.MustCompile(`^E[A-Z0-9]+$`)

// Entry is one symbolic error constant and its numeric code.
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Code int    `json:"code" yaml:"code"`
}

// IsErrorName reports whether name belongs in an exported table.
// Only names starting with "E" are exported.
func IsErrorName(name string) bool {
	return strings.HasPrefix(name, "E")
}

// ValidateName checks that name is a well formed error constant name.
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Table is an enumeration of error constants plus where it came from.
type Table struct {
	Source  string  `json:"source" yaml:"source"`
	GOOS    string  `json:"goos,omitempty" yaml:"goos,omitempty"`
	GOARCH  string  `json:"goarch,omitempty" yaml:"goarch,omitempty"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Filter drops entries whose name does not start with "E" and collapses
// duplicates. The first occurrence of a name keeps its position.
// Returns the kept entries and the number skipped.
func Filter(entries []Entry) ([]Entry, int, error) {
	seen := make(map[string]int, len(entries))
	kept := make([]Entry, 0, len(entries))
	skipped := 0

	for _, e := range entries {
		if !IsErrorName(e.Name) {
			skipped++
			continue
		}
		if code, ok := seen[e.Name]; ok {
			if code != e.Code {
				return nil, 0, fmt.Errorf("%w: %s is both %d and %d", ErrConflictingEntry, e.Name, code, e.Code)
			}
			skipped++
			continue
		}
		seen[e.Name] = e.Code
		kept = append(kept, e)
	}

	return kept, skipped, nil
}

// Order selects how entries are arranged in generated output.
type Order string

const (
	// OrderName sorts alphabetically by name.
	OrderName Order = "name"
	// OrderCode sorts by numeric code, then name.
	OrderCode Order = "code"
	// OrderSource keeps the source's natural order.
	OrderSource Order = "source"
)

// ParseOrder converts a flag value into an Order. Empty means OrderName.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderName:
		return OrderName, nil
	case OrderCode:
		return OrderCode, nil
	case OrderSource:
		return OrderSource, nil
	}
	return "", fmt.Errorf("%w: %q (must be name, code, or source)", ErrInvalidOrder, s)
}

// Sort arranges entries in place according to o.
func Sort(entries []Entry, o Order) {
	switch o {
	case OrderName:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Name < entries[j].Name
		})
	case OrderCode:
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Code != entries[j].Code {
				return entries[i].Code < entries[j].Code
			}
			return entries[i].Name < entries[j].Name
		})
	}
}
