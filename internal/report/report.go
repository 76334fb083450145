// Package report renders lint results for humans and tools.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/donaldgifford/sasslint/internal/linter"
)

// FileReport holds the outcome of linting one file. Err is set when the file
// could not be read or parsed; Violations is empty in that case.
type FileReport struct {
	File       string
	Violations []linter.Violation
	Err        error
}

// Formatter writes a set of file reports to w.
type Formatter interface {
	Format(w io.Writer, files []FileReport) error
}

var formatters = map[string]Formatter{
	"text":    Text{},
	"stylish": Stylish{},
	"json":    JSON{},
}

// Lookup returns the formatter registered under name.
func Lookup(name string) (Formatter, error) {
	f, ok := formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown report format %q (available: %v)", name, Names())
	}
	return f, nil
}

// Names returns the available format names in sorted order.
func Names() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of violations across files.
func Count(files []FileReport) int {
	n := 0
	for _, f := range files {
		n += len(f.Violations)
	}
	return n
}
