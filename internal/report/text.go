package report

import (
	"fmt"
	"io"
)

// Text prints one "file:line:column: message" line per violation. File
// errors already name their file and are printed as they are.
type Text struct{}

func (Text) Format(w io.Writer, files []FileReport) error {
	for _, f := range files {
		if f.Err != nil {
			if _, err := fmt.Fprintln(w, f.Err); err != nil {
				return err
			}
			continue
		}
		for _, v := range f.Violations {
			if _, err := fmt.Fprintln(w, v.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
