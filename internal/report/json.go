package report

import (
	"io"

	"github.com/goccy/go-json"
)

// JSON writes an array with one object per file.
type JSON struct{}

type jsonFile struct {
	File       string          `json:"file"`
	Violations []jsonViolation `json:"violations"`
	Error      string          `json:"error,omitempty"`
}

type jsonViolation struct {
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	TargetLine int    `json:"target_line"`
	Message    string `json:"message"`
}

func (JSON) Format(w io.Writer, files []FileReport) error {
	out := make([]jsonFile, 0, len(files))
	for _, f := range files {
		jf := jsonFile{
			File:       f.File,
			Violations: make([]jsonViolation, 0, len(f.Violations)),
		}
		if f.Err != nil {
			jf.Error = f.Err.Error()
		}
		for _, v := range f.Violations {
			jf.Violations = append(jf.Violations, jsonViolation{
				Line:       v.Pos.Line,
				Column:     v.Pos.Column,
				TargetLine: v.TargetLine,
				Message:    v.Message,
			})
		}
		out = append(out, jf)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
