package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset     = "\x1b[0m"
	ansiRed       = "\x1b[31m"
	ansiGreen     = "\x1b[32m"
	ansiYellow    = "\x1b[33m"
	ansiMagenta   = "\x1b[35m"
	ansiCyan      = "\x1b[36m"
	ansiUnderline = "\x1b[4m"

	symbolSuccess = "✔"
	symbolError   = "✖"

	rule = "======================================"
)

// Stylish groups violations per file under a header and closes with a total.
// Colors are used only when w is a terminal and NoColor is unset.
type Stylish struct {
	NoColor bool
}

func (s Stylish) Format(w io.Writer, files []FileReport) error {
	p := painter{enabled: !s.NoColor && isTerminal(w)}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, p.paint(ansiGreen, "9e-sass-lint results"))
	fmt.Fprintln(bw, rule)
	fmt.Fprintln(bw)

	total := 0
	for _, f := range files {
		if f.Err == nil && len(f.Violations) == 0 {
			continue
		}

		fmt.Fprintln(bw, p.paint(ansiMagenta+ansiUnderline, f.File))
		if f.Err != nil {
			fmt.Fprintln(bw, p.paint(ansiRed, f.Err.Error()))
			fmt.Fprintln(bw)
			continue
		}

		for _, v := range f.Violations {
			pos := fmt.Sprintf("line %d:%d", v.Pos.Line, v.Pos.Column)
			fmt.Fprintf(bw, "%s\t%s\n", p.paint(ansiYellow, pos), p.paint(ansiCyan, v.Message))
		}
		fmt.Fprintf(bw, "%s %s\n\n", symbolError, p.paint(ansiRed, errorCount(len(f.Violations))))
		total += len(f.Violations)
	}

	if total == 0 {
		fmt.Fprintf(bw, "%s %s\n", symbolSuccess, p.paint(ansiGreen, "All OK!"))
	} else {
		fmt.Fprintln(bw, rule)
		fmt.Fprintf(bw, "%s %s\n", symbolError, p.paint(ansiRed, fmt.Sprintf("Errors total: %d", total)))
	}

	return bw.Flush()
}

func errorCount(n int) string {
	if n == 1 {
		return "1 error"
	}
	return fmt.Sprintf("%d errors", n)
}

type painter struct {
	enabled bool
}

func (p painter) paint(code, s string) string {
	if !p.enabled {
		return s
	}
	return code + s + ansiReset
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
