// Package fixer relocates misplaced properties until a file lints clean.
package fixer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/donaldgifford/sasslint/internal/linter"
)

// DefaultMaxIterations bounds the fix loop when no limit is configured.
const DefaultMaxIterations = 500

// ErrNonConvergent is returned when the file still has violations after the
// iteration limit.
var ErrNonConvergent = errors.New("fix did not converge")

// NonConvergentError carries the state of a fix loop that hit its limit.
type NonConvergentError struct {
	File       string
	Iterations int
	Remaining  []linter.Violation
}

func (e *NonConvergentError) Error() string {
	return fmt.Sprintf("%s: %v after %d iterations (%d violations left)",
		e.File, ErrNonConvergent, e.Iterations, len(e.Remaining))
}

func (e *NonConvergentError) Unwrap() error {
	return ErrNonConvergent
}

// State is a step of the fix loop.
type State int

const (
	// Scanning inspects the current violation list.
	Scanning State = iota
	// Violated means at least one violation remains.
	Violated
	// Relocating moves the first offending line.
	Relocating
	// Rechecking re-parses and re-lints the rewritten content.
	Rechecking
	// Converged means no violations remain.
	Converged
	// NonConvergent means the iteration limit was reached.
	NonConvergent
)

func (s State) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case Violated:
		return "violated"
	case Relocating:
		return "relocating"
	case Rechecking:
		return "rechecking"
	case Converged:
		return "converged"
	case NonConvergent:
		return "non-convergent"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Move records one relocation: the line at From now sits at To.
type Move struct {
	From int // 1-indexed.
	To   int // 1-indexed.
}

// Result is the outcome of a successful fix.
type Result struct {
	Content    string
	Iterations int
	Moves      []Move
}

// Changed reports whether any line was moved.
func (r *Result) Changed() bool {
	return len(r.Moves) > 0
}

// Option configures a Fixer.
type Option func(*Fixer)

// WithMaxIterations sets the iteration limit. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(f *Fixer) {
		if n > 0 {
			f.maxIterations = n
		}
	}
}

// WithLogger sets the logger used for per-move debug output.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(f *Fixer) {
		f.log = log
	}
}

// Fixer corrects one violation per iteration and re-lints after each move.
type Fixer struct {
	linter        *linter.Linter
	maxIterations int
	log           *zap.SugaredLogger
}

// New returns a Fixer that re-lints with l.
func New(l *linter.Linter, opts ...Option) *Fixer {
	f := &Fixer{
		linter:        l,
		maxIterations: DefaultMaxIterations,
		log:           zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fix rewrites file.Content until it has no violations. violations is the
// current report for the file's content. On success the file holds the
// fixed content. A parse error during re-linting, context cancellation or
// the iteration limit abort the loop; the file then keeps the content of
// the last completed move.
func (f *Fixer) Fix(ctx context.Context, file *linter.File, violations []linter.Violation) (*Result, error) {
	res := &Result{}
	state := Scanning

	for {
		switch state {
		case Scanning:
			if len(violations) == 0 {
				state = Converged
				continue
			}
			state = Violated

		case Violated:
			if res.Iterations >= f.maxIterations {
				state = NonConvergent
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%s: fix interrupted: %w", file.Name, err)
			}
			state = Relocating

		case Relocating:
			v := violations[0]
			move := Move{From: v.Pos.Line, To: v.TargetLine}
			lines := MoveLine(file.Lines(), move.From-1, move.To-1)
			file.Content = strings.Join(lines, "\n")

			res.Iterations++
			res.Moves = append(res.Moves, move)
			f.log.Debugw("moved line",
				"file", file.Name,
				"from", move.From,
				"to", move.To,
				"iteration", res.Iterations)
			state = Rechecking

		case Rechecking:
			var err error
			violations, err = f.linter.Lint(file)
			if err != nil {
				return nil, fmt.Errorf("re-linting after move: %w", err)
			}
			state = Scanning

		case Converged:
			res.Content = file.Content
			return res, nil

		case NonConvergent:
			f.log.Warnw("fix did not converge",
				"file", file.Name,
				"iterations", res.Iterations,
				"remaining", len(violations))
			return nil, &NonConvergentError{
				File:       file.Name,
				Iterations: res.Iterations,
				Remaining:  violations,
			}
		}
	}
}

// MoveLine removes the element at from and reinserts it at to, counted in
// the slice after removal. When to lies past the end the slice is padded
// with empty lines first. The input slice is not modified.
func MoveLine(lines []string, from, to int) []string {
	out := append([]string(nil), lines...)
	if from < 0 || from >= len(out) || to < 0 {
		return out
	}

	for len(out) <= to {
		out = append(out, "")
	}

	line := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{line}, out[to:]...)...)
	return out
}
