// Package runner orchestrates the discover -> lint -> fix -> report pipeline.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/sasslint/internal/config"
	"github.com/donaldgifford/sasslint/internal/fixer"
	"github.com/donaldgifford/sasslint/internal/linter"
	"github.com/donaldgifford/sasslint/internal/logger"
	"github.com/donaldgifford/sasslint/internal/report"
	"github.com/donaldgifford/sasslint/internal/watch"
	"github.com/donaldgifford/sasslint/pkg/diff"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitError      = 2
)

// stdinName labels content read from standard input.
const stdinName = "stdin"

// Options configures the runner behavior.
type Options struct {
	Files       []string
	Stdin       bool
	StdinReader io.Reader
	Fix         bool
	Diff        bool
	Check       bool
	Format      string // Overrides the configured report format when set.
	ConfigPath  string
	Workers     int // Overrides the configured worker count when > 0.
	Watch       bool
	Quiet       bool
	Verbose     bool
	Stdout      io.Writer
	Stderr      io.Writer
}

// Run executes the lint pipeline and returns an exit code. In watch mode it
// returns once ctx is done.
func Run(ctx context.Context, opts *Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.StdinReader == nil {
		opts.StdinReader = os.Stdin
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "sasslint: %v\n", err)
		return ExitError
	}

	zl := logger.New(logLevel(opts, cfg), cfg.Log.Format, opts.Stderr)
	defer func() { _ = zl.Sync() }()

	s, err := newSession(opts, cfg, zl)
	if err != nil {
		writeErr(opts.Stderr, "sasslint: %v\n", err)
		return ExitError
	}

	if opts.Stdin {
		if opts.Watch {
			writeErr(opts.Stderr, "sasslint: -watch cannot be combined with -stdin\n")
			return ExitError
		}
		return s.runStdin(ctx)
	}

	files, err := s.discover.files(opts.Files)
	if err != nil {
		writeErr(opts.Stderr, "sasslint: %v\n", err)
		return ExitError
	}

	code := s.runFiles(ctx, files)
	if !opts.Watch {
		return code
	}

	roots := opts.Files
	if len(roots) == 0 {
		roots = []string{"."}
	}
	w := watch.New(logger.For(zl, "watch"), s.discover.watched)
	err = w.Run(ctx, roots, func(path string) {
		if s.unchanged(path) {
			s.log.Debugw("content unchanged", "path", path)
			return
		}
		code = s.runFiles(ctx, []string{path})
	})
	if err != nil {
		writeErr(opts.Stderr, "sasslint: %v\n", err)
		return ExitError
	}
	return code
}

func logLevel(opts *Options, cfg *config.Config) string {
	switch {
	case opts.Verbose:
		return logger.DebugLevel
	case opts.Quiet:
		return logger.ErrorLevel
	}
	return cfg.Log.Level
}

// session holds the state shared by every file of one run.
type session struct {
	opts     *Options
	linter   *linter.Linter
	fixer    *fixer.Fixer
	format   report.Formatter
	discover *discoverer
	workers  int
	log      *zap.SugaredLogger

	// digests holds content hashes of files seen in watch mode.
	digests map[string]uint64
}

func newSession(opts *Options, cfg *config.Config, zl *zap.Logger) (*session, error) {
	table, err := cfg.Table()
	if err != nil {
		return nil, err
	}

	name := cfg.Runner.Format
	if opts.Format != "" {
		name = opts.Format
	}
	format, err := report.Lookup(name)
	if err != nil {
		return nil, err
	}

	workers := cfg.Runner.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	l := linter.New(table)
	return &session{
		opts:   opts,
		linter: l,
		fixer: fixer.New(l,
			fixer.WithMaxIterations(cfg.Fix.MaxIterations),
			fixer.WithLogger(logger.For(zl, "fixer"))),
		format: format,
		discover: &discoverer{
			extensions: cfg.Lint.Extensions,
			exclude:    cfg.Lint.Exclude,
		},
		workers: workers,
		log:     logger.For(zl, "runner"),
		digests: make(map[string]uint64),
	}, nil
}

// unchanged reports whether path still has the content it had when last
// seen, and records the current content otherwise. Unreadable files count
// as changed so their error gets reported.
func (s *session) unchanged(path string) bool {
	src, err := os.ReadFile(path)
	if err != nil {
		delete(s.digests, path)
		return false
	}
	sum := xxhash.Sum64(src)
	if prev, ok := s.digests[path]; ok && prev == sum {
		return true
	}
	s.digests[path] = sum
	return false
}

// result is the outcome of processing one file.
type result struct {
	path       string
	original   string
	fixed      string // Fix mode only.
	violations []linter.Violation
	err        error
}

func (r *result) changed() bool {
	return r.err == nil && r.fixed != r.original
}

func (s *session) runStdin(ctx context.Context) int {
	src, err := io.ReadAll(s.opts.StdinReader)
	if err != nil {
		writeErr(s.opts.Stderr, "sasslint: reading stdin: %v\n", err)
		return ExitError
	}

	res := s.process(ctx, stdinName, string(src))
	if !s.opts.Fix {
		return s.report([]result{res})
	}

	if res.err != nil {
		writeErr(s.opts.Stderr, "sasslint: %v\n", res.err)
		return ExitError
	}

	switch {
	case s.opts.Check:
		if res.changed() {
			return ExitViolations
		}
		return ExitOK
	case s.opts.Diff:
		return s.writeDiff(&res)
	}

	writeOut(s.opts.Stdout, res.fixed)
	return ExitOK
}

func (s *session) runFiles(ctx context.Context, files []string) int {
	results := s.processAll(ctx, files)
	if s.opts.Fix {
		return s.applyFixes(results)
	}
	return s.report(results)
}

// processAll lints (and fixes) files concurrently. Results keep the order of
// files.
func (s *session) processAll(ctx context.Context, files []string) []result {
	results := make([]result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, path := range files {
		g.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				results[i] = result{path: path, err: err}
				return nil
			}
			results[i] = s.process(gctx, path, string(src))
			return nil
		})
	}

	// Per-file failures are recorded in results; the group never fails.
	_ = g.Wait()
	return results
}

func (s *session) process(ctx context.Context, name, content string) result {
	start := time.Now()
	res := result{path: name, original: content, fixed: content}

	res.violations, res.err = s.linter.Lint(&linter.File{Name: name, Content: content})
	if res.err != nil || !s.opts.Fix || len(res.violations) == 0 {
		s.log.Debugw("linted file",
			"path", name,
			"violations", len(res.violations),
			"duration", time.Since(start))
		return res
	}

	fixed, err := s.fixer.Fix(ctx, &linter.File{Name: name, Content: content}, res.violations)
	if err != nil {
		res.err = err
		return res
	}
	res.fixed = fixed.Content

	s.log.Debugw("fixed file",
		"path", name,
		"violations", len(res.violations),
		"moves", len(fixed.Moves),
		"duration", time.Since(start))
	return res
}

func (s *session) report(results []result) int {
	files := make([]report.FileReport, 0, len(results))
	code := ExitOK
	for _, r := range results {
		files = append(files, report.FileReport{File: r.path, Violations: r.violations, Err: r.err})
		switch {
		case r.err != nil:
			code = ExitError
		case len(r.violations) > 0 && code == ExitOK:
			code = ExitViolations
		}
	}

	if err := s.format.Format(s.opts.Stdout, files); err != nil {
		writeErr(s.opts.Stderr, "sasslint: writing report: %v\n", err)
		return ExitError
	}
	return code
}

func (s *session) applyFixes(results []result) int {
	code := ExitOK
	for i := range results {
		c := s.applyFix(&results[i])
		if c > code {
			code = c
		}
	}
	return code
}

func (s *session) applyFix(r *result) int {
	if r.err != nil {
		writeErr(s.opts.Stderr, "sasslint: %v\n", r.err)
		var nc *fixer.NonConvergentError
		if errors.As(r.err, &nc) {
			s.log.Debugw("remaining violations", "path", r.path, "count", len(nc.Remaining))
		}
		return ExitError
	}

	if s.opts.Verbose {
		writeErr(s.opts.Stderr, "%s\n", r.path)
	}

	switch {
	case s.opts.Check:
		if r.changed() {
			if !s.opts.Quiet {
				writeErr(s.opts.Stderr, "%s\n", r.path)
			}
			return ExitViolations
		}
		return ExitOK
	case s.opts.Diff:
		return s.writeDiff(r)
	}

	if !r.changed() {
		return ExitOK
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(r.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(r.path, []byte(r.fixed), mode); err != nil {
		writeErr(s.opts.Stderr, "sasslint: writing %s: %v\n", r.path, err)
		return ExitError
	}
	s.log.Infow("fixed", "path", r.path, "violations", len(r.violations))
	return ExitOK
}

func (s *session) writeDiff(r *result) int {
	changed, err := diff.Write(s.opts.Stdout, r.path, r.original, r.fixed)
	if err != nil {
		writeErr(s.opts.Stderr, "sasslint: writing diff: %v\n", err)
		return ExitError
	}
	if changed {
		return ExitViolations
	}
	return ExitOK
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
