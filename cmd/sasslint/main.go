// Package main is the entry point for sasslint.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/donaldgifford/sasslint/internal/rules" // Register order tables via init().
	"github.com/donaldgifford/sasslint/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	stdin := flag.Bool("stdin", false, "lint Sass read from stdin")
	fix := flag.Bool("fix", false, "reorder properties; writes files in place, or stdout with -stdin")
	diffFlag := flag.Bool("diff", false, "with -fix, print a unified diff instead of writing")
	check := flag.Bool("check", false, "with -fix, exit 1 if any file would change")
	format := flag.String("format", "", "report format: text, stylish or json")
	configPath := flag.String("config", "", "path to config file")
	workers := flag.Int("j", 0, "number of files linted in parallel (default GOMAXPROCS)")
	watchFlag := flag.Bool("watch", false, "re-lint files as they change")
	quiet := flag.Bool("q", false, "suppress informational output")
	verbose := flag.Bool("v", false, "print files as they are processed")
	showVersion := flag.Bool("version", false, "print version and exit")

	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("sasslint %s (%s) %s\n", version, commit, date)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := &runner.Options{
		Files:      flag.Args(),
		Stdin:      *stdin,
		Fix:        *fix,
		Diff:       *diffFlag,
		Check:      *check,
		Format:     *format,
		ConfigPath: *configPath,
		Workers:    *workers,
		Watch:      *watchFlag,
		Quiet:      *quiet,
		Verbose:    *verbose,
	}

	code := runner.Run(ctx, opts)
	stop()
	os.Exit(code)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: sasslint [flags] [files or directories...]

Check the property order of Sass files. With no arguments, every .sass file
below the working directory is linted.

Flags:
`)
	flag.PrintDefaults()
}
