package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/thiremani/lang/config"
	"github.com/thiremani/lang/interp"
	"github.com/thiremani/lang/token"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run is the whole command minus the process exit. Program output and
// fatal errors go to stdout, logs to stderr.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stdout, "no file/s specified")
		return token.StatusRuntime
	}
	if args[0] == "-version" || args[0] == "--version" {
		printVersion(stdout)
		return token.StatusOK
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		report(stdout, err)
		return token.StatusRuntime
	}
	logger := cfg.Logger(stderr)
	in := interp.New(cfg, stdout, logger)

	if args[0] == "-i" {
		return repl(in)
	}
	if len(args) > 1 {
		logger.Warn().Int("count", len(args)-1).Msg("ignoring extra arguments")
	}

	err = in.RunFile(args[0])
	if err != nil {
		report(stdout, err)
	}
	return interp.ExitCode(err)
}

// report prints err. Compile and runtime errors carry their own prefix.
func report(w io.Writer, err error) {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintf(w, "[ERROR] %v\n", err)
}
