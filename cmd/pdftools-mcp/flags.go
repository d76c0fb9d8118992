package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// serveFlags holds flags of the serve command. Empty strings and unset
// booleans mean "not given" and leave env/config values in place.
type serveFlags struct {
	config      string
	transport   string
	addr        string
	browserBin  string
	noSandbox   bool
	keepPartial bool
	log         logFlags
}

// logFlags holds logging flags.
type logFlags struct {
	level   string
	format  string
	file    string
	verbose bool
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.format, "log-format", "", "log format: text, json")
	fs.StringVar(&f.file, "log-file", "", "append logs to this file as well as stderr")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging (same as --log-level debug)")
}

// parseServeFlags parses serve command flags. Positional arguments are
// rejected.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &serveFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.transport, "transport", "t", "", "MCP transport: stdio, http")
	fs.StringVar(&f.addr, "addr", "", "listen address for the http transport")
	fs.StringVar(&f.browserBin, "browser-bin", "", "Chrome/Chromium binary (default: rod lookup)")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable the Chrome sandbox")
	fs.BoolVar(&f.keepPartial, "keep-partial", false, "keep partial files of failed generations")
	addLogFlags(fs, &f.log)

	fs.Usage = func() { printServeUsage(stderr) }

	if err := parseFlagSet(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(fs.Args(), " "))
	}
	return f, nil
}

// parseFlagSet parses args and marks parse failures as usage errors.
// flag.ErrHelp is returned unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
