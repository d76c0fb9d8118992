package main

// Notes:
// - parseServeFlags: we test every flag, shorthand forms, help and the
//   rejection of positional arguments.

import (
	"errors"
	"io"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestParseServeFlags(t *testing.T) {
	t.Parallel()

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		f, err := parseServeFlags([]string{
			"-c", "prod",
			"-t", "http",
			"--addr", ":9090",
			"--browser-bin", "/usr/bin/chromium",
			"--no-sandbox",
			"--keep-partial",
			"--log-level", "warn",
			"--log-format", "json",
			"--log-file", "/tmp/pdftools.log",
			"-v",
		}, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := serveFlags{
			config:      "prod",
			transport:   "http",
			addr:        ":9090",
			browserBin:  "/usr/bin/chromium",
			noSandbox:   true,
			keepPartial: true,
			log:         logFlags{level: "warn", format: "json", file: "/tmp/pdftools.log", verbose: true},
		}
		if *f != want {
			t.Errorf("flags = %+v, want %+v", *f, want)
		}
	})

	t.Run("no flags", func(t *testing.T) {
		t.Parallel()

		f, err := parseServeFlags(nil, io.Discard)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *f != (serveFlags{}) {
			t.Errorf("flags = %+v, want zero value", *f)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		_, err := parseServeFlags([]string{"--help"}, io.Discard)
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want flag.ErrHelp", err)
		}
		if exitCodeFor(err) != ExitSuccess {
			t.Error("help should exit successfully")
		}
	})

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()

		_, err := parseServeFlags([]string{"--workers", "4"}, io.Discard)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})

	t.Run("positional arguments", func(t *testing.T) {
		t.Parallel()

		_, err := parseServeFlags([]string{"file.md"}, io.Discard)
		if !errors.Is(err, ErrUnexpectedArgs) {
			t.Errorf("error = %v, want ErrUnexpectedArgs", err)
		}
	})
}
