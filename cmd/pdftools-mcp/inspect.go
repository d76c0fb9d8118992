package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	flag "github.com/spf13/pflag"
)

// Sentinel errors for the inspect command.
var (
	ErrNoInput    = errors.New("no input specified")
	ErrInvalidPDF = errors.New("invalid PDF")
)

// inspectResult summarizes one PDF file.
type inspectResult struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	Pages int    `json:"pages"`
	Valid bool   `json:"valid"`
	Issue string `json:"issue,omitempty"`
}

// runInspect validates each PDF named in args and prints its page count.
// It fails if any file is missing or invalid, after reporting all of them.
func runInspect(args []string, env *Environment) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	fs.Usage = func() { printInspectUsage(env.Stderr) }
	if err := parseFlagSet(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return ErrNoInput
	}

	var (
		results  []inspectResult
		firstErr error
	)
	for _, path := range fs.Args() {
		res, err := inspectFile(path)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results = append(results, res)
	}

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(results)
	} else {
		for _, r := range results {
			printInspectResult(env, r)
		}
	}
	return firstErr
}

// inspectFile stats, validates and counts the pages of one PDF.
func inspectFile(path string) (inspectResult, error) {
	res := inspectResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		res.Issue = err.Error()
		return res, err
	}
	res.Size = info.Size()

	if err := api.ValidateFile(path, model.NewDefaultConfiguration()); err != nil {
		res.Issue = err.Error()
		return res, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, path, err)
	}
	res.Valid = true

	pages, err := api.PageCountFile(path)
	if err != nil {
		res.Issue = err.Error()
		return res, fmt.Errorf("%w: %s: %v", ErrInvalidPDF, path, err)
	}
	res.Pages = pages
	return res, nil
}

func printInspectResult(env *Environment, r inspectResult) {
	if !r.Valid {
		fmt.Fprintf(env.Stdout, "[ERROR] %s: %s\n", r.Path, r.Issue)
		return
	}
	fmt.Fprintf(env.Stdout, "[OK] %s: %d page(s), %d bytes\n", r.Path, r.Pages, r.Size)
}
