package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/pdftools-mcp/internal/fileutil"
	"github.com/alnah/pdftools-mcp/internal/hints"
	"github.com/alnah/pdftools-mcp/internal/pathguard"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	Output   []rootInfo `json:"output_roots"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// rootInfo describes one allowed output directory.
type rootInfo struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Writable bool   `json:"writable"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorChecks holds the probes doctor relies on, replaceable in tests.
type doctorChecks struct {
	getenv      func(string) string
	lookPath    func() (string, bool)
	version     func(bin string) (string, error)
	home        func() (string, error)
	tempDir     func() string
	inContainer func() bool
}

func defaultDoctorChecks(env *Environment) doctorChecks {
	return doctorChecks{
		getenv:      env.Getenv,
		lookPath:    launcher.LookPath,
		version:     chromeVersion,
		home:        os.UserHomeDir,
		tempDir:     os.TempDir,
		inContainer: hints.IsInContainer,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "print results as JSON")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := parseFlagSet(fs, args); err != nil {
		return exitFor(env, err)
	}

	result := runDoctor(defaultDoctorChecks(env))

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(c doctorChecks) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  c.getenv("ROD_NO_SANDBOX"),
			BrowserBin: c.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result, c)
	checkEnvironment(result, c)
	checkOutputRoots(result, c)
	checkSystem(result, c)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult, c doctorChecks) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = c.lookPath()
		if !found {
			// Rod can still download Chromium on first render.
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; rod will download Chromium on first use. Install Chrome or set ROD_BROWSER_BIN to avoid the download")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	if v, err := c.version(chromePath); err == nil {
		result.Chrome.Version = v
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// chromeVersion runs "<bin> --version".
func chromeVersion(bin string) (string, error) {
	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- operator-provided browser path
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, c doctorChecks) {
	result.Env.Container, result.Env.ContainerHint = isContainer(c)

	result.Env.CI = hints.InCI(c.getenv)

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(c doctorChecks) (bool, string) {
	if c.getenv("PDFTOOLS_CONTAINER") == "1" {
		return true, "PDFTOOLS_CONTAINER=1"
	}
	if c.inContainer() {
		return true, "/.dockerenv"
	}
	if v := c.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if c.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkOutputRoots reports each allowed output directory. A missing root
// is fine as long as it can be created under the home directory.
func checkOutputRoots(result *doctorResult, c doctorChecks) {
	home, err := c.home()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Home directory unavailable: %v", err))
		return
	}
	guard, err := pathguard.New(home)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Home directory unusable: %v", err))
		return
	}

	for _, root := range guard.Roots() {
		info := rootInfo{Path: root}
		if st, err := os.Stat(root); err == nil && st.IsDir() {
			info.Exists = true
			info.Writable = fileutil.DirWritable(root)
		} else {
			info.Writable = fileutil.DirWritable(filepath.Dir(root))
		}
		if !info.Writable {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Output directory not writable: %s", root))
		}
		result.Output = append(result.Output, info)
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult, c doctorChecks) {
	tmpDir := c.tempDir()
	if fileutil.DirWritable(tmpDir) {
		result.System.TempWritable = true
		return
	}
	result.Errors = append(result.Errors,
		fmt.Sprintf("Temp directory not writable: %s", tmpDir))
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "pdftools-mcp doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Output directories")
	for _, root := range r.Output {
		switch {
		case root.Exists && root.Writable:
			fmt.Fprintf(w, "  [OK] %s\n", root.Path)
		case root.Writable:
			fmt.Fprintf(w, "  [OK] %s (created on first use)\n", root.Path)
		default:
			fmt.Fprintf(w, "  [WARN] %s (not writable)\n", root.Path)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to serve")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
