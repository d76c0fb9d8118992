package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdftools-mcp [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "MCP server generating PDF files from HTML, plain text and Markdown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the MCP server (default)")
	fmt.Fprintln(w, "  doctor     Check Chrome, output directories and environment")
	fmt.Fprintln(w, "  inspect    Validate PDF files and report page counts")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdftools-mcp help <command>' for details on a specific command.")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdftools-mcp serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the MCP server. PDFs are written under ~/Downloads, ~/Documents or ~/Desktop only.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --transport <s>       Transport: stdio (default), http")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address for http (default 127.0.0.1:8080)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium binary")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox (containers)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --keep-partial        Keep partial files of failed generations")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "      --log-level <s>       Level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      Format: text, json")
	fmt.Fprintln(w, "      --log-file <path>     Also append logs to this file")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  PDFTOOLS_CONFIG, PDFTOOLS_LOG_LEVEL, PDFTOOLS_LOG_FORMAT, PDFTOOLS_LOG_FILE,")
	fmt.Fprintln(w, "  PDFTOOLS_TRANSPORT, PDFTOOLS_ADDR, PDFTOOLS_CLEANUP_ON_FAILURE,")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN, ROD_NO_SANDBOX")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Precedence: flags > environment > config file > defaults.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdftools-mcp doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, the allowed output directories and the environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print results as JSON")
}

// printInspectUsage prints usage for the inspect command.
func printInspectUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdftools-mcp inspect [--json] <file.pdf>...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate PDF files and report their page counts.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Print results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "inspect":
		printInspectUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: pdftools-mcp version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: pdftools-mcp help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
