package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	pdftools "github.com/alnah/pdftools-mcp"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	if Version != "dev" {
		pdftools.Version = Version
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches to the subcommand named in args[1] and returns the
// process exit code. With no command, or flags only, the server is started.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		return exitFor(env, runServe(ctx, nil, env))
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "serve":
		return exitFor(env, runServe(ctx, rest, env))
	case "doctor":
		return runDoctorCmd(rest, env)
	case "inspect":
		return exitFor(env, runInspect(rest, env))
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "pdftools-mcp %s\n", Version)
		return ExitSuccess
	case "help", "--help", "-h":
		runHelp(rest, env)
		return ExitSuccess
	}

	if strings.HasPrefix(cmd, "-") {
		return exitFor(env, runServe(ctx, args[1:], env))
	}
	fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// exitFor prints err, if any, and maps it to an exit code.
func exitFor(env *Environment, err error) int {
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(env.Stderr, err)
	}
	return exitCodeFor(err)
}
