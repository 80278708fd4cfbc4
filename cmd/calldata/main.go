// Command calldata encodes a function call and prints a breakdown of its
// selector, head slots and tail content.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/branched-services/go-calldata"
)

func main() {
	var (
		sigText  = flag.String("sig", "", "Function declaration, e.g. 'transfer(address to, uint256 amount)'")
		argsText = flag.String("args", "", "Comma-separated argument values; [..] and (..) nest")
		file     = flag.String("file", "", "YAML file with a list of calls")
		plain    = flag.Bool("plain", false, "Disable styling (default when stdout is not a terminal)")
		verbose  = flag.Bool("v", false, "Debug logging to stderr")
	)
	flag.Parse()

	if *sigText == "" && *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: calldata -sig 'name(type arg, ...)' [-args 'v1, v2, ...']")
		fmt.Fprintln(os.Stderr, "       calldata -file calls.yaml")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer logger.Sync() //nolint:errcheck

	var reqs []request
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		reqs, err = loadRequests(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *sigText != "" {
		reqs = append(reqs, request{Signature: *sigText, Text: *argsText})
	}

	styled := !*plain && term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(os.Stdout, reqs, newRenderer(!styled), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run breaks down each request and writes the rendering to w.
// It stops at the first failing request.
func run(w io.Writer, reqs []request, r *renderer, logger *zap.Logger) error {
	for i, req := range reqs {
		values, err := req.values()
		if err != nil {
			return fmt.Errorf("call %d (%s): %w", i, req.Signature, err)
		}
		res, err := calldata.Breakdown(req.Signature, values, calldata.WithLogger(logger))
		if err != nil {
			return fmt.Errorf("call %d (%s): %w", i, req.Signature, err)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, r.render(res))
	}
	return nil
}
