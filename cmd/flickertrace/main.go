package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"flicker/internal/trace"
)

const (
	ExitSuccess = 0
	ExitError   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("flickertrace", flag.ContinueOnError)
	flags.SetOutput(stderr)
	format := flags.String("output", "text", "output format: text, json")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: flickertrace [-output text|json] [trace.jsonl]")
		fmt.Fprintln(stderr, "Reads standard input when no file is given.")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return ExitError
	}

	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "error: --output must be 'text' or 'json', got %q\n", *format)
		return ExitError
	}

	in := stdin
	if path := flags.Arg(0); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return ExitError
		}
		defer f.Close()
		in = f
	}

	s, err := trace.Summarize(in)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitError
	}

	if *format == "json" {
		encoder := json.NewEncoder(stdout)
		encoder.SetIndent("", "  ")
		_ = encoder.Encode(struct {
			*trace.Summary
			Span      string  `json:"span"`
			Dark      string  `json:"dark"`
			DarkRatio float64 `json:"darkRatio"`
		}{s, s.Span.String(), s.Dark.String(), s.DarkRatio()})
		return ExitSuccess
	}
	s.Format(stdout)
	return ExitSuccess
}
