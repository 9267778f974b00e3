package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cgikit/cgi-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	target       string
	manifestPath string
	port         int
	host         string
	filters      framework.RegexFilters
	debug        bool
	debugAll     bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.target, "target", "", "CGI program under test: a command line, or an http/https URL")
	fs.StringVar(&c.manifestPath, "manifest", "", "path to a YAML file of declared test cases")
	fs.StringVar(&c.host, "host", "localhost", "external hostname of the test harness")
	fs.IntVar(&c.port, "port", defaultPort, "port that the test harness will listen on")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if c.target == "" {
		fmt.Fprintln(os.Stderr, "-target is required")
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// describeParams reconstructs the effective command line so a run's exact
// configuration can be copied from its output.
func describeParams(c commandParams) string {
	var b commandBuilder
	b.add(os.Args[0], "-target", c.target)
	if c.manifestPath != "" {
		b.add("-manifest", c.manifestPath)
	}
	if c.debug {
		b.add("-debug")
	}
	if c.debugAll {
		b.add("-debug-all")
	}
	return b.String()
}
