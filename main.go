package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cgikit/cgi-contract-tests/cgitests"
	"github.com/cgikit/cgi-contract-tests/framework"
)

const defaultPort = 8711

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	harness, err := framework.NewHarness(params.host, params.port, mainDebugLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not start test harness: %s\n", err)
		os.Exit(1)
	}

	var manifest *cgitests.Manifest
	if params.manifestPath != "" {
		manifest, err = loadManifestFile(params.manifestPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Running: %s\n\n", describeParams(params))
	params.filters.Describe(os.Stdout)

	testLogger := ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	config := cgitests.SuiteConfig{
		Target:   params.target,
		Manifest: manifest,
		Harness:  harness,
	}
	results := cgitests.RunTestSuite(config, params.filters.AsFilter, &testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		os.Exit(1)
	}
}

// loadManifestFile wraps cgitests.LoadManifest with a friendlier message for
// the command line.
func loadManifestFile(path string) (*cgitests.Manifest, error) {
	m, err := cgitests.LoadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("could not load manifest: %w", err)
	}
	return m, nil
}
