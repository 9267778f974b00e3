package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cgikit/cgi-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

// ConsoleTestLogger prints test progress to standard output as the suite
// runs.
type ConsoleTestLogger struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Printf("[%s]\n", id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		failColor.Printf("  FAILED: %s\n", id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		skipColor.Printf("  SKIPPED: %s\n", id)
	} else {
		skipColor.Printf("  SKIPPED: %s (%s)\n", id, reason)
	}
}
