package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter decides whether a specific test should run.
type Filter func(TestID) bool

// RegexFilters selects tests by name with must-match and must-not-match
// regex lists, corresponding to the -run and -skip command line options.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

// AsFilter is the Filter for this set of patterns.
func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

// Describe writes a human-readable explanation of the active filters, if
// any, to dest before a run starts.
func (r RegexFilters) Describe(dest io.Writer) {
	if !r.MustMatch.IsDefined() && !r.MustNotMatch.IsDefined() {
		return
	}
	fmt.Fprintln(dest, "Some tests will be skipped based on the filter criteria for this test run:")
	if r.MustMatch.IsDefined() {
		fmt.Fprintf(dest, "  skip any not matching %s\n", r.MustMatch)
	}
	if r.MustNotMatch.IsDefined() {
		fmt.Fprintf(dest, "  skip any matching %s\n", r.MustNotMatch)
	}
	fmt.Fprintln(dest)
}

// RegexList is a list of regex patterns that can be set repeatedly from the
// command line (it implements flag.Value).
type RegexList struct {
	patterns []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser.
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	r.patterns = append(r.patterns, rx)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
