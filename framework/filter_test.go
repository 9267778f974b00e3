package framework

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeID(path ...string) TestID {
	return TestID{Path: path}
}

func TestRegexFiltersWithNoPatternsRunsEverything(t *testing.T) {
	var filters RegexFilters

	assert.True(t, filters.AsFilter(makeID("anything", "at all")))
}

func TestRegexFiltersMustMatch(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("decoding"))

	assert.True(t, filters.AsFilter(makeID("decoding", "status line")))
	assert.False(t, filters.AsFilter(makeID("invocation", "GET")))
}

func TestRegexFiltersMustNotMatch(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("parity"))

	assert.True(t, filters.AsFilter(makeID("invocation", "GET")))
	assert.False(t, filters.AsFilter(makeID("fixture scripts", "parity")))
}

func TestRegexFiltersCombined(t *testing.T) {
	var filters RegexFilters
	require.NoError(t, filters.MustMatch.Set("invocation"))
	require.NoError(t, filters.MustNotMatch.Set("POST"))

	assert.True(t, filters.AsFilter(makeID("invocation", "GET")))
	assert.False(t, filters.AsFilter(makeID("invocation", "POST")))
	assert.False(t, filters.AsFilter(makeID("manifest", "GET")))
}

func TestRegexListRejectsInvalidPattern(t *testing.T) {
	var list RegexList

	assert.Error(t, list.Set("(unclosed"))
	assert.False(t, list.IsDefined())
}

func TestRegexListString(t *testing.T) {
	var list RegexList
	require.NoError(t, list.Set("a.*b"))
	require.NoError(t, list.Set("c"))

	assert.Equal(t, `"a.*b" or "c"`, list.String())
}
