package framework

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished map[string]bool
	skipped  map[string]string
	errors   []error
}

func newRecordingTestLogger() *recordingTestLogger {
	return &recordingTestLogger{
		finished: make(map[string]bool),
		skipped:  make(map[string]string),
	}
}

func (l *recordingTestLogger) TestStarted(id TestID) { l.started = append(l.started, id.String()) }
func (l *recordingTestLogger) TestError(id TestID, err error) {
	l.errors = append(l.errors, err)
}
func (l *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	l.finished[id.String()] = failed
}
func (l *recordingTestLogger) TestSkipped(id TestID, reason string) {
	l.skipped[id.String()] = reason
}

func TestContextRunCollectsResults(t *testing.T) {
	logger := newRecordingTestLogger()

	results := Run(nil, logger, func(c *Context) {
		c.Run("passes", func(c *Context) {})
		c.Run("fails", func(c *Context) {
			c.Errorf("deliberate failure")
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "fails", results.Failures[0].TestID.String())
	assert.Equal(t, []string{"passes", "fails"}, logger.started)
	assert.False(t, logger.finished["passes"])
	assert.True(t, logger.finished["fails"])
}

func TestContextFailNowStopsTheTest(t *testing.T) {
	reached := false

	results := Run(nil, newRecordingTestLogger(), func(c *Context) {
		c.Run("aborts", func(c *Context) {
			c.Errorf("failing first")
			c.FailNow()
			reached = true
		})
	})

	assert.False(t, reached, "code after FailNow should not run")
	assert.False(t, results.OK())
}

func TestContextFailNowWithoutMessageStillFails(t *testing.T) {
	results := Run(nil, newRecordingTestLogger(), func(c *Context) {
		c.Run("silent failure", func(c *Context) {
			c.FailNow()
		})
	})

	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "test failed with no failure message", results.Failures[0].Errors[0].Error())
}

func TestContextSkip(t *testing.T) {
	logger := newRecordingTestLogger()

	results := Run(nil, logger, func(c *Context) {
		c.Run("skipped", func(c *Context) {
			c.SkipWithReason("not applicable here")
			c.Errorf("should never be reached")
		})
	})

	assert.True(t, results.OK())
	assert.Equal(t, "not applicable here", logger.skipped["skipped"])
}

func TestContextUnexpectedPanicBecomesFailure(t *testing.T) {
	results := Run(nil, newRecordingTestLogger(), func(c *Context) {
		c.Run("panics", func(c *Context) {
			panic(errors.New("boom"))
		})
	})

	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "boom")
}

func TestContextFilterSkipsSubtests(t *testing.T) {
	logger := newRecordingTestLogger()
	filter := func(id TestID) bool { return id.String() != "excluded" }

	ran := map[string]bool{}
	Run(filter, logger, func(c *Context) {
		for _, name := range []string{"included", "excluded"} {
			name := name
			c.Run(name, func(c *Context) { ran[name] = true })
		}
	})

	assert.True(t, ran["included"])
	assert.False(t, ran["excluded"])
	assert.Equal(t, "excluded by filter parameters", logger.skipped["excluded"])
}

func TestContextSubtestIDsNest(t *testing.T) {
	var ids []string
	logger := newRecordingTestLogger()

	Run(nil, logger, func(c *Context) {
		c.Run("outer", func(c *Context) {
			c.Run("inner one", func(c *Context) { ids = append(ids, c.ID().String()) })
			c.Run("inner two", func(c *Context) { ids = append(ids, c.ID().String()) })
		})
	})

	assert.Equal(t, []string{"outer/inner one", "outer/inner two"}, ids)
}

func TestContextDebugOutputIsCaptured(t *testing.T) {
	logger := newRecordingTestLogger()
	var captured CapturedOutput

	Run(nil, testLoggerWithCapture{logger, &captured}, func(c *Context) {
		c.Run("logs", func(c *Context) {
			c.Debug("value is %d", 42)
		})
	})

	require.Len(t, captured, 1)
	assert.Equal(t, "value is 42", captured[0].Message)
}

type testLoggerWithCapture struct {
	*recordingTestLogger
	dest *CapturedOutput
}

func (l testLoggerWithCapture) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	*l.dest = debugOutput
	l.recordingTestLogger.TestFinished(id, failed, debugOutput)
}
