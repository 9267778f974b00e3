package framework

import (
	"fmt"
	"io"
	"sync"
	"time"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Logger is the interface for debug output from tests and harness
// components.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (n nullLogger) Printf(message string, args ...interface{}) {}

// NullLogger returns a Logger that discards all output.
func NullLogger() Logger { return nullLogger{} }

// CapturedMessage is one timestamped line of captured debug output.
type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturedOutput is the debug output accumulated during one test.
type CapturedOutput []CapturedMessage

// CapturingLogger is a Logger that buffers output in memory so it can be
// shown after a test finishes (normally only if the test failed).
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(message string, args ...interface{}) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(message, args...)})
	l.lock.Unlock()
}

// Output returns a copy of everything logged so far.
func (l *CapturingLogger) Output() CapturedOutput {
	l.lock.Lock()
	ret := append(CapturedOutput(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Dump writes the captured output to dest, one prefixed line per message.
func (output CapturedOutput) Dump(dest io.Writer, prefix string) {
	for _, m := range output {
		fmt.Fprintf(dest, "%s[%s] %s\n", prefix, m.Time.Format(timestampFormat), m.Message)
	}
}
