package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects output to a buffer for the duration of the test.
func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestVerboseLevels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(string, ...any)
		expected string
	}{
		{name: "debug", log: Debug, expected: "[DEBUG] test message arg\n"},
		{name: "info", log: Info, expected: "[INFO] test message arg\n"},
		{name: "success", log: Success, expected: "[OK] test message arg\n"},
		{name: "warn", log: Warn, expected: "[WARN] test message arg\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" when verbose", func(t *testing.T) {
			buf := capture(t, true)
			tt.log("test message %s", "arg")
			assert.Equal(t, tt.expected, buf.String())
		})

		t.Run(tt.name+" when not verbose", func(t *testing.T) {
			buf := capture(t, false)
			tt.log("test message %s", "arg")
			assert.Zero(t, buf.Len())
		})
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Error("database error: %v", "disk I/O")

	assert.Equal(t, "[ERROR] database error: disk I/O\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Test Section")

	assert.Equal(t, "\n=== Test Section ===\n", buf.String())
}

func TestConcurrentAccess(t *testing.T) {
	capture(t, false)

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			SetVerbose(true)
			Debug("concurrent %d", i)
			Error("concurrent %d", i)
			IsVerbose()
			SetVerbose(false)
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}
}
