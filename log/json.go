package log

import (
	"io"
	"sync"

	"github.com/goccy/go-json"
)

// JSONWriter re-encodes the logger's "timestamp | LEVEL | message" lines as
// newline-delimited JSON objects, for deployments that ship logs to a
// collector instead of a terminal.
type JSONWriter struct {
	Out io.Writer
	mu  sync.Mutex
}

// NewJSONWriter creates a JSONWriter writing to out.
func NewJSONWriter(out io.Writer) *JSONWriter {
	if out == nil {
		out = io.Discard
	}
	return &JSONWriter{Out: out}
}

// NewJSONLogger returns a Logger that writes newline-delimited JSON to out,
// the machine-readable counterpart to NewConsoleLogger.
func NewJSONLogger(out io.Writer, level Level) *Logger {
	return New(NewJSONWriter(out), level)
}

type jsonLine struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"msg"`
}

// Write implements io.Writer, parsing p as one plain-text log line and
// emitting the equivalent JSON object terminated by a newline.
func (w *JSONWriter) Write(p []byte) (int, error) {
	firstSep := findSeparator(p, 0)
	if firstSep == -1 {
		return w.Out.Write(p)
	}
	secondSep := findSeparator(p, firstSep+3)
	if secondSep == -1 {
		return w.Out.Write(p)
	}

	line := jsonLine{
		Time:    string(p[:firstSep]),
		Level:   string(p[firstSep+3 : secondSep]),
		Message: string(p[secondSep+3:]),
	}

	encoded, err := json.Marshal(line)
	if err != nil {
		return 0, err
	}
	encoded = append(encoded, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Out.Write(encoded)
}
