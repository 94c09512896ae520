package protocol

import (
	"bufio"
	"io"
)

// FlushWriter buffers writes and exposes an explicit Flush. Responses on
// the stdio transport must reach the client immediately, so callers flush
// after every encoded message.
type FlushWriter struct {
	w *bufio.Writer
}

func NewFlushWriter(w io.Writer) *FlushWriter {
	return &FlushWriter{w: bufio.NewWriter(w)}
}

func (f *FlushWriter) Write(p []byte) (int, error) {
	return f.w.Write(p)
}

func (f *FlushWriter) Flush() error {
	return f.w.Flush()
}
