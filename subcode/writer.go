package subcode

import "io"

// Writer writes packets to an underlying stream.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes a single packet.
func (w *Writer) Write(rec Record) error {
	_, err := w.w.Write(rec[:])
	return err
}
