package subcode

import (
	"errors"
	"io"
)

// ErrTruncated is returned when the stream ends part way through a packet.
var ErrTruncated = errors.New("subcode: truncated record")

// Reader reads packets one at a time from an underlying stream. It never
// buffers more than a single packet and never seeks.
type Reader struct {
	r io.Reader
	n int64
}

// NewReader returns a Reader reading from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Next returns the next packet. At the end of the stream it returns io.EOF,
// if the stream ends mid-packet ErrTruncated is returned instead.
func (r *Reader) Next() (Record, error) {
	var rec Record
	if _, err := io.ReadFull(r.r, rec[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Record{}, ErrTruncated
		}
		return Record{}, err
	}
	r.n++
	return rec, nil
}

// Count returns the number of complete packets read so far.
func (r *Reader) Count() int64 {
	return r.n
}
