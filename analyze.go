package cdg

import (
	"io"
	"io/ioutil"
	"log"
	"time"

	"github.com/bodgit/cdg/graphics"
	"github.com/bodgit/cdg/instruction"
	"github.com/bodgit/cdg/subcode"
)

// Stats summarizes a record stream.
type Stats struct {
	// Records is the number of complete records
	Records int64
	// Graphics is the number of records carrying the graphics command
	Graphics int64
	// Instructions counts graphics records by instruction code
	Instructions map[instruction.Code]int64
	// Unknown is the number of graphics records that were not understood
	Unknown int64
	// Truncated is set if the stream ended part way through a record
	Truncated bool
}

// Duration returns the play time of the stream at 300 records per second.
func (s *Stats) Duration() time.Duration {
	return time.Duration(s.Records) * time.Second / subcode.RecordsPerSecond
}

// Analyze reads the whole record stream from r, returning a summary and the
// final screen.
func Analyze(r io.Reader, logger *log.Logger) (*Stats, *graphics.State, error) {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	sr := subcode.NewReader(r)
	d := instruction.NewDecoder(logger)
	state := graphics.New(logger)

	stats := &Stats{
		Instructions: make(map[instruction.Code]int64),
	}

	for {
		rec, err := sr.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			if err == subcode.ErrTruncated {
				stats.Truncated = true
				break
			}
			return nil, nil, err
		}

		ins := d.Decode(rec)
		state.Apply(ins)

		if rec.Command() != instruction.GraphicsCommand {
			continue
		}
		stats.Graphics++

		code := instruction.Code(rec.Instruction())
		stats.Instructions[code]++
		if _, ok := ins.(instruction.NoOp); ok && code != instruction.CodeNoOp {
			stats.Unknown++
		}
	}
	stats.Records = sr.Count()

	return stats, state, nil
}
