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

// Player decodes a record stream into a screen at the nominal rate of 300
// records per second. A Player is not safe for concurrent use; decoding and
// rendering must happen on the same goroutine.
type Player struct {
	r       *subcode.Reader
	decoder *instruction.Decoder
	state   *graphics.State
	logger  *log.Logger

	done    bool
	changed bool
}

// NewPlayer returns a Player reading records from r. A nil logger discards
// everything.
func NewPlayer(r io.Reader, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Player{
		r:       subcode.NewReader(r),
		decoder: instruction.NewDecoder(logger),
		state:   graphics.New(logger),
		logger:  logger,
		changed: true,
	}
}

// Step decodes and applies the next record. It returns false once the
// stream is exhausted. A truncated final record ends the stream rather than
// failing it.
func (p *Player) Step() (bool, error) {
	if p.done {
		return false, nil
	}

	rec, err := p.r.Next()
	switch err {
	case nil:
	case io.EOF:
		p.done = true
		return false, nil
	case subcode.ErrTruncated:
		p.logger.Printf("warning: %v after %d records", err, p.r.Count())
		p.done = true
		return false, nil
	default:
		return false, err
	}

	ins := p.decoder.Decode(rec)
	if _, ok := ins.(instruction.NoOp); !ok {
		p.state.Apply(ins)
		p.changed = true
	}

	return true, nil
}

// AdvanceTo applies records until the stream position reaches elapsed and
// returns the number of records applied.
func (p *Player) AdvanceTo(elapsed time.Duration) (int, error) {
	target := int64(elapsed * subcode.RecordsPerSecond / time.Second)

	var n int
	for p.r.Count() < target {
		ok, err := p.Step()
		if err != nil {
			return n, err
		}
		if !ok {
			break
		}
		n++
	}
	return n, nil
}

// Position returns the stream position of the records applied so far.
func (p *Player) Position() time.Duration {
	return time.Duration(p.r.Count()) * time.Second / subcode.RecordsPerSecond
}

// Done returns true once the end of the stream has been reached.
func (p *Player) Done() bool {
	return p.done
}

// Changed returns true if the screen may have changed since it was last
// rendered.
func (p *Player) Changed() bool {
	return p.changed
}

// Render composites the screen into dst, see graphics.State.Render.
func (p *Player) Render(dst []byte, scale int, order graphics.ByteOrder) error {
	if err := p.state.Render(dst, scale, order); err != nil {
		return err
	}
	p.changed = false
	return nil
}

// State returns the screen.
func (p *Player) State() *graphics.State {
	return p.state
}
