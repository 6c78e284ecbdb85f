package instruction

import (
	"io/ioutil"
	"log"

	"github.com/bodgit/cdg/subcode"
)

// Decoder turns subcode packets into instructions. Unrecognized instruction
// codes are reported on its logger.
type Decoder struct {
	logger *log.Logger
}

// NewDecoder returns a Decoder reporting to logger. A nil logger discards
// everything.
func NewDecoder(logger *log.Logger) *Decoder {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &Decoder{
		logger: logger,
	}
}

func tileBlock(data [subcode.DataSize]byte) TileBlock {
	t := TileBlock{
		Color0: data[0] & 0x0f,
		Color1: data[1] & 0x0f,
		Row:    int(data[2]&0x1f) * TileHeight,
		Column: int(data[3]&0x3f) * TileWidth,
	}
	copy(t.Bitmap[:], data[4:4+TileHeight])
	return t
}

func colorTable(data [subcode.DataSize]byte) (entries [Entries]Color) {
	for i := range entries {
		entries[i] = DecodeColor([2]byte{data[2*i], data[2*i+1]})
	}
	return
}

// Decode returns the instruction held in rec. It never fails; anything it
// cannot make sense of becomes NoOp.
func (d *Decoder) Decode(rec subcode.Record) Instruction {
	code := Code(rec.Instruction())
	if rec.Command() != GraphicsCommand || code == CodeNoOp {
		return NoOp{}
	}

	data := rec.Data()

	switch code {
	case CodeMemoryPreset:
		return MemoryPreset{
			Color:  data[0] & 0x0f,
			Repeat: data[1] & 0x0f,
		}
	case CodeBorderPreset:
		return BorderPreset{
			Color: data[0] & 0x0f,
		}
	case CodeTileBlock:
		return tileBlock(data)
	case CodeTileBlockXOR:
		return TileBlockXOR(tileBlock(data))
	case CodeLoadColorTableLow:
		return LoadColorTableLow{
			Entries: colorTable(data),
		}
	case CodeLoadColorTableHigh:
		return LoadColorTableHigh{
			Entries: colorTable(data),
		}
	default:
		d.logger.Printf("warning: invalid instruction %2d (%s) found", uint8(code), code)
		return NoOp{}
	}
}
