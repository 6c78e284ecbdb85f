package instruction

import (
	"fmt"

	"github.com/bodgit/cdg/subcode"
)

func encodeTile(t TileBlock) (data [subcode.DataSize]byte) {
	data[0] = t.Color0 & 0x0f
	data[1] = t.Color1 & 0x0f
	data[2] = byte(t.Row/TileHeight) & 0x1f
	data[3] = byte(t.Column/TileWidth) & 0x3f
	for i, b := range t.Bitmap {
		data[4+i] = b & 0x3f
	}
	return
}

func encodeColorTable(entries [Entries]Color) (data [subcode.DataSize]byte) {
	for i, c := range entries {
		b := EncodeColor(c)
		data[2*i], data[2*i+1] = b[0], b[1]
	}
	return
}

// Encode returns the subcode packet for ins. The parity bytes are left as
// zero.
func Encode(ins Instruction) (subcode.Record, error) {
	var data [subcode.DataSize]byte

	switch i := ins.(type) {
	case NoOp:
	case MemoryPreset:
		data[0] = i.Color & 0x0f
		data[1] = i.Repeat & 0x0f
	case BorderPreset:
		data[0] = i.Color & 0x0f
	case TileBlock:
		data = encodeTile(i)
	case TileBlockXOR:
		data = encodeTile(TileBlock(i))
	case LoadColorTableLow:
		data = encodeColorTable(i.Entries)
	case LoadColorTableHigh:
		data = encodeColorTable(i.Entries)
	default:
		return subcode.Record{}, fmt.Errorf("instruction: cannot encode %T", ins)
	}

	return subcode.New(GraphicsCommand, byte(ins.Code()), data), nil
}
