package cdg

import (
	"bytes"
	"testing"

	"github.com/bodgit/cdg/instruction"
	"github.com/bodgit/cdg/subcode"
	"github.com/stretchr/testify/require"
)

var solid = [instruction.TileHeight]byte{0x3f, 0x3f, 0x3f, 0x3f, 0x3f, 0x3f, 0x3f, 0x3f, 0x3f, 0x3f, 0x3f, 0x3f}

// stream encodes the instructions as a record stream
func stream(t *testing.T, instructions ...instruction.Instruction) []byte {
	b := new(bytes.Buffer)
	w := subcode.NewWriter(b)
	for _, ins := range instructions {
		rec, err := instruction.Encode(ins)
		require.NoError(t, err)
		require.NoError(t, w.Write(rec))
	}
	return b.Bytes()
}

// redScreen is a preset, a palette load and a tile
func redScreen(t *testing.T) []byte {
	return stream(t,
		instruction.MemoryPreset{Color: 0, Repeat: 0},
		instruction.LoadColorTableLow{Entries: [instruction.Entries]instruction.Color{{R: 255}}},
		instruction.TileBlock{Color0: 0, Color1: 0, Row: 0, Column: 0, Bitmap: solid},
	)
}
