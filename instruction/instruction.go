/*
Package instruction decodes CD+G graphics instructions from subcode packets.

Only packets with a command code of 9 carry graphics instructions. Of the
instruction codes defined for that command, memory preset, border preset,
tile block, tile block XOR and the two load color table instructions are
understood. Everything else, including the scroll and transparent color
instructions, decodes to NoOp.
*/
package instruction

import "fmt"

const (
	// TileWidth is the width in pixels of a tile block
	TileWidth = 6
	// TileHeight is the height in pixels of a tile block
	TileHeight = 12
	// Entries is the number of colors loaded by a single color table instruction
	Entries = 8

	// GraphicsCommand is the subcode command carrying graphics instructions
	GraphicsCommand = 0x09
)

// Code is an instruction code.
type Code uint8

// Instruction codes for the graphics command.
const (
	CodeNoOp                   Code = 0
	CodeMemoryPreset           Code = 1
	CodeBorderPreset           Code = 2
	CodeTileBlock              Code = 6
	CodeScrollPreset           Code = 20
	CodeScrollCopy             Code = 24
	CodeDefineTransparentColor Code = 28
	CodeLoadColorTableLow      Code = 30
	CodeLoadColorTableHigh     Code = 31
	CodeTileBlockXOR           Code = 38
)

var codeNames = map[Code]string{
	CodeNoOp:                   "no-op",
	CodeMemoryPreset:           "memory preset",
	CodeBorderPreset:           "border preset",
	CodeTileBlock:              "tile block",
	CodeScrollPreset:           "scroll preset",
	CodeScrollCopy:             "scroll copy",
	CodeDefineTransparentColor: "define transparent color",
	CodeLoadColorTableLow:      "load color table low",
	CodeLoadColorTableHigh:     "load color table high",
	CodeTileBlockXOR:           "tile block xor",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%d)", uint8(c))
}

// Instruction is one of NoOp, MemoryPreset, BorderPreset, TileBlock,
// TileBlockXOR, LoadColorTableLow or LoadColorTableHigh.
type Instruction interface {
	Code() Code
	instruction()
}

// NoOp does nothing.
type NoOp struct{}

// MemoryPreset fills the whole screen with a single color. Presets are sent
// several times in a row and only the first, with a Repeat of zero, has any
// effect.
type MemoryPreset struct {
	Color  uint8
	Repeat uint8
}

// BorderPreset fills the screen border with a single color.
type BorderPreset struct {
	Color uint8
}

// TileBlock draws a 6 by 12 pixel tile. Row and Column are pixel offsets.
// Each byte of Bitmap is a row of the tile, bit 5 being the leftmost pixel;
// set bits are drawn with Color1, clear bits with Color0.
type TileBlock struct {
	Color0 uint8
	Color1 uint8
	Row    int
	Column int
	Bitmap [TileHeight]byte
}

// TileBlockXOR is like TileBlock except the colors are exclusive-ORed into
// the existing pixels.
type TileBlockXOR TileBlock

// LoadColorTableLow replaces color table entries 0 to 7.
type LoadColorTableLow struct {
	Entries [Entries]Color
}

// LoadColorTableHigh replaces color table entries 8 to 15.
type LoadColorTableHigh struct {
	Entries [Entries]Color
}

// Code returns CodeNoOp.
func (NoOp) Code() Code { return CodeNoOp }

// Code returns CodeMemoryPreset.
func (MemoryPreset) Code() Code { return CodeMemoryPreset }

// Code returns CodeBorderPreset.
func (BorderPreset) Code() Code { return CodeBorderPreset }

// Code returns CodeTileBlock.
func (TileBlock) Code() Code { return CodeTileBlock }

// Code returns CodeTileBlockXOR.
func (TileBlockXOR) Code() Code { return CodeTileBlockXOR }

// Code returns CodeLoadColorTableLow.
func (LoadColorTableLow) Code() Code { return CodeLoadColorTableLow }

// Code returns CodeLoadColorTableHigh.
func (LoadColorTableHigh) Code() Code { return CodeLoadColorTableHigh }

func (NoOp) instruction()               {}
func (MemoryPreset) instruction()       {}
func (BorderPreset) instruction()       {}
func (TileBlock) instruction()          {}
func (TileBlockXOR) instruction()       {}
func (LoadColorTableLow) instruction()  {}
func (LoadColorTableHigh) instruction() {}
