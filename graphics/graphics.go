/*
Package graphics implements the CD+G screen and the compositor that turns it
into true color pixels.

The screen is 300 by 216 pixels, each pixel being an index into a 16 entry
color table. The visible area excludes a border of one tile, 6 pixels on
the left and right, 12 pixels on the top and bottom.
*/
package graphics

import (
	"io/ioutil"
	"log"

	"github.com/bodgit/cdg/instruction"
)

const (
	// Width is the width of the screen in pixels
	Width = 300
	// Height is the height of the screen in pixels
	Height = 216
	// Colors is the size of the color table
	Colors = 16

	numPixels  = Width * Height
	tileWidth  = instruction.TileWidth
	tileHeight = instruction.TileHeight
)

// State is the screen memory and color table. A State is not safe for
// concurrent use; Apply must not run while a render is in progress.
type State struct {
	pixels [numPixels]uint8
	table  [Colors]instruction.Color

	logger *log.Logger
}

// New returns a cleared State reporting to logger. A nil logger discards
// everything.
func New(logger *log.Logger) *State {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}
	return &State{
		logger: logger,
	}
}

// ColorIndexAt returns the color table index of the pixel at (x, y).
func (s *State) ColorIndexAt(x, y int) uint8 {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0
	}
	return s.pixels[y*Width+x]
}

// SetColorIndex sets the pixel at (x, y). Pixels off the screen are ignored.
func (s *State) SetColorIndex(x, y int, index uint8) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	s.pixels[y*Width+x] = index
}

// ColorTable returns a copy of the color table.
func (s *State) ColorTable() [Colors]instruction.Color {
	return s.table
}

// lookup returns the color table entry for index. Indices past the end of
// the table are clamped to the last entry.
func (s *State) lookup(index uint8) instruction.Color {
	if int(index) >= Colors {
		index = Colors - 1
	}
	return s.table[index]
}
