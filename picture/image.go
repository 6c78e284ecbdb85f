/*
Package picture converts between still images and CD+G instruction streams.

The screen is 300 by 216 pixels exactly which is split into fifty by
eighteen tiles of 6 by 12 pixels. A single color table of 16 colors is
shared by every tile, with each channel limited to 4 bits.

An encoded picture is a memory preset to the most common color, the two
load color table instructions and then a tile block for every tile that
isn't entirely the preset color. A tile holding more than two colors is
drawn as one plain tile block followed by up to three XOR tile blocks, one
per bit of the color index.
*/
package picture

import "github.com/bodgit/cdg/graphics"

const (
	tileWidth        = 6
	tileHeight       = 12
	tileX            = graphics.Width / tileWidth
	tileY            = graphics.Height / tileHeight
	colorsPerPalette = graphics.Colors
	pixelX           = graphics.Width
	pixelY           = graphics.Height
	indexBits        = 4
)
