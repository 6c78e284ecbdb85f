package picture

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/bodgit/cdg/instruction"
	"github.com/bodgit/cdg/internal/palette"
	"github.com/bodgit/cdg/subcode"
)

type encoder struct {
	w *subcode.Writer
}

func (e *encoder) write(ins instruction.Instruction) error {
	rec, err := instruction.Encode(ins)
	if err != nil {
		return err
	}
	return e.w.Write(rec)
}

// snap reduces c to the nearest color a color table entry can hold.
func snap(c color.Color) instruction.Color {
	r, g, b, _ := c.RGBA()
	return instruction.Color{
		R: uint8((r>>8 + 8) / 17 * 17),
		G: uint8((g>>8 + 8) / 17 * 17),
		B: uint8((b>>8 + 8) / 17 * 17),
	}
}

func colorTable(p color.Palette) (low, high [instruction.Entries]instruction.Color) {
	for i, c := range p {
		if i < instruction.Entries {
			low[i] = snap(c)
		} else {
			high[i-instruction.Entries] = snap(c)
		}
	}
	return
}

// Most frequently used color index
func background(m *image.Paletted) uint8 {
	var counts [colorsPerPalette]int
	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			counts[m.ColorIndexAt(x, y)&0x0f]++
		}
	}
	var bg uint8
	for i, n := range counts {
		if n > counts[bg] {
			bg = uint8(i)
		}
	}
	return bg
}

// Bitmap of the pixels in the tile for which set returns true
func bitmap(tile *[tileHeight][tileWidth]uint8, set func(uint8) bool) (b [tileHeight]byte) {
	for y := range tile {
		for x, index := range tile[y] {
			if set(index) {
				b[y] |= 0x20 >> uint(x)
			}
		}
	}
	return
}

func (e *encoder) encodeTile(tile *[tileHeight][tileWidth]uint8, row, column int, bg uint8) error {
	var used [colorsPerPalette]bool
	var colors []uint8
	for y := range tile {
		for _, index := range tile[y] {
			if !used[index] {
				used[index] = true
				colors = append(colors, index)
			}
		}
	}

	switch {
	case len(colors) == 1 && colors[0] == bg:
		// Already drawn by the memory preset
		return nil
	case len(colors) <= 2:
		c0, c1 := colors[0], colors[len(colors)-1]
		return e.write(instruction.TileBlock{
			Color0: c0,
			Color1: c1,
			Row:    row,
			Column: column,
			Bitmap: bitmap(tile, func(i uint8) bool { return i == c1 }),
		})
	}

	// Build the index up one bit at a time
	if err := e.write(instruction.TileBlock{
		Color0: 0,
		Color1: 1,
		Row:    row,
		Column: column,
		Bitmap: bitmap(tile, func(i uint8) bool { return i&1 != 0 }),
	}); err != nil {
		return err
	}

	for bit := uint(1); bit < indexBits; bit++ {
		mask := uint8(1) << bit
		b := bitmap(tile, func(i uint8) bool { return i&mask != 0 })
		if b == ([tileHeight]byte{}) {
			continue
		}
		if err := e.write(instruction.TileBlockXOR{
			Color0: 0,
			Color1: mask,
			Row:    row,
			Column: column,
			Bitmap: b,
		}); err != nil {
			return err
		}
	}

	return nil
}

func (e *encoder) encode(m *image.Paletted) error {
	bg := background(m)

	if err := e.write(instruction.MemoryPreset{Color: bg}); err != nil {
		return err
	}

	low, high := colorTable(m.Palette)
	if err := e.write(instruction.LoadColorTableLow{Entries: low}); err != nil {
		return err
	}
	if err := e.write(instruction.LoadColorTableHigh{Entries: high}); err != nil {
		return err
	}

	var tile [tileHeight][tileWidth]uint8
	for ty := 0; ty < tileY; ty++ {
		for tx := 0; tx < tileX; tx++ {
			for y := 0; y < tileHeight; y++ {
				for x := 0; x < tileWidth; x++ {
					// This is masking off any bits leaving a 0-15 value
					tile[y][x] = m.ColorIndexAt(tx*tileWidth+x, ty*tileHeight+y) & 0x0f
				}
			}
			if err := e.encodeTile(&tile, ty*tileHeight, tx*tileWidth, bg); err != nil {
				return err
			}
		}
	}

	return nil
}

// Encode writes the Image m to w as a CD+G instruction stream.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() != pixelX || b.Dy() != pixelY {
		return errors.New("picture: image is wrong size")
	}

	pm := palette.Paletted(m, colorsPerPalette)

	e := encoder{w: subcode.NewWriter(w)}

	return e.encode(pm)
}
