package picture

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/cdg/instruction"
	"github.com/bodgit/cdg/subcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0xff, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0xff, 0x00, 0xff},
	color.RGBA{0x00, 0x00, 0xff, 0xff},
	color.RGBA{0x77, 0x88, 0x99, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
}

func sameColor(t *testing.T, want, got color.Color, x, y int) bool {
	r1, g1, b1, a1 := want.RGBA()
	r2, g2, b2, a2 := got.RGBA()
	return assert.Equal(t, [4]uint32{r1, g1, b1, a1}, [4]uint32{r2, g2, b2, a2}, "pixel (%d, %d)", x, y)
}

func roundTrip(t *testing.T, m image.Image) image.Image {
	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))
	require.Zero(t, b.Len()%subcode.RecordSize)

	out, err := Decode(b)
	require.NoError(t, err)
	return out
}

func TestRoundTripPaletted(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, pixelX, pixelY), testPalette)
	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			if y > pixelY/2 {
				m.SetColorIndex(x, y, uint8((x/3+y/5)%len(testPalette)))
			}
		}
	}

	out := roundTrip(t, m)
	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			if !sameColor(t, m.At(x, y), out.At(x, y), x, y) {
				t.FailNow()
			}
		}
	}
}

func TestRoundTripRGBA(t *testing.T) {
	m := image.NewRGBA(image.Rect(10, 10, 10+pixelX, 10+pixelY))
	for y := 10; y < 10+pixelY; y++ {
		for x := 10; x < 10+pixelX; x++ {
			c := testPalette[3]
			if (x/7+y/11)%2 == 0 {
				c = testPalette[5]
			}
			m.Set(x, y, c)
		}
	}

	out := roundTrip(t, m)
	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			if !sameColor(t, m.At(x+10, y+10), out.At(x, y), x, y) {
				t.FailNow()
			}
		}
	}
}

func TestEncodeSkipsBackground(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, pixelX, pixelY), testPalette)
	for y := 0; y < pixelY; y++ {
		for x := 0; x < pixelX; x++ {
			m.SetColorIndex(x, y, 4)
		}
	}
	m.SetColorIndex(0, 0, 1)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	// Preset, two color tables, one tile
	r := subcode.NewReader(b)
	d := instruction.NewDecoder(nil)
	var got []instruction.Code
	for {
		rec, err := r.Next()
		if err != nil {
			break
		}
		got = append(got, d.Decode(rec).Code())
	}
	assert.Equal(t, []instruction.Code{
		instruction.CodeMemoryPreset,
		instruction.CodeLoadColorTableLow,
		instruction.CodeLoadColorTableHigh,
		instruction.CodeTileBlock,
	}, got)
}

func TestEncodeWrongSize(t *testing.T) {
	assert.Error(t, Encode(new(bytes.Buffer), image.NewRGBA(image.Rect(0, 0, 64, 40))))
}

func TestDecodeEmpty(t *testing.T) {
	_, err := Decode(new(bytes.Buffer))
	assert.Equal(t, errNotEnough, err)
}

func TestDecodeConfig(t *testing.T) {
	m := image.NewPaletted(image.Rect(0, 0, pixelX, pixelY), testPalette)

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, m))

	cfg, err := DecodeConfig(b)
	require.NoError(t, err)
	assert.Equal(t, pixelX, cfg.Width)
	assert.Equal(t, pixelY, cfg.Height)
	assert.Len(t, cfg.ColorModel.(color.Palette), colorsPerPalette)
}

func TestSnap(t *testing.T) {
	assert.Equal(t, instruction.Color{R: 0x77, G: 0x00, B: 0xff}, snap(color.RGBA{0x7a, 0x08, 0xf9, 0xff}))
}
