package graphics

import (
	"math"
	"testing"

	"github.com/bodgit/cdg/instruction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quad(b []byte, scale, x, y int) []byte {
	i := (y*Width*scale + x) * 4
	return b[i : i+4]
}

func TestRenderScale(t *testing.T) {
	s := New(nil)
	s.Apply(instruction.LoadColorTableHigh{Entries: [instruction.Entries]instruction.Color{2: {R: 10, G: 20, B: 30}}})
	s.SetColorIndex(7, 5, 10)

	b, err := s.Pixmap(2, RGB)
	require.NoError(t, err)
	require.Len(t, b, 4*4*Width*Height)

	for dy := 0; dy < 2; dy++ {
		for dx := 0; dx < 2; dx++ {
			assert.Equal(t, []byte{10, 20, 30, 0xff}, quad(b, 2, 14+dx, 10+dy))
		}
	}
	assert.Equal(t, []byte{0, 0, 0, 0xff}, quad(b, 2, 13, 10))
	assert.Equal(t, []byte{0, 0, 0, 0xff}, quad(b, 2, 14, 12))
}

func TestRenderByteOrder(t *testing.T) {
	s := New(nil)
	s.Apply(instruction.LoadColorTableLow{Entries: [instruction.Entries]instruction.Color{{R: 1, G: 2, B: 3, A: 4}}})

	b, err := s.Pixmap(1, BGR)
	require.NoError(t, err)
	for i := 0; i < len(b); i += 4 {
		if b[i] != 3 || b[i+1] != 2 || b[i+2] != 1 || b[i+3] != 0xff {
			t.Fatalf("pixel %d is %v", i/4, b[i:i+4])
		}
	}
}

func TestRenderRowReplication(t *testing.T) {
	s := New(nil)
	s.Apply(instruction.LoadColorTableLow{Entries: [instruction.Entries]instruction.Color{{}, {R: 255}, {G: 255}, {B: 255}}})
	noise(s)
	for i := range s.pixels {
		s.pixels[i] &= 0x03
	}

	one, err := s.Pixmap(1, RGB)
	require.NoError(t, err)

	const scale = 3
	three, err := s.Pixmap(scale, RGB)
	require.NoError(t, err)

	for y := 0; y < Height*scale; y++ {
		for x := 0; x < Width*scale; x++ {
			if !assert.Equal(t, quad(one, 1, x/scale, y/scale), quad(three, scale, x, y)) {
				t.FailNow()
			}
		}
	}
}

func TestRenderOutOfRangeIndex(t *testing.T) {
	s := New(nil)
	s.Apply(instruction.LoadColorTableHigh{Entries: [instruction.Entries]instruction.Color{7: {R: 255, G: 255, B: 255}}})
	s.SetColorIndex(0, 0, 0xff)

	var b []byte
	require.NotPanics(t, func() {
		var err error
		b, err = s.Pixmap(1, RGB)
		require.NoError(t, err)
	})
	assert.Equal(t, []byte{255, 255, 255, 0xff}, quad(b, 1, 0, 0))
}

func TestRenderErrors(t *testing.T) {
	s := New(nil)

	_, err := s.Pixmap(0, RGB)
	assert.Equal(t, ErrInvalidScale, err)

	assert.Equal(t, ErrShortBuffer, s.Render(make([]byte, PixmapSize(2)-1), 2, RGB))
	assert.Equal(t, ErrInvalidByteOrder, s.Render(make([]byte, PixmapSize(1)), 1, ByteOrder(5)))
}

func TestRenderHugeScale(t *testing.T) {
	s := New(nil)

	assert.True(t, PixmapSize(maxScale) > 0)
	assert.Zero(t, PixmapSize(maxScale+1))
	assert.Zero(t, PixmapSize(math.MaxInt))

	for _, scale := range []int{maxScale + 1, 1 << 30, math.MaxInt} {
		assert.Equal(t, ErrInvalidScale, s.Render(nil, scale, RGB), "scale %d", scale)
		_, err := s.Pixmap(scale, RGB)
		assert.Equal(t, ErrInvalidScale, err, "scale %d", scale)
		_, err = s.Image(scale)
		assert.Equal(t, ErrInvalidScale, err, "scale %d", scale)
	}
}

func TestRenderNoSideEffects(t *testing.T) {
	s := New(nil)
	noise(s)
	before := s.pixels

	first, err := s.Pixmap(2, BGR)
	require.NoError(t, err)
	second, err := s.Pixmap(2, BGR)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, s.pixels)
}

func TestImage(t *testing.T) {
	s := New(nil)
	s.Apply(instruction.LoadColorTableLow{Entries: [instruction.Entries]instruction.Color{{R: 255}}})

	m, err := s.Image(2)
	require.NoError(t, err)
	assert.Equal(t, 2*Width, m.Bounds().Dx())
	assert.Equal(t, 2*Height, m.Bounds().Dy())
	r, g, b, a := m.At(599, 431).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0, 0, 0xffff}, [4]uint32{r, g, b, a})
}

// Preset, palette load and a solid tile composite to an entirely red screen
func TestEndToEnd(t *testing.T) {
	d := instruction.NewDecoder(nil)
	s := New(nil)

	for _, ins := range []instruction.Instruction{
		instruction.MemoryPreset{Color: 0, Repeat: 0},
		instruction.LoadColorTableLow{Entries: [instruction.Entries]instruction.Color{{R: 255}}},
		instruction.TileBlock{Color0: 0, Color1: 0, Row: 0, Column: 0, Bitmap: allOnes},
	} {
		rec, err := instruction.Encode(ins)
		require.NoError(t, err)
		s.Apply(d.Decode(rec))
	}

	b, err := s.Pixmap(1, RGB)
	require.NoError(t, err)
	for i := 0; i < len(b); i += 4 {
		if b[i] != 255 || b[i+1] != 0 || b[i+2] != 0 || b[i+3] != 0xff {
			t.Fatalf("pixel %d is %v", i/4, b[i:i+4])
		}
	}
}
