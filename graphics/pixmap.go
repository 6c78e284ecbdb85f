package graphics

import (
	"errors"
	"image"
	"image/color"
	"math"
)

// ByteOrder selects the channel order of rendered pixels.
type ByteOrder int

const (
	// RGB renders pixels as red, green, blue, alpha
	RGB ByteOrder = iota
	// BGR renders pixels as blue, green, red, alpha
	BGR
)

func (o ByteOrder) String() string {
	switch o {
	case RGB:
		return "rgb"
	case BGR:
		return "bgr"
	}
	return "unknown"
}

var (
	// ErrInvalidScale is returned for a scale factor less than one or too
	// large for the rendered size to fit in an int
	ErrInvalidScale = errors.New("graphics: invalid scale factor")
	// ErrShortBuffer is returned when the destination cannot hold the
	// rendered screen
	ErrShortBuffer = errors.New("graphics: buffer too small")
	// ErrInvalidByteOrder is returned for an unknown byte order
	ErrInvalidByteOrder = errors.New("graphics: invalid byte order")
)

// Largest scale where scale * scale * 4 * numPixels still fits in an int
var maxScale = int(math.Sqrt(float64(math.MaxInt / (4 * numPixels))))

func validScale(scale int) bool {
	return scale >= 1 && scale <= maxScale
}

// PixmapSize returns the number of bytes needed to render the screen at the
// given scale, or zero if the scale is invalid.
func PixmapSize(scale int) int {
	if !validScale(scale) {
		return 0
	}
	return scale * scale * 4 * numPixels
}

// Render composites the screen into dst, four bytes per pixel with each
// screen pixel becoming a scale by scale block. Alpha is always 0xff. The
// state is not modified.
func (s *State) Render(dst []byte, scale int, order ByteOrder) error {
	if !validScale(scale) {
		return ErrInvalidScale
	}
	if order != RGB && order != BGR {
		return ErrInvalidByteOrder
	}
	if len(dst) < PixmapSize(scale) {
		return ErrShortBuffer
	}

	stride := scale * 4 * Width
	target := 0

	for row := 0; row < Height; row++ {
		start := target
		for _, index := range s.pixels[row*Width : (row+1)*Width] {
			c := s.lookup(index)
			r, b := c.R, c.B
			if order == BGR {
				r, b = b, r
			}
			for i := 0; i < scale; i++ {
				dst[target+0] = r
				dst[target+1] = c.G
				dst[target+2] = b
				dst[target+3] = 0xff
				target += 4
			}
		}

		// Repeat the scaled row rather than compositing it again
		for i := 1; i < scale; i++ {
			copy(dst[target:target+stride], dst[start:start+stride])
			target += stride
		}
	}

	return nil
}

// Pixmap returns a newly allocated rendering of the screen.
func (s *State) Pixmap(scale int, order ByteOrder) ([]byte, error) {
	if !validScale(scale) {
		return nil, ErrInvalidScale
	}
	b := make([]byte, PixmapSize(scale))
	if err := s.Render(b, scale, order); err != nil {
		return nil, err
	}
	return b, nil
}

// Image returns the screen rendered at the given scale.
func (s *State) Image(scale int) (*image.RGBA, error) {
	b, err := s.Pixmap(scale, RGB)
	if err != nil {
		return nil, err
	}
	return &image.RGBA{
		Pix:    b,
		Stride: scale * 4 * Width,
		Rect:   image.Rect(0, 0, scale*Width, scale*Height),
	}, nil
}

// Paletted returns the screen at its native size using the current color
// table as the palette.
func (s *State) Paletted() *image.Paletted {
	p := make(color.Palette, Colors)
	for i, c := range s.table {
		p[i] = c
	}

	m := image.NewPaletted(image.Rect(0, 0, Width, Height), p)
	for i, index := range s.pixels {
		if int(index) >= Colors {
			index = Colors - 1
		}
		m.Pix[i] = index
	}
	return m
}
