/*
Package anim encodes a sequence of rendered CD+G frames as an animated GIF.

Frames that are already paletted are used as-is, anything else is reduced to
at most 256 colors with a median cut quantizer. Consecutive identical frames
are merged into a single frame with a longer delay.
*/
package anim

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"time"

	"github.com/bodgit/cdg/internal/palette"
)

const maxColors = 256

// ErrNoFrames is returned when encoding an empty animation.
var ErrNoFrames = errors.New("anim: no frames")

// Encoder collects frames for an animated GIF.
type Encoder struct {
	delay int
	g     gif.GIF
}

// NewEncoder returns an Encoder where each added frame is shown for the
// given interval, rounded to the nearest 10ms.
func NewEncoder(interval time.Duration) *Encoder {
	delay := int((interval + 5*time.Millisecond) / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}
	return &Encoder{
		delay: delay,
	}
}

func samePalette(p1, p2 color.Palette) bool {
	if len(p1) != len(p2) {
		return false
	}
	for i := range p1 {
		r1, g1, b1, a1 := p1[i].RGBA()
		r2, g2, b2, a2 := p2[i].RGBA()
		if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
			return false
		}
	}
	return true
}

func sameFrame(m1, m2 *image.Paletted) bool {
	return m1.Rect == m2.Rect && m1.Stride == m2.Stride && samePalette(m1.Palette, m2.Palette) && bytes.Equal(m1.Pix, m2.Pix)
}

// Add appends the frame m.
func (e *Encoder) Add(m image.Image) {
	pm := palette.Paletted(m, maxColors)

	if n := len(e.g.Image); n > 0 && sameFrame(e.g.Image[n-1], pm) {
		e.g.Delay[n-1] += e.delay
		return
	}

	e.g.Image = append(e.g.Image, pm)
	e.g.Delay = append(e.g.Delay, e.delay)
}

// Len returns the number of distinct frames collected so far.
func (e *Encoder) Len() int {
	return len(e.g.Image)
}

// Encode writes the animation to w.
func (e *Encoder) Encode(w io.Writer) error {
	if len(e.g.Image) == 0 {
		return ErrNoFrames
	}
	return gif.EncodeAll(w, &e.g)
}
