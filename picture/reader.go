package picture

import (
	"errors"
	"image"
	"io"

	"github.com/bodgit/cdg/graphics"
	"github.com/bodgit/cdg/instruction"
	"github.com/bodgit/cdg/subcode"
)

var errNotEnough = errors.New("picture: not enough records")

type decoder struct {
	r     *subcode.Reader
	d     *instruction.Decoder
	state *graphics.State
}

func (d *decoder) decode(r io.Reader) error {
	d.r = subcode.NewReader(r)
	d.d = instruction.NewDecoder(nil)
	d.state = graphics.New(nil)

	for {
		rec, err := d.r.Next()
		if err != nil {
			if err == io.EOF || err == subcode.ErrTruncated {
				break
			}
			return err
		}
		d.state.Apply(d.d.Decode(rec))
	}

	if d.r.Count() == 0 {
		return errNotEnough
	}

	return nil
}

// Decode plays the instruction stream from r and returns the final screen
// as an image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return nil, err
	}
	return d.state.Paletted(), nil
}

// DecodeConfig returns the color model and dimensions of the final screen
// of the instruction stream from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: d.state.Paletted().Palette,
		Width:      pixelX,
		Height:     pixelY,
	}, nil
}
