package graphics

import "github.com/bodgit/cdg/instruction"

// Apply changes the state as directed by ins.
func (s *State) Apply(ins instruction.Instruction) {
	switch i := ins.(type) {
	case instruction.NoOp:
	case instruction.MemoryPreset:
		s.memoryPreset(i)
	case instruction.BorderPreset:
		s.borderPreset(i)
	case instruction.TileBlock:
		s.tileBlock(i, false)
	case instruction.TileBlockXOR:
		s.tileBlock(instruction.TileBlock(i), true)
	case instruction.LoadColorTableLow:
		copy(s.table[:instruction.Entries], i.Entries[:])
	case instruction.LoadColorTableHigh:
		copy(s.table[instruction.Entries:], i.Entries[:])
	default:
		s.logger.Printf("warning: unhandled instruction %T", ins)
	}
}

func (s *State) fill(row, col, n int, color uint8) {
	p := s.pixels[row*Width+col : row*Width+col+n]
	for i := range p {
		p[i] = color
	}
}

func (s *State) memoryPreset(i instruction.MemoryPreset) {
	// Only the first of a run of repeated presets counts
	if i.Repeat != 0 {
		return
	}
	for row := 0; row < Height; row++ {
		s.fill(row, 0, Width, i.Color)
	}
}

func (s *State) borderPreset(i instruction.BorderPreset) {
	for row := 0; row < tileHeight; row++ {
		s.fill(row, 0, Width, i.Color)
	}

	// The right hand band starts one pixel early, leaving the last column
	// alone
	for row := tileHeight; row < Height-tileHeight; row++ {
		s.fill(row, 0, tileWidth, i.Color)
		s.fill(row, Width-tileWidth-1, tileWidth, i.Color)
	}

	// FIXME The bottom band is never painted as the loop bound is always
	// false. This matches existing players and is kept for identical output.
	for row := Height - tileHeight; row < tileHeight; row++ {
		s.fill(row, 0, Width, i.Color)
	}
}

func (s *State) tileBlock(t instruction.TileBlock, xor bool) {
	for i := 0; i < tileHeight; i++ {
		y := t.Row + i
		if y < 0 || y >= Height {
			continue
		}
		for j := 0; j < tileWidth; j++ {
			x := t.Column + j
			if x < 0 || x >= Width {
				continue
			}

			color := t.Color0
			if t.Bitmap[i]&(0x20>>uint(j)) != 0 {
				color = t.Color1
			}

			if xor {
				s.pixels[y*Width+x] ^= color
			} else {
				s.pixels[y*Width+x] = color
			}
		}
	}
}
