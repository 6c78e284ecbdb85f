package cdg

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/bodgit/cdg/graphics"
	"github.com/bodgit/cdg/instruction"
	"github.com/bodgit/cdg/subcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerStep(t *testing.T) {
	p := NewPlayer(bytes.NewReader(redScreen(t)), nil)

	for i := 0; i < 3; i++ {
		ok, err := p.Step()
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := p.Step()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, p.Done())

	b := make([]byte, graphics.PixmapSize(1))
	require.NoError(t, p.Render(b, 1, graphics.RGB))
	assert.False(t, p.Changed())
	for i := 0; i < len(b); i += 4 {
		if !assert.Equal(t, []byte{255, 0, 0, 0xff}, b[i:i+4]) {
			break
		}
	}
}

func TestPlayerAdvanceTo(t *testing.T) {
	instructions := make([]instruction.Instruction, 2*subcode.RecordsPerSecond)
	for i := range instructions {
		instructions[i] = instruction.NoOp{}
	}
	instructions[subcode.RecordsPerSecond+10] = instruction.BorderPreset{Color: 1}

	p := NewPlayer(bytes.NewReader(stream(t, instructions...)), nil)
	require.NoError(t, p.Render(make([]byte, graphics.PixmapSize(1)), 1, graphics.RGB))

	n, err := p.AdvanceTo(time.Second)
	require.NoError(t, err)
	assert.Equal(t, subcode.RecordsPerSecond, n)
	assert.Equal(t, time.Second, p.Position())
	assert.False(t, p.Changed())

	// Going backwards does nothing
	n, err = p.AdvanceTo(500 * time.Millisecond)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = p.AdvanceTo(time.Second + 100*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 30, n)
	assert.True(t, p.Changed())
	assert.Equal(t, uint8(1), p.State().ColorIndexAt(0, 0))

	n, err = p.AdvanceTo(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, subcode.RecordsPerSecond-30, n)
	assert.True(t, p.Done())
}

func TestPlayerTruncated(t *testing.T) {
	b := new(bytes.Buffer)
	p := NewPlayer(bytes.NewReader(append(redScreen(t), 0x09, 0x01)), log.New(b, "", 0))

	n, err := p.AdvanceTo(time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, p.Done())
	assert.Equal(t, 1, strings.Count(b.String(), "\n"))
	assert.Contains(t, b.String(), subcode.ErrTruncated.Error())
}

func TestPlayerUnknown(t *testing.T) {
	var data [subcode.DataSize]byte
	rec := subcode.New(instruction.GraphicsCommand, 50, data)

	b := new(bytes.Buffer)
	p := NewPlayer(bytes.NewReader(rec[:]), log.New(b, "", 0))
	require.NoError(t, p.Render(make([]byte, graphics.PixmapSize(1)), 1, graphics.RGB))

	ok, err := p.Step()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, p.Changed())
	assert.Equal(t, 1, strings.Count(b.String(), "\n"))
}
