package audio

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, path string, rate, channels int, data []int) {
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, channels, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
}

func TestFind(t *testing.T) {
	dir, err := ioutil.TempDir("", "audio")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	song := filepath.Join(dir, "song.cdg")
	_, ok := Find(song)
	assert.False(t, ok)

	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "song.MP3"), nil, 0644))
	path, ok := Find(song)
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "song.MP3"), path)
}

func TestOpenWAV(t *testing.T) {
	dir, err := ioutil.TempDir("", "audio")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	const rate = 8000
	data := make([]int, rate)
	for i := range data {
		data[i] = i - rate/2
	}

	path := filepath.Join(dir, "song.wav")
	writeWAV(t, path, rate, 1, data)

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, rate, s.SampleRate)
	assert.Equal(t, time.Second, s.Duration)

	b, err := ioutil.ReadAll(s)
	require.NoError(t, err)
	require.Len(t, b, rate*BytesPerSample)

	// Mono is copied to both channels
	v := int16(uint16(b[4]) | uint16(b[5])<<8)
	assert.Equal(t, int16(1-rate/2), v)
	assert.Equal(t, b[4:6], b[6:8])

	d, err := Duration(path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)
}

func TestOpenUnsupported(t *testing.T) {
	f, err := ioutil.TempFile("", "audio*.ogg")
	require.NoError(t, err)
	f.Close()
	defer os.Remove(f.Name())

	_, err = Open(f.Name())
	assert.Equal(t, ErrUnsupported, err)
}

func TestPCM16(t *testing.T) {
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: 2, SampleRate: 44100},
		Data:   []int{0x10, 0x20, 0x30, 0x40},
	}

	b, err := pcm16(buf, 8)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x90, 0x00, 0xa0, 0x00, 0xb0, 0x00, 0xc0}, b)

	b, err = pcm16(buf, 24)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, b)

	_, err = pcm16(&goaudio.IntBuffer{}, 16)
	assert.Error(t, err)
}
