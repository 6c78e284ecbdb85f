/*
Package audio locates and decodes the audio track accompanying a CD+G
stream.

Karaoke tracks are normally distributed as a pair of files sharing a base
name, e.g. "song.cdg" and "song.mp3". Both MP3 and WAV audio are supported
and decoded to signed 16-bit little endian stereo PCM.
*/
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

const (
	// Channels is the number of channels in the decoded stream
	Channels = 2
	// BytesPerSample is the size of a single frame of the decoded stream
	BytesPerSample = Channels * 2
)

var extensions = []string{".mp3", ".wav"}

// ErrUnsupported is returned for audio files that are neither MP3 nor WAV.
var ErrUnsupported = errors.New("audio: unsupported format")

// Find returns the audio file accompanying the CD+G file at path.
func Find(path string) (string, bool) {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, ext := range extensions {
		for _, candidate := range []string{base + ext, base + strings.ToUpper(ext)} {
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, true
			}
		}
	}
	return "", false
}

// Stream is decoded PCM audio.
type Stream struct {
	io.Reader
	closer io.Closer

	// SampleRate is the number of frames per second
	SampleRate int
	// Duration is the total play time of the stream
	Duration time.Duration
}

// Close releases the underlying file.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func frames(n int64, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(rate)
}

// Open opens the audio file at path for decoding.
func Open(path string) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		dec, err := mp3.NewDecoder(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("audio: mp3: %w", err)
		}
		// The decoder always produces 16-bit stereo
		return &Stream{
			Reader:     dec,
			closer:     f,
			SampleRate: dec.SampleRate(),
			Duration:   frames(dec.Length()/BytesPerSample, dec.SampleRate()),
		}, nil
	case ".wav":
		defer f.Close()
		return openWAV(f)
	default:
		f.Close()
		return nil, ErrUnsupported
	}
}

func openWAV(r io.ReadSeeker) (*Stream, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("audio: wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audio: wav: %w", err)
	}

	b, err := pcm16(buf, int(dec.BitDepth))
	if err != nil {
		return nil, err
	}

	rate := int(dec.SampleRate)
	return &Stream{
		Reader:     bytes.NewReader(b),
		SampleRate: rate,
		Duration:   frames(int64(len(b)/BytesPerSample), rate),
	}, nil
}

// pcm16 converts integer samples of the given bit depth to interleaved
// 16-bit stereo. Mono is duplicated to both channels, anything beyond the
// first two channels is dropped.
func pcm16(buf *goaudio.IntBuffer, depth int) ([]byte, error) {
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, errors.New("audio: wav: missing format")
	}

	channels := buf.Format.NumChannels
	n := len(buf.Data) / channels
	b := make([]byte, 0, n*BytesPerSample)

	for i := 0; i < n; i++ {
		for c := 0; c < Channels; c++ {
			src := c
			if src >= channels {
				src = channels - 1
			}

			v := buf.Data[i*channels+src]
			switch {
			case depth == 8:
				// 8-bit WAV is unsigned
				v = (v - 0x80) << 8
			case depth > 16:
				v >>= uint(depth - 16)
			case depth < 16:
				v <<= uint(16 - depth)
			}

			b = append(b, byte(v), byte(v>>8))
		}
	}

	return b, nil
}

// Duration returns the play time of the audio file at path.
func Duration(path string) (time.Duration, error) {
	if strings.ToLower(filepath.Ext(path)) == ".wav" {
		f, err := os.Open(path)
		if err != nil {
			return 0, err
		}
		defer f.Close()

		dec := wav.NewDecoder(f)
		if !dec.IsValidFile() {
			return 0, errors.New("audio: wav: not a valid wav file")
		}
		return dec.Duration()
	}

	s, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer s.Close()
	return s.Duration, nil
}
