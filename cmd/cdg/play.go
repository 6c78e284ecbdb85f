package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bodgit/cdg"
	"github.com/bodgit/cdg/audio"
	"github.com/bodgit/cdg/graphics"
	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/urfave/cli/v2"
)

// countingReader counts the bytes handed to the audio device
type countingReader struct {
	r   io.Reader
	n   int64
	eof int32
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	atomic.AddInt64(&c.n, int64(n))
	if err == io.EOF {
		atomic.StoreInt32(&c.eof, 1)
	}
	return n, err
}

func (c *countingReader) count() int64 {
	return atomic.LoadInt64(&c.n)
}

func (c *countingReader) drained() bool {
	return atomic.LoadInt32(&c.eof) != 0
}

// sink is the part of *oto.Player the clock needs
type sink interface {
	Play()
	Pause()
	IsPlaying() bool
	BufferedSize() int
}

// audioClock follows the audio actually played rather than wall time. Once
// the audio has run out it carries on from there with a stopwatch, so a
// track with more graphics than audio still plays to the end.
type audioClock struct {
	player sink
	in     *countingReader
	rate   int
	paused bool

	end   time.Duration
	after *cdg.Stopwatch
}

func newAudioClock(s *audio.Stream) (*audioClock, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   s.SampleRate,
		ChannelCount: audio.Channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	in := &countingReader{r: s}
	return &audioClock{
		player: ctx.NewPlayer(in),
		in:     in,
		rate:   s.SampleRate,
	}, nil
}

func (a *audioClock) played() time.Duration {
	played := a.in.count() - int64(a.player.BufferedSize())
	if played < 0 {
		played = 0
	}
	return time.Duration(played/audio.BytesPerSample) * time.Second / time.Duration(a.rate)
}

func (a *audioClock) Elapsed() time.Duration {
	if a.after != nil {
		return a.end + a.after.Elapsed()
	}

	elapsed := a.played()
	if !a.paused && a.in.drained() && !a.player.IsPlaying() {
		a.end = elapsed
		a.after = cdg.NewStopwatch()
	}
	return elapsed
}

func (a *audioClock) Toggle() {
	if a.after != nil {
		a.after.Toggle()
		return
	}

	a.paused = !a.paused
	if a.paused {
		a.player.Pause()
	} else {
		a.player.Play()
	}
}

type toggleClock interface {
	cdg.Clock
	Toggle()
}

type game struct {
	player *cdg.Player
	clock  toggleClock
	scale  int
	pix    []byte
	frame  *ebiten.Image
	logger *log.Logger
}

func (g *game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.clock.Toggle()
	}

	if _, err := g.player.AdvanceTo(g.clock.Elapsed()); err != nil {
		return err
	}

	// Leave the last frame up for a moment
	if g.player.Done() && g.clock.Elapsed() > g.player.Position()+time.Second {
		g.logger.Printf("finished after %s", g.player.Position())
		return ebiten.Termination
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.player.Changed() {
		if err := g.player.Render(g.pix, g.scale, graphics.RGB); err != nil {
			g.logger.Printf("render: %v", err)
			return
		}
		g.frame.WritePixels(g.pix)
	}
	screen.DrawImage(g.frame, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return graphics.Width * g.scale, graphics.Height * g.scale
}

func play(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	scale := c.Int("scale")
	if graphics.PixmapSize(scale) == 0 {
		return cli.NewExitError(graphics.ErrInvalidScale, 1)
	}

	logger := newLogger(c)
	file := c.Args().First()

	f, err := os.Open(file)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	g := &game{
		player: cdg.NewPlayer(bufio.NewReader(f), logger),
		scale:  scale,
		pix:    make([]byte, graphics.PixmapSize(scale)),
		frame:  ebiten.NewImage(graphics.Width*scale, graphics.Height*scale),
		logger: logger,
	}

	path, ok := audio.Find(file)
	switch {
	case c.Bool("mute") || !ok:
		if !ok {
			logger.Printf("no audio found for \"%s\", continuing without audio", file)
		}
		g.clock = cdg.NewStopwatch()
	default:
		s, err := audio.Open(path)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer s.Close()

		a, err := newAudioClock(s)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		a.player.Play()
		g.clock = a
	}

	ebiten.SetWindowSize(graphics.Width*scale, graphics.Height*scale)
	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", c.App.Name, filepath.Base(file)))
	ebiten.SetTPS(c.Int("fps"))

	if err := ebiten.RunGame(g); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}
