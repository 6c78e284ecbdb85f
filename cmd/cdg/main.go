package main

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bodgit/cdg"
	"github.com/bodgit/cdg/anim"
	"github.com/bodgit/cdg/graphics"
	"github.com/bodgit/cdg/instruction"
	"github.com/bodgit/cdg/picture"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB    = "cdg.db"
	defaultScale = 3
	defaultFPS   = 30
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, c.App.Name+": ", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func byteOrder(c *cli.Context) (graphics.ByteOrder, error) {
	switch strings.ToLower(c.String("order")) {
	case "rgb":
		return graphics.RGB, nil
	case "bgr":
		return graphics.BGR, nil
	}
	return 0, fmt.Errorf("unknown byte order \"%s\"", c.String("order"))
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().First())
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	stats, _, err := cdg.Analyze(bufio.NewReader(f), newLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Printf("Records:      %d\n", stats.Records)
	fmt.Printf("Duration:     %s\n", stats.Duration())
	fmt.Printf("Graphics:     %d\n", stats.Graphics)
	fmt.Printf("Unknown:      %d\n", stats.Unknown)
	fmt.Printf("Truncated:    %t\n", stats.Truncated)

	codes := make([]instruction.Code, 0, len(stats.Instructions))
	for code := range stats.Instructions {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, code := range codes {
		fmt.Printf("  %2d %-26s %d\n", uint8(code), code, stats.Instructions[code])
	}

	return nil
}

func render(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	order, err := byteOrder(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	p := cdg.NewPlayer(bufio.NewReader(f), newLogger(c))
	if _, err := p.AdvanceTo(c.Duration("at")); err != nil {
		return cli.NewExitError(err, 1)
	}

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer out.Close()

	// PNG output ignores the byte order, anything else is the raw pixmap
	if strings.ToLower(filepath.Ext(c.Args().Get(1))) == ".png" {
		m, err := p.State().Image(c.Int("scale"))
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if err := png.Encode(out, m); err != nil {
			return cli.NewExitError(err, 1)
		}
		return nil
	}

	b, err := p.State().Pixmap(c.Int("scale"), order)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if _, err := out.Write(b); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func export(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	fps := c.Int("fps")
	if fps < 1 {
		return cli.NewExitError("fps must be at least 1", 1)
	}
	scale := c.Int("scale")
	interval := time.Second / time.Duration(fps)

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	p := cdg.NewPlayer(bufio.NewReader(f), newLogger(c))
	e := anim.NewEncoder(interval)

	start, end := c.Duration("start"), c.Duration("end")
	if _, err := p.AdvanceTo(start); err != nil {
		return cli.NewExitError(err, 1)
	}

	for t := start; !p.Done() && (end == 0 || t <= end); t += interval {
		if _, err := p.AdvanceTo(t); err != nil {
			return cli.NewExitError(err, 1)
		}

		if scale == 1 {
			e.Add(p.State().Paletted())
			continue
		}

		m, err := p.State().Image(scale)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		e.Add(m)
	}

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer out.Close()

	if err := e.Encode(out); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func encode(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if err := picture.Encode(w, m); err != nil {
		return cli.NewExitError(err, 1)
	}
	if err := w.Flush(); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func scan(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, err := cdg.New(c.String("db"), newLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()

	if err := m.Scan(c.Args().First()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func list(c *cli.Context) error {
	m, err := cdg.New(c.String("db"), newLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()

	tracks, err := m.DB().Tracks()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, t := range tracks {
		name := t.Title
		if t.Performer != "" {
			name = t.Performer + " - " + name
		}
		fmt.Printf("%s %8s %s (%s)\n", t.CRC, t.Duration.Round(time.Second), name, t.Path)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "cdg"
	app.Usage = "CD+G karaoke graphics utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	scaleFlag := &cli.IntFlag{
		Name:    "scale",
		EnvVars: []string{"CDG_SCALE"},
		Value:   defaultScale,
		Usage:   "integer scale factor",
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"CDG_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "info",
			Usage:     "Summarize the instructions in a CD+G file",
			ArgsUsage: "FILE",
			Action:    info,
		},
		{
			Name:      "render",
			Usage:     "Render a single frame as PNG or a raw pixmap",
			ArgsUsage: "FILE OUTPUT",
			Flags: []cli.Flag{
				scaleFlag,
				&cli.DurationFlag{
					Name:  "at",
					Usage: "position of the frame",
				},
				&cli.StringFlag{
					Name:  "order",
					Value: "rgb",
					Usage: "byte order of raw output, rgb or bgr",
				},
			},
			Action: render,
		},
		{
			Name:      "gif",
			Usage:     "Export a CD+G file as an animated GIF",
			ArgsUsage: "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "integer scale factor",
				},
				&cli.IntFlag{
					Name:  "fps",
					Value: 10,
					Usage: "frames per second",
				},
				&cli.DurationFlag{
					Name:  "start",
					Usage: "position of the first frame",
				},
				&cli.DurationFlag{
					Name:  "end",
					Usage: "position of the last frame, zero for the whole file",
				},
			},
			Action: export,
		},
		{
			Name:      "encode",
			Usage:     "Convert a 300x216 image into a CD+G file",
			ArgsUsage: "IMAGE OUTPUT",
			Action:    encode,
		},
		{
			Name:      "scan",
			Usage:     "Scan filesystem and catalog CD+G files",
			ArgsUsage: "DIRECTORY",
			Action:    scan,
		},
		{
			Name:   "list",
			Usage:  "List cataloged CD+G files",
			Action: list,
		},
		{
			Name:      "play",
			Usage:     "Play a CD+G file with its audio",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				scaleFlag,
				&cli.IntFlag{
					Name:  "fps",
					Value: defaultFPS,
					Usage: "frames per second",
				},
				&cli.BoolFlag{
					Name:  "mute",
					Usage: "play without audio",
				},
			},
			Action: play,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
