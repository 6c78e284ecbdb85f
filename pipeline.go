package cdg

import (
	"context"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/cdg/audio"
)

const numWorkers = 10

func (c *CDG) findDirectories(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(dir string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && dir != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a directory
			if !info.Mode().IsDir() {
				return nil
			}

			select {
			case out <- dir:
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		})
	}()
	return out, errc, nil
}

func listDirectory(dir string) (cdgs, cues []string, err error) {
	d, err := os.Open(dir)
	if err != nil {
		return nil, nil, err
	}
	defer d.Close()

	files, err := d.Readdirnames(0)
	if err != nil {
		return nil, nil, err
	}

	for _, file := range files {
		if file[0] == '.' {
			continue
		}
		switch strings.ToLower(filepath.Ext(file)) {
		case ".cdg":
			cdgs = append(cdgs, filepath.Join(dir, file))
		case ".cue":
			cues = append(cues, filepath.Join(dir, file))
		}
	}

	return cdgs, cues, nil
}

// scanFile analyzes a single CD+G file.
func (c *CDG) scanFile(file string, info map[string]cueInfo) (*Track, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	stats, state, err := Analyze(io.TeeReader(f, h), c.logger)
	if err != nil {
		return nil, err
	}

	t := &Track{
		Path:     file,
		CRC:      crcString(h),
		Records:  stats.Records,
		Unknown:  stats.Unknown,
		Duration: stats.Duration(),
		Title:    strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
	}

	if stats.Truncated {
		c.logger.Printf("\"%s\" ends with a truncated record", file)
	}

	if ci, ok := info[file]; ok {
		if ci.title != "" {
			t.Title = ci.title
		}
		t.Performer = ci.performer
		t.Audio = ci.audio
	}

	if t.Audio == "" {
		t.Audio, _ = audio.Find(file)
	}
	if t.Audio != "" {
		d, err := audio.Duration(t.Audio)
		if err != nil {
			c.logger.Printf("Unable to read audio \"%s\": %v\n", t.Audio, err)
			t.Audio = ""
		} else {
			t.AudioTime = d
		}
	} else {
		c.logger.Printf("No audio for \"%s\"\n", file)
	}

	if t.Thumbnail, err = c.db.AddThumbnail(state); err != nil {
		return nil, err
	}

	return t, nil
}

func (c *CDG) directoryWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for dir := range in {
			cdgs, cues, err := listDirectory(dir)
			if err != nil {
				errc <- err
				return
			}

			info := make(map[string]cueInfo)
			for _, file := range cues {
				m, err := parseCue(file)
				if err != nil {
					c.logger.Printf("Unable to parse \"%s\": %v\n", file, err)
					continue
				}
				for k, v := range m {
					info[k] = v
				}
			}

			for _, file := range cdgs {
				select {
				case <-ctx.Done():
					errc <- ctx.Err()
					return
				default:
				}

				t, err := c.scanFile(file, info)
				if err != nil {
					errc <- err
					return
				}

				// Nothing more is written once the scan has been abandoned
				if ctx.Err() != nil {
					errc <- ctx.Err()
					return
				}

				if err := c.db.AddTrack(t); err != nil {
					errc <- err
					return
				}
				c.logger.Printf("Added \"%s\" (%s, %d records)\n", file, t.CRC, t.Records)
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path cataloging every CD+G file found.
func (c *CDG) Scan(path string) error {
	return c.ScanContext(context.Background(), path)
}

// ScanContext is like Scan but stops early, returning ctx.Err(), once ctx
// is done. The first error from any worker also stops the others.
func (c *CDG) ScanContext(ctx context.Context, path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	dirs, errc, err := c.findDirectories(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := c.directoryWorker(ctx, dirs)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
