package cdg

import (
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vchimishuk/chub/cue"
)

// cueInfo is what a cue sheet tells us about a track.
type cueInfo struct {
	title     string
	performer string
	audio     string
}

// parseCue maps the path of each CD+G file referenced, by base name, from
// the cue sheet to its metadata. Karaoke rips list the audio files, the
// graphics sit next to them with a ".cdg" extension.
func parseCue(file string) (map[string]cueInfo, error) {
	sheet, err := cue.ParseFile(file)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(file)
	m := make(map[string]cueInfo)

	for _, f := range sheet.Files {
		var title, performer string
		var found bool
		for _, track := range f.Tracks {
			if track.DataType == cue.DataTypeAudio {
				title, performer, found = track.Title, track.Performer, true
				break
			}
		}
		if !found {
			continue
		}

		audio := filepath.Join(dir, filepath.Clean(strings.ReplaceAll(f.Name, "\\", string(os.PathSeparator))))
		cdg := strings.TrimSuffix(audio, filepath.Ext(audio)) + ".cdg"

		info := cueInfo{
			title:     title,
			performer: performer,
			audio:     audio,
		}
		if info.performer == "" {
			info.performer = sheet.Performer
		}
		if info.title == "" {
			info.title = sheet.Title
		}

		m[cdg] = info
	}

	return m, nil
}

func crcString(h hash.Hash32) string {
	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil))
}

func crcFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err = io.Copy(h, f); err != nil {
		return "", err
	}

	return crcString(h), nil
}
