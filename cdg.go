/*
Package cdg is a library for playing and cataloging CD+G karaoke tracks.

A CD+G track is a stream of 24 byte subcode packets, normally stored as a
".cdg" file next to the audio it accompanies. The packets are decoded into
drawing instructions which are applied to a 300 by 216 pixel, 16 color
screen. Decoding is handled by the instruction package, the screen by the
graphics package; this package ties them to a record stream, a clock and a
catalog of tracks.
*/
package cdg

import (
	"io/ioutil"
	"log"
)

// CDG maintains a catalog of CD+G tracks.
type CDG struct {
	db     *TrackDB
	logger *log.Logger
}

// New opens the catalog database in file. A nil logger discards everything.
func New(file string, logger *log.Logger) (*CDG, error) {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	db, err := NewTrackDB(file)
	if err != nil {
		return nil, err
	}

	return &CDG{
		db:     db,
		logger: logger,
	}, nil
}

// DB returns the underlying catalog database.
func (c *CDG) DB() *TrackDB {
	return c.db
}

// Close closes the catalog database.
func (c *CDG) Close() error {
	return c.db.Close()
}

// Lookup returns the cataloged track with the same contents as file, or nil
// if there isn't one.
func (c *CDG) Lookup(file string) (*Track, error) {
	crc, err := crcFile(file)
	if err != nil {
		return nil, err
	}
	return c.db.FindTrackByCRC(crc)
}
