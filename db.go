package cdg

import (
	"bytes"
	"crypto/sha1"
	"database/sql"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/bodgit/cdg/graphics"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/image/draw"
)

const (
	thumbnailWidth  = graphics.Width / 2
	thumbnailHeight = graphics.Height / 2
)

// Track is a single cataloged CD+G track.
type Track struct {
	ID        int64
	Path      string
	CRC       string
	Records   int64
	Unknown   int64
	Duration  time.Duration
	Audio     string
	AudioTime time.Duration
	Title     string
	Performer string
	Thumbnail int64
}

// TrackDB is the catalog of tracks, stored in SQLite.
type TrackDB struct {
	db *sql.DB
}

// NewTrackDB opens or creates the catalog in file.
func NewTrackDB(file string) (*TrackDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS thumbnail (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, png BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS track (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, crc TEXT NOT NULL, records INTEGER NOT NULL, unknown INTEGER NOT NULL, duration INTEGER NOT NULL, audio TEXT, audio_duration INTEGER, title TEXT, performer TEXT, thumbnail_id INTEGER, FOREIGN KEY(thumbnail_id) REFERENCES thumbnail(id))"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE INDEX IF NOT EXISTS track_crc ON track (crc)"); err != nil {
		return nil, err
	}

	return &TrackDB{
		db: db,
	}, nil
}

// Close closes the catalog.
func (db *TrackDB) Close() error {
	return db.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(i int64) sql.NullInt64 {
	return sql.NullInt64{Int64: i, Valid: i != 0}
}

// thumbnail renders a half size PNG of the screen.
func thumbnail(state *graphics.State) ([]byte, error) {
	src, err := state.Image(1)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, thumbnailWidth, thumbnailHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	b := new(bytes.Buffer)
	if err := png.Encode(b, dst); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// AddThumbnail stores a thumbnail of the screen, returning its id. Identical
// thumbnails are only stored once.
func (db *TrackDB) AddThumbnail(state *graphics.State) (int64, error) {
	b, err := thumbnail(state)
	if err != nil {
		return 0, err
	}
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	// Whichever concurrent insert of the same thumbnail lands first wins
	if _, err := db.db.Exec("INSERT OR IGNORE INTO thumbnail (sha1, png) VALUES (?, ?)", sha, b); err != nil {
		return 0, err
	}

	var id int64
	if err := db.db.QueryRow("SELECT id FROM thumbnail WHERE sha1 = ?", sha).Scan(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// Thumbnail returns the PNG thumbnail with the given id.
func (db *TrackDB) Thumbnail(id int64) ([]byte, error) {
	var b []byte
	switch err := db.db.QueryRow("SELECT png FROM thumbnail WHERE id = ?", id).Scan(&b); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return b, nil
	default:
		return nil, err
	}
}

// AddTrack stores t, replacing any track with the same path, and sets its
// ID.
func (db *TrackDB) AddTrack(t *Track) error {
	result, err := db.db.Exec("INSERT OR REPLACE INTO track (path, crc, records, unknown, duration, audio, audio_duration, title, performer, thumbnail_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		t.Path, t.CRC, t.Records, t.Unknown, int64(t.Duration/time.Millisecond),
		nullString(t.Audio), nullInt64(int64(t.AudioTime/time.Millisecond)),
		nullString(t.Title), nullString(t.Performer), nullInt64(t.Thumbnail))
	if err != nil {
		return err
	}

	t.ID, err = result.LastInsertId()
	return err
}

const trackColumns = "id, path, crc, records, unknown, duration, audio, audio_duration, title, performer, thumbnail_id"

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrack(s scanner) (*Track, error) {
	var (
		t                  Track
		duration           int64
		audio, title, perf sql.NullString
		audioTime, thumb   sql.NullInt64
	)
	if err := s.Scan(&t.ID, &t.Path, &t.CRC, &t.Records, &t.Unknown, &duration, &audio, &audioTime, &title, &perf, &thumb); err != nil {
		return nil, err
	}
	t.Duration = time.Duration(duration) * time.Millisecond
	t.Audio = audio.String
	t.AudioTime = time.Duration(audioTime.Int64) * time.Millisecond
	t.Title = title.String
	t.Performer = perf.String
	t.Thumbnail = thumb.Int64
	return &t, nil
}

// FindTrackByCRC returns the first track with the given CRC, or nil.
func (db *TrackDB) FindTrackByCRC(crc string) (*Track, error) {
	t, err := scanTrack(db.db.QueryRow("SELECT "+trackColumns+" FROM track WHERE crc = ? ORDER BY id LIMIT 1", crc))
	switch err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return t, nil
	default:
		return nil, err
	}
}

// Tracks returns every track ordered by path.
func (db *TrackDB) Tracks() ([]*Track, error) {
	rows, err := db.db.Query("SELECT " + trackColumns + " FROM track ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []*Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
