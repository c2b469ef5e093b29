package gtfsroutes

import (
	"archive/zip"
	"crawshaw.io/sqlite"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const utf8BOM = "\ufeff"

type feedSource interface {
	readTable(name string) (*table, error)
	Close() error
}

// Load reads a feed from a directory of .txt files, a GTFS .zip archive or a .db file
// written by gtfs2sqlite.
func Load(inputPath string) (*Feed, error) {
	if inputPath == "" {
		panic("Missing inputPath")
	}

	slog.Info(fmt.Sprintf("Loading %s", inputPath))

	src, err := openSource(inputPath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	feed := &Feed{}

	routes, err := src.readTable("routes")
	if err != nil {
		return nil, err
	}
	if feed.Routes, err = decodeRoutes(routes); err != nil {
		return nil, err
	}

	trips, err := src.readTable("trips")
	if err != nil {
		return nil, err
	}
	if feed.Trips, err = decodeTrips(trips); err != nil {
		return nil, err
	}

	stopTimes, err := src.readTable("stop_times")
	if err != nil {
		return nil, err
	}
	if feed.StopTimes, err = decodeStopTimes(stopTimes); err != nil {
		return nil, err
	}

	stops, err := src.readTable("stops")
	if err != nil {
		return nil, err
	}
	if feed.Stops, err = decodeStops(stops); err != nil {
		return nil, err
	}

	return feed, nil
}

func openSource(inputPath string) (feedSource, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	if info.IsDir() {
		return dirSource{dir: inputPath}, nil
	}

	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".zip":
		zr, err := zip.OpenReader(inputPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFile, inputPath, err)
		}
		return zipSource{zr: zr}, nil
	case ".db", ".sqlite":
		db, err := sqlite.OpenConn(inputPath, sqlite.SQLITE_OPEN_READONLY)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrFile, inputPath, err)
		}
		return dbSource{db: db}, nil
	default:
		return nil, fmt.Errorf("%w: %s is not a directory, .zip or .db feed", ErrFile, inputPath)
	}
}

type dirSource struct {
	dir string
}

func (s dirSource) readTable(name string) (*table, error) {
	filename := filepath.Join(s.dir, name+".txt")
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFile, err)
	}
	defer func() { _ = f.Close() }()
	return readCSV(f, name)
}

func (s dirSource) Close() error { return nil }

type zipSource struct {
	zr *zip.ReadCloser
}

func (s zipSource) readTable(name string) (*table, error) {
	f, err := s.zr.Open(name + ".txt")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s.txt not found in archive", ErrFile, name)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %s.txt: %w", ErrFile, name, err)
	}
	defer func() { _ = f.Close() }()
	return readCSV(f, name)
}

func (s zipSource) Close() error { return s.zr.Close() }

func readCSV(input io.Reader, name string) (*table, error) {
	r := csv.NewReader(input)
	r.LazyQuotes = true // Bare quotes show up in stop names (inch marks, nicknames)

	// Header

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s.txt has no header row", ErrSchema, name)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %s.txt: %w", ErrParse, name, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	// Rows

	r.FieldsPerRecord = len(header) // Reject rows wider or narrower than the header

	t := &table{name: name, header: header}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%w: %s.txt: %w", ErrParse, name, err)
		}
		t.rows = append(t.rows, row)
	}
	slog.Info(fmt.Sprintf("Read %d rows from %s.txt", len(t.rows), name))

	return t, nil
}
