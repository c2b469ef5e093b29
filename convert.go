package gtfsroutes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"github.com/tidwall/geojson"
	"log/slog"
	"os"
	"path/filepath"
)

type ConvertOpts struct {
	// GeoJSON text. When set, only directions with a stop inside it are written.
	ClipFeature string
}

// Convert loads the feed at inputPath and writes its routes as JSON to outputPath. The
// output file is only replaced once the whole conversion has succeeded.
func Convert(inputPath string, outputPath string, opts *ConvertOpts) error {
	if inputPath == "" {
		panic("Missing inputPath")
	}
	if outputPath == "" {
		panic("Missing outputPath")
	}

	if opts == nil {
		opts = &ConvertOpts{}
	}

	slog.Info(fmt.Sprintf("Converting %s to %s", inputPath, outputPath))

	var err error
	var clipFeature geojson.Object
	if opts.ClipFeature != "" {
		clipFeature, err = parseClipFeature(opts.ClipFeature)
		if err != nil {
			return err
		}
	}

	feed, err := Load(inputPath)
	if err != nil {
		return err
	}

	routes, err := BuildRoutes(feed)
	if err != nil {
		return err
	}
	if clipFeature != nil {
		routes = ClipRoutes(routes, clipFeature)
	}

	out, err := MarshalRoutes(routes)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(outputPath, out); err != nil {
		return err
	}

	slog.Info(fmt.Sprintf("Wrote %d routes to %s", len(routes), outputPath))
	return nil
}

// MarshalRoutes renders routes with a two-space indent, leaving non-ASCII and HTML
// characters unescaped.
func MarshalRoutes(routes []RouteEntry) ([]byte, error) {
	if routes == nil {
		routes = []RouteEntry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(routes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFileAtomic replaces path with data via a rename, so a failure leaves the previous
// contents in place.
func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFile, err)
	}
	tmpName := f.Name()

	_, err = f.Write(data)
	if err == nil {
		err = f.Chmod(0o644)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrFile, err)
	}
	return nil
}
