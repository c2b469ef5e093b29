package gtfsroutes

import (
	"bytes"
	"fmt"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"log/slog"
	"os"
)

var flipPrettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// FlipLineStrings swaps the two values of every coordinate pair of each LineString
// feature in a GeoJSON document. Everything else in the document, including key order,
// is left as it is. Applying it twice gives back the original coordinates.
func FlipLineStrings(doc []byte) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrParse)
	}

	features := gjson.GetBytes(doc, "features")
	if !features.IsArray() {
		return doc, nil
	}

	// Rebuild the features array once, patching only the LineString features, then
	// splice it back into the document.
	var rebuilt bytes.Buffer
	rebuilt.WriteByte('[')
	changed := false
	for i, feature := range features.Array() {
		if i > 0 {
			rebuilt.WriteByte(',')
		}

		raw, err := flipFeature(feature)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		if raw == nil {
			rebuilt.WriteString(feature.Raw)
			continue
		}
		rebuilt.Write(raw)
		changed = true
	}
	rebuilt.WriteByte(']')

	if !changed {
		return doc, nil
	}
	return sjson.SetRawBytes(doc, "features", rebuilt.Bytes())
}

// flipFeature returns the feature with its coordinates flipped, or nil when the feature
// is not a LineString with coordinates.
func flipFeature(feature gjson.Result) ([]byte, error) {
	geomType := feature.Get("geometry.type")
	if geomType.Type != gjson.String || geomType.Str != "LineString" {
		return nil, nil
	}
	coords := feature.Get("geometry.coordinates")
	if !coords.Exists() {
		return nil, nil
	}

	flipped, err := flipCoordinates(coords)
	if err != nil {
		return nil, err
	}
	return sjson.SetRawBytes([]byte(feature.Raw), "geometry.coordinates", flipped)
}

// flipCoordinates keeps the raw number text so no precision is lost.
func flipCoordinates(coords gjson.Result) ([]byte, error) {
	if !coords.IsArray() {
		return nil, fmt.Errorf("%w: coordinates is not an array", ErrFormat)
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, pair := range coords.Array() {
		values := pair.Array()
		if !pair.IsArray() || len(values) != 2 {
			return nil, fmt.Errorf("%w: coordinate %d is not a pair: %s", ErrFormat, i, pair.Raw)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('[')
		buf.WriteString(values[1].Raw)
		buf.WriteByte(',')
		buf.WriteString(values[0].Raw)
		buf.WriteByte(']')
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// FlipFile applies FlipLineStrings to the GeoJSON file at inputPath and writes the
// pretty-printed result to outputPath.
func FlipFile(inputPath string, outputPath string) error {
	if inputPath == "" {
		panic("Missing inputPath")
	}
	if outputPath == "" {
		panic("Missing outputPath")
	}

	slog.Info(fmt.Sprintf("Flipping LineStrings in %s", inputPath))

	doc, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFile, err)
	}

	flipped, err := FlipLineStrings(doc)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(outputPath, pretty.PrettyOptions(flipped, flipPrettyOptions)); err != nil {
		return err
	}

	slog.Info(fmt.Sprintf("Wrote %s", outputPath))
	return nil
}
