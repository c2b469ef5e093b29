package gtfsroutes

import (
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"os"
	"strings"
	"testing"
)

func TestFlipLineStrings(t *testing.T) {
	doc, err := os.ReadFile("./testdata/route-shapes.json")
	require.NoError(t, err)

	flipped, err := FlipLineStrings(doc)
	require.NoError(t, err)

	assert.JSONEq(t, `[[100.34237,5.41426],[100.30951,5.43782],[100.21542,5.45885]]`,
		gjson.GetBytes(flipped, "features.0.geometry.coordinates").Raw)
	assert.Equal(t, "S101_0", gjson.GetBytes(flipped, "features.0.properties.shape_id").String())
	assert.Equal(t, "rapid-penang-shapes", gjson.GetBytes(flipped, "name").String())
}

func TestFlipLineStringsTwiceRestores(t *testing.T) {
	doc, err := os.ReadFile("./testdata/route-shapes.json")
	require.NoError(t, err)

	once, err := FlipLineStrings(doc)
	require.NoError(t, err)
	twice, err := FlipLineStrings(once)
	require.NoError(t, err)

	assert.Equal(t, string(pretty.Ugly(doc)), string(pretty.Ugly(twice)))
}

func TestFlipLineStringsLeavesOtherFeatures(t *testing.T) {
	doc, err := os.ReadFile("./testdata/route-shapes.json")
	require.NoError(t, err)

	flipped, err := FlipLineStrings(doc)
	require.NoError(t, err)

	for _, path := range []string{"features.1", "features.2", "features.3"} {
		assert.Equal(t, gjson.GetBytes(doc, path).Raw, gjson.GetBytes(flipped, path).Raw, path)
	}
}

func TestFlipLineStringsPassThrough(t *testing.T) {
	inputs := map[string]string{
		"no features":          `{"type": "FeatureCollection"}`,
		"empty features":       `{"type": "FeatureCollection", "features": []}`,
		"null geometry":        `{"features": [{"type": "Feature", "geometry": null}]}`,
		"missing coordinates":  `{"features": [{"geometry": {"type": "LineString"}}]}`,
		"multilinestring":      `{"features": [{"geometry": {"type": "MultiLineString", "coordinates": [[[1, 2, 3]]]}}]}`,
		"lowercase linestring": `{"features": [{"geometry": {"type": "linestring", "coordinates": [[1, 2]]}}]}`,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			got, err := FlipLineStrings([]byte(input))
			require.NoError(t, err)
			assert.Equal(t, input, string(got))
		})
	}
}

func TestFlipLineStringsMalformedPair(t *testing.T) {
	inputs := map[string]string{
		"three values": `{"features": [{"geometry": {"type": "LineString", "coordinates": [[1, 2], [1, 2, 3]]}}]}`,
		"one value":    `{"features": [{"geometry": {"type": "LineString", "coordinates": [[1]]}}]}`,
		"not an array": `{"features": [{"geometry": {"type": "LineString", "coordinates": [5]}}]}`,
		"flat":         `{"features": [{"geometry": {"type": "LineString", "coordinates": 5}}]}`,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := FlipLineStrings([]byte(input))
			require.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestFlipLineStringsInvalidJSON(t *testing.T) {
	_, err := FlipLineStrings([]byte(`{"features": [`))
	require.ErrorIs(t, err, ErrParse)
}

func TestFlipFile(t *testing.T) {
	outDir := testTempdir(t)

	err := FlipFile("./testdata/route-shapes.json", outDir+"/output_flipped.json")
	require.NoError(t, err)

	got, err := os.ReadFile(outDir + "/output_flipped.json")
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(got))
	assert.Equal(t, 100.34237, gjson.GetBytes(got, "features.0.geometry.coordinates.0.0").Float())
	assert.Equal(t, 5.41426, gjson.GetBytes(got, "features.0.geometry.coordinates.0.1").Float())
	assert.Contains(t, string(got), "\n  \"features\": [")
}

func TestFlipFileMissingInput(t *testing.T) {
	outDir := testTempdir(t)
	err := FlipFile(outDir+"/input.json", outDir+"/output_flipped.json")
	require.ErrorIs(t, err, ErrFile)
}

func TestFlipLineStringsManyFeatures(t *testing.T) {
	var features []string
	for i := range 50 {
		if i%2 == 0 {
			features = append(features, fmt.Sprintf(
				`{"type": "Feature", "id": %d, "geometry": {"type": "LineString", "coordinates": [[%d.5, 100.%d], [%d.25, 101.%d]]}}`,
				i, i, i, i, i))
		} else {
			features = append(features, fmt.Sprintf(
				`{"type": "Feature", "id": %d, "geometry": {"type": "Point", "coordinates": [%d.5, 100.%d]}}`, i, i, i))
		}
	}
	doc := []byte(`{"type": "FeatureCollection", "features": [` + strings.Join(features, ", ") + `], "bbox": [0, 0, 1, 1]}`)

	flipped, err := FlipLineStrings(doc)
	require.NoError(t, err)

	require.Equal(t, int64(50), gjson.GetBytes(flipped, "features.#").Int())
	assert.Equal(t, "[0, 0, 1, 1]", gjson.GetBytes(flipped, "bbox").Raw)
	for i := range 50 {
		path := fmt.Sprintf("features.%d", i)
		assert.Equal(t, int64(i), gjson.GetBytes(flipped, path+".id").Int())
		if i%2 == 0 {
			expected := fmt.Sprintf("[[100.%d,%d.5],[101.%d,%d.25]]", i, i, i, i)
			assert.Equal(t, expected, gjson.GetBytes(flipped, path+".geometry.coordinates").Raw, path)
		} else {
			assert.Equal(t, gjson.GetBytes(doc, path).Raw, gjson.GetBytes(flipped, path).Raw, path)
		}
	}
}
