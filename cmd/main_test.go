package main

import (
	"github.com/dzfranklin/gtfsroutes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, &options{
		routesPath: defaultFeedPath,
		flipInput:  defaultFlipInput,
		output:     defaultRoutesOut,
	}, opts)

	opts, err = parseFlags([]string{"--flip"})
	require.NoError(t, err)
	assert.True(t, opts.flip)
	assert.Equal(t, defaultFlipInput, opts.flipInput)
	assert.Equal(t, defaultFlipOutput, opts.output)
}

func TestParseFlagsRoutes(t *testing.T) {
	opts, err := parseFlags([]string{"--routes", "feed.zip", "-o", "out.json", "--clip-feature", "area.json"})
	require.NoError(t, err)
	assert.Equal(t, &options{
		routesPath:      "feed.zip",
		flipInput:       defaultFlipInput,
		output:          "out.json",
		clipFeaturePath: "area.json",
	}, opts)
}

func TestParseFlagsRejectsBothModes(t *testing.T) {
	invalid := map[string][]string{
		"flip and routes":       {"--flip", "--routes", "feed.zip"},
		"flip and clip feature": {"--flip", "--clip-feature", "area.json"},
		"in without flip":       {"--in", "shapes.json"},
		"positional argument":   {"feed.zip"},
		"unknown flag":          {"--import", "feed.zip"},
	}
	for name, args := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := parseFlags(args)
			require.ErrorIs(t, err, errUsage)
		})
	}
}

func TestRunUnreadableClipFeature(t *testing.T) {
	dir := t.TempDir()
	opts := &options{
		routesPath:      "../testdata/sample-feed",
		output:          filepath.Join(dir, "routes.json"),
		clipFeaturePath: filepath.Join(dir, "missing.json"),
	}

	_, err := run(opts)
	require.ErrorIs(t, err, gtfsroutes.ErrFile)
	assert.Contains(t, err.Error(), "missing.json")

	_, err = os.Stat(opts.output)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunConvert(t *testing.T) {
	dir := t.TempDir()
	opts, err := parseFlags([]string{"--routes", "../testdata/sample-feed", "--out", filepath.Join(dir, "routes.json")})
	require.NoError(t, err)

	done, err := run(opts)
	require.NoError(t, err)
	assert.Equal(t, "Routes saved to "+opts.output, done)

	expected, err := os.ReadFile("../testdata/sample-feed.json")
	require.NoError(t, err)
	got, err := os.ReadFile(opts.output)
	require.NoError(t, err)
	assert.Equal(t, string(expected), string(got))
}
