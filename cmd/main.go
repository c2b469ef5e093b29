package main

import (
	"errors"
	"fmt"
	"github.com/dzfranklin/gtfsroutes"
	"github.com/spf13/pflag"
	"os"
)

const (
	defaultFeedPath   = "."
	defaultRoutesOut  = "routes_with_directions.json"
	defaultFlipInput  = "input.json"
	defaultFlipOutput = "output_flipped.json"
)

var errUsage = errors.New("usage")

type options struct {
	flip            bool
	routesPath      string
	flipInput       string
	output          string
	clipFeaturePath string
}

func usageAndDie() {
	fmt.Println("Example usage:\n" +
		"    gtfsroutes                       (converts the feed in the current directory)\n" +
		"    gtfsroutes --routes <feed.zip|feed.db|dir> [--clip-feature <feature_geojson.json>]\n" +
		"    gtfsroutes --flip [--in <input.json>]")
	os.Exit(1)
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		usageAndDie()
	}

	done, err := run(opts)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	} else {
		fmt.Println(done)
	}
}

func parseFlags(args []string) (*options, error) {
	flags := pflag.NewFlagSet("gtfsroutes", pflag.ContinueOnError)
	opts := &options{}

	flags.StringVarP(&opts.routesPath, "routes", "r", defaultFeedPath, "Convert the GTFS feed at this path (directory, .zip or .db)")
	flags.BoolVar(&opts.flip, "flip", false, "Flip LineString coordinates in a GeoJSON file instead of converting a feed")

	flags.StringVarP(&opts.flipInput, "in", "i", defaultFlipInput, "With --flip, the GeoJSON file to read")
	flags.StringVarP(&opts.output, "out", "o", "", "Path to write output to")
	flags.StringVar(&opts.clipFeaturePath, "clip-feature", "", "Only keep directions with a stop inside the GeoJSON feature in the file specified")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", errUsage, err)
	}

	if flags.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %s", errUsage, flags.Arg(0))
	}
	if opts.flip && (flags.Changed("routes") || opts.clipFeaturePath != "") {
		return nil, fmt.Errorf("%w: --flip cannot be combined with --routes or --clip-feature", errUsage)
	}
	if !opts.flip && flags.Changed("in") {
		return nil, fmt.Errorf("%w: --in is only used with --flip", errUsage)
	}

	if opts.output == "" {
		if opts.flip {
			opts.output = defaultFlipOutput
		} else {
			opts.output = defaultRoutesOut
		}
	}
	return opts, nil
}

// run returns the line to print on success.
func run(opts *options) (string, error) {
	if opts.flip {
		if err := gtfsroutes.FlipFile(opts.flipInput, opts.output); err != nil {
			return "", err
		}
		return fmt.Sprintf("Flipped LineString saved to %s", opts.output), nil
	}

	convertOpts := &gtfsroutes.ConvertOpts{}
	if opts.clipFeaturePath != "" {
		feature, err := os.ReadFile(opts.clipFeaturePath)
		if err != nil {
			return "", fmt.Errorf("%w: clip feature: %w", gtfsroutes.ErrFile, err)
		}
		convertOpts.ClipFeature = string(feature)
	}

	if err := gtfsroutes.Convert(opts.routesPath, opts.output, convertOpts); err != nil {
		return "", err
	}
	return fmt.Sprintf("Routes saved to %s", opts.output), nil
}
