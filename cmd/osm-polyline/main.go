package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	"flexline/internal/logging"

	"github.com/cockroachdb/errors"
)

func main() {
	var (
		input     string
		output    string
		tagKey    string
		tagValues string
		precision int
		logLevel  string
	)
	flag.StringVar(&input, "input", "", "Path to the .osm.pbf file")
	flag.StringVar(&output, "output", "", "Output JSON lines file (default stdout)")
	flag.StringVar(&tagKey, "tag", "highway", "Tag key a way must carry")
	flag.StringVar(&tagValues, "values", "", "Comma-separated tag values to keep (default any)")
	flag.IntVar(&precision, "precision", 5, "Decimal digits kept for lat/lng (0-15)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level")
	flag.Parse()

	// logs go to stderr so stdout stays clean for the output
	slog.SetDefault(slog.New(logging.NewHandler(os.Stderr, logLevel, "text")))

	if input == "" {
		slog.Error("usage: osm-polyline -input <path-to-osm.pbf> [-tag highway] [-values primary,secondary]")
		os.Exit(2)
	}

	if err := run(input, output, newWayFilter(tagKey, tagValues), precision); err != nil {
		slog.Error("extraction failed", "error", err)
		os.Exit(1)
	}
}

func run(input, output string, filter wayFilter, precision int) error {
	start := time.Now()
	slog.Info("processing file", "path", input, "tag", filter.tagKey)

	f, err := os.Open(input)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer f.Close()

	ways, err := extractWays(f, filter)
	if err != nil {
		return err
	}

	encoded, err := encodeWays(ways, precision)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if output != "" {
		of, err := os.Create(output)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer of.Close()
		out = of
	}

	if err := writeJSONLines(out, encoded); err != nil {
		return err
	}

	slog.Info("processing complete", "ways", len(encoded), "took", time.Since(start))
	return nil
}

func writeJSONLines(w io.Writer, ways []EncodedWay) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, way := range ways {
		if err := enc.Encode(way); err != nil {
			return errors.Wrapf(err, "write way %d", way.ID)
		}
	}
	return errors.Wrap(bw.Flush(), "flush output")
}
