package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"flexline/internal/polyline"

	"github.com/cockroachdb/errors"
)

const usage = `Usage:
  polyline encode [-precision 5] [-third-dimension altitude] [-third-dimension-precision 0] < coords.json
  polyline decode <encoded>
  polyline dimension <encoded>

encode reads a JSON array of [lat, lng] or [lat, lng, z] arrays from stdin.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string, stdin io.Reader, stdout io.Writer) error {
	switch cmd {
	case "encode":
		return runEncode(args, stdin, stdout)
	case "decode":
		return runDecode(args, stdout)
	case "dimension":
		return runDimension(args, stdout)
	}
	return errors.Newf("unknown command %q\n%s", cmd, usage)
}

func runEncode(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	precision := fs.Int("precision", 5, "Decimal digits kept for lat/lng (0-15)")
	thirdDim := fs.String("third-dimension", "absent", "absent, level, altitude, elevation, custom1 or custom2")
	thirdDimPrecision := fs.Int("third-dimension-precision", 0, "Decimal digits kept for the third dimension (0-15)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dim, err := polyline.ParseThirdDimension(*thirdDim)
	if err != nil {
		return err
	}

	var raw [][]float64
	if err := json.NewDecoder(stdin).Decode(&raw); err != nil {
		return errors.Wrap(err, "read coordinates")
	}
	coords := make([]polyline.LatLngZ, len(raw))
	for i, c := range raw {
		switch len(c) {
		case 2:
			coords[i] = polyline.LatLng(c[0], c[1])
		case 3:
			coords[i] = polyline.LatLngZ{Lat: c[0], Lng: c[1], Z: c[2]}
		default:
			return errors.Newf("coordinate %d has %d values, want 2 or 3", i, len(c))
		}
	}

	encoded, err := polyline.Encode(coords, *precision, dim, *thirdDimPrecision)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, encoded)
	return err
}

func runDecode(args []string, stdout io.Writer) error {
	encoded, err := singleArg(args)
	if err != nil {
		return err
	}

	h, coords, err := polyline.DecodeWithHeader(encoded)
	if err != nil {
		return err
	}
	for i, c := range coords {
		line := fmt.Sprintf("%d\t%v\t%v", i, c.Lat, c.Lng)
		if h.ThirdDimension != polyline.Absent {
			line += fmt.Sprintf("\t%v", c.Z)
		}
		if _, err := fmt.Fprintln(stdout, line); err != nil {
			return err
		}
	}
	return nil
}

func runDimension(args []string, stdout io.Writer) error {
	encoded, err := singleArg(args)
	if err != nil {
		return err
	}

	h, err := polyline.DecodeHeader(encoded)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s precision=%d third_dimension_precision=%d\n",
		strings.ToLower(h.ThirdDimension.String()), h.Precision, h.ThirdDimensionPrecision)
	return err
}

func singleArg(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.Newf("expected one encoded polyline, got %d arguments", len(args))
	}
	return args[0], nil
}
