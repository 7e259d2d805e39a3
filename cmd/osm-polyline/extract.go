package main

import (
	"io"
	"log/slog"
	"runtime"
	"strings"

	"flexline/internal/polyline"

	"github.com/cockroachdb/errors"
	"github.com/qedus/osmpbf"
	"github.com/sourcegraph/conc/iter"
)

// WayLine is an OSM way resolved to coordinates
type WayLine struct {
	ID     int64
	Name   string
	Type   string
	Points []polyline.LatLngZ
}

// EncodedWay is one line of the extractor output
type EncodedWay struct {
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type"`
	Points   int    `json:"points"`
	Polyline string `json:"polyline"`
}

// wayFilter selects ways carrying tagKey, optionally restricted to values
type wayFilter struct {
	tagKey string
	values map[string]bool
}

func newWayFilter(tagKey, values string) wayFilter {
	f := wayFilter{tagKey: tagKey}
	if values == "" {
		return f
	}
	f.values = make(map[string]bool)
	for _, v := range strings.Split(values, ",") {
		if v = strings.TrimSpace(v); v != "" {
			f.values[v] = true
		}
	}
	return f
}

func (f wayFilter) match(tags map[string]string) (string, bool) {
	v, ok := tags[f.tagKey]
	if !ok {
		return "", false
	}
	if f.values != nil && !f.values[v] {
		return "", false
	}
	return v, true
}

// extractWays reads a PBF stream once. Nodes precede ways in PBF files, so
// node coordinates are cached as they stream by and resolved when ways arrive.
func extractWays(r io.Reader, filter wayFilter) ([]WayLine, error) {
	decoder := osmpbf.NewDecoder(r)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)

	numProcs := runtime.GOMAXPROCS(-1)
	if err := decoder.Start(numProcs); err != nil {
		return nil, errors.Wrap(err, "start pbf decoder")
	}
	slog.Info("decoder started", "procs", numProcs)

	nodes := make(map[int64][2]float64)
	var ways []WayLine
	skipped := 0

	for {
		object, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "decode pbf")
		}

		switch v := object.(type) {
		case *osmpbf.Node:
			nodes[v.ID] = [2]float64{v.Lat, v.Lon}
		case *osmpbf.Way:
			wayType, ok := filter.match(v.Tags)
			if !ok {
				continue
			}
			line, ok := resolveWay(v, nodes)
			if !ok {
				skipped++
				continue
			}
			line.Type = wayType
			ways = append(ways, line)
		}
	}

	slog.Info("ways collected", "nodes", len(nodes), "ways", len(ways), "skipped", skipped)
	return ways, nil
}

// resolveWay fails when any referenced node is outside the extract
func resolveWay(w *osmpbf.Way, nodes map[int64][2]float64) (WayLine, bool) {
	if len(w.NodeIDs) == 0 {
		return WayLine{}, false
	}
	points := make([]polyline.LatLngZ, len(w.NodeIDs))
	for i, id := range w.NodeIDs {
		n, ok := nodes[id]
		if !ok {
			return WayLine{}, false
		}
		points[i] = polyline.LatLng(n[0], n[1])
	}
	return WayLine{ID: w.ID, Name: w.Tags["name"], Points: points}, true
}

// encodeWays encodes every way in parallel, keeping input order
func encodeWays(ways []WayLine, precision int) ([]EncodedWay, error) {
	return iter.MapErr(ways, func(w *WayLine) (EncodedWay, error) {
		encoded, err := polyline.Encode(w.Points, precision, polyline.Absent, 0)
		if err != nil {
			return EncodedWay{}, errors.Wrapf(err, "way %d", w.ID)
		}
		return EncodedWay{
			ID:       w.ID,
			Name:     w.Name,
			Type:     w.Type,
			Points:   len(w.Points),
			Polyline: encoded,
		}, nil
	})
}
