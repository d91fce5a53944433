// Package seed reads fixed points from a TOML file:
//
//	[[point]]
//	x = 10.5
//	y = 20.0
//
// Coordinates are TOML floats; integer literals are rejected by the decoder.
package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/go-sod/quadtree/internal/geom"
)

var ErrUndecoded = errors.New("undecoded keys in seed file")

type Config struct {
	File string `envconfig:"QT_SEED_FILE"`
}

type file struct {
	Point []struct {
		X *float64 `toml:"x"`
		Y *float64 `toml:"y"`
	} `toml:"point"`
}

func Load(path string) ([]geom.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable open seed file: %w", err)
	}
	defer f.Close()
	points, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return points, nil
}

func Decode(r io.Reader) ([]geom.Point, error) {
	var v file
	md, err := toml.DecodeReader(r, &v)
	if err != nil {
		return nil, fmt.Errorf("unable decode seed: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i := range undecoded {
			keys[i] = undecoded[i].String()
		}
		return nil, fmt.Errorf("%w: %s", ErrUndecoded, strings.Join(keys, ", "))
	}
	points := make([]geom.Point, 0, len(v.Point))
	for i, p := range v.Point {
		if p.X == nil || p.Y == nil {
			return nil, fmt.Errorf("point %d: both x and y are required", i)
		}
		points = append(points, geom.NewPoint(*p.X, *p.Y))
	}
	return points, nil
}
