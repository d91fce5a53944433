package index

import (
	"github.com/go-sod/quadtree/internal/geom"
)

type Config struct {
	X        float64 `envconfig:"QT_INDEX_X" default:"0"`
	Y        float64 `envconfig:"QT_INDEX_Y" default:"0"`
	Width    float64 `envconfig:"QT_INDEX_WIDTH" default:"800"`
	Height   float64 `envconfig:"QT_INDEX_HEIGHT" default:"600"`
	Capacity int     `envconfig:"QT_INDEX_CAPACITY" default:"4"`
	MaxDepth int     `envconfig:"QT_INDEX_MAX_DEPTH" default:"48"`
}

func (c Config) Bounds() geom.Rect {
	return geom.NewRect(c.X, c.Y, c.Width, c.Height)
}
