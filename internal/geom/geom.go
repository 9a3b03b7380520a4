// Package geom generates synthetic rectangle geometries inside a fixed
// geographic envelope for benchmark workloads.
package geom

import (
	"fmt"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Rectangle side lengths are sampled uniformly from this range, in
// degrees. An envelope narrower than MinRectSize on either axis cannot
// fit any rectangle and is rejected up front.
const (
	MinRectSize = 0.01
	MaxRectSize = 0.05
)

// Bounds is a geographic envelope.
type Bounds struct {
	MinLng float64 `yaml:"min_lng"`
	MaxLng float64 `yaml:"max_lng"`
	MinLat float64 `yaml:"min_lat"`
	MaxLat float64 `yaml:"max_lat"`
}

// Singapore is the default benchmark envelope.
func Singapore() Bounds {
	return Bounds{MinLng: 103.6, MaxLng: 104.0, MinLat: 1.2, MaxLat: 1.5}
}

// Validate reports whether the envelope can fit the minimum rectangle.
func (b Bounds) Validate() error {
	if b.MaxLng-b.MinLng < MinRectSize {
		return fmt.Errorf("geom: envelope lng span %.4f is below the minimum rectangle size %.2f", b.MaxLng-b.MinLng, MinRectSize)
	}
	if b.MaxLat-b.MinLat < MinRectSize {
		return fmt.Errorf("geom: envelope lat span %.4f is below the minimum rectangle size %.2f", b.MaxLat-b.MinLat, MinRectSize)
	}
	return nil
}

// Item is one synthetic object to be inserted into a collection.
type Item struct {
	ID      string
	Polygon orb.Polygon
}

// Generator produces random axis-aligned rectangles inside one envelope.
// It is not safe for concurrent use; workloads are generated once, up
// front, on a single goroutine.
type Generator struct {
	bounds Bounds
	rng    *rand.Rand
}

// NewGenerator validates the envelope and seeds the random source.
func NewGenerator(bounds Bounds, seed int64) (*Generator, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return &Generator{bounds: bounds, rng: rand.New(rand.NewSource(seed))}, nil
}

// Rect returns a closed 5-point rectangle ring lying entirely inside
// the envelope. Side lengths are uniform in [MinRectSize, MaxRectSize],
// capped by the envelope span so the origin always has room.
func (g *Generator) Rect() orb.Polygon {
	width := g.sideLength(g.bounds.MaxLng - g.bounds.MinLng)
	height := g.sideLength(g.bounds.MaxLat - g.bounds.MinLat)

	minLng := g.bounds.MinLng + g.rng.Float64()*(g.bounds.MaxLng-g.bounds.MinLng-width)
	minLat := g.bounds.MinLat + g.rng.Float64()*(g.bounds.MaxLat-g.bounds.MinLat-height)
	maxLng := minLng + width
	maxLat := minLat + height

	return orb.Polygon{orb.Ring{
		{minLng, minLat},
		{maxLng, minLat},
		{maxLng, maxLat},
		{minLng, maxLat},
		{minLng, minLat},
	}}
}

func (g *Generator) sideLength(span float64) float64 {
	max := MaxRectSize
	if span < max {
		max = span
	}
	return MinRectSize + g.rng.Float64()*(max-MinRectSize)
}

// Items returns n objects with ids item_0 .. item_n-1.
func (g *Generator) Items(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ID: fmt.Sprintf("item_%d", i), Polygon: g.Rect()}
	}
	return items
}

// Rects returns n query rectangles.
func (g *Generator) Rects(n int) []orb.Polygon {
	rects := make([]orb.Polygon, n)
	for i := range rects {
		rects[i] = g.Rect()
	}
	return rects
}

// MarshalGeoJSON encodes a polygon as a GeoJSON geometry document.
func MarshalGeoJSON(p orb.Polygon) ([]byte, error) {
	return geojson.NewGeometry(p).MarshalJSON()
}
