package geom_test

import (
	"encoding/json"
	"testing"

	"github.com/user/geobench/internal/geom"
)

func TestNewGeneratorRejectsTooSmallEnvelope(t *testing.T) {
	cases := []struct {
		name   string
		bounds geom.Bounds
	}{
		{"narrow lng", geom.Bounds{MinLng: 103.6, MaxLng: 103.605, MinLat: 1.2, MaxLat: 1.5}},
		{"narrow lat", geom.Bounds{MinLng: 103.6, MaxLng: 104.0, MinLat: 1.2, MaxLat: 1.205}},
		{"inverted", geom.Bounds{MinLng: 104.0, MaxLng: 103.6, MinLat: 1.2, MaxLat: 1.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := geom.NewGenerator(tc.bounds, 1); err == nil {
				t.Fatalf("NewGenerator(%+v) succeeded, want error", tc.bounds)
			}
		})
	}
}

func TestRectInvariants(t *testing.T) {
	bounds := geom.Singapore()
	g, err := geom.NewGenerator(bounds, 42)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}

	for i := 0; i < 10000; i++ {
		p := g.Rect()
		if len(p) != 1 {
			t.Fatalf("draw %d: polygon has %d rings, want 1", i, len(p))
		}
		ring := p[0]
		if len(ring) != 5 {
			t.Fatalf("draw %d: ring has %d points, want 5", i, len(ring))
		}
		if ring[0] != ring[4] {
			t.Fatalf("draw %d: ring not closed: %v != %v", i, ring[0], ring[4])
		}

		minLng, minLat := ring[0][0], ring[0][1]
		maxLng, maxLat := ring[2][0], ring[2][1]
		if !(minLng < maxLng) || !(minLat < maxLat) {
			t.Fatalf("draw %d: degenerate rectangle [%v %v %v %v]", i, minLng, minLat, maxLng, maxLat)
		}
		if minLng < bounds.MinLng || maxLng > bounds.MaxLng || minLat < bounds.MinLat || maxLat > bounds.MaxLat {
			t.Fatalf("draw %d: rectangle [%v %v %v %v] escapes envelope", i, minLng, minLat, maxLng, maxLat)
		}

		width := maxLng - minLng
		height := maxLat - minLat
		if width < geom.MinRectSize || width > geom.MaxRectSize {
			t.Fatalf("draw %d: width %v out of [%v, %v]", i, width, geom.MinRectSize, geom.MaxRectSize)
		}
		if height < geom.MinRectSize || height > geom.MaxRectSize {
			t.Fatalf("draw %d: height %v out of [%v, %v]", i, height, geom.MinRectSize, geom.MaxRectSize)
		}
	}
}

func TestRectFitsTightEnvelope(t *testing.T) {
	// Span smaller than MaxRectSize caps the side length instead of
	// producing rectangles that escape.
	bounds := geom.Bounds{MinLng: 103.6, MaxLng: 103.62, MinLat: 1.2, MaxLat: 1.22}
	g, err := geom.NewGenerator(bounds, 7)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	for i := 0; i < 1000; i++ {
		ring := g.Rect()[0]
		if ring[2][0] > bounds.MaxLng || ring[2][1] > bounds.MaxLat {
			t.Fatalf("draw %d: rectangle escapes tight envelope: %v", i, ring)
		}
	}
}

func TestItemsAssignsSequentialIDs(t *testing.T) {
	g, err := geom.NewGenerator(geom.Singapore(), 1)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	items := g.Items(3)
	if len(items) != 3 {
		t.Fatalf("Items(3) returned %d items", len(items))
	}
	for i, want := range []string{"item_0", "item_1", "item_2"} {
		if items[i].ID != want {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, want)
		}
	}
}

func TestMarshalGeoJSON(t *testing.T) {
	g, err := geom.NewGenerator(geom.Singapore(), 1)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	raw, err := geom.MarshalGeoJSON(g.Rect())
	if err != nil {
		t.Fatalf("MarshalGeoJSON: %v", err)
	}
	var doc struct {
		Type        string        `json:"type"`
		Coordinates [][][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Type != "Polygon" {
		t.Errorf("type = %q, want Polygon", doc.Type)
	}
	if len(doc.Coordinates) != 1 || len(doc.Coordinates[0]) != 5 {
		t.Errorf("unexpected coordinate shape: %v", doc.Coordinates)
	}
}
