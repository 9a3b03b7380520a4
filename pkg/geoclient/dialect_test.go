package geoclient

import (
	"reflect"
	"testing"
)

func TestParseDialect(t *testing.T) {
	for _, s := range []string{"geo42", "tile38"} {
		d, err := ParseDialect(s)
		if err != nil {
			t.Fatalf("ParseDialect(%q): %v", s, err)
		}
		if string(d) != s {
			t.Errorf("ParseDialect(%q) = %q", s, d)
		}
	}
	if _, err := ParseDialect("redis"); err == nil {
		t.Fatal("ParseDialect(redis) succeeded, want error")
	}
}

func TestSetArgs(t *testing.T) {
	geom := []byte(`{"type":"Polygon"}`)

	got := DialectGeo42.setArgs("fleet", "item_1", geom)
	want := []any{"SET", "fleet", "item_1", `{"type":"Polygon"}`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("geo42 setArgs = %v, want %v", got, want)
	}

	got = DialectTile38.setArgs("fleet", "item_1", geom)
	want = []any{"SET", "fleet", "item_1", "OBJECT", `{"type":"Polygon"}`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tile38 setArgs = %v, want %v", got, want)
	}
}

func TestIntersectsArgs(t *testing.T) {
	geom := []byte(`{"type":"Polygon"}`)

	got := DialectGeo42.intersectsArgs("fleet", geom, 500)
	want := []any{"INTERSECTS", "fleet", `{"type":"Polygon"}`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("geo42 intersectsArgs = %v, want %v", got, want)
	}

	got = DialectTile38.intersectsArgs("fleet", geom, 500)
	want = []any{"INTERSECTS", "fleet", "LIMIT", 500, "OBJECT", `{"type":"Polygon"}`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tile38 intersectsArgs = %v, want %v", got, want)
	}

	got = DialectTile38.intersectsArgs("fleet", geom, 0)
	want = []any{"INTERSECTS", "fleet", "LIMIT", DefaultIntersectsLimit, "OBJECT", `{"type":"Polygon"}`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tile38 intersectsArgs default limit = %v, want %v", got, want)
	}
}

func TestResultCount(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"geo42 id array", []any{"item_1", "item_2", "item_3"}, 3},
		{"tile38 cursor shape", []any{int64(0), []any{"a", "b"}}, 2},
		{"empty array", []any{}, 0},
		{"scalar", "OK", 0},
		{"nil", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resultCount(tc.in); got != tc.want {
				t.Errorf("resultCount(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
