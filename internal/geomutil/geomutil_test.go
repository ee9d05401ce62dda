package geomutil

import (
	"reflect"
	"testing"

	"github.com/paulmach/orb"
)

func TestConvexHullRing(t *testing.T) {
	tests := []struct {
		name   string
		points []orb.Point
		want   []orb.Point
	}{
		{
			name: "rectangle with interior point",
			points: []orb.Point{
				{6, 50}, {8, 50}, {8, 52}, {6, 52}, {7, 51},
			},
			want: []orb.Point{
				{6, 50}, {8, 50}, {8, 52}, {6, 52}, {6, 50},
			},
		},
		{
			name: "triangle",
			points: []orb.Point{
				{9, 50}, {10, 51}, {9, 51},
			},
			want: []orb.Point{
				{9, 50}, {10, 51}, {9, 51}, {9, 50},
			},
		},
		{
			name: "duplicates collapse",
			points: []orb.Point{
				{6, 50}, {6, 50}, {8, 50}, {8, 52}, {8, 52}, {6, 52},
			},
			want: []orb.Point{
				{6, 50}, {8, 50}, {8, 52}, {6, 52}, {6, 50},
			},
		},
		{
			name:   "collinear points reduce to extremes",
			points: []orb.Point{{0, 0}, {1, 1}, {2, 2}},
			want:   []orb.Point{{0, 0}, {2, 2}},
		},
		{
			name:   "two points",
			points: []orb.Point{{3, 1}, {1, 2}},
			want:   []orb.Point{{1, 2}, {3, 1}},
		},
		{
			name:   "single point",
			points: []orb.Point{{5, 5}},
			want:   []orb.Point{{5, 5}},
		},
		{
			name:   "empty input",
			points: nil,
			want:   []orb.Point{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvexHullRing(tt.points)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ConvexHullRing(%v) = %v, want %v", tt.points, got, tt.want)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 orb.Point
		want           bool
	}{
		{
			name: "proper crossing",
			a1:   orb.Point{0, 0}, a2: orb.Point{2, 2},
			b1: orb.Point{0, 2}, b2: orb.Point{2, 0},
			want: true,
		},
		{
			name: "endpoint touch",
			a1:   orb.Point{0, 0}, a2: orb.Point{1, 1},
			b1: orb.Point{1, 1}, b2: orb.Point{2, 0},
			want: true,
		},
		{
			name: "collinear overlap",
			a1:   orb.Point{0, 0}, a2: orb.Point{2, 0},
			b1: orb.Point{1, 0}, b2: orb.Point{3, 0},
			want: true,
		},
		{
			name: "collinear disjoint",
			a1:   orb.Point{0, 0}, a2: orb.Point{1, 0},
			b1: orb.Point{2, 0}, b2: orb.Point{3, 0},
			want: false,
		},
		{
			name: "parallel",
			a1:   orb.Point{0, 0}, a2: orb.Point{2, 0},
			b1: orb.Point{0, 1}, b2: orb.Point{2, 1},
			want: false,
		},
		{
			name: "close but apart",
			a1:   orb.Point{1, 1}, a2: orb.Point{3, 3},
			b1: orb.Point{2, 0}, b2: orb.Point{3, 2},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentsIntersect(tt.a1, tt.a2, tt.b1, tt.b2)
			if got != tt.want {
				t.Errorf("SegmentsIntersect(%v, %v, %v, %v) = %v, want %v",
					tt.a1, tt.a2, tt.b1, tt.b2, got, tt.want)
			}
		})
	}
}

func TestLinesIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b orb.LineString
		want bool
	}{
		{
			name: "crossing polylines",
			a:    orb.LineString{{0, 0}, {1, 0}, {2, 2}},
			b:    orb.LineString{{0, 2}, {2, 0}},
			want: true,
		},
		{
			name: "disjoint polylines",
			a:    orb.LineString{{0, 0}, {1, 0}},
			b:    orb.LineString{{5, 5}, {6, 5}},
			want: false,
		},
		{
			name: "point on line",
			a:    orb.LineString{{1, 0}},
			b:    orb.LineString{{0, 0}, {2, 0}},
			want: true,
		},
		{
			name: "point off line",
			a:    orb.LineString{{1, 1}},
			b:    orb.LineString{{0, 0}, {2, 0}},
			want: false,
		},
		{
			name: "empty operand",
			a:    orb.LineString{},
			b:    orb.LineString{{0, 0}, {2, 0}},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinesIntersect(tt.a, tt.b); got != tt.want {
				t.Errorf("LinesIntersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := LinesIntersect(tt.b, tt.a); got != tt.want {
				t.Errorf("LinesIntersect(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestCentroid(t *testing.T) {
	points := []orb.Point{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	got, ok := Centroid(points)
	if !ok {
		t.Fatal("expected a centroid")
	}
	if got != (orb.Point{1, 1}) {
		t.Errorf("Centroid = %v, want (1, 1)", got)
	}

	if _, ok := Centroid(nil); ok {
		t.Error("expected no centroid for empty input")
	}
}

func TestMidpoint(t *testing.T) {
	// The centroid of the set is around x=4.67; the representative point
	// must be an actual member, here (4, 0).
	points := []orb.Point{{0, 0}, {10, 0}, {4, 0}}
	got, ok := Midpoint(points)
	if !ok {
		t.Fatal("expected a midpoint")
	}
	if got != (orb.Point{4, 0}) {
		t.Errorf("Midpoint = %v, want (4, 0)", got)
	}

	if _, ok := Midpoint(nil); ok {
		t.Error("expected no midpoint for empty input")
	}
}
