package polyline

import (
	"math"
	"testing"
)

func TestDecode_ValidPolyline(t *testing.T) {
	tests := []struct {
		name      string
		encoded   string
		precision uint
		expected  []Coordinate
	}{
		{
			name:      "single point",
			encoded:   "_p~iF~ps|U",
			precision: 5,
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
			},
		},
		{
			name:      "two points",
			encoded:   "_p~iF~ps|U_ulLnnqC",
			precision: 5,
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
			},
		},
		{
			name:      "three points - Google example",
			encoded:   "_p~iF~ps|U_ulLnnqC_mqNvxq`@",
			precision: 5,
			expected: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
				{Lat: 43.252, Lon: -126.453},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Decode(tt.encoded, tt.precision)
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d coordinates, got %d", len(tt.expected), len(result))
			}

			for i, coord := range result {
				if !coordsEqual(coord, tt.expected[i], 0.001) {
					t.Errorf("coordinate %d: expected %+v, got %+v", i, tt.expected[i], coord)
				}
			}
		})
	}
}

func TestDecode_EmptyString(t *testing.T) {
	result := Decode("", 6)
	if result != nil {
		t.Errorf("expected nil for empty string, got %v", result)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		precision uint
		coords    []Coordinate
	}{
		{
			name:      "single point precision 5",
			precision: 5,
			coords: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
			},
		},
		{
			name:      "three points precision 5",
			precision: 5,
			coords: []Coordinate{
				{Lat: 38.5, Lon: -120.2},
				{Lat: 40.7, Lon: -120.95},
				{Lat: 43.252, Lon: -126.453},
			},
		},
		{
			name:      "city route precision 6",
			precision: 6,
			coords: []Coordinate{
				{Lat: 3.139003, Lon: 101.686855},
				{Lat: 3.141592, Lon: 101.693210},
				{Lat: 3.157764, Lon: 101.711861},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.coords, tt.precision)
			if encoded == "" {
				t.Fatal("expected non-empty encoded string")
			}

			decoded := Decode(encoded, tt.precision)
			if len(decoded) != len(tt.coords) {
				t.Fatalf("round-trip: expected %d coordinates, got %d", len(tt.coords), len(decoded))
			}

			tolerance := 1 / math.Pow10(int(tt.precision))
			for i, coord := range decoded {
				if !coordsEqual(coord, tt.coords[i], tolerance) {
					t.Errorf("round-trip coordinate %d: expected %+v, got %+v", i, tt.coords[i], coord)
				}
			}
		})
	}
}

func TestEncode_EmptyCoordinates(t *testing.T) {
	if encoded := Encode(nil, 5); encoded != "" {
		t.Errorf("expected empty string for nil coords, got %q", encoded)
	}
}

func coordsEqual(a, b Coordinate, tolerance float64) bool {
	return math.Abs(a.Lat-b.Lat) <= tolerance && math.Abs(a.Lon-b.Lon) <= tolerance
}
