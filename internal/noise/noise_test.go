package noise

import (
	"errors"
	"math"
	"testing"
)

func defaultParams(kind Kind) Params {
	return Params{Octaves: 5, Persistence: 0.5, Lacunarity: 2.0, Seed: 7, Kind: kind}
}

func TestSampleDeterministic(t *testing.T) {
	for _, kind := range []Kind{KindPerlin, KindSimplex} {
		t.Run(string(kind), func(t *testing.T) {
			s1, err := New(defaultParams(kind))
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			s2, err := New(defaultParams(kind))
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			for i := 0; i < 200; i++ {
				x := float64(i) * 0.13
				y := float64(i) * 0.29
				a := s1.Sample(x, y)
				b := s2.Sample(x, y)
				if math.Float64bits(a) != math.Float64bits(b) {
					t.Fatalf("Sample(%f, %f) not deterministic: %v vs %v", x, y, a, b)
				}
				if again := s1.Sample(x, y); math.Float64bits(again) != math.Float64bits(a) {
					t.Fatalf("repeated Sample(%f, %f) changed: %v vs %v", x, y, a, again)
				}
			}
		})
	}
}

func TestSampleRange(t *testing.T) {
	for _, kind := range []Kind{KindPerlin, KindSimplex} {
		s, err := New(defaultParams(kind))
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		for i := 0; i < 5000; i++ {
			x := float64(i)*0.37 - 300
			y := float64(i)*0.53 - 300
			v := s.Sample(x, y)
			if math.IsNaN(v) || v < -1 || v > 1 {
				t.Fatalf("%s Sample(%f, %f) = %f, out of [-1,1]", kind, x, y, v)
			}
		}
	}
}

func TestSampleSmooth(t *testing.T) {
	s, err := New(Params{Octaves: 1, Persistence: 0.5, Lacunarity: 2, Seed: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Coherent noise changes little between nearby points.
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		a := s.Sample(x, 0.5)
		b := s.Sample(x+0.001, 0.5)
		if math.Abs(a-b) > 0.05 {
			t.Fatalf("noise jumped between (%f) and (%f): %f vs %f", x, x+0.001, a, b)
		}
	}
}

func TestDifferentSeedsDifferentNoise(t *testing.T) {
	p1 := defaultParams(KindPerlin)
	p2 := p1
	p2.Seed = p1.Seed + 1

	s1, _ := New(p1)
	s2, _ := New(p2)

	different := false
	for i := 0; i < 100; i++ {
		x := float64(i)*0.1 + 0.05
		y := float64(i)*0.2 + 0.05
		if s1.Sample(x, y) != s2.Sample(x, y) {
			different = true
			break
		}
	}
	if !different {
		t.Error("different seeds should produce different noise")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"defaults", defaultParams(KindPerlin), false},
		{"empty kind means perlin", Params{Octaves: 1, Persistence: 1, Lacunarity: 1}, false},
		{"zero octaves", Params{Octaves: 0, Persistence: 0.5, Lacunarity: 2}, true},
		{"zero persistence", Params{Octaves: 1, Persistence: 0, Lacunarity: 2}, true},
		{"persistence above one", Params{Octaves: 1, Persistence: 1.5, Lacunarity: 2}, true},
		{"lacunarity below one", Params{Octaves: 1, Persistence: 0.5, Lacunarity: 0.5}, true},
		{"nan lacunarity", Params{Octaves: 1, Persistence: 0.5, Lacunarity: math.NaN()}, true},
		{"unknown kind", Params{Octaves: 1, Persistence: 0.5, Lacunarity: 2, Kind: "worley"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	if _, err := New(Params{}); err == nil {
		t.Error("expected error for zero params, got nil")
	}
}

func TestAmplitudeSum(t *testing.T) {
	if got := amplitudeSum(1, 0.5); got != 1 {
		t.Errorf("amplitudeSum(1, 0.5) = %v, want 1", got)
	}
	if got := amplitudeSum(3, 0.5); got != 1.75 {
		t.Errorf("amplitudeSum(3, 0.5) = %v, want 1.75", got)
	}
}
