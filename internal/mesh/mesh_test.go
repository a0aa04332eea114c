package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lowremag/internal/field"
)

func TestNewGrid_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		nx, ny, nz int
		dx         float64
	}{
		{"zero cells", 0, 1, 1, 1},
		{"negative cells", 2, -1, 1, 1},
		{"zero spacing", 2, 2, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.nx, tt.ny, tt.nz, tt.dx, 1, 1)
			if !errors.Is(err, ErrGridSize) {
				t.Errorf("expected ErrGridSize, got %v", err)
			}
		})
	}
}

func TestGridIndexing(t *testing.T) {
	g, err := NewGrid(4, 3, 2, 0.1, 0.2, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	if g.NumCells() != 24 {
		t.Errorf("expected 24 cells, got %d", g.NumCells())
	}
	if math.Abs(g.CellVolume(0)-0.01) > 1e-15 {
		t.Errorf("expected cell volume 0.01, got %g", g.CellVolume(0))
	}

	c := g.Centre(g.Index(3, 2, 1))
	if math.Abs(c.X-0.35) > 1e-12 || math.Abs(c.Y-0.5) > 1e-12 || math.Abs(c.Z-0.75) > 1e-12 {
		t.Errorf("unexpected centre %v", c)
	}
}

func TestGradientLinearField(t *testing.T) {
	g, _ := NewGrid(5, 4, 3, 0.1, 0.2, 0.3)
	n := g.NumCells()

	s := field.NewScalar(n)
	for c := 0; c < n; c++ {
		p := g.Centre(c)
		s[c] = 2*p.X - 3*p.Y + 0.5*p.Z + 7
	}

	out := field.NewVector(n)
	if err := g.Gradient(s, out); err != nil {
		t.Fatal(err)
	}

	for c, v := range out {
		if math.Abs(v.X-2) > 1e-9 || math.Abs(v.Y+3) > 1e-9 || math.Abs(v.Z-0.5) > 1e-9 {
			t.Fatalf("cell %d: expected (2,-3,0.5), got %v", c, v)
		}
	}
}

func TestGradientSingleCellDirection(t *testing.T) {
	g, _ := NewGrid(3, 1, 1, 1, 1, 1)
	out := field.NewVector(3)
	if err := g.Gradient(field.Scalar{1, 2, 4}, out); err != nil {
		t.Fatal(err)
	}

	want := []float64{1, 1.5, 2}
	for i, v := range out {
		if math.Abs(v.X-want[i]) > 1e-12 || v.Y != 0 || v.Z != 0 {
			t.Errorf("cell %d: expected (%g,0,0), got %v", i, want[i], v)
		}
	}
}

func TestGradientSizeMismatch(t *testing.T) {
	g, _ := NewGrid(3, 1, 1, 1, 1, 1)
	if err := g.Gradient(field.Scalar{1, 2}, field.NewVector(3)); err == nil {
		t.Error("expected error for short input field")
	}
}
