// Package mesh describes the computational mesh seen by the MHD models.
//
// Models only ever address cells through their index; the mesh owns index
// validity, geometry and the discrete gradient operator.
package mesh

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/lowremag/internal/field"
)

var ErrGridSize = errors.New("mesh: grid dimensions must be positive")

type Mesh interface {
	NumCells() int
	CellVolume(cell int) float64
	// Gradient writes the cell-centred gradient of s into out. Both must
	// cover every cell.
	Gradient(s field.Scalar, out field.Vector) error
}

// Grid is a uniform Cartesian grid of Nx×Ny×Nz cells. Cell (i,j,k) has
// index i + Nx*(j + Ny*k).
type Grid struct {
	Nx, Ny, Nz int
	Dx, Dy, Dz float64
}

func NewGrid(nx, ny, nz int, dx, dy, dz float64) (*Grid, error) {
	if nx < 1 || ny < 1 || nz < 1 || dx <= 0 || dy <= 0 || dz <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d cells of %gx%gx%g m", ErrGridSize, nx, ny, nz, dx, dy, dz)
	}
	return &Grid{Nx: nx, Ny: ny, Nz: nz, Dx: dx, Dy: dy, Dz: dz}, nil
}

func (g *Grid) NumCells() int { return g.Nx * g.Ny * g.Nz }

func (g *Grid) CellVolume(int) float64 { return g.Dx * g.Dy * g.Dz }

func (g *Grid) Index(i, j, k int) int { return i + g.Nx*(j+g.Ny*k) }

// Centre returns the cell centre with the grid origin at the corner of cell 0.
func (g *Grid) Centre(cell int) r3.Vec {
	i := cell % g.Nx
	j := (cell / g.Nx) % g.Ny
	k := cell / (g.Nx * g.Ny)
	return r3.Vec{
		X: (float64(i) + 0.5) * g.Dx,
		Y: (float64(j) + 0.5) * g.Dy,
		Z: (float64(k) + 0.5) * g.Dz,
	}
}

// Gradient uses central differences in the interior and one-sided
// differences on boundary cells. Directions with a single cell have zero
// gradient.
func (g *Grid) Gradient(s field.Scalar, out field.Vector) error {
	n := g.NumCells()
	if len(s) != n || len(out) != n {
		return fmt.Errorf("mesh: gradient of %d values into %d on a %d-cell grid", len(s), len(out), n)
	}
	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				c := g.Index(i, j, k)
				out[c] = r3.Vec{
					X: diff(s, i, g.Nx, g.Dx, func(ii int) int { return g.Index(ii, j, k) }),
					Y: diff(s, j, g.Ny, g.Dy, func(jj int) int { return g.Index(i, jj, k) }),
					Z: diff(s, k, g.Nz, g.Dz, func(kk int) int { return g.Index(i, j, kk) }),
				}
			}
		}
	}
	return nil
}

func diff(s field.Scalar, at, n int, h float64, idx func(int) int) float64 {
	switch {
	case n == 1:
		return 0
	case at == 0:
		return (s[idx(1)] - s[idx(0)]) / h
	case at == n-1:
		return (s[idx(n-1)] - s[idx(n-2)]) / h
	default:
		return (s[idx(at+1)] - s[idx(at-1)]) / (2 * h)
	}
}
