// Package grid lays out the square dot lattice a kolam is drawn on and
// answers nearest-dot queries against it.
package grid

import (
	"errors"
	"fmt"

	"github.com/Ash22686/Kolam-Kar/internal/state"
)

var (
	ErrGridTooSmall = errors.New("grid: size must be at least 2")
	ErrGridTooLarge = errors.New("grid: size too large")
)

// Grid is one computed dot layout. Dots are regenerated wholesale when the
// size changes; no dot keeps an identity across layouts.
type Grid struct {
	Size       int
	CanvasSize float64
	Padding    float64
	Dots       []state.Point
}

// New computes the layout for a size x size grid inscribed in a square
// canvas with the given inset padding.
func New(size int, canvasSize, padding float64) (*Grid, error) {
	dots, err := Compute(size, canvasSize, padding)
	if err != nil {
		return nil, err
	}
	return &Grid{
		Size:       size,
		CanvasSize: canvasSize,
		Padding:    padding,
		Dots:       dots,
	}, nil
}

// Spacing is the distance between neighbouring dots.
func Spacing(size int, canvasSize, padding float64) float64 {
	if size < 2 {
		return 0
	}
	return (canvasSize - 2*padding) / float64(size-1)
}

// Compute returns size*size dots in row-major order.
func Compute(size int, canvasSize, padding float64) ([]state.Point, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrGridTooSmall, size)
	}
	if size > state.MaxGridSize {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrGridTooLarge, size, state.MaxGridSize)
	}
	spacing := Spacing(size, canvasSize, padding)
	dots := make([]state.Point, 0, size*size)
	for r := range size {
		for c := range size {
			dots = append(dots, state.Point{
				X: padding + float64(c)*spacing,
				Y: padding + float64(r)*spacing,
			})
		}
	}
	return dots, nil
}

func (g *Grid) Spacing() float64 {
	return Spacing(g.Size, g.CanvasSize, g.Padding)
}

// Center is the rotation center for symmetry expansion.
func (g *Grid) Center() state.Point {
	return state.Point{X: g.CanvasSize / 2, Y: g.CanvasSize / 2}
}

func (g *Grid) Nearest(p state.Point, threshold float64) (state.Point, bool) {
	return NearestWithinThreshold(p, g.Dots, threshold)
}

func (g *Grid) NearestAbsolute(p state.Point) (state.Point, bool) {
	return NearestAbsolute(p, g.Dots)
}
