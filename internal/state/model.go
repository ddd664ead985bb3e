package state

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidGrid      = errors.New("invalid grid size")
	ErrInvalidFold      = errors.New("invalid symmetry")
	ErrInvalidStroke    = errors.New("invalid stroke")
	ErrInvalidColor     = errors.New("invalid color")
	ErrInvalidThickness = errors.New("thickness must be positive")
)

// Point is a canvas-space coordinate, origin top-left, y pointing down.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

type Tool int

const (
	ToolLine Tool = iota
	ToolCircle
	ToolCurve
)

func (t Tool) String() string {
	switch t {
	case ToolLine:
		return "Line"
	case ToolCircle:
		return "Circle"
	case ToolCurve:
		return "Curve"
	default:
		return "Tool(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseTool maps the labels used by the toolbar and the saved files.
func ParseTool(s string) (Tool, error) {
	switch s {
	case "Line":
		return ToolLine, nil
	case "Circle":
		return ToolCircle, nil
	case "Curve":
		return ToolCurve, nil
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

func (t Tool) MarshalText() ([]byte, error) {
	if t < ToolLine || t > ToolCurve {
		return nil, fmt.Errorf("unknown tool %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tool) UnmarshalText(b []byte) error {
	v, err := ParseTool(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Limits on drawings read from files, the network or settings.
const (
	MaxFold     = 12
	MaxGridSize = 25
)

// Fold is the order of rotational symmetry. Anything below 1 behaves as 1.
type Fold int

// ParseFold reads labels like "6-fold". Unparsable labels mean no duplication.
func ParseFold(s string) Fold {
	head, _, _ := strings.Cut(strings.TrimSpace(s), "-")
	n, err := strconv.Atoi(head)
	if err != nil || n < 1 {
		return 1
	}
	return Fold(n)
}

// Count returns the number of replicas the fold produces.
func (f Fold) Count() int {
	if f < 1 {
		return 1
	}
	return int(f)
}

func (f Fold) Validate() error {
	if f > MaxFold {
		return fmt.Errorf("%w: %d-fold is more than %d", ErrInvalidFold, int(f), MaxFold)
	}
	return nil
}

func (f Fold) String() string {
	return strconv.Itoa(f.Count()) + "-fold"
}

func (f Fold) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Fold) UnmarshalText(b []byte) error {
	v := ParseFold(string(b))
	if err := v.Validate(); err != nil {
		return err
	}
	*f = v
	return nil
}

// GridSize is the number of dots along one side of the square grid.
type GridSize int

// ParseGridSize reads labels like "7x7".
func ParseGridSize(s string) (GridSize, error) {
	a, b, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGrid, s)
	}
	rows, err1 := strconv.Atoi(a)
	cols, err2 := strconv.Atoi(b)
	if err1 != nil || err2 != nil || rows != cols {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGrid, s)
	}
	g := GridSize(rows)
	if err := g.Validate(); err != nil {
		return 0, err
	}
	return g, nil
}

func (g GridSize) Validate() error {
	if g < 2 {
		return fmt.Errorf("%w: %d is smaller than 2", ErrInvalidGrid, int(g))
	}
	if g > MaxGridSize {
		return fmt.Errorf("%w: %d is larger than %d", ErrInvalidGrid, int(g), MaxGridSize)
	}
	return nil
}

func (g GridSize) String() string {
	n := strconv.Itoa(int(g))
	return n + "x" + n
}

func (g GridSize) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GridSize) UnmarshalText(b []byte) error {
	v, err := ParseGridSize(string(b))
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// Stroke is one completed primitive before symmetry expansion.
// Strokes are never modified once committed to a History.
type Stroke struct {
	ID        string  `json:"id"`
	Points    []Point `json:"points"`
	Tool      Tool    `json:"tool"`
	Color     string  `json:"color"`
	Thickness float64 `json:"thickness"`
	Symmetry  Fold    `json:"symmetry"`
	Radius    float64 `json:"radius,omitempty"`
}

// Validate checks the per-tool point counts and the brush values.
func (s Stroke) Validate() error {
	switch s.Tool {
	case ToolLine:
		if len(s.Points) != 2 {
			return fmt.Errorf("%w: line needs 2 points, has %d", ErrInvalidStroke, len(s.Points))
		}
	case ToolCircle:
		if len(s.Points) != 1 {
			return fmt.Errorf("%w: circle needs 1 point, has %d", ErrInvalidStroke, len(s.Points))
		}
		if s.Radius == 0 || math.IsNaN(s.Radius) {
			return fmt.Errorf("%w: circle without radius", ErrInvalidStroke)
		}
	case ToolCurve:
		if len(s.Points) < 2 {
			return fmt.Errorf("%w: curve needs at least 2 points, has %d", ErrInvalidStroke, len(s.Points))
		}
	default:
		return fmt.Errorf("%w: unknown tool %d", ErrInvalidStroke, int(s.Tool))
	}
	if err := ValidateThickness(s.Thickness); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStroke, err)
	}
	if err := s.Symmetry.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStroke, err)
	}
	if _, err := ParseHexColor(s.Color); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidStroke, err)
	}
	return nil
}

// Clone returns a copy that shares no memory with s.
func (s Stroke) Clone() Stroke {
	c := s
	c.Points = append([]Point(nil), s.Points...)
	return c
}

func ValidateThickness(t float64) error {
	if !(t > 0) || math.IsInf(t, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidThickness, t)
	}
	return nil
}

// ParseHexColor accepts "#rrggbb" and "#rgb".
func ParseHexColor(s string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return c, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return c, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}

// HexColor formats c as "#rrggbb", dropping alpha.
func HexColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}
