// Package placement maps canvas clicks onto sprinkler markers.
//
// Positions are stored as ratios of the image size so markers stay put
// when the canvas is rendered at a different resolution.
package placement

import (
	"errors"
	"fmt"
	"math"
)

// HitRadius is the click tolerance around a rendered marker, in pixels.
const HitRadius = 15.0

type Mode string

const (
	ModeAdd    Mode = "add"
	ModeSelect Mode = "select"
)

var (
	ErrInvalidCanvas = errors.New("canvas width and height must be positive")
	ErrOutsideCanvas = errors.New("click is outside the canvas")
	ErrInvalidMode   = errors.New("mode must be add or select")
)

// Point is a normalized position, both coordinates in [0,1].
type Point struct {
	XRatio float64
	YRatio float64
}

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAdd, ModeSelect:
		return Mode(s), nil
	default:
		return "", ErrInvalidMode
	}
}

// ValidRatio reports whether v is a finite value in [0,1].
func ValidRatio(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}

// Normalize converts a pixel click into ratios of the canvas size.
func Normalize(x, y, width, height float64) (Point, error) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return Point{}, ErrInvalidCanvas
	}
	p := Point{XRatio: x / width, YRatio: y / height}
	if !ValidRatio(p.XRatio) || !ValidRatio(p.YRatio) {
		return Point{}, ErrOutsideCanvas
	}
	return p, nil
}

// HitTest returns the index of the first marker, in the given order, whose
// rendered position lies within HitRadius of the click, or -1.
// It is first match, not nearest: overlapping markers resolve to the one stored first.
func HitTest(markers []Point, x, y, width, height float64) int {
	for i, m := range markers {
		dx := x - m.XRatio*width
		dy := y - m.YRatio*height
		if math.Hypot(dx, dy) <= HitRadius {
			return i
		}
	}
	return -1
}

// DefaultLabel names the marker created when count markers already exist.
func DefaultLabel(count int) string {
	return fmt.Sprintf("Sprinkler %d", count+1)
}
