// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package signature

import (
	"image"
	"math"
)

// Point is a position in display space.
type Point struct {
	X, Y float64
}

// Rect is the on-screen placement of the pad in display units.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// PointerEvent is a mouse or touch event. For touch, only the first touch
// point is used.
type PointerEvent struct {
	Mouse   *Point
	Touches []Point
}

// MouseAt builds a mouse event.
func MouseAt(x, y float64) PointerEvent {
	return PointerEvent{Mouse: &Point{X: x, Y: y}}
}

// TouchAt builds a single-touch event.
func TouchAt(x, y float64) PointerEvent {
	return PointerEvent{Touches: []Point{{X: x, Y: y}}}
}

// Position extracts the pointer position of a mouse or touch event.
func (e PointerEvent) Position() (Point, bool) {
	if len(e.Touches) > 0 {
		return e.Touches[0], true
	}
	if e.Mouse != nil {
		return *e.Mouse, true
	}
	return Point{}, false
}

// ToCanvas maps a display-space point into backing canvas pixels using the
// ratio between canvas size and displayed size, clamped to the canvas.
func ToCanvas(pt Point, display Rect, canvas image.Point) image.Point {
	scaleX, scaleY := 1.0, 1.0
	if display.Width > 0 {
		scaleX = float64(canvas.X) / display.Width
	}
	if display.Height > 0 {
		scaleY = float64(canvas.Y) / display.Height
	}

	x := int(math.Floor((pt.X - display.Left) * scaleX))
	y := int(math.Floor((pt.Y - display.Top) * scaleY))
	return image.Pt(clamp(x, 0, canvas.X-1), clamp(y, 0, canvas.Y-1))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
