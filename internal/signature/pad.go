// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package signature implements a freehand signature pad over a raster
// canvas. Strokes are drawn immediately; the value of the pad only changes
// when a stroke is finished or the pad is cleared.
package signature

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
)

// DataURLPrefix starts every value a Pad emits.
const DataURLPrefix = "data:image/png;base64,"

var (
	ErrInvalidDataURL = errors.New("invalid signature data URL")
	ErrNoPointer      = errors.New("event carries no pointer")
)

var (
	paper = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	ink   = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xff}
)

// Pad is a signature canvas. It is not safe for concurrent use; it is driven
// from a single UI event loop.
type Pad struct {
	canvas    *image.RGBA
	drawing   bool
	hasStroke bool
	last      image.Point
	penRadius int

	display Rect

	onChange func(string)
}

// NewPad returns a blank pad with a width×height backing canvas. onChange
// receives every emitted value; it may be nil.
func NewPad(width, height int, onChange func(string)) *Pad {
	p := &Pad{
		canvas:    image.NewRGBA(image.Rect(0, 0, width, height)),
		penRadius: 1,
		display:   Rect{Width: float64(width), Height: float64(height)},
		onChange:  onChange,
	}
	p.fill()
	return p
}

// SetDisplay records where and how large the pad is shown. Pointer
// coordinates are scaled from this rectangle to the backing canvas.
func (p *Pad) SetDisplay(r Rect) {
	p.display = r
}

// SetPenRadius sets the brush radius in canvas pixels.
func (p *Pad) SetPenRadius(r int) {
	p.penRadius = max(0, r)
}

// Drawing reports whether a stroke is in progress.
func (p *Pad) Drawing() bool { return p.drawing }

// HasStroke reports whether anything has been drawn since the last clear.
func (p *Pad) HasStroke() bool { return p.hasStroke }

// Image returns the canvas.
func (p *Pad) Image() image.Image { return p.canvas }

// Down starts a stroke at the event's pointer position.
func (p *Pad) Down(ev PointerEvent) error {
	pt, err := p.canvasPoint(ev)
	if err != nil {
		return err
	}
	p.drawing = true
	p.last = pt
	p.dot(pt)
	return nil
}

// Move extends the current stroke. Outside a stroke it does nothing.
func (p *Pad) Move(ev PointerEvent) error {
	if !p.drawing {
		return nil
	}
	pt, err := p.canvasPoint(ev)
	if err != nil {
		return err
	}
	p.line(p.last, pt)
	p.last = pt
	p.hasStroke = true
	return nil
}

// Up finishes the stroke and emits the whole canvas as a PNG data URL.
// Outside a stroke it does nothing.
func (p *Pad) Up() error {
	if !p.drawing {
		return nil
	}
	p.drawing = false
	p.hasStroke = true

	value, err := p.DataURL()
	if err != nil {
		return err
	}
	p.emit(value)
	return nil
}

// Clear blanks the canvas and emits the empty string.
func (p *Pad) Clear() {
	p.fill()
	p.drawing = false
	p.hasStroke = false
	p.emit("")
}

// Load draws a previously emitted data URL onto the canvas without starting
// a stroke and without emitting a value. An empty value leaves the pad blank.
func (p *Pad) Load(dataURL string) error {
	if dataURL == "" {
		return nil
	}
	img, err := Decode(dataURL)
	if err != nil {
		return err
	}
	draw.Draw(p.canvas, p.canvas.Bounds(), img, image.Point{}, draw.Over)
	p.hasStroke = true
	return nil
}

// DataURL encodes the canvas as a PNG data URL.
func (p *Pad) DataURL() (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, p.canvas); err != nil {
		return "", fmt.Errorf("encode signature: %w", err)
	}
	return DataURLPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode parses a PNG data URL.
func Decode(dataURL string) (image.Image, error) {
	payload, ok := strings.CutPrefix(dataURL, DataURLPrefix)
	if !ok {
		return nil, ErrInvalidDataURL
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataURL, err)
	}
	return img, nil
}

func (p *Pad) emit(value string) {
	if p.onChange != nil {
		p.onChange(value)
	}
}

func (p *Pad) fill() {
	draw.Draw(p.canvas, p.canvas.Bounds(), &image.Uniform{C: paper}, image.Point{}, draw.Src)
}

func (p *Pad) canvasPoint(ev PointerEvent) (image.Point, error) {
	client, ok := ev.Position()
	if !ok {
		return image.Point{}, ErrNoPointer
	}
	return ToCanvas(client, p.display, p.canvas.Bounds().Size()), nil
}

// line strokes a segment with Bresenham's algorithm.
func (p *Pad) line(from, to image.Point) {
	dx, dy := abs(to.X-from.X), -abs(to.Y-from.Y)
	sx, sy := 1, 1
	if from.X > to.X {
		sx = -1
	}
	if from.Y > to.Y {
		sy = -1
	}
	e := dx + dy
	x, y := from.X, from.Y
	for {
		p.dot(image.Pt(x, y))
		if x == to.X && y == to.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}

func (p *Pad) dot(c image.Point) {
	r := p.penRadius
	brush := image.Rect(c.X-r, c.Y-r, c.X+r+1, c.Y+r+1).Intersect(p.canvas.Bounds())
	draw.Draw(p.canvas, brush, &image.Uniform{C: ink}, image.Point{}, draw.Src)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
