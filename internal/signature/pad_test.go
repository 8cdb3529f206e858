// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package signature

import (
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	values []string
}

func (r *recorder) onChange(v string) { r.values = append(r.values, v) }

func TestPad_StrokeEmitsOnUpOnly(t *testing.T) {
	rec := &recorder{}
	p := NewPad(100, 50, rec.onChange)

	require.NoError(t, p.Down(MouseAt(10, 10)))
	assert.True(t, p.Drawing())
	require.NoError(t, p.Move(MouseAt(40, 20)))
	require.NoError(t, p.Move(MouseAt(80, 30)))
	assert.Empty(t, rec.values)

	require.NoError(t, p.Up())
	require.Len(t, rec.values, 1)
	assert.True(t, strings.HasPrefix(rec.values[0], DataURLPrefix))
	assert.False(t, p.Drawing())
	assert.True(t, p.HasStroke())

	img, err := Decode(rec.values[0])
	require.NoError(t, err)
	assert.Equal(t, image.Pt(100, 50), img.Bounds().Size())
	r, _, _, _ := img.At(40, 20).RGBA()
	assert.Less(t, r, uint32(0x8000))
}

func TestPad_MoveWithoutDownIsIgnored(t *testing.T) {
	rec := &recorder{}
	p := NewPad(10, 10, rec.onChange)

	require.NoError(t, p.Move(MouseAt(5, 5)))
	require.NoError(t, p.Up())

	assert.False(t, p.HasStroke())
	assert.Empty(t, rec.values)
}

func TestPad_ClearEmitsEmptyString(t *testing.T) {
	rec := &recorder{}
	p := NewPad(20, 20, rec.onChange)
	assert.Nil(t, rec.values, "no value before any interaction")

	require.NoError(t, p.Down(MouseAt(1, 1)))
	require.NoError(t, p.Up())
	p.Clear()

	require.Len(t, rec.values, 2)
	assert.Equal(t, "", rec.values[1])
	assert.False(t, p.HasStroke())
}

func TestPad_LoadDoesNotDrawOrEmit(t *testing.T) {
	src := NewPad(30, 30, nil)
	require.NoError(t, src.Down(MouseAt(5, 5)))
	require.NoError(t, src.Move(MouseAt(25, 25)))
	require.NoError(t, src.Up())
	value, err := src.DataURL()
	require.NoError(t, err)

	rec := &recorder{}
	p := NewPad(30, 30, rec.onChange)
	require.NoError(t, p.Load(value))

	assert.False(t, p.Drawing())
	assert.True(t, p.HasStroke())
	assert.Empty(t, rec.values)

	got, err := p.DataURL()
	require.NoError(t, err)
	assert.Equal(t, value, got)

	require.ErrorIs(t, p.Load("data:image/jpeg;base64,xx"), ErrInvalidDataURL)
	require.ErrorIs(t, p.Load(DataURLPrefix+"!!!"), ErrInvalidDataURL)
}

func TestToCanvas_Scaling(t *testing.T) {
	display := Rect{Left: 10, Top: 20, Width: 150, Height: 75}
	canvas := image.Pt(300, 150)

	assert.Equal(t, image.Pt(0, 0), ToCanvas(Point{X: 10, Y: 20}, display, canvas))
	assert.Equal(t, image.Pt(100, 50), ToCanvas(Point{X: 60, Y: 45}, display, canvas))
	assert.Equal(t, image.Pt(299, 149), ToCanvas(Point{X: 1000, Y: 1000}, display, canvas))
	assert.Equal(t, image.Pt(0, 0), ToCanvas(Point{X: -5, Y: -5}, display, canvas))
}

func TestPointerEvent_TouchAndMouseUnified(t *testing.T) {
	p := NewPad(100, 100, nil)
	p.SetDisplay(Rect{Width: 50, Height: 50})

	require.NoError(t, p.Down(TouchAt(10, 10)))
	assert.Equal(t, image.Pt(20, 20), p.last)
	require.NoError(t, p.Move(MouseAt(20, 20)))
	assert.Equal(t, image.Pt(40, 40), p.last)

	require.ErrorIs(t, p.Down(PointerEvent{}), ErrNoPointer)
}

func TestRender(t *testing.T) {
	p := NewPad(40, 20, nil)
	require.NoError(t, p.Down(MouseAt(0, 0)))
	require.NoError(t, p.Up())

	lines := Render(p.Image(), 4, 2)

	require.Len(t, lines, 2)
	assert.Equal(t, "█   ", lines[0])
	assert.Equal(t, "    ", lines[1])
}
