// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package signature

import (
	"image"
	"strings"
)

// Render draws img as cols×rows text cells, one block per cell that holds
// any ink.
func Render(img image.Image, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	b := img.Bounds()
	lines := make([]string, rows)
	for row := range rows {
		var sb strings.Builder
		y0 := b.Min.Y + row*b.Dy()/rows
		y1 := b.Min.Y + (row+1)*b.Dy()/rows
		for col := range cols {
			x0 := b.Min.X + col*b.Dx()/cols
			x1 := b.Min.X + (col+1)*b.Dx()/cols
			if inked(img, x0, y0, max(x1, x0+1), max(y1, y0+1)) {
				sb.WriteRune('█')
			} else {
				sb.WriteRune(' ')
			}
		}
		lines[row] = sb.String()
	}
	return lines
}

func inked(img image.Image, x0, y0, x1, y1 int) bool {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r < 0x8000 && g < 0x8000 && b < 0x8000 {
				return true
			}
		}
	}
	return false
}
