// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "hello", 10, "hello"},
		{"cut", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"runes", "привет мир", 6, "при..."},
		{"no limit", "hello", 0, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fitText(tt.in, tt.max))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "abcd", padRight("abcd", 4))
	assert.Equal(t, "a...", padRight("abcdef", 4))
}

func TestClampIndex(t *testing.T) {
	assert.Equal(t, 0, clampIndex(3, 0))
	assert.Equal(t, 0, clampIndex(-1, 5))
	assert.Equal(t, 4, clampIndex(9, 5))
	assert.Equal(t, 2, clampIndex(2, 5))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 form", plural(1, "form", "forms"))
	assert.Equal(t, "0 forms", plural(0, "form", "forms"))
	assert.Equal(t, "12 forms", plural(12, "form", "forms"))
}

func TestValueOrDash(t *testing.T) {
	assert.Equal(t, "-", valueOrDash("  "))
	assert.Equal(t, "x", valueOrDash("x"))
}

func TestRenderPage_Layout(t *testing.T) {
	out := renderPage("TITLE", "one\ntwo", "r: retry")
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[0], "TITLE")
	assert.Equal(t, "  one", lines[pageHeaderLines])
	assert.Equal(t, "  two", lines[pageHeaderLines+1])
	assert.Contains(t, out, "r: retry")
	assert.Contains(t, out, "ctrl+c: quit")
}

func TestRenderPage_EmptyData(t *testing.T) {
	out := renderPage("TITLE", "  ", "")
	assert.Contains(t, out, "  -\n")
}

func TestInlineError(t *testing.T) {
	assert.Empty(t, inlineError(""))
	out := inlineError("boom")
	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, "r: retry")
}
