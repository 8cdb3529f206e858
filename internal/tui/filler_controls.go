// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/MKhiriev/formdesk/internal/formschema"
	"github.com/MKhiriev/formdesk/internal/signature"
	"github.com/MKhiriev/formdesk/internal/validators"
	"github.com/MKhiriev/formdesk/models"
)

const controlWidth = 48

// control is the filling widget of one field. Its value always has the
// shape the server expects for the field type.
type control struct {
	field models.FieldSchema

	input textinput.Model
	area  textarea.Model

	// cursor is the highlighted option, star, score or scale step.
	cursor int
	value  any
	note   string
}

func newControl(f models.FieldSchema) *control {
	c := &control{field: f}

	switch f.Type {
	case models.FieldTextarea:
		c.area = textarea.New()
		c.area.SetWidth(controlWidth)
		c.area.SetHeight(3)
		c.area.ShowLineNumbers = false
		c.area.Placeholder = f.Placeholder
		c.area.Blur()
	case models.FieldSelect, models.FieldRadio, models.FieldMultiSelect,
		models.FieldRating, models.FieldNPS, models.FieldScale, models.FieldSignature,
		models.FieldSectionHeading, models.FieldParagraph:
	case models.FieldCheckbox:
		if !formschema.CheckboxIsGroup(f) {
			c.value = false
		}
	default:
		c.input = textinput.New()
		c.input.Width = controlWidth
		c.input.Placeholder = f.Placeholder
		switch f.Type {
		case models.FieldDate:
			c.input.Placeholder = validators.DateLayout
			c.input.CharLimit = len(validators.DateLayout)
		case models.FieldFileUpload:
			c.input.Placeholder = "path to file, enter to attach"
		}
	}
	if f.Type == models.FieldTestimonial {
		c.value = models.TestimonialValue{}
	}
	return c
}

// textual reports whether the control takes typed text.
func (c *control) textual() bool {
	switch c.field.Type {
	case models.FieldSelect, models.FieldRadio, models.FieldMultiSelect, models.FieldCheckbox,
		models.FieldRating, models.FieldNPS, models.FieldScale, models.FieldSignature,
		models.FieldSectionHeading, models.FieldParagraph:
		return false
	}
	return true
}

func (c *control) focus() tea.Cmd {
	switch {
	case c.field.Type == models.FieldTextarea:
		return c.area.Focus()
	case c.textual():
		return c.input.Focus()
	}
	return nil
}

func (c *control) blur() {
	switch {
	case c.field.Type == models.FieldTextarea:
		c.area.Blur()
	case c.textual():
		c.input.Blur()
	}
}

// update feeds a key to the control and reports whether its value changed.
func (c *control) update(msg tea.KeyMsg) (bool, tea.Cmd) {
	f := c.field
	s := msg.String()

	switch f.Type {
	case models.FieldSelect, models.FieldRadio:
		if len(f.Options) == 0 {
			return false, nil
		}
		switch s {
		case "left", "h":
			c.cursor = (c.cursor - 1 + len(f.Options)) % len(f.Options)
		case "right", "l":
			c.cursor = (c.cursor + 1) % len(f.Options)
		case " ", "enter":
			c.value = f.Options[c.cursor]
			return true, nil
		}
		return false, nil

	case models.FieldMultiSelect, models.FieldCheckbox:
		if !formschema.CheckboxIsGroup(f) && f.Type == models.FieldCheckbox {
			if s == " " || s == "enter" {
				on, _ := c.value.(bool)
				c.value = !on
				return true, nil
			}
			return false, nil
		}
		if len(f.Options) == 0 {
			return false, nil
		}
		switch s {
		case "left", "h":
			c.cursor = (c.cursor - 1 + len(f.Options)) % len(f.Options)
		case "right", "l":
			c.cursor = (c.cursor + 1) % len(f.Options)
		case " ", "enter":
			c.value = formschema.ToggleOption(c.value, f.Options[c.cursor])
			return true, nil
		}
		return false, nil

	case models.FieldRating:
		stars := formschema.StarCount(f)
		n, _ := c.value.(int)
		switch s {
		case "left", "h":
			n = max(1, n-1)
		case "right", "l":
			n = min(stars, n+1)
		default:
			if d, err := strconv.Atoi(s); err == nil && d >= 1 && d <= stars {
				n = d
			} else {
				return false, nil
			}
		}
		c.value = n
		return true, nil

	case models.FieldNPS, models.FieldScale:
		steps := formschema.NPSScores
		if f.Type == models.FieldScale {
			steps = formschema.ScaleRange(f)
		}
		if len(steps) == 0 {
			return false, nil
		}
		pos := -1
		if n, ok := c.value.(int); ok {
			pos = slices.Index(steps, n)
		}
		switch s {
		case "left", "h":
			pos = max(0, pos-1)
		case "right", "l":
			pos = min(len(steps)-1, pos+1)
		default:
			return false, nil
		}
		c.value = steps[pos]
		return true, nil

	case models.FieldSignature, models.FieldSectionHeading, models.FieldParagraph:
		return false, nil

	case models.FieldTextarea:
		var cmd tea.Cmd
		c.area, cmd = c.area.Update(msg)
		return c.setText(c.area.Value()), cmd

	case models.FieldFileUpload:
		if s == "enter" {
			c.attach(strings.TrimSpace(c.input.Value()))
			return true, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return false, cmd

	case models.FieldTestimonial:
		t := formschema.Testimonial(c.value)
		if s == "ctrl+t" {
			t.Permission = !t.Permission
			c.value = t
			return true, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		t.Text = c.input.Value()
		c.value = t
		return true, cmd
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c.setText(c.input.Value()), cmd
}

// setText stores typed text. Numbers are sent as numbers once they parse;
// until then the raw text goes through so validation can point at it.
func (c *control) setText(text string) bool {
	var next any = text
	if strings.TrimSpace(text) == "" {
		next = nil
	} else if c.field.Type == models.FieldNumber {
		if n, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
			next = n
		}
	}
	changed := next != c.value
	c.value = next
	return changed
}

// attach records the metadata of a local file. Only name and size leave the
// client.
func (c *control) attach(path string) {
	c.note = ""
	if path == "" {
		c.value = nil
		return
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.value = nil
		c.note = "File not found"
		return
	}
	if err := formschema.CheckFileType(c.field, info.Name()); err != nil {
		c.value = nil
		c.input.SetValue("")
		c.note = validators.MsgFileTypeDenied
		return
	}
	if err := formschema.CheckFileSize(c.field, info.Size()); err != nil {
		c.value = nil
		c.input.SetValue("")
		c.note = fmt.Sprintf("File is larger than %s", humanize.Bytes(uint64(formschema.MaxFileBytes(c.field))))
		return
	}
	c.value = models.FileValue{Name: info.Name(), Size: info.Size()}
	c.note = fmt.Sprintf("%s attached (%s)", info.Name(), humanize.Bytes(uint64(info.Size())))
}

// setSignature stores a value emitted by the signature pad. A cleared pad
// emits "", which is kept as an answer.
func (c *control) setSignature(dataURL string) {
	c.value = dataURL
}

func (c *control) view(focused bool) string {
	f := c.field
	switch f.Type {
	case models.FieldSectionHeading:
		return titleStyle.Render(strings.ToUpper(f.Label))
	case models.FieldParagraph:
		return helpStyle.Render(valueOrDash(f.Description))
	case models.FieldTextarea:
		return c.area.View()
	case models.FieldSelect, models.FieldRadio:
		return c.optionsView(focused, func(opt string) bool { return c.value == opt }, "( )", "(•)")
	case models.FieldMultiSelect:
		return c.optionsView(focused, c.chosen, "[ ]", "[x]")
	case models.FieldCheckbox:
		if !formschema.CheckboxIsGroup(f) {
			on, _ := c.value.(bool)
			return checkbox(on) + " " + f.Label
		}
		return c.optionsView(focused, c.chosen, "[ ]", "[x]")
	case models.FieldRating:
		n, _ := c.value.(int)
		stars := formschema.StarCount(f)
		return strings.Repeat("★", n) + strings.Repeat("☆", stars-n) + helpStyle.Render(fmt.Sprintf("  %d/%d", n, stars))
	case models.FieldNPS:
		return c.scoreView(formschema.NPSScores, func(n int) string {
			band := formschema.NPSBand(n)
			return bandStyles[band.Color].Render(strconv.Itoa(n))
		}, "Not likely", "Very likely")
	case models.FieldScale:
		_, _, low, high := models.ScaleOf(f)
		return c.scoreView(formschema.ScaleRange(f), strconv.Itoa, low, high)
	case models.FieldSignature:
		if s, _ := c.value.(string); s != "" {
			if img, err := signature.Decode(s); err == nil {
				return strings.Join(signature.Render(img, 24, 3), "\n") + "\n" + okStyle.Render("signed") + helpStyle.Render("  enter: redraw")
			}
		}
		return helpStyle.Render("not signed · enter: open signature pad")
	case models.FieldTestimonial:
		t := formschema.Testimonial(c.value)
		return "[" + c.input.View() + "]\n" + checkbox(t.Permission) + " May be published" + helpStyle.Render("  ctrl+t: toggle")
	case models.FieldFileUpload:
		out := "[" + c.input.View() + "]"
		if c.note != "" {
			out += "\n" + helpStyle.Render(c.note)
		}
		return out
	}
	return "[" + c.input.View() + "]"
}

func (c *control) chosen(opt string) bool {
	return slices.Contains(formschema.Strings(c.value), opt)
}

func (c *control) optionsView(focused bool, on func(string) bool, off, mark string) string {
	if len(c.field.Options) == 0 {
		return helpStyle.Render("no options")
	}
	parts := make([]string, len(c.field.Options))
	for i, opt := range c.field.Options {
		box := off
		if on(opt) {
			box = mark
		}
		cell := box + " " + opt
		if focused && i == c.cursor {
			cell = selectedStyle.Render(cell)
		}
		parts[i] = cell
	}
	return strings.Join(parts, "  ")
}

func (c *control) scoreView(steps []int, render func(int) string, low, high string) string {
	current, set := c.value.(int)
	parts := make([]string, len(steps))
	for i, n := range steps {
		cell := render(n)
		if set && n == current {
			cell = selectedStyle.Render("[" + strconv.Itoa(n) + "]")
		}
		parts[i] = cell
	}
	out := strings.Join(parts, " ")
	if low != "" || high != "" {
		out += "\n" + helpStyle.Render(low+" … "+high)
	}
	if c.field.Type == models.FieldNPS && set {
		out += "  " + formschema.NPSBand(current).Name
	}
	return out
}
