// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	moveUp    key.Binding
	moveDown  key.Binding
	moveLeft  key.Binding
	moveRight key.Binding
	enter     key.Binding
	space     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	logout    key.Binding
	retry     key.Binding
	newItem   key.Binding
	edit      key.Binding
	delete    key.Binding
	duplicate key.Binding
	publish   key.Binding
	archive   key.Binding
	templates key.Binding
	subs      key.Binding
	fill      key.Binding
	embed     key.Binding
	export    key.Binding
	save      key.Binding
	clear     key.Binding
	settings  key.Binding
	rules     key.Binding
	option    key.Binding
	submit    key.Binding
	yes       key.Binding
	no        key.Binding
	tabForms  key.Binding
	tabLeads  key.Binding
	tabStats  key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	left:      key.NewBinding(key.WithKeys("left", "h")),
	right:     key.NewBinding(key.WithKeys("right", "l")),
	moveUp:    key.NewBinding(key.WithKeys("K", "shift+up")),
	moveDown:  key.NewBinding(key.WithKeys("J", "shift+down")),
	moveLeft:  key.NewBinding(key.WithKeys("<", "shift+left")),
	moveRight: key.NewBinding(key.WithKeys(">", "shift+right")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	space:     key.NewBinding(key.WithKeys(" ")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q")),
	logout:    key.NewBinding(key.WithKeys("L")),
	retry:     key.NewBinding(key.WithKeys("r")),
	newItem:   key.NewBinding(key.WithKeys("n")),
	edit:      key.NewBinding(key.WithKeys("e")),
	delete:    key.NewBinding(key.WithKeys("d")),
	duplicate: key.NewBinding(key.WithKeys("c")),
	publish:   key.NewBinding(key.WithKeys("p")),
	archive:   key.NewBinding(key.WithKeys("a")),
	templates: key.NewBinding(key.WithKeys("t")),
	subs:      key.NewBinding(key.WithKeys("s")),
	fill:      key.NewBinding(key.WithKeys("f")),
	embed:     key.NewBinding(key.WithKeys("y")),
	export:    key.NewBinding(key.WithKeys("x")),
	save:      key.NewBinding(key.WithKeys("ctrl+s")),
	clear:     key.NewBinding(key.WithKeys("ctrl+l")),
	settings:  key.NewBinding(key.WithKeys("g")),
	rules:     key.NewBinding(key.WithKeys("R")),
	option:    key.NewBinding(key.WithKeys("+")),
	submit:    key.NewBinding(key.WithKeys("ctrl+s")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n", "esc")),
	tabForms:  key.NewBinding(key.WithKeys("1")),
	tabLeads:  key.NewBinding(key.WithKeys("2")),
	tabStats:  key.NewBinding(key.WithKeys("3")),
}
