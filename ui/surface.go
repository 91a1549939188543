// Package ui defines the interaction surface the composer drives and the
// list renderer that projects saved prompts onto it.
package ui

import "promptpad/viewmode"

// Item is one rendered entry of the saved-prompt list.
type Item struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Notice levels.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Notice is a user-visible message such as "Invalid file.".
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Surface is anything a user composes prompts through: a browser socket,
// a terminal. Display methods push state out; the On* methods register the
// handlers the surface calls when the user acts. Select and delete are
// separate interactions and a delete never fires a select.
type Surface interface {
	RenderList(items []Item)
	SetBase(text string)
	ShowResult(text string)
	ShowMode(m viewmode.Mode)
	Notify(n Notice)

	OnSelect(fn func(index int))
	OnDelete(fn func(index int))
	OnSubmit(fn func(base, addon string))
}

// Renderer rebuilds the displayed list from scratch on every call.
type Renderer struct{}

// Items converts prompts to list entries, keeping order.
func (Renderer) Items(prompts []string) []Item {
	items := make([]Item, len(prompts))
	for i, p := range prompts {
		items[i] = Item{Index: i, Text: p}
	}
	return items
}

// Render replaces whatever s shows with prompts.
func (r Renderer) Render(s Surface, prompts []string) {
	s.RenderList(r.Items(prompts))
}
