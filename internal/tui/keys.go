package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings shared by the list-style views.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Back    key.Binding
	Reload  key.Binding
	Bell    key.Binding
	Help    key.Binding
	Quit    key.Binding
	TabDash key.Binding
	TabTest key.Binding
	Create  key.Binding

	// Tests list.
	Web    key.Binding
	Copy   key.Binding
	Status key.Binding

	// Preview.
	NextQuestion key.Binding
	PrevQuestion key.Binding
	Select       key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Bell: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "notifications"),
	),
	Help: key.NewBinding(
		key.WithKeys("h", "?"),
		key.WithHelp("h", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	TabDash: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "dashboard"),
	),
	TabTest: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "tests"),
	),
	Create: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new test"),
	),
	Web: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in browser"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy link"),
	),
	Status: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "status"),
	),
	NextQuestion: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "next"),
	),
	PrevQuestion: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "prev"),
	),
	Select: key.NewBinding(
		key.WithKeys(" ", "enter", "x"),
		key.WithHelp("space", "select"),
	),
}

// helpFor renders bindings as a help bar using their own help text.
func helpFor(bindings ...key.Binding) string {
	out := " "
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += helpEntry(h.Key, h.Desc)
	}
	return out
}
