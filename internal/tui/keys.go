// internal/tui/keys.go
//
// Key bindings shown in the help footer.

package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings shown in the help footer. Letter keys are not
// listed; anything in the alphabet is typed straight into the board.
type keyMap struct {
	Submit key.Binding
	Delete key.Binding
	Reset  key.Binding
	Share  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Delete: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
		Reset:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "new game")),
		Share:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "copy result")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Delete, k.Reset},
		{k.Share, k.Help, k.Quit},
	}
}
