package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	PrevTab   key.Binding
	NextTab   key.Binding
	NextDial  key.Binding
	PrevDial  key.Binding
	NudgeUp   key.Binding
	NudgeDown key.Binding
	Edit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		PrevTab:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous tab")),
		NextTab:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next tab")),
		NextDial:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next dial")),
		PrevDial:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous dial")),
		NudgeUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise target")),
		NudgeDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "lower target")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit current value")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j k", "navigate")),
		Down:      key.NewBinding(key.WithKeys("j", "down")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit / confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// shortHelp is the status bar hint line.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.NextDial, k.NudgeUp, k.NudgeDown, k.Edit, k.Help, k.Quit}
}
