package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	// Navigation
	Up       Key
	Down     Key
	Left     Key
	Right    Key
	PageUp   Key
	PageDown Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Help   Key

	// Day controls
	BeginDay    Key
	AdvanceTurn Key
	EndDay      Key

	// Function keys for module navigation
	F1  Key
	F2  Key
	F3  Key
	F4  Key
	F5  Key
	F6  Key
	F7  Key
	F10 Key
}

// Key represents a key binding.
type Key struct {
	Keys []string
	Help string
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       Key{Keys: []string{"up", "k"}, Help: "up"},
		Down:     Key{Keys: []string{"down", "j"}, Help: "down"},
		Left:     Key{Keys: []string{"left", "h"}, Help: "prev page"},
		Right:    Key{Keys: []string{"right", "l"}, Help: "next page"},
		PageUp:   Key{Keys: []string{"pgup", "ctrl+u"}, Help: "page up"},
		PageDown: Key{Keys: []string{"pgdown", "ctrl+d"}, Help: "page down"},

		Select: Key{Keys: []string{"enter"}, Help: "select"},
		Back:   Key{Keys: []string{"esc"}, Help: "back"},
		Quit:   Key{Keys: []string{"q", "ctrl+c"}, Help: "quit"},
		Help:   Key{Keys: []string{"?", "f1"}, Help: "help"},

		BeginDay:    Key{Keys: []string{"b"}, Help: "begin day"},
		AdvanceTurn: Key{Keys: []string{"t"}, Help: "advance turn"},
		EndDay:      Key{Keys: []string{"e"}, Help: "end day"},

		F1:  Key{Keys: []string{"f1"}, Help: "Help"},
		F2:  Key{Keys: []string{"f2"}, Help: "Dashboard"},
		F3:  Key{Keys: []string{"f3"}, Help: "Wards"},
		F4:  Key{Keys: []string{"f4"}, Help: "Waiting Room"},
		F5:  Key{Keys: []string{"f5"}, Help: "Treatment"},
		F6:  Key{Keys: []string{"f6"}, Help: "Warehouse"},
		F7:  Key{Keys: []string{"f7"}, Help: "History"},
		F10: Key{Keys: []string{"f10"}, Help: "Quit"},
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// IsQuit checks if the key message is a quit command.
func (km KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return km.Quit.Matches(msg) || km.F10.Matches(msg)
}

// IsFunctionKey checks if the key message is a function key.
func (km KeyMap) IsFunctionKey(msg tea.KeyMsg) bool {
	return MatchesAny(msg, km.F1, km.F2, km.F3, km.F4, km.F5, km.F6, km.F7, km.F10)
}

// GetFunctionKeyModule returns the module name for a function key.
func (km KeyMap) GetFunctionKeyModule(msg tea.KeyMsg) string {
	switch {
	case km.F1.Matches(msg):
		return "help"
	case km.F2.Matches(msg):
		return "dashboard"
	case km.F3.Matches(msg):
		return "wards"
	case km.F4.Matches(msg):
		return "waiting"
	case km.F5.Matches(msg):
		return "treatment"
	case km.F6.Matches(msg):
		return "warehouse"
	case km.F7.Matches(msg):
		return "history"
	case km.F10.Matches(msg):
		return "quit"
	default:
		return ""
	}
}

// StatusBarHelp returns the help text for the status bar.
func (km KeyMap) StatusBarHelp() string {
	return "[F1]Help [F2]Dashboard [F3]Wards [F4]Waiting [F5]Treatment [F6]Warehouse [F7]History [F10]Quit"
}
