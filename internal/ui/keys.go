package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText(formFocused bool) string {
	if formFocused {
		return "tab next field  ctrl+s send  esc leave form"
	}
	return "j/k scroll  1-5 sections  ←/→ projects  t tilt  c contact  q quit"
}
