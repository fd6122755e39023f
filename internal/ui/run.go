package ui

import (
	tea "charm.land/bubbletea/v2"
)

// Run starts the interactive program and blocks until the user quits.
// Extra options (custom input when the document came from stdin, a fixed
// window size in tests) pass straight through to the program.
func Run(m *Model, opts ...tea.ProgramOption) error {
	prog := tea.NewProgram(m, opts...)
	_, err := prog.Run()
	return err
}
