package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"rsgame-bundler/bundle"
)

func Start(title string, archive *bundle.Archive) error {
	entryBrowser := CreateEntryBrowser(title, archive)
	if err := tea.NewProgram(entryBrowser).Start(); err != nil {
		return errors.Wrap(err, "Start error running entry browser")
	}
	return nil
}
