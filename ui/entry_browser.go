package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"rsgame-bundler/bundle"
)

const (
	DefaultPageSize = 10
)

type EntryBrowser struct {
	title    string
	schema   bundle.Schema
	entries  []bundle.Entry
	cursor   int
	pageSize int
	quitting bool
}

func CreateEntryBrowser(title string, archive *bundle.Archive) EntryBrowser {
	return EntryBrowser{
		title:    title,
		schema:   archive.Schema(),
		entries:  archive.Entries(),
		pageSize: DefaultPageSize,
	}
}

func (s EntryBrowser) Cursor() int {
	return s.cursor
}

func (s EntryBrowser) Selected() (bundle.Entry, bool) {
	if len(s.entries) == 0 {
		return bundle.Entry{}, false
	}
	return s.entries[s.cursor], true
}

// page returns the first and one-past-last index of the visible window,
// which always contains the cursor.
func (s EntryBrowser) page() (int, int) {
	start := (s.cursor / s.pageSize) * s.pageSize
	end := start + s.pageSize
	if end > len(s.entries) {
		end = len(s.entries)
	}
	return start, end
}

func (s EntryBrowser) View() string {
	if s.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString("BUNDLE BROWSER\n\n")
	fmt.Fprintf(&b, "File: %s (%s, %d entries)\n\n", s.title, s.schema, len(s.entries))

	if len(s.entries) == 0 {
		b.WriteString("  (empty bundle)\n")
	}
	start, end := s.page()
	for i := start; i < end; i++ {
		entry := s.entries[i]
		marker := " "
		if i == s.cursor {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %-40s %10d %10d\n", marker, entry.Name, entry.Offset, entry.Size)
	}

	b.WriteString("\nup/down: move  pgup/pgdown: page  q: quit\n")
	return b.String()
}

func (s EntryBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	last := len(s.entries) - 1
	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		s.quitting = true
		return s, tea.Quit
	case "up", "k":
		s.cursor--
	case "down", "j":
		s.cursor++
	case "pgup":
		s.cursor -= s.pageSize
	case "pgdown":
		s.cursor += s.pageSize
	case "home", "g":
		s.cursor = 0
	case "end", "G":
		s.cursor = last
	}
	if s.cursor > last {
		s.cursor = last
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	return s, nil
}

func (s EntryBrowser) Init() tea.Cmd {
	return nil
}
