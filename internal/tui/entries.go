package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"cart/internal/model"
)

// categoryEntry adapts model.Category to bubbles/list.Item.
type categoryEntry struct {
	cat model.Category
}

func (e categoryEntry) Title() string       { return e.cat.Name }
func (e categoryEntry) Description() string { return "" }
func (e categoryEntry) FilterValue() string { return e.cat.Name }

// itemEntry adapts model.Item to bubbles/list.Item.
type itemEntry struct {
	item model.Item
}

func (e itemEntry) Title() string       { return e.item.Name }
func (e itemEntry) Description() string { return "" }
func (e itemEntry) FilterValue() string { return e.item.Name }

// Custom delegates to control how rows render (single line each).

type categoryDelegate struct{}

func (d categoryDelegate) Height() int                               { return 1 }
func (d categoryDelegate) Spacing() int                              { return 0 }
func (d categoryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d categoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(categoryEntry)
	if !ok {
		return
	}
	done, total := e.cat.Counts()
	counts := mutedStyle.Render(fmt.Sprintf("%d/%d", done, total))
	if total > 0 && done == total {
		counts = successStyle.Render(fmt.Sprintf("%d/%d", done, total))
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+e.cat.Name+" "+counts)
}

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(itemEntry)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := e.item.Name + " " + mutedStyle.Render("— "+e.item.Quantity)
	if e.item.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(e.item.Name + " — " + e.item.Quantity)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+box+" "+text)
}
