package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cart/internal/model"
	"cart/internal/store"
)

// The TUI has two levels: the category list, and the item list of one
// category. All domain state lives in the store; the model below only holds
// view state (cursor, input buffers, modal flags).
type level int

const (
	levelCategories level = iota
	levelItems
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAddCategory
	inputRenameCategory
	inputItemName // shared by add and edit; editItemID == 0 means add
	inputItemQty
)

type Model struct {
	store *store.Store
	list  list.Model
	level level

	// Selected category while at levelItems.
	catID int64

	// Inline input bar, shared between add and edit. Item entry runs in two
	// steps: name first, then quantity.
	input      textinput.Model
	mode       inputMode
	inputErr   string
	draftName  string
	editItemID int64 // 0 when adding
	renameID   int64

	// Category delete confirmation.
	confirming  bool
	confirmID   int64
	confirmName string

	// Single-level undo for item deletion.
	canUndo  bool
	undoItem model.Item

	width, height int
}

// Run starts the interactive two-level list over the given store.
func Run(s *store.Store) error {
	m := newModel(s)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(s *store.Store) Model {
	l := list.New(nil, categoryDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	delBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	undoBind := key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo"))
	extra := func() []key.Binding { return []key.Binding{addBind, editBind, delBind, undoBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{store: s, list: l, input: ti, width: 80, height: 24}
	m.reloadCategories()
	return m
}

// ---- store -> list sync ----

func (m *Model) reloadCategories() {
	cats := m.store.Categories()
	items := make([]list.Item, 0, len(cats))
	for _, c := range cats {
		items = append(items, categoryEntry{cat: c})
	}
	idx := clamp(m.list.Index(), len(items))
	m.list.SetDelegate(categoryDelegate{})
	m.list.SetItems(items)
	m.list.Select(idx)
	m.list.SetStatusBarItemName("category", "categories")
	m.list.Title = categoriesTitle(cats)
	m.level = levelCategories
}

func (m *Model) reloadItems() {
	c, found := m.store.Category(m.catID)
	if !found {
		m.reloadCategories()
		return
	}
	items := make([]list.Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, itemEntry{item: it})
	}
	idx := clamp(m.list.Index(), len(items))
	m.list.SetDelegate(itemDelegate{})
	m.list.SetItems(items)
	m.list.Select(idx)
	m.list.SetStatusBarItemName("item", "items")
	m.list.Title = itemsTitle(c)
	m.level = levelItems
}

func categoriesTitle(cats []model.Category) string {
	var done, total int
	for _, c := range cats {
		d, t := c.Counts()
		done += d
		total += t
	}
	return fmt.Sprintf("%s   %s %d  %s %d",
		titleStyle.Render("Shopping lists"),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), total-done,
	)
}

func itemsTitle(c model.Category) string {
	done, total := c.Counts()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render(c.Name),
		successStyle.Render("✔"), done,
		pendingStyle.Render("•"), total-done,
		accentStyle.Render("Total"), total,
	)
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// ---- selection helpers ----

func (m Model) selectedCategory() (model.Category, bool) {
	e, ok := m.list.SelectedItem().(categoryEntry)
	if !ok {
		return model.Category{}, false
	}
	return e.cat, true
}

func (m Model) selectedItem() (model.Item, bool) {
	e, ok := m.list.SelectedItem().(itemEntry)
	if !ok {
		return model.Item{}, false
	}
	return e.item, true
}

// ---- tea.Model ----

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		return m, nil
	}

	if m.confirming {
		return m.updateConfirm(msg)
	}
	if m.mode != inputNone {
		return m.updateInput(msg)
	}

	// While the list filter is active, every key belongs to the filter.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch m.level {
		case levelCategories:
			return m.updateCategories(keyMsg)
		case levelItems:
			return m.updateItems(keyMsg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateCategories(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if c, ok := m.selectedCategory(); ok {
			m.catID = c.ID
			m.list.Select(0)
			m.reloadItems()
		}
		return m, nil
	case "a":
		m.startInput(inputAddCategory, "", "New category name...")
		return m, nil
	case "e":
		if c, ok := m.selectedCategory(); ok {
			m.renameID = c.ID
			m.startInput(inputRenameCategory, c.Name, "Category name...")
		}
		return m, nil
	case "d":
		if c, ok := m.selectedCategory(); ok {
			m.confirming = true
			m.confirmID = c.ID
			m.confirmName = c.Name
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateItems(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace":
		m.canUndo = false
		m.list.Select(0)
		m.reloadCategories()
		return m, nil
	case " ":
		if it, ok := m.selectedItem(); ok {
			// Not-found is a no-op: the item can only vanish under us if the
			// category was deleted elsewhere in this session.
			_, _ = m.store.ToggleItem(m.catID, it.ID)
			m.reloadItems()
		}
		return m, nil
	case "d":
		if it, ok := m.selectedItem(); ok {
			if err := m.store.DeleteItem(m.catID, it.ID); err == nil {
				m.undoItem = it
				m.canUndo = true
			}
			m.reloadItems()
		}
		return m, nil
	case "u":
		if m.canUndo {
			// Re-add through the normal mutation path; the id changes but
			// name, quantity and completion are restored.
			it, err := m.store.AddItem(m.catID, m.undoItem.Name, m.undoItem.Quantity)
			if err == nil && m.undoItem.Completed {
				_, _ = m.store.ToggleItem(m.catID, it.ID)
			}
			m.canUndo = false
			m.reloadItems()
		}
		return m, nil
	case "a":
		m.editItemID = 0
		m.startInput(inputItemName, "", "New item name...")
		return m, nil
	case "e":
		if it, ok := m.selectedItem(); ok {
			m.editItemID = it.ID
			m.startInput(inputItemName, it.Name, "Item name...")
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// ---- inline input bar ----

func (m *Model) startInput(mode inputMode, value, placeholder string) {
	m.mode = mode
	m.inputErr = ""
	m.input.SetValue(value)
	m.input.Placeholder = placeholder
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) stopInput() {
	m.mode = inputNone
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m.commitInput()
		case "esc":
			m.stopInput()
			return m, nil
		default:
			m.inputErr = ""
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) commitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	switch m.mode {
	case inputAddCategory:
		if _, err := m.store.AddCategory(value); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.stopInput()
		m.reloadCategories()
	case inputRenameCategory:
		if err := m.store.RenameCategory(m.renameID, value); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.stopInput()
		m.reloadCategories()
	case inputItemName:
		// First of two steps; duplicates are caught when the store applies
		// the full mutation after the quantity step.
		m.draftName = value
		next := ""
		if m.editItemID != 0 {
			if c, found := m.store.Category(m.catID); found {
				if it := findItem(c, m.editItemID); it != nil {
					next = it.Quantity
				}
			}
		}
		m.startInput(inputItemQty, next, "Quantity (e.g. 6, 2 kg)...")
	case inputItemQty:
		var err error
		if m.editItemID == 0 {
			_, err = m.store.AddItem(m.catID, m.draftName, value)
		} else {
			err = m.store.EditItem(m.catID, m.editItemID, m.draftName, value)
		}
		if err != nil {
			if errors.Is(err, store.ErrDuplicateItem) || errors.Is(err, store.ErrEmptyName) {
				// The name is the problem; send the user back to that step.
				m.startInput(inputItemName, m.draftName, "Item name...")
				m.inputErr = err.Error()
				return m, nil
			}
			m.inputErr = err.Error()
			return m, nil
		}
		m.stopInput()
		m.reloadItems()
	}
	return m, nil
}

func findItem(c model.Category, id int64) *model.Item {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// ---- view ----

func (m Model) View() string {
	listHeight := m.height - 4
	if m.mode != inputNone || m.confirming {
		listHeight = m.height - 6
	}
	m.list.SetSize(m.width-2, listHeight)

	content := m.list.View()
	switch {
	case m.confirming:
		prompt := fmt.Sprintf("Delete %q and all of its items? %s",
			m.confirmName, mutedStyle.Render("y/n"))
		content += "\n" + barStyle.Render(prompt)
	case m.mode != inputNone:
		title := m.inputTitle()
		if m.inputErr != "" {
			title += " " + errorStyle.Render(m.inputErr)
		}
		content += "\n" + barStyle.Render(title+"\n"+m.input.View())
	}
	return panelString(content)
}

func (m Model) inputTitle() string {
	switch m.mode {
	case inputAddCategory:
		return "Add category"
	case inputRenameCategory:
		return "Rename category"
	case inputItemName:
		if m.editItemID != 0 {
			return "Edit item — name"
		}
		return "Add item — name"
	case inputItemQty:
		if m.editItemID != 0 {
			return "Edit item — quantity"
		}
		return "Add item — quantity"
	}
	return ""
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		_ = m.store.DeleteCategory(m.confirmID)
		m.confirming = false
		m.reloadCategories()
	case "n", "N", "esc":
		m.confirming = false
	}
	return m, nil
}
