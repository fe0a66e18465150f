package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"cart/internal/model"
)

// Validation signals. Callers branch with errors.Is and surface the text
// to the user as-is.
var (
	ErrEmptyName         = errors.New("name is empty")
	ErrEmptyQuantity     = errors.New("quantity is empty")
	ErrDuplicateCategory = errors.New("a category with that name already exists")
	ErrDuplicateItem     = errors.New("an item with that name is already in this category")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrItemNotFound      = errors.New("item not found")
)

// Persister loads and saves full category snapshots. Both calls are
// best-effort and never report failure back to the store.
type Persister interface {
	Load(ctx context.Context) []model.Category
	Save(ctx context.Context, cats []model.Category)
}

// A save only ever carries the complete list, so a newer queued snapshot
// strictly supersedes an older one and dropping the older is safe.
const queueDepth = 16

// Store owns the category tree. Every mutation validates its input, applies
// the change in memory, then queues the full snapshot for a background save.
// Not safe for concurrent mutation: callers drive it from a single event
// loop (one CLI invocation, or the TUI update loop).
type Store struct {
	cats    []model.Category
	persist Persister
	log     *zap.Logger

	queue     chan []model.Category
	done      chan struct{}
	closeOnce sync.Once

	now func() time.Time // item id source, overridable in tests
}

// Open loads the persisted state and starts the background writer.
// Callers must Close when finished so queued saves flush.
func Open(ctx context.Context, persist Persister, log *zap.Logger) *Store {
	s := &Store{
		cats:    persist.Load(ctx),
		persist: persist,
		log:     log,
		queue:   make(chan []model.Category, queueDepth),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go s.writer()
	return s
}

func (s *Store) writer() {
	for snap := range s.queue {
		s.persist.Save(context.Background(), snap)
	}
	close(s.done)
}

// Close drains pending saves and stops the writer. No mutations may follow.
func (s *Store) Close() {
	s.closeOnce.Do(func() { close(s.queue) })
	<-s.done
}

func (s *Store) enqueue() {
	snap := model.Clone(s.cats)
	for {
		select {
		case s.queue <- snap:
			return
		default:
		}
		// Full: discard the oldest queued snapshot and retry.
		select {
		case <-s.queue:
			s.log.Debug("dropped superseded snapshot")
		default:
		}
	}
}

// Categories returns a deep-copied snapshot of the current state.
func (s *Store) Categories() []model.Category {
	return model.Clone(s.cats)
}

// Category returns a copy of one category by id.
func (s *Store) Category(id int64) (model.Category, bool) {
	c := s.category(id)
	if c == nil {
		return model.Category{}, false
	}
	cp := *c
	cp.Items = make([]model.Item, len(c.Items))
	copy(cp.Items, c.Items)
	return cp, true
}

func (s *Store) category(id int64) *model.Category {
	for i := range s.cats {
		if s.cats[i].ID == id {
			return &s.cats[i]
		}
	}
	return nil
}

// categoryByName finds a category with the given (already trimmed) name,
// ignoring case and skipping excludeID.
func (s *Store) categoryByName(name string, excludeID int64) *model.Category {
	for i := range s.cats {
		if s.cats[i].ID != excludeID && strings.EqualFold(s.cats[i].Name, name) {
			return &s.cats[i]
		}
	}
	return nil
}

func itemByName(c *model.Category, name string, excludeID int64) *model.Item {
	for i := range c.Items {
		if c.Items[i].ID != excludeID && strings.EqualFold(c.Items[i].Name, name) {
			return &c.Items[i]
		}
	}
	return nil
}

func (s *Store) nextCategoryID() int64 {
	var max int64
	for _, c := range s.cats {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// nextItemID generates a millisecond-timestamp id, bumped past any id
// already taken in the category.
func (s *Store) nextItemID(c *model.Category) int64 {
	id := s.now().UnixMilli()
	for itemByID(c, id) != nil {
		id++
	}
	return id
}

func itemByID(c *model.Category, id int64) *model.Item {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// AddCategory appends a new empty category. Names are trimmed and must be
// unique across all categories, ignoring case.
func (s *Store) AddCategory(name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, ErrEmptyName
	}
	if s.categoryByName(name, 0) != nil {
		return model.Category{}, ErrDuplicateCategory
	}
	c := model.Category{ID: s.nextCategoryID(), Name: name, Items: []model.Item{}}
	s.cats = append(s.cats, c)
	s.enqueue()
	return c, nil
}

// RenameCategory renames a category in place under the same uniqueness rule.
func (s *Store) RenameCategory(id int64, newName string) error {
	c := s.category(id)
	if c == nil {
		return ErrCategoryNotFound
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	if s.categoryByName(newName, id) != nil {
		return ErrDuplicateCategory
	}
	c.Name = newName
	s.enqueue()
	return nil
}

// DeleteCategory removes a category and all of its items.
func (s *Store) DeleteCategory(id int64) error {
	for i := range s.cats {
		if s.cats[i].ID == id {
			s.cats = append(s.cats[:i], s.cats[i+1:]...)
			s.enqueue()
			return nil
		}
	}
	return ErrCategoryNotFound
}

// AddItem appends a new item to a category. Name uniqueness is scoped to the
// category; items in different categories may share a name.
func (s *Store) AddItem(categoryID int64, name, quantity string) (model.Item, error) {
	c := s.category(categoryID)
	if c == nil {
		return model.Item{}, ErrCategoryNotFound
	}
	name = strings.TrimSpace(name)
	quantity = strings.TrimSpace(quantity)
	if name == "" {
		return model.Item{}, ErrEmptyName
	}
	if quantity == "" {
		return model.Item{}, ErrEmptyQuantity
	}
	if itemByName(c, name, 0) != nil {
		return model.Item{}, ErrDuplicateItem
	}
	it := model.Item{ID: s.nextItemID(c), Name: name, Quantity: quantity}
	c.Items = append(c.Items, it)
	s.enqueue()
	return it, nil
}

// EditItem updates an item's name and quantity in place.
func (s *Store) EditItem(categoryID, itemID int64, newName, newQuantity string) error {
	c := s.category(categoryID)
	if c == nil {
		return ErrCategoryNotFound
	}
	it := itemByID(c, itemID)
	if it == nil {
		return ErrItemNotFound
	}
	newName = strings.TrimSpace(newName)
	newQuantity = strings.TrimSpace(newQuantity)
	if newName == "" {
		return ErrEmptyName
	}
	if newQuantity == "" {
		return ErrEmptyQuantity
	}
	if itemByName(c, newName, itemID) != nil {
		return ErrDuplicateItem
	}
	it.Name = newName
	it.Quantity = newQuantity
	s.enqueue()
	return nil
}

// DeleteItem removes an item from its category.
func (s *Store) DeleteItem(categoryID, itemID int64) error {
	c := s.category(categoryID)
	if c == nil {
		return ErrCategoryNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			s.enqueue()
			return nil
		}
	}
	return ErrItemNotFound
}

// ToggleItem flips an item's completed flag and returns the new value.
func (s *Store) ToggleItem(categoryID, itemID int64) (bool, error) {
	c := s.category(categoryID)
	if c == nil {
		return false, ErrCategoryNotFound
	}
	it := itemByID(c, itemID)
	if it == nil {
		return false, ErrItemNotFound
	}
	it.Completed = !it.Completed
	s.enqueue()
	return it.Completed, nil
}
