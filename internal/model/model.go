package model

// Category is a named grouping of items. Item order is insertion order and
// doubles as display order.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item is a single shopping-list entry. Quantity is deliberately free-form
// text ("6", "2 kg", "a handful") and is never parsed as a number.
type Item struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	Completed bool   `json:"completed"`
}

// Counts returns completed and total item counts for display.
func (c Category) Counts() (done, total int) {
	for _, it := range c.Items {
		if it.Completed {
			done++
		}
	}
	return done, len(c.Items)
}

// Clone deep-copies a category list so callers can hold a snapshot without
// sharing item slices with the owner. Item slices stay non-nil so an empty
// category serializes as "items": [] rather than null.
func Clone(cats []Category) []Category {
	out := make([]Category, len(cats))
	for i, c := range cats {
		out[i] = c
		out[i].Items = make([]Item, len(c.Items))
		copy(out[i].Items, c.Items)
	}
	return out
}
