package prep

import (
	"fmt"
	"sync"

	"github.com/emergencyai/emergency-assistant/internal/store"
)

// ChecklistItem is one emergency-kit item; identity is the list position.
type ChecklistItem struct {
	Item    string `json:"item"`
	Checked bool   `json:"checked"`
}

// DefaultChecklist seeds the kit checklist on first run.
var DefaultChecklist = []ChecklistItem{
	{Item: "Bottled Water (3L/person/day)"},
	{Item: "Non-perishable Food (3 days)"},
	{Item: "Flashlight and Batteries"},
	{Item: "First-Aid Kit"},
	{Item: "Blankets"},
	{Item: "Multi-tool"},
}

// Checklist manages the emergency-kit checklist on local storage.
type Checklist struct {
	mu sync.Mutex
	kv store.KV
}

// NewChecklist creates the checklist manager over local storage.
func NewChecklist(kv store.KV) *Checklist {
	return &Checklist{kv: kv}
}

// Seed writes the default checklist if none has been stored yet.
func (c *Checklist) Seed() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var items []ChecklistItem
	ok, err := c.kv.Get(store.KeyChecklist, &items)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return c.kv.Set(store.KeyChecklist, DefaultChecklist)
}

// Items returns the stored checklist, falling back to the default set when
// nothing has been stored.
func (c *Checklist) Items() ([]ChecklistItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Toggle flips the checked state of the item at index and persists.
func (c *Checklist) Toggle(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return fmt.Errorf("checklist index %d out of range", index)
	}
	items[index].Checked = !items[index].Checked
	return c.kv.Set(store.KeyChecklist, items)
}

func (c *Checklist) load() ([]ChecklistItem, error) {
	var items []ChecklistItem
	ok, err := c.kv.Get(store.KeyChecklist, &items)
	if err != nil {
		return nil, err
	}
	if !ok {
		items = make([]ChecklistItem, len(DefaultChecklist))
		copy(items, DefaultChecklist)
	}
	return items, nil
}
