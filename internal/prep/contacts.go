// Package prep manages the device-local emergency-preparedness records:
// contacts, the kit checklist and the procedures guide.
package prep

import (
	"fmt"
	"strings"
	"sync"

	"github.com/emergencyai/emergency-assistant/internal/store"
)

// Contact is a locally stored emergency contact, identified by its position
// in the list.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Contacts manages the ordered contact list. Every mutation persists
// immediately; indexes shift on deletion.
type Contacts struct {
	mu sync.Mutex
	kv store.KV
}

// NewContacts creates the contact manager over local storage.
func NewContacts(kv store.KV) *Contacts {
	return &Contacts{kv: kv}
}

// List returns the stored contacts in order.
func (c *Contacts) List() ([]Contact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Add appends a contact and persists the list.
func (c *Contacts) Add(name, phone string) error {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return fmt.Errorf("contact name and phone are required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	contacts, err := c.load()
	if err != nil {
		return err
	}
	contacts = append(contacts, Contact{Name: name, Phone: phone})
	return c.kv.Set(store.KeyContacts, contacts)
}

// Delete removes the contact at index and persists the shifted list.
func (c *Contacts) Delete(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	contacts, err := c.load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(contacts) {
		return fmt.Errorf("contact index %d out of range", index)
	}
	contacts = append(contacts[:index], contacts[index+1:]...)
	return c.kv.Set(store.KeyContacts, contacts)
}

func (c *Contacts) load() ([]Contact, error) {
	var contacts []Contact
	if _, err := c.kv.Get(store.KeyContacts, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}
