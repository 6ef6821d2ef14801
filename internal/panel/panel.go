// Package panel drives the single-active-panel state machine and the fetch
// lifecycle of the data pane. It exposes pure state plus transitions; a thin
// view layer subscribes for changes and renders.
package panel

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/emergencyai/emergency-assistant/internal/emergency"
	"github.com/emergencyai/emergency-assistant/internal/location"
)

// Panel identifies one mutually-exclusive UI region.
type Panel string

const (
	None       Panel = "none"
	MapAndData Panel = "map-data"
	Chat       Panel = "chat"
	Contacts   Panel = "contacts"
	Checklist  Panel = "checklist"
	Procedures Panel = "procedures"
)

// SubState tracks a single panel's content lifecycle.
type SubState string

const (
	Idle    SubState = "idle"
	Loading SubState = "loading"
	Loaded  SubState = "loaded"
	Errored SubState = "errored"
)

// localPanels are the panels whose entry triggers an immediate local-data
// reload; no network is involved.
var localPanels = map[Panel]bool{
	Contacts:   true,
	Checklist:  true,
	Procedures: true,
}

// Fetcher retrieves normalized category data. It is satisfied by the
// in-process aggregator service and by the HTTP API client alike.
type Fetcher interface {
	Fetch(ctx context.Context, category emergency.Category, loc location.Location) (*emergency.CategoryResult, error)
}

// Event is a state-change notification pushed to subscribers.
type Event struct {
	Active Panel
	Sub    SubState
	Result *emergency.CategoryResult
	Err    string
}

// Controller enforces that exactly one panel is visible and that only the most
// recently initiated fetch may commit its outcome to the data pane.
type Controller struct {
	fetcher fetcherFunc
	current func() location.Location
	reload  func(Panel) error

	mu          sync.Mutex
	active      Panel
	sub         map[Panel]SubState
	result      *emergency.CategoryResult
	errText     string
	fetchToken  uuid.UUID
	cancelFetch context.CancelFunc
	subs        []func(Event)
}

type fetcherFunc func(ctx context.Context, category emergency.Category, loc location.Location) (*emergency.CategoryResult, error)

// Option configures a Controller.
type Option func(*Controller)

// WithReload installs the hook invoked when a local-data panel (contacts,
// checklist, procedures) becomes visible.
func WithReload(fn func(Panel) error) Option {
	return func(c *Controller) { c.reload = fn }
}

// NewController creates a Controller in the None state. current supplies the
// location snapshot captured at the moment a fetch starts.
func NewController(fetcher Fetcher, current func() location.Location, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher.Fetch,
		current: current,
		active:  None,
		sub:     make(map[Panel]SubState),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers a state-change callback.
func (c *Controller) Subscribe(fn func(Event)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// Active returns the currently visible panel.
func (c *Controller) Active() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// SubState returns the content sub-state of a panel; panels never touched
// report Idle.
func (c *Controller) SubState(p Panel) SubState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sub[p]; ok {
		return s
	}
	return Idle
}

// Result returns the committed data-pane result, nil when none is displayed.
func (c *Controller) Result() *emergency.CategoryResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the displayed data-pane error text, empty when none.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errText
}

// Toggle makes p the active panel, or hides everything when p was already
// active. Entering a local-data panel reloads its records immediately.
func (c *Controller) Toggle(p Panel) Panel {
	c.mu.Lock()
	if c.active == p {
		c.active = None
	} else {
		c.active = p
	}
	active := c.active
	reload := c.reload
	c.mu.Unlock()

	if localPanels[active] && reload != nil {
		sub := Loaded
		errText := ""
		if err := reload(active); err != nil {
			sub = Errored
			errText = err.Error()
		}
		c.mu.Lock()
		c.sub[active] = sub
		if errText != "" {
			c.errText = errText
		}
		c.mu.Unlock()
	}

	c.notify()
	return active
}

// Fetch starts a category request for the data pane. Categories carrying map
// coordinates force the MapAndData panel; the rest keep the current layout.
// Any in-flight fetch is superseded: its context is cancelled and its
// eventual outcome, success or failure, is discarded.
func (c *Controller) Fetch(ctx context.Context, category emergency.Category) {
	c.mu.Lock()
	if category.HasCoordinates() {
		c.active = MapAndData
	}
	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel
	token := uuid.New()
	c.fetchToken = token
	c.sub[MapAndData] = Loading
	c.result = nil
	c.errText = ""
	c.mu.Unlock()

	// The location in effect when the fetch starts, never at completion.
	loc := c.current()

	c.notify()

	go func() {
		res, err := c.fetcher(fetchCtx, category, loc)
		c.commit(token, res, err)
	}()
}

// commit applies a fetch outcome unless the fetch has been superseded.
func (c *Controller) commit(token uuid.UUID, res *emergency.CategoryResult, err error) {
	c.mu.Lock()
	if token != c.fetchToken {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.sub[MapAndData] = Errored
		c.errText = err.Error()
		c.result = nil
	} else {
		c.sub[MapAndData] = Loaded
		c.result = res
		c.errText = ""
	}
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	c.mu.Lock()
	ev := Event{
		Active: c.active,
		Sub:    c.sub[c.active],
		Result: c.result,
		Err:    c.errText,
	}
	if ev.Sub == "" {
		ev.Sub = Idle
	}
	subs := make([]func(Event), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}
