// Package registry provides a global registry of pilot factories.
// Pilots register themselves in init() functions, allowing the CLI to
// discover and instantiate automated players without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/vovakirdan/tui-flap/internal/sim"
)

// Pilot decides when to tap. It plays through the same single-tap interface
// a human has and never touches session state directly.
type Pilot interface {
	// ID returns a unique identifier for this pilot (e.g., "auto").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset prepares the pilot for a new run.
	Reset(seed int64)

	// Decide is called once per frame before the step with the latest
	// snapshot and returns whether to tap.
	Decide(snap sim.Snapshot) bool
}

// PilotInfo contains metadata about a registered pilot.
type PilotInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new pilot.
type Factory func() Pilot

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a pilot factory to the registry.
// Panics if a pilot with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: pilot %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered pilots, sorted by ID.
func List() []PilotInfo {
	mu.RLock()
	defer mu.RUnlock()

	ids := lo.Keys(factories)
	sort.Strings(ids)

	return lo.Map(ids, func(id string, _ int) PilotInfo {
		return PilotInfo{ID: id, Title: titles[id]}
	})
}

// Create instantiates a new pilot by its ID.
func Create(id string) (Pilot, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pilot %q", id)
	}
	return f(), nil
}

// Exists checks if a pilot with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
