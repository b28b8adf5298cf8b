package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/rebatch/pkg/errors"
)

// Registry stores items by canonical name. Lookups go through Normalize and
// then through the alias table.
type Registry[T any] interface {
	// Register adds an item under its canonical name
	Register(name string, item T) error

	// Alias makes alias resolve to an already registered name
	Alias(alias, name string) error

	// Get retrieves an item by name or alias
	Get(name string) (T, error)

	// Resolve returns the canonical name for a name or alias
	Resolve(name string) (string, error)

	// Remove removes an item and every alias pointing at it
	Remove(name string) error

	// List returns all canonical names, sorted
	List() []string

	Has(name string) bool
	Clear()
	Count() int
}

type registry[T any] struct {
	mu      sync.RWMutex
	items   map[string]T
	aliases map[string]string
}

// New creates a new Registry instance
func New[T any]() Registry[T] {
	return &registry[T]{
		items:   make(map[string]T),
		aliases: make(map[string]string),
	}
}

// Normalize lowercases and trims a name
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (r *registry[T]) Register(name string, item T) error {
	key := Normalize(name)
	if key == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taken(key) {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", key)
	}

	r.items[key] = item
	return nil
}

func (r *registry[T]) Alias(alias, name string) error {
	aliasKey := Normalize(alias)
	target := Normalize(name)
	if aliasKey == "" {
		return errors.New(errors.ErrInvalidInput, "alias cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[target]; !ok {
		return errors.Newf(errors.ErrNotFound, "cannot alias '%s' to unknown item '%s'", aliasKey, target)
	}
	if r.taken(aliasKey) {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", aliasKey)
	}

	r.aliases[aliasKey] = target
	return nil
}

// taken must be called with the lock held
func (r *registry[T]) taken(key string) bool {
	if _, ok := r.items[key]; ok {
		return true
	}
	_, ok := r.aliases[key]
	return ok
}

// canonical must be called with the lock held
func (r *registry[T]) canonical(name string) (string, bool) {
	key := Normalize(name)
	if _, ok := r.items[key]; ok {
		return key, true
	}
	if target, ok := r.aliases[key]; ok {
		return target, true
	}
	return "", false
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.canonical(name)
	if !ok {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name).
			WithDetail("known", r.listLocked())
	}
	return r.items[key], nil
}

func (r *registry[T]) Resolve(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key, ok := r.canonical(name)
	if !ok {
		return "", errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name)
	}
	return key, nil
}

func (r *registry[T]) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := Normalize(name)
	if _, exists := r.items[key]; !exists {
		return errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name)
	}

	delete(r.items, key)
	for alias, target := range r.aliases {
		if target == key {
			delete(r.aliases, alias)
		}
	}
	return nil
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked()
}

func (r *registry[T]) listLocked() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.canonical(name)
	return ok
}

func (r *registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = make(map[string]T)
	r.aliases = make(map[string]string)
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.items)
}

// MustRegister registers an item and panics if registration fails.
// Registration errors in init() are programming errors.
func MustRegister[T any](reg Registry[T], name string, item T, aliases ...string) {
	if err := reg.Register(name, item); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
	for _, alias := range aliases {
		if err := reg.Alias(alias, name); err != nil {
			panic(fmt.Sprintf("failed to alias %s to %s: %v", alias, name, err))
		}
	}
}

// MustGet retrieves an item and panics if not found
func MustGet[T any](reg Registry[T], name string) T {
	item, err := reg.Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to get %s: %v", name, err))
	}
	return item
}
