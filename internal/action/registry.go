package action

import (
	"fmt"
	"sync"

	"guardian/pkg/domainerrors"
	"guardian/pkg/platform/sentinel"
)

type validator interface {
	Validate() error
}

// Registry is the catalog of executable actions, keyed by id. Registrations
// are immutable: a duplicate id is rejected rather than silently overwriting
// the earlier definition, so the registration audit trail stays truthful.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]Action)}
}

func (r *Registry) Register(a Action) error {
	desc := a.Descriptor()
	if desc.ID == "" {
		return domainerrors.New(domainerrors.CodeValidation, "action missing id")
	}
	if desc.Name == "" {
		return domainerrors.New(domainerrors.CodeValidation, "action missing name")
	}
	if v, ok := a.(validator); ok {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.actions[desc.ID]; exists {
		return domainerrors.Wrap(domainerrors.CodeConflict,
			fmt.Sprintf("action %q already registered", desc.ID), sentinel.ErrConflict)
	}
	r.actions[desc.ID] = a
	r.order = append(r.order, desc.ID)
	return nil
}

func (r *Registry) Get(id string) (Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[id]
	if !ok {
		return nil, domainerrors.Wrap(domainerrors.CodeNotFound,
			fmt.Sprintf("unknown action: %s", id), sentinel.ErrNotFound)
	}
	return a, nil
}

// List returns all registered actions in registration order.
func (r *Registry) List() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	actions := make([]Action, 0, len(r.order))
	for _, id := range r.order {
		actions = append(actions, r.actions[id])
	}
	return actions
}
