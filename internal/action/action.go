// Package action holds the catalog of executable actions and the gated
// execution pipeline around them. Vendor integrations supply actions; the
// registry never calls vendor SDKs directly.
package action

import (
	"context"

	"guardian/pkg/domainerrors"
)

// Scope is the action's authority domain.
type Scope string

const (
	ScopeHome       Scope = "home"
	ScopeDevice     Scope = "device"
	ScopeFamily     Scope = "family"
	ScopeEnterprise Scope = "enterprise"
)

// Payload is the opaque input to an action. The executor only inspects the
// consent flag; everything else is the action's business.
type Payload map[string]any

// ConsentGranted reports whether the payload carries an explicit consent flag.
func (p Payload) ConsentGranted() bool {
	granted, _ := p["consentGranted"].(bool)
	return granted
}

// Descriptor identifies an action and declares its gating requirements.
type Descriptor struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Provider        string `json:"provider"`
	Scope           Scope  `json:"scope"`
	RequiresConsent bool   `json:"requiresConsent"`
}

// Action is the capability set every registered action implements: identity
// and gating requirements, a safety predicate over the payload, and the
// execution routine. Concrete variants per provider implement this directly;
// Definition adapts plain functions for the common case.
type Action interface {
	Descriptor() Descriptor
	// Safety evaluates the safety predicate for the payload. Actions
	// without a predicate return true.
	Safety(ctx context.Context, payload Payload) (bool, error)
	// Run executes the action. Its result is opaque to the registry.
	Run(ctx context.Context, payload Payload) (any, error)
}

// SafetyFunc is a safety predicate over the payload.
type SafetyFunc func(ctx context.Context, payload Payload) (bool, error)

// RunFunc is an action's execution routine.
type RunFunc func(ctx context.Context, payload Payload) (any, error)

// Definition adapts func fields into an Action for vendor integrations that
// do not need a dedicated type. SafetyCheck may be nil.
type Definition struct {
	Desc        Descriptor
	SafetyCheck SafetyFunc
	RunFunc     RunFunc
}

func (d Definition) Descriptor() Descriptor { return d.Desc }

func (d Definition) Safety(ctx context.Context, payload Payload) (bool, error) {
	if d.SafetyCheck == nil {
		return true, nil
	}
	return d.SafetyCheck(ctx, payload)
}

func (d Definition) Run(ctx context.Context, payload Payload) (any, error) {
	return d.RunFunc(ctx, payload)
}

// Validate enforces the registration requirements: id, name, and a runnable
// execution routine.
func (d Definition) Validate() error {
	if d.Desc.ID == "" {
		return domainerrors.New(domainerrors.CodeValidation, "action definition missing id")
	}
	if d.Desc.Name == "" {
		return domainerrors.New(domainerrors.CodeValidation, "action definition missing name")
	}
	if d.RunFunc == nil {
		return domainerrors.New(domainerrors.CodeValidation, "action definition missing run routine")
	}
	return nil
}
