// Package builtin registers the stock household actions. The run routines
// stand in for vendor SDK calls; real integrations replace them behind the
// same definitions.
package builtin

import (
	"context"

	"guardian/internal/action"
)

// LockFrontDoor locks the front door via the smart-lock vendor.
func LockFrontDoor() action.Definition {
	return action.Definition{
		Desc: action.Descriptor{
			ID:       "lock.frontDoor",
			Name:     "Lock Front Door",
			Provider: "SmartLockVendor",
			Scope:    action.ScopeHome,
		},
		RunFunc: func(_ context.Context, payload action.Payload) (any, error) {
			lockID, _ := payload["lockId"].(string)
			if lockID == "" {
				lockID = "front-lock"
			}
			return map[string]any{"message": "Front door locked", "lockId": lockID}, nil
		},
	}
}

// ShutOffAppliance cuts power to an appliance via the smart-plug vendor. It
// requires explicit consent and refuses payloads that do not name an
// appliance.
func ShutOffAppliance() action.Definition {
	return action.Definition{
		Desc: action.Descriptor{
			ID:              "appliance.shutOff",
			Name:            "Shut Off Appliance",
			Provider:        "SmartPlugVendor",
			Scope:           action.ScopeHome,
			RequiresConsent: true,
		},
		SafetyCheck: func(_ context.Context, payload action.Payload) (bool, error) {
			applianceID, _ := payload["applianceId"].(string)
			return applianceID != "", nil
		},
		RunFunc: func(_ context.Context, payload action.Payload) (any, error) {
			applianceID, _ := payload["applianceId"].(string)
			return map[string]any{"message": "Appliance shut off", "applianceId": applianceID}, nil
		},
	}
}

// NotifyPrompt delivers a prompt through the messaging provider.
func NotifyPrompt() action.Definition {
	return action.Definition{
		Desc: action.Descriptor{
			ID:       "notify.prompt",
			Name:     "Notify Prompt",
			Provider: "GuardianMessaging",
			Scope:    action.ScopeFamily,
		},
		RunFunc: func(_ context.Context, payload action.Payload) (any, error) {
			return map[string]any{
				"deliveredTo": payload["to"],
				"message":     payload["message"],
				"actions":     payload["actions"],
			}, nil
		},
	}
}

// All returns every stock action in registration order.
func All() []action.Definition {
	return []action.Definition{LockFrontDoor(), ShutOffAppliance(), NotifyPrompt()}
}
