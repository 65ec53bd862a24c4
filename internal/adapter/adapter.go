// Package adapter provides leaf event adapters. Each adapter constructs typed
// events and publishes them on the bus; in production these wrap vendor
// webhooks, here they also drive the demo scenario.
package adapter

import (
	"context"
	"time"

	"guardian/internal/event"
)

type Ring struct{ bus *event.Bus }

func NewRing(bus *event.Bus) *Ring { return &Ring{bus: bus} }

func (a *Ring) Motion(ctx context.Context, cameraID string) {
	a.bus.Emit(ctx, event.New(event.TypeRingMotion, event.RingPayload{CameraID: cameraID}))
}

func (a *Ring) Doorbell(ctx context.Context, cameraID string) {
	a.bus.Emit(ctx, event.New(event.TypeRingDoorbell, event.RingPayload{CameraID: cameraID}))
}

type Lock struct{ bus *event.Bus }

func NewLock(bus *event.Bus) *Lock { return &Lock{bus: bus} }

func (a *Lock) Unlocked(ctx context.Context, lockID, reason string) {
	a.bus.Emit(ctx, event.New(event.TypeDoorLock, event.LockPayload{LockID: lockID, Reason: reason}))
}

func (a *Lock) Locked(ctx context.Context, lockID string) {
	a.bus.Emit(ctx, event.New(event.TypeDoorLock, event.LockPayload{LockID: lockID, Locked: true}))
}

type Appliance struct{ bus *event.Bus }

func NewAppliance(bus *event.Bus) *Appliance { return &Appliance{bus: bus} }

func (a *Appliance) On(ctx context.Context, applianceID, reason string) {
	a.bus.Emit(ctx, event.New(event.TypeAppliance, event.AppliancePayload{
		ApplianceID: applianceID,
		On:          true,
		Reason:      reason,
	}))
}

func (a *Appliance) Overdue(ctx context.Context, applianceID string) {
	a.bus.Emit(ctx, event.New(event.TypeAppliance, event.AppliancePayload{
		ApplianceID: applianceID,
		On:          true,
		Safety:      "overdue",
	}))
}

// Family covers calendar and GPS signals for household children.
type Family struct{ bus *event.Bus }

func NewFamily(bus *event.Bus) *Family { return &Family{bus: bus} }

func (a *Family) SchoolDismissal(ctx context.Context, childID string, dismissal time.Time, route string) {
	a.bus.Emit(ctx, event.New(event.TypeCalendar, event.CalendarPayload{
		Kind:          "school_dismissal",
		ChildID:       childID,
		DismissalTime: dismissal,
		Route:         route,
	}))
}

func (a *Family) StoreDetour(ctx context.Context, childID string) {
	a.bus.Emit(ctx, event.New(event.TypeGPS, event.GPSPayload{SubjectID: childID, RouteStatus: "store_detour"}))
}

func (a *Family) ArrivalOverdue(ctx context.Context, childID string) {
	a.bus.Emit(ctx, event.New(event.TypeGPS, event.GPSPayload{SubjectID: childID, RouteStatus: "arrival_overdue"}))
}

func (a *Family) ArrivedHome(ctx context.Context, childID string) {
	a.bus.Emit(ctx, event.New(event.TypeGPS, event.GPSPayload{SubjectID: childID, RouteStatus: "arrived_home"}))
}

// Manual feeds a human response to a prompt back into the bus.
type Manual struct{ bus *event.Bus }

func NewManual(bus *event.Bus) *Manual { return &Manual{bus: bus} }

func (a *Manual) Respond(ctx context.Context, action string, corr event.Correlation) {
	a.bus.Emit(ctx, event.New(event.TypeManual, event.ManualPayload{Action: action, Context: corr}))
}
