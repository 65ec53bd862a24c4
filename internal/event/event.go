// Package event defines the typed events flowing from leaf adapters into the
// decision engine, and the in-process bus that carries them.
package event

import "time"

// Type discriminates event payloads.
type Type string

const (
	TypeRingMotion   Type = "ring_motion"
	TypeRingDoorbell Type = "ring_doorbell"
	TypeDoorLock     Type = "door_lock"
	TypeAppliance    Type = "appliance"
	TypeCalendar     Type = "calendar"
	TypeGPS          Type = "gps"
	TypeManual       Type = "manual"
)

// Event is immutable once created; Timestamp is set at creation. Payload holds
// the typed payload struct matching Type, or nil for unknown upstream shapes
// (the engine tolerates those).
type Event struct {
	Type      Type
	Payload   any
	Timestamp time.Time
}

// New stamps an event at creation time.
func New(t Type, payload any) Event {
	return Event{Type: t, Payload: payload, Timestamp: time.Now()}
}

// RingPayload accompanies ring_motion and ring_doorbell events.
type RingPayload struct {
	CameraID string `json:"cameraId"`
}

// LockPayload reports a lock state change. Reason is "departure" when the
// change was observed while leaving.
type LockPayload struct {
	LockID string `json:"lockId"`
	Locked bool   `json:"locked"`
	Reason string `json:"reason,omitempty"`
}

// AppliancePayload reports an appliance state change. A given payload
// typically carries only one of Reason or Safety.
type AppliancePayload struct {
	ApplianceID string `json:"applianceId"`
	On          bool   `json:"on"`
	Reason      string `json:"reason,omitempty"`
	Safety      string `json:"safety,omitempty"`
}

// CalendarPayload carries schedule signals such as school dismissal.
type CalendarPayload struct {
	Kind          string    `json:"kind"`
	ChildID       string    `json:"childId"`
	DismissalTime time.Time `json:"dismissalTime"`
	Route         string    `json:"route"`
}

// GPSPayload carries location signals for a household member.
type GPSPayload struct {
	SubjectID   string `json:"subjectId"`
	RouteStatus string `json:"routeStatus"`
}

// ManualPayload is a human response to a previously issued prompt. Context
// must reproduce the correlation context the prompt carried.
type ManualPayload struct {
	Action  string      `json:"action"`
	Context Correlation `json:"context"`
}

// Correlation is the structural tag carried by a prompt that a later manual
// response must echo back for the response to be routed to the matching
// handler branch. No persisted ticket id exists; matching is by value.
type Correlation struct {
	Kind        string `json:"kind"`
	LockID      string `json:"lockId,omitempty"`
	ApplianceID string `json:"applianceId,omitempty"`
	ChildID     string `json:"childId,omitempty"`
	ETA         string `json:"eta,omitempty"`
}
