// Package decision interprets incoming events against the household context,
// mutates device state where the event implies it, and produces prompts and
// feedback. The rules are deterministic and centralized here so they stay
// testable.
package decision

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"guardian/internal/event"
	"guardian/internal/household"
	"guardian/internal/learning"
)

const (
	frontCameraID = "front-cam"

	// ceremonialBanner prefixes every outgoing message when the household
	// enables ceremonial tone. The exact text is part of the product surface.
	ceremonialBanner = "Ceremonial Steward Alert: "

	// schoolCommuteOffset is the fixed dismissal-to-home travel estimate.
	schoolCommuteOffset = 45 * time.Minute
)

// Engine owns one household's interpretation loop. It reads and mutates the
// household context, writes observations to the learning engine, and tracks
// pending prompt conversations for manual-response correlation.
type Engine struct {
	household *household.Context
	learning  *learning.Engine
	pending   *Conversations
	logger    *slog.Logger
}

func NewEngine(hh *household.Context, learn *learning.Engine, logger *slog.Logger) *Engine {
	return &Engine{
		household: hh,
		learning:  learn,
		pending:   NewConversations(),
		logger:    logger,
	}
}

// PendingConversations reports how many prompts are still awaiting a manual
// response.
func (e *Engine) PendingConversations() int {
	return e.pending.Pending()
}

// Interpret dispatches on the event type and returns zero or more outcomes.
// Unknown event types, unknown device ids, and payloads of the wrong shape
// are deliberately tolerated: the engine returns no outcomes instead of
// failing, since upstream adapters may send shapes it does not know.
func (e *Engine) Interpret(ctx context.Context, evt event.Event) []Outcome {
	switch evt.Type {
	case event.TypeRingMotion, event.TypeRingDoorbell:
		return e.handleRing(evt)
	case event.TypeDoorLock:
		return e.handleLock(evt)
	case event.TypeAppliance:
		return e.handleAppliance(evt)
	case event.TypeCalendar:
		return e.handleCalendar(evt)
	case event.TypeGPS:
		return e.handleGPS(evt)
	case event.TypeManual:
		return e.handleManual(ctx, evt)
	default:
		return nil
	}
}

func (e *Engine) handleRing(evt event.Event) []Outcome {
	payload, ok := evt.Payload.(event.RingPayload)
	if !ok {
		return nil
	}
	cam, ok := e.household.Camera(payload.CameraID)
	if !ok {
		return nil
	}
	if evt.Type == event.TypeRingMotion && cam.ID == frontCameraID {
		return e.promptParent(
			"Leaving detected. Would you like me to arm the home and check locks?",
			[]string{"Arm", "Skip", "AskLater"},
			event.Correlation{Kind: "departure_check"},
		)
	}
	if evt.Type == event.TypeRingDoorbell {
		return e.promptParent(
			"Doorbell rang. Shall I enable Quiet Cabin Mode (soft chime, warm lights)?",
			[]string{"Enable", "Skip"},
			event.Correlation{Kind: "quiet_cabin"},
		)
	}
	return nil
}

func (e *Engine) handleLock(evt event.Event) []Outcome {
	payload, ok := evt.Payload.(event.LockPayload)
	if !ok {
		return nil
	}
	lock, ok := e.household.Lock(payload.LockID)
	if !ok {
		return nil
	}
	lock.Locked = payload.Locked

	if !lock.Locked && payload.Reason == "departure" {
		e.learning.RecordDoorUnlockedDeparture()
		return e.promptParent(
			"Front door is unlocked. Seal the sanctuary?",
			[]string{"Lock", "Skip"},
			event.Correlation{Kind: "lock_reminder", LockID: lock.ID},
		)
	}
	return nil
}

func (e *Engine) handleAppliance(evt event.Event) []Outcome {
	payload, ok := evt.Payload.(event.AppliancePayload)
	if !ok {
		return nil
	}
	app, ok := e.household.Appliance(payload.ApplianceID)
	if !ok {
		return nil
	}
	app.On = payload.On

	if app.On && payload.Reason == "departure" {
		e.learning.RecordApplianceLeftOn()
		return e.promptParent(
			fmt.Sprintf("%s is still on. Would you like a timed reminder or remote shutoff?", app.Name),
			[]string{"RemindIn10", "RemindIn30", "ShutOff", "Skip"},
			event.Correlation{Kind: "appliance_departure", ApplianceID: app.ID},
		)
	}
	if app.On && payload.Safety == "overdue" {
		return e.promptParent(
			fmt.Sprintf("%s has been on longer than usual. Stewardship check recommended.", app.Name),
			[]string{"ShutOff", "KeepOn", "AskLater"},
			event.Correlation{Kind: "appliance_overdue", ApplianceID: app.ID},
		)
	}
	return nil
}

func (e *Engine) handleCalendar(evt event.Event) []Outcome {
	payload, ok := evt.Payload.(event.CalendarPayload)
	if !ok || payload.Kind != "school_dismissal" {
		return nil
	}
	eta := payload.DismissalTime.Add(schoolCommuteOffset).Format("3:04 PM")
	e.learning.LearnChildRoute(payload.ChildID, learning.Route{Route: payload.Route, ETA: eta})

	return e.promptParent(
		fmt.Sprintf("Child departed school. Estimated arrival %s. Prepare home?", eta),
		[]string{"PrepLights", "UnlockDoor", "NoChange"},
		event.Correlation{Kind: "child_eta", ChildID: payload.ChildID, ETA: eta},
	)
}

func (e *Engine) handleGPS(evt event.Event) []Outcome {
	payload, ok := evt.Payload.(event.GPSPayload)
	if !ok {
		return nil
	}

	switch payload.RouteStatus {
	case "store_detour":
		if !e.household.Preferences.ConsentRequiredForChildDetours {
			return nil
		}
		childName := "Child"
		if child, ok := e.household.Member(payload.SubjectID); ok {
			childName = child.Name
		}
		outcomes := e.prompt(payload.SubjectID,
			"You're stopping at the store. Notify parents for quick approval?",
			[]string{"NotifyParents", "Skip"},
			event.Correlation{Kind: "child_detour_request", ChildID: payload.SubjectID},
		)
		return append(outcomes, e.promptParent(
			fmt.Sprintf("%s plans a store detour. Approve?", childName),
			[]string{"Yes", "No"},
			event.Correlation{Kind: "parent_detour_approval", ChildID: payload.SubjectID},
		)...)
	case "arrival_overdue":
		threshold := e.household.Preferences.ArrivalDelayThresholdMinutes
		return e.promptParent(
			fmt.Sprintf("Child arrival overdue beyond %d minutes. Stewardship check recommended.", threshold),
			[]string{"RequestLocation", "Call", "AskLater"},
			event.Correlation{Kind: "arrival_delay"},
		)
	case "arrived_home":
		return e.promptParent(
			"Future Captain has docked — welcome home.",
			[]string{"Acknowledge"},
			event.Correlation{Kind: "child_arrived"},
		)
	}
	return nil
}

// handleManual routes a human response back to the branch that issued the
// prompt. The response must echo the prompt's correlation context exactly;
// a response with no pending matching prompt is logged and dropped so stale
// or mismatched replies stay observable. Unrecognized (kind, action)
// combinations consume the conversation and produce nothing.
func (e *Engine) handleManual(ctx context.Context, evt event.Event) []Outcome {
	payload, ok := evt.Payload.(event.ManualPayload)
	if !ok {
		return nil
	}
	if !e.pending.Resolve(payload.Context) {
		e.logger.WarnContext(ctx, "manual response without pending prompt",
			"kind", payload.Context.Kind,
			"action", payload.Action,
		)
		return nil
	}

	corr := payload.Context
	parent := e.parentID()
	switch corr.Kind {
	case "departure_check":
		switch payload.Action {
		case "Arm":
			return e.feedback(parent, "Home armed. I'll also check locks and appliances.")
		case "AskLater":
			return e.feedback(parent, "Okay — I'll remind you in a few minutes.")
		}
	case "lock_reminder":
		if payload.Action == "Lock" {
			return e.feedback(parent, "Front door locked. Sanctuary sealed.")
		}
	case "appliance_departure":
		if payload.Action == "ShutOff" {
			return e.feedback(parent, "Appliance shut off. Cabin remains safe.")
		}
		if mins, ok := remindMinutes(payload.Action); ok {
			return e.feedback(parent, fmt.Sprintf("I'll remind you in %d minutes.", mins))
		}
	case "appliance_overdue":
		if payload.Action == "ShutOff" {
			return e.feedback(parent, "Appliance shut off.")
		}
	case "child_detour_request":
		if payload.Action == "NotifyParents" {
			return e.feedback(corr.ChildID, "Parents notified. Awaiting quick approval.")
		}
	case "parent_detour_approval":
		switch payload.Action {
		case "Yes":
			return append(
				e.feedback(parent, "Detour approved."),
				e.feedback(corr.ChildID, "Detour approved. Enjoy and stay safe.")...,
			)
		case "No":
			return append(
				e.feedback(parent, "Detour declined."),
				e.feedback(corr.ChildID, "Please come straight home. We'll revisit later.")...,
			)
		}
	case "child_eta":
		switch payload.Action {
		case "PrepLights":
			return e.feedback(parent, "Lights warmed. Sanctuary ready for arrival.")
		case "UnlockDoor":
			return e.feedback(parent, "Door unlocked for quick entry.")
		}
	case "quiet_cabin":
		if payload.Action == "Enable" {
			return e.feedback(parent, "Quiet Cabin Mode enabled: soft chime, warm lights.")
		}
	}
	return nil
}

func remindMinutes(action string) (int, bool) {
	rest, ok := strings.CutPrefix(action, "RemindIn")
	if !ok {
		return 0, false
	}
	mins, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return mins, true
}

// ceremonial wraps a message with the household's ceremonial banner when the
// preference is enabled. Applied uniformly to prompts and feedback.
func (e *Engine) ceremonial(message string) string {
	if e.household.Preferences.CeremonialTone {
		return ceremonialBanner + message
	}
	return message
}

func (e *Engine) parentID() string {
	if parent, ok := e.household.PrimaryParent(); ok {
		return parent.ID
	}
	return ""
}

func (e *Engine) prompt(to, message string, actions []string, corr event.Correlation) []Outcome {
	e.pending.Open(corr)
	return []Outcome{{
		Kind:    OutcomePrompt,
		To:      to,
		Message: e.ceremonial(message),
		Actions: actions,
		Context: &corr,
	}}
}

func (e *Engine) promptParent(message string, actions []string, corr event.Correlation) []Outcome {
	return e.prompt(e.parentID(), message, actions, corr)
}

func (e *Engine) feedback(to, message string) []Outcome {
	return []Outcome{{
		Kind:    OutcomeFeedback,
		To:      to,
		Message: e.ceremonial(message),
	}}
}
