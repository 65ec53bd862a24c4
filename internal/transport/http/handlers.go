package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"guardian/internal/action"
	"guardian/internal/audit"
	"guardian/internal/decision"
	"guardian/internal/event"
	"guardian/internal/guardian"
	"guardian/internal/household"
	"guardian/internal/learning"
	"guardian/internal/platform/middleware"
	"guardian/pkg/domainerrors"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	logger    *slog.Logger
	guardian  *guardian.Service
	learning  *learning.Engine
	household *household.Context
	registry  *action.Registry
	executor  *action.Executor
	auditor   *audit.Auditor
}

func NewHandler(
	svc *guardian.Service,
	learn *learning.Engine,
	hh *household.Context,
	registry *action.Registry,
	executor *action.Executor,
	auditor *audit.Auditor,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		logger:    logger,
		guardian:  svc,
		learning:  learn,
		household: hh,
		registry:  registry,
		executor:  executor,
		auditor:   auditor,
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// eventEnvelope is the ingestion wire shape: a type discriminator plus the
// raw payload decoded per type.
type eventEnvelope struct {
	Type    event.Type      `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// handleIngestEvent accepts one event, runs it through the guardian loop, and
// echoes the produced outcomes. Unknown event types are tolerated and yield
// an empty outcome list, matching the engine's permissiveness.
func (h *Handler) handleIngestEvent(w http.ResponseWriter, r *http.Request) {
	var envelope eventEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeValidation, "malformed event"))
		return
	}
	payload, err := decodePayload(envelope.Type, envelope.Payload)
	if err != nil {
		writeError(w, err)
		return
	}

	outcomes := h.guardian.HandleEvent(r.Context(), event.New(envelope.Type, payload))
	if outcomes == nil {
		outcomes = []decision.Outcome{}
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"outcomes": outcomes})
}

func decodePayload(t event.Type, raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var target any
	switch t {
	case event.TypeRingMotion, event.TypeRingDoorbell:
		target = &event.RingPayload{}
	case event.TypeDoorLock:
		target = &event.LockPayload{}
	case event.TypeAppliance:
		target = &event.AppliancePayload{}
	case event.TypeCalendar:
		target = &event.CalendarPayload{}
	case event.TypeGPS:
		target = &event.GPSPayload{}
	case event.TypeManual:
		target = &event.ManualPayload{}
	default:
		// Unknown upstream shape: pass through, the engine ignores it.
		return nil, nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeValidation, "malformed event payload", err)
	}
	switch p := target.(type) {
	case *event.RingPayload:
		return *p, nil
	case *event.LockPayload:
		return *p, nil
	case *event.AppliancePayload:
		return *p, nil
	case *event.CalendarPayload:
		return *p, nil
	case *event.GPSPayload:
		return *p, nil
	case *event.ManualPayload:
		return *p, nil
	}
	return nil, nil
}

func (h *Handler) handleInsights(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.learning.Insights())
}

func (h *Handler) handleHousehold(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.household)
}

func (h *Handler) handleListActions(w http.ResponseWriter, _ *http.Request) {
	actions := h.registry.List()
	descriptors := make([]action.Descriptor, 0, len(actions))
	for _, a := range actions {
		descriptors = append(descriptors, a.Descriptor())
	}
	writeJSON(w, http.StatusOK, map[string]any{"actions": descriptors})
}

func (h *Handler) handleExecuteAction(w http.ResponseWriter, r *http.Request) {
	actionID := chi.URLParam(r, "actionID")
	var payload action.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, domainerrors.New(domainerrors.CodeValidation, "malformed payload"))
		return
	}

	result, err := h.executor.Execute(r.Context(), actionID, payload)
	if err != nil {
		h.logger.WarnContext(r.Context(), "action execution failed",
			"action_id", actionID,
			"member_id", middleware.GetMemberID(r.Context()),
			"error", err,
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAuditEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.auditor.Entries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) handleAuditReport(w http.ResponseWriter, r *http.Request) {
	signed, err := h.auditor.GenerateSignedReport(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, signed)
}
