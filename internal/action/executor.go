package action

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"guardian/internal/audit"
	"guardian/internal/platform/metrics"
	"guardian/pkg/domainerrors"
)

// summaryLimit bounds payload and result summaries recorded in audit entries,
// so oversized or sensitive blobs never land verbatim in the trail.
const summaryLimit = 260

// DenialReason labels the expected, recoverable refusals.
type DenialReason string

const (
	DenialConsentMissing    DenialReason = "consent_missing"
	DenialSafetyCheckFailed DenialReason = "safety_check_failed"
)

// Result is the execution envelope. Denials are first-class outcomes, not
// errors: OK is false and Reason is set. Output carries the action's result
// on success.
type Result struct {
	OK     bool         `json:"ok"`
	Reason DenialReason `json:"reason,omitempty"`
	Output any          `json:"result,omitempty"`
}

// Recorder is the audit surface the executor needs.
type Recorder interface {
	Record(ctx context.Context, kind audit.Kind, data map[string]any) (audit.Entry, error)
}

// Executor drives the gated execution state machine: lookup, consent gate,
// safety gate, run, audit. Executions are serialized per action id so a
// registration is fully established before any execution against that id,
// and audit entries for one invocation are never reordered or duplicated.
type Executor struct {
	registry *Registry
	auditor  Recorder
	metrics  *metrics.Metrics
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewExecutor(registry *Registry, auditor Recorder, m *metrics.Metrics, logger *slog.Logger) *Executor {
	return &Executor{
		registry: registry,
		auditor:  auditor,
		metrics:  m,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// RegisterAction inserts the action into the catalog and records the
// registration. Validation failures surface immediately and leave no entry.
func (e *Executor) RegisterAction(ctx context.Context, a Action) (audit.Entry, error) {
	if err := e.registry.Register(a); err != nil {
		return audit.Entry{}, err
	}
	desc := a.Descriptor()
	return e.auditor.Record(ctx, audit.KindActionRegister, map[string]any{
		"actionId": desc.ID,
		"name":     desc.Name,
		"provider": desc.Provider,
		"scope":    string(desc.Scope),
	})
}

// Execute runs the state machine for one invocation. Unknown ids are hard
// failures with no audit entry. Consent and safety denials are audited as
// action_denied and returned as non-error results. A run routine failure is
// audited as action_failed with an error summary and surfaced as an
// execution_failed error.
func (e *Executor) Execute(ctx context.Context, actionID string, payload Payload) (Result, error) {
	start := time.Now()
	ctx, span := otel.Tracer("guardian/action").Start(ctx, "action.execute")
	span.SetAttributes(attribute.String("action.id", actionID))
	defer span.End()

	a, err := e.registry.Get(actionID)
	if err != nil {
		e.metrics.IncrementActionExecution("unknown")
		span.SetStatus(codes.Error, "unknown action")
		return Result{}, err
	}

	lock := e.actionLock(actionID)
	lock.Lock()
	defer lock.Unlock()

	desc := a.Descriptor()
	if desc.RequiresConsent && !payload.ConsentGranted() {
		return e.deny(ctx, span, actionID, DenialConsentMissing)
	}

	safe, err := a.Safety(ctx, payload)
	if err != nil {
		// The predicate itself failing means safety cannot be
		// established; fail closed.
		e.logger.WarnContext(ctx, "safety predicate error", "action_id", actionID, "error", err)
		safe = false
	}
	if !safe {
		return e.deny(ctx, span, actionID, DenialSafetyCheckFailed)
	}

	output, runErr := a.Run(ctx, payload)
	if runErr != nil {
		if _, auditErr := e.auditor.Record(ctx, audit.KindActionFailed, map[string]any{
			"actionId":       actionID,
			"payloadSummary": summarize(payload),
			"error":          truncate(runErr.Error()),
		}); auditErr != nil {
			e.logger.ErrorContext(ctx, "audit record failed", "action_id", actionID, "error", auditErr)
		}
		e.metrics.IncrementActionExecution("failed")
		span.SetStatus(codes.Error, "run failed")
		return Result{}, domainerrors.Wrap(domainerrors.CodeExecutionFailed, "action run failed", runErr)
	}

	if _, err := e.auditor.Record(ctx, audit.KindActionExecute, map[string]any{
		"actionId":       actionID,
		"payloadSummary": summarize(payload),
		"resultSummary":  summarize(output),
	}); err != nil {
		return Result{}, err
	}
	e.metrics.IncrementActionExecution("ok")
	e.metrics.ObserveExecuteLatency(time.Since(start))
	return Result{OK: true, Output: output}, nil
}

type spanRecorder interface {
	SetAttributes(...attribute.KeyValue)
}

func (e *Executor) deny(ctx context.Context, span spanRecorder, actionID string, reason DenialReason) (Result, error) {
	span.SetAttributes(attribute.String("action.denial", string(reason)))
	if _, err := e.auditor.Record(ctx, audit.KindActionDenied, map[string]any{
		"actionId": actionID,
		"reason":   string(reason),
	}); err != nil {
		return Result{}, err
	}
	e.metrics.IncrementActionExecution("denied_" + string(reason))
	return Result{OK: false, Reason: reason}, nil
}

func (e *Executor) actionLock(actionID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[actionID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[actionID] = lock
	}
	return lock
}

// summarize renders a bounded JSON summary of an opaque value for audit
// entries: never the raw object.
func summarize(v any) string {
	if v == nil {
		return "null"
	}
	serialized, err := json.Marshal(v)
	if err != nil {
		return "unserializable"
	}
	return truncate(string(serialized))
}

func truncate(s string) string {
	if len(s) > summaryLimit {
		return s[:summaryLimit-3] + "..."
	}
	return s
}
