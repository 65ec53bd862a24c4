package action

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"guardian/internal/audit"
	"guardian/pkg/domainerrors"
	"guardian/pkg/platform/sentinel"
)

// recordingAuditor captures audit entries without a real store behind it.
type recordingAuditor struct {
	entries []audit.Entry
	failNow bool
}

func (r *recordingAuditor) Record(_ context.Context, kind audit.Kind, data map[string]any) (audit.Entry, error) {
	if r.failNow {
		return audit.Entry{}, sentinel.ErrUnavailable
	}
	entry := audit.Entry{ID: uuid.NewString(), Kind: kind, Data: data}
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *recordingAuditor) ofKind(kind audit.Kind) []audit.Entry {
	var out []audit.Entry
	for _, e := range r.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type ExecutorSuite struct {
	suite.Suite
	auditor  *recordingAuditor
	executor *Executor
}

func (s *ExecutorSuite) SetupTest() {
	s.auditor = &recordingAuditor{}
	logger := slog.New(slog.DiscardHandler)
	s.executor = NewExecutor(NewRegistry(), s.auditor, nil, logger)
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(ExecutorSuite))
}

func (s *ExecutorSuite) register(def Definition) {
	_, err := s.executor.RegisterAction(context.Background(), def)
	s.Require().NoError(err)
}

func (s *ExecutorSuite) TestRegisterAction() {
	s.Run("records a registration entry with the descriptor fields", func() {
		s.register(Definition{
			Desc:    Descriptor{ID: "lock.frontDoor", Name: "Lock Front Door", Provider: "RingLock", Scope: ScopeHome},
			RunFunc: noopRun,
		})
		entries := s.auditor.ofKind(audit.KindActionRegister)
		s.Require().Len(entries, 1)
		s.Equal("lock.frontDoor", entries[0].Data["actionId"])
		s.Equal("Lock Front Door", entries[0].Data["name"])
		s.Equal("RingLock", entries[0].Data["provider"])
		s.Equal("home", entries[0].Data["scope"])
	})

	s.Run("a rejected registration leaves no entry", func() {
		_, err := s.executor.RegisterAction(context.Background(), Definition{Desc: Descriptor{ID: "bad"}})
		s.Require().Error(err)
		s.Len(s.auditor.ofKind(audit.KindActionRegister), 1)
	})
}

func (s *ExecutorSuite) TestUnknownAction() {
	_, err := s.executor.Execute(context.Background(), "nonexistent", Payload{})

	s.Require().Error(err)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.Empty(s.auditor.entries, "unknown ids must not produce audit entries")
}

func (s *ExecutorSuite) TestConsentGate() {
	invoked := false
	s.register(Definition{
		Desc: Descriptor{ID: "appliance.shutOff", Name: "Shut Off Appliance", Provider: "SmartPlug", Scope: ScopeDevice, RequiresConsent: true},
		RunFunc: func(_ context.Context, _ Payload) (any, error) {
			invoked = true
			return nil, nil
		},
	})

	s.Run("missing consent is denied and audited exactly once", func() {
		result, err := s.executor.Execute(context.Background(), "appliance.shutOff", Payload{"applianceId": "oven"})

		s.Require().NoError(err)
		s.False(result.OK)
		s.Equal(DenialConsentMissing, result.Reason)
		s.False(invoked, "run must not execute without consent")

		denied := s.auditor.ofKind(audit.KindActionDenied)
		s.Require().Len(denied, 1)
		s.Equal("appliance.shutOff", denied[0].Data["actionId"])
		s.Equal("consent_missing", denied[0].Data["reason"])
		s.Empty(s.auditor.ofKind(audit.KindActionExecute))
	})

	s.Run("granted consent proceeds", func() {
		result, err := s.executor.Execute(context.Background(), "appliance.shutOff", Payload{"applianceId": "oven", "consentGranted": true})

		s.Require().NoError(err)
		s.True(result.OK)
		s.True(invoked)
	})
}

func (s *ExecutorSuite) TestSafetyGate() {
	s.Run("a failing predicate denies before run", func() {
		invoked := false
		s.register(Definition{
			Desc:        Descriptor{ID: "guarded", Name: "Guarded", Provider: "Test", Scope: ScopeHome},
			SafetyCheck: func(_ context.Context, _ Payload) (bool, error) { return false, nil },
			RunFunc: func(_ context.Context, _ Payload) (any, error) {
				invoked = true
				return nil, nil
			},
		})

		result, err := s.executor.Execute(context.Background(), "guarded", Payload{})

		s.Require().NoError(err)
		s.False(result.OK)
		s.Equal(DenialSafetyCheckFailed, result.Reason)
		s.False(invoked)

		denied := s.auditor.ofKind(audit.KindActionDenied)
		s.Require().Len(denied, 1)
		s.Equal("safety_check_failed", denied[0].Data["reason"])
	})

	s.Run("a predicate error fails closed", func() {
		s.register(Definition{
			Desc:        Descriptor{ID: "flaky", Name: "Flaky", Provider: "Test", Scope: ScopeHome},
			SafetyCheck: func(_ context.Context, _ Payload) (bool, error) { return true, errors.New("sensor offline") },
			RunFunc:     noopRun,
		})

		result, err := s.executor.Execute(context.Background(), "flaky", Payload{})

		s.Require().NoError(err)
		s.False(result.OK)
		s.Equal(DenialSafetyCheckFailed, result.Reason)
	})
}

func (s *ExecutorSuite) TestSuccessfulExecution() {
	s.register(Definition{
		Desc: Descriptor{ID: "notify.prompt", Name: "Notify", Provider: "Push", Scope: ScopeFamily},
		RunFunc: func(_ context.Context, p Payload) (any, error) {
			return map[string]any{"delivered": true, "to": p["to"]}, nil
		},
	})

	result, err := s.executor.Execute(context.Background(), "notify.prompt", Payload{"to": "parent-1"})

	s.Require().NoError(err)
	s.True(result.OK)
	s.Empty(result.Reason)
	output, ok := result.Output.(map[string]any)
	s.Require().True(ok)
	s.Equal(true, output["delivered"])

	executed := s.auditor.ofKind(audit.KindActionExecute)
	s.Require().Len(executed, 1)
	s.Equal("notify.prompt", executed[0].Data["actionId"])
	s.Contains(executed[0].Data["payloadSummary"], `"to":"parent-1"`)
	s.Contains(executed[0].Data["resultSummary"], `"delivered":true`)
}

func (s *ExecutorSuite) TestRunFailure() {
	s.register(Definition{
		Desc: Descriptor{ID: "brittle", Name: "Brittle", Provider: "Test", Scope: ScopeHome},
		RunFunc: func(_ context.Context, _ Payload) (any, error) {
			return nil, errors.New("device unreachable")
		},
	})

	_, err := s.executor.Execute(context.Background(), "brittle", Payload{})

	s.Require().Error(err)
	s.Equal(domainerrors.CodeExecutionFailed, domainerrors.CodeOf(err))

	failed := s.auditor.ofKind(audit.KindActionFailed)
	s.Require().Len(failed, 1)
	s.Equal("brittle", failed[0].Data["actionId"])
	s.Equal("device unreachable", failed[0].Data["error"])
	s.Empty(s.auditor.ofKind(audit.KindActionExecute))
}

func (s *ExecutorSuite) TestSummaryTruncation() {
	s.register(Definition{
		Desc: Descriptor{ID: "verbose", Name: "Verbose", Provider: "Test", Scope: ScopeHome},
		RunFunc: func(_ context.Context, _ Payload) (any, error) {
			return strings.Repeat("x", 1000), nil
		},
	})

	_, err := s.executor.Execute(context.Background(), "verbose", Payload{"blob": strings.Repeat("y", 1000)})
	s.Require().NoError(err)

	executed := s.auditor.ofKind(audit.KindActionExecute)
	s.Require().Len(executed, 1)
	payloadSummary, _ := executed[0].Data["payloadSummary"].(string)
	resultSummary, _ := executed[0].Data["resultSummary"].(string)
	s.LessOrEqual(len(payloadSummary), 260)
	s.LessOrEqual(len(resultSummary), 260)
	s.True(strings.HasSuffix(payloadSummary, "..."))
	s.True(strings.HasSuffix(resultSummary, "..."))
}

func (s *ExecutorSuite) TestAuditFailurePropagates() {
	s.register(Definition{
		Desc:    Descriptor{ID: "plain", Name: "Plain", Provider: "Test", Scope: ScopeHome},
		RunFunc: noopRun,
	})

	s.auditor.failNow = true
	_, err := s.executor.Execute(context.Background(), "plain", Payload{})
	s.ErrorIs(err, sentinel.ErrUnavailable)
}
