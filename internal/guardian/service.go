// Package guardian orchestrates the event loop: it is the sole bus subscriber
// of interest, feeding events through the decision engine and handing the
// resulting outcomes to a dispatcher for delivery.
package guardian

import (
	"context"
	"log/slog"
	"sync"

	"guardian/internal/decision"
	"guardian/internal/event"
	"guardian/internal/learning"
	"guardian/internal/platform/metrics"
)

// Dispatcher delivers outcomes to their recipients. Delivery success or
// failure is not fed back into the core.
type Dispatcher interface {
	Deliver(ctx context.Context, outcomes []decision.Outcome)
}

// Service serializes event processing: one event is fully interpreted,
// including its device-state mutations and learning writes, before the next
// begins. This keeps the household context single-writer per tick.
type Service struct {
	mu         sync.Mutex
	engine     *decision.Engine
	learning   *learning.Engine
	dispatcher Dispatcher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewService(engine *decision.Engine, learn *learning.Engine, dispatcher Dispatcher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		engine:     engine,
		learning:   learn,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
	}
}

// Bind subscribes the service to the bus.
func (s *Service) Bind(bus *event.Bus) {
	bus.Subscribe(func(ctx context.Context, evt event.Event) {
		s.HandleEvent(ctx, evt)
	})
}

// HandleEvent processes one event end to end and returns the outcomes it
// produced. Motion on the ring camera doubles as a departure observation for
// the learning engine before interpretation.
func (s *Service) HandleEvent(ctx context.Context, evt event.Event) []decision.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	if evt.Type == event.TypeRingMotion {
		s.learning.RecordDeparture(evt.Timestamp)
	}

	outcomes := s.engine.Interpret(ctx, evt)
	s.metrics.IncrementEventInterpreted(string(evt.Type))
	for _, out := range outcomes {
		s.metrics.IncrementOutcomeProduced(string(out.Kind))
	}
	if len(outcomes) == 0 {
		return nil
	}

	s.logger.InfoContext(ctx, "event interpreted",
		"type", evt.Type,
		"outcomes", len(outcomes),
	)
	if s.dispatcher != nil {
		s.dispatcher.Deliver(ctx, outcomes)
	}
	return outcomes
}
