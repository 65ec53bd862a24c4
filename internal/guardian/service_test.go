package guardian

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"guardian/internal/decision"
	"guardian/internal/event"
	"guardian/internal/household"
	"guardian/internal/learning"
)

// capturingDispatcher records every delivered batch.
type capturingDispatcher struct {
	batches [][]decision.Outcome
}

func (d *capturingDispatcher) Deliver(_ context.Context, outcomes []decision.Outcome) {
	d.batches = append(d.batches, outcomes)
}

type ServiceSuite struct {
	suite.Suite
	learning   *learning.Engine
	dispatcher *capturingDispatcher
	service    *Service
}

func (s *ServiceSuite) SetupTest() {
	logger := slog.New(slog.DiscardHandler)
	s.learning = learning.NewEngine()
	s.dispatcher = &capturingDispatcher{}
	engine := decision.NewEngine(household.Default(), s.learning, logger)
	s.service = NewService(engine, s.learning, s.dispatcher, nil, logger)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) TestRingMotionFeedsLearning() {
	evt := event.Event{
		Type:      event.TypeRingMotion,
		Payload:   event.RingPayload{CameraID: "front-cam"},
		Timestamp: time.Date(2026, time.March, 2, 8, 12, 0, 0, time.UTC),
	}

	outcomes := s.service.HandleEvent(context.Background(), evt)

	s.Require().Len(outcomes, 1)
	insights := s.learning.Insights()
	s.Require().NotNil(insights.UsualDepartureHour)
	s.Equal(8, *insights.UsualDepartureHour)
}

func (s *ServiceSuite) TestOutcomesReachTheDispatcher() {
	evt := event.New(event.TypeRingDoorbell, event.RingPayload{CameraID: "front-cam"})

	outcomes := s.service.HandleEvent(context.Background(), evt)

	s.Require().Len(s.dispatcher.batches, 1)
	s.Equal(outcomes, s.dispatcher.batches[0])
}

func (s *ServiceSuite) TestSilentEventsSkipDelivery() {
	evt := event.New(event.TypeRingMotion, event.RingPayload{CameraID: "backyard-cam"})

	outcomes := s.service.HandleEvent(context.Background(), evt)

	s.Nil(outcomes)
	s.Empty(s.dispatcher.batches)
}

func (s *ServiceSuite) TestBindSubscribesToTheBus() {
	bus := event.NewBus()
	s.service.Bind(bus)

	bus.Emit(context.Background(), event.New(event.TypeRingDoorbell, event.RingPayload{CameraID: "front-cam"}))

	s.Require().Len(s.dispatcher.batches, 1)
}
