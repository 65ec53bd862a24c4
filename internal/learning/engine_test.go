package learning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type EngineSuite struct {
	suite.Suite
	engine *Engine
}

func (s *EngineSuite) SetupTest() {
	s.engine = NewEngine()
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) TestUsualDepartureHour() {
	s.Run("is nil before any departure", func() {
		s.Nil(NewEngine().Insights().UsualDepartureHour)
	})

	s.Run("equals the hour of a single departure", func() {
		engine := NewEngine()
		engine.RecordDeparture(time.Date(2025, 3, 10, 8, 15, 0, 0, time.UTC))
		insights := engine.Insights()
		s.Require().NotNil(insights.UsualDepartureHour)
		s.Equal(8, *insights.UsualDepartureHour)
	})

	s.Run("rounds the mean half up", func() {
		engine := NewEngine()
		// Hours 8 and 9: mean 8.5 rounds to 9.
		engine.RecordDeparture(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
		engine.RecordDeparture(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC))
		insights := engine.Insights()
		s.Require().NotNil(insights.UsualDepartureHour)
		s.Equal(9, *insights.UsualDepartureHour)
	})
}

func (s *EngineSuite) TestRiskLevels() {
	s.Run("normal at or below the threshold", func() {
		engine := NewEngine()
		engine.RecordDoorUnlockedDeparture()
		engine.RecordDoorUnlockedDeparture()
		s.Equal(RiskNormal, engine.Insights().LockRisk)
	})

	s.Run("elevated strictly above the threshold", func() {
		engine := NewEngine()
		for range 3 {
			engine.RecordDoorUnlockedDeparture()
		}
		s.Equal(RiskElevated, engine.Insights().LockRisk)
	})

	s.Run("appliance counter is independent of lock counter", func() {
		engine := NewEngine()
		for range 3 {
			engine.RecordApplianceLeftOn()
		}
		insights := engine.Insights()
		s.Equal(RiskElevated, insights.ApplianceRisk)
		s.Equal(RiskNormal, insights.LockRisk)
	})
}

func (s *EngineSuite) TestChildRoutes() {
	s.Run("overwrites the prior route for the same child", func() {
		s.engine.LearnChildRoute("child-1", Route{Route: "school->home", ETA: "3:45 PM"})
		s.engine.LearnChildRoute("child-1", Route{Route: "school->store->home", ETA: "4:10 PM"})
		routes := s.engine.Insights().ChildRoutes
		s.Len(routes, 1)
		s.Equal("school->store->home", routes["child-1"].Route)
	})

	s.Run("snapshot is a copy", func() {
		s.engine.LearnChildRoute("child-1", Route{Route: "school->home", ETA: "3:45 PM"})
		routes := s.engine.Insights().ChildRoutes
		routes["child-1"] = Route{Route: "tampered"}
		s.Equal("school->home", s.engine.Insights().ChildRoutes["child-1"].Route)
	})
}
