package action

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"guardian/pkg/domainerrors"
	"guardian/pkg/platform/sentinel"
)

func noopRun(_ context.Context, _ Payload) (any, error) { return nil, nil }

func testDefinition(id string) Definition {
	return Definition{
		Desc:    Descriptor{ID: id, Name: "Test Action", Provider: "TestVendor", Scope: ScopeHome},
		RunFunc: noopRun,
	}
}

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry()
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) TestRegisterValidation() {
	s.Run("rejects a missing id", func() {
		def := testDefinition("")
		err := s.registry.Register(def)
		s.Require().Error(err)
		s.Equal(domainerrors.CodeValidation, domainerrors.CodeOf(err))
	})

	s.Run("rejects a missing name", func() {
		def := testDefinition("a.test")
		def.Desc.Name = ""
		err := s.registry.Register(def)
		s.Equal(domainerrors.CodeValidation, domainerrors.CodeOf(err))
	})

	s.Run("rejects a missing run routine", func() {
		def := testDefinition("a.test")
		def.RunFunc = nil
		err := s.registry.Register(def)
		s.Equal(domainerrors.CodeValidation, domainerrors.CodeOf(err))
	})

	s.Run("rejects a duplicate id", func() {
		s.Require().NoError(s.registry.Register(testDefinition("a.test")))
		err := s.registry.Register(testDefinition("a.test"))
		s.Require().Error(err)
		s.Equal(domainerrors.CodeConflict, domainerrors.CodeOf(err))
		s.ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *RegistrySuite) TestLookup() {
	s.Run("returns the registered action by id", func() {
		s.Require().NoError(s.registry.Register(testDefinition("lock.frontDoor")))
		a, err := s.registry.Get("lock.frontDoor")
		s.Require().NoError(err)
		s.Equal("lock.frontDoor", a.Descriptor().ID)
	})

	s.Run("absence is a distinguishable not-found", func() {
		_, err := s.registry.Get("missing")
		s.Require().Error(err)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *RegistrySuite) TestListPreservesRegistrationOrder() {
	for _, id := range []string{"c.third", "a.first", "b.second"} {
		s.Require().NoError(s.registry.Register(testDefinition(id)))
	}
	var ids []string
	for _, a := range s.registry.List() {
		ids = append(ids, a.Descriptor().ID)
	}
	s.Equal([]string{"c.third", "a.first", "b.second"}, ids)
}
