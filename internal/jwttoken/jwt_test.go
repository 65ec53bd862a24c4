package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"guardian/pkg/domainerrors"
)

type JWTSuite struct {
	suite.Suite
	service *Service
}

func (s *JWTSuite) SetupTest() {
	s.service = NewService("test-signing-key", "guardian")
}

func TestJWTSuite(t *testing.T) {
	suite.Run(t, new(JWTSuite))
}

func (s *JWTSuite) TestRoundTrip() {
	token, err := s.service.GenerateAccessToken("parent-1", time.Hour)
	s.Require().NoError(err)

	claims, err := s.service.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal("parent-1", claims.MemberID)
}

func (s *JWTSuite) TestExpiredToken() {
	token, err := s.service.GenerateAccessToken("parent-1", -time.Minute)
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(token)
	s.Require().Error(err)
	s.Equal(domainerrors.CodeUnauthorized, domainerrors.CodeOf(err))
	s.Contains(err.Error(), "expired")
}

func (s *JWTSuite) TestWrongKey() {
	other := NewService("different-key", "guardian")
	token, err := other.GenerateAccessToken("parent-1", time.Hour)
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(token)
	s.Require().Error(err)
	s.Equal(domainerrors.CodeUnauthorized, domainerrors.CodeOf(err))
}

func (s *JWTSuite) TestGarbageToken() {
	_, err := s.service.ValidateToken("not.a.token")
	s.Require().Error(err)
	s.Equal(domainerrors.CodeUnauthorized, domainerrors.CodeOf(err))
}
