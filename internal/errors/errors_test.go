package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/villainous-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestErrorString() {
	err := errors.NotFound("game not found")
	s.Equal("NOT_FOUND: game not found", err.Error())

	wrapped := errors.Wrap(fmt.Errorf("connection reset"), "failed to load game")
	s.Equal("INTERNAL: failed to load game: connection reset", wrapped.Error())
}

func (s *ErrorsTestSuite) TestWrapKeepsCodeAndMeta() {
	base := errors.NotFound("game not found").WithMeta("game_id", "game_1")
	wrapped := errors.Wrap(base, "failed to get game")

	s.Equal(errors.CodeNotFound, wrapped.Code)
	s.Equal("game_1", wrapped.Meta["game_id"])
	s.True(stderrors.Is(wrapped, base))
	s.Nil(errors.Wrap(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	base := errors.NotFound("player not found")
	wrapped := errors.WrapWithCode(base, errors.CodeFailedPrecondition, "cannot start game")

	s.Equal(errors.CodeFailedPrecondition, wrapped.Code)
	s.Equal("cannot start game", errors.GetMessage(wrapped))
}

func (s *ErrorsTestSuite) TestConstructors() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"AlreadyExists", func() *errors.Error { return errors.AlreadyExists("test") }, errors.CodeAlreadyExists},
		{"PermissionDenied", func() *errors.Error { return errors.PermissionDenied("test") }, errors.CodePermissionDenied},
		{"ResourceExhausted", func() *errors.Error { return errors.ResourceExhausted("test") }, errors.CodeResourceExhausted},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unimplemented", func() *errors.Error { return errors.Unimplemented("test") }, errors.CodeUnimplemented},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Equal(tc.code, err.Code)
			s.Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestHelpers() {
	notFound := errors.NotFoundf("game %s not found", "game_1")
	wrapped := errors.Wrap(notFound, "wrapped")

	s.True(errors.IsNotFound(wrapped))
	s.False(errors.IsInvalidArgument(wrapped))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal("game game_1 not found", errors.GetMessage(notFound))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
	s.Nil(errors.GetMeta(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.FailedPrecondition("not your turn").
		WithMeta("player_id", "player_2").
		WithMeta("positions", []int{1, 2})

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.FailedPrecondition, st.Code())
	s.Equal("not your turn", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Equal(errors.CodeFailedPrecondition, errors.GetCode(back))
	s.Equal("player_2", errors.GetMeta(back)["player_id"])
	s.Equal([]any{float64(1), float64(2)}, errors.GetMeta(back)["positions"])
}

func (s *ErrorsTestSuite) TestGRPCPlainErrors() {
	st, ok := status.FromError(errors.ToGRPCError(fmt.Errorf("boom")))
	s.Require().True(ok)
	s.Equal(codes.Internal, st.Code())

	back := errors.FromGRPCError(status.Error(codes.InvalidArgument, "bad input"))
	s.True(errors.IsInvalidArgument(back))
	s.Equal("bad input", errors.GetMessage(back))

	s.Equal(codes.OK, errors.GRPCStatus(nil).Code())
	s.Equal(codes.NotFound, errors.GRPCStatus(errors.NotFound("x")).Code())
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodeFailedPrecondition, codes.FailedPrecondition},
		{errors.CodeResourceExhausted, codes.ResourceExhausted},
		{errors.CodeInternal, codes.Internal},
		{errors.Code("SOMETHING_ELSE"), codes.Unknown},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
