package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/testutil"
)

type DispatcherSuite struct {
	suite.Suite
	dispatcher *Dispatcher
	ctx        context.Context
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.dispatcher = New("/", testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *DispatcherSuite) player(name string) model.PlayerView {
	return model.PlayerView{Name: model.Canonical(name)}
}

func (s *DispatcherSuite) TestDispatchInvokesHandlerWithArgs() {
	var gotPlayer model.PlayerView
	var gotArgs string
	err := s.dispatcher.Register("kick", func(_ context.Context, p model.PlayerView, args string) {
		gotPlayer = p
		gotArgs = args
	})
	s.Require().NoError(err)

	invoked := s.dispatcher.Dispatch(s.ctx, s.player("Admin"), "/kick griefer")
	s.True(invoked)
	s.Equal(model.PlayerName("admin"), gotPlayer.Name)
	s.Equal("griefer", gotArgs)
}

func (s *DispatcherSuite) TestDispatchNoArgs() {
	var gotArgs string
	_ = s.dispatcher.Register("help", func(_ context.Context, _ model.PlayerView, args string) {
		gotArgs = args
	})

	s.True(s.dispatcher.Dispatch(s.ctx, s.player("Alice"), "/help"))
	s.Equal("", gotArgs)
}

func (s *DispatcherSuite) TestTokenIsCaseInsensitive() {
	var invocations int
	_ = s.dispatcher.Register("Kick", func(context.Context, model.PlayerView, string) {
		invocations++
	})

	s.True(s.dispatcher.Dispatch(s.ctx, s.player("Alice"), "/KICK griefer"))
	s.True(s.dispatcher.Dispatch(s.ctx, s.player("Alice"), "/kick griefer"))
	s.Equal(2, invocations)
}

func (s *DispatcherSuite) TestUnknownCommandIsSilentlyIgnored() {
	s.False(s.dispatcher.Dispatch(s.ctx, s.player("Alice"), "/unknown x"))
}

func (s *DispatcherSuite) TestPlainChatIsNotDispatched() {
	invoked := false
	_ = s.dispatcher.Register("kick", func(context.Context, model.PlayerView, string) {
		invoked = true
	})

	s.False(s.dispatcher.Dispatch(s.ctx, s.player("Alice"), "hello /kick"))
	s.False(s.dispatcher.Dispatch(s.ctx, s.player("Alice"), "/ kick griefer"))
	s.False(s.dispatcher.Dispatch(s.ctx, s.player("Alice"), "/"))
	s.False(invoked)
}

func (s *DispatcherSuite) TestDuplicateRegistrationFails() {
	first := 0
	err := s.dispatcher.Register("kick", func(context.Context, model.PlayerView, string) {
		first++
	})
	s.Require().NoError(err)

	err = s.dispatcher.Register("KICK", func(context.Context, model.PlayerView, string) {
		s.FailNow("replacement handler must not be installed")
	})
	s.ErrorIs(err, model.ErrDuplicateCommand)

	// Original handler remains active
	s.True(s.dispatcher.Dispatch(s.ctx, s.player("Alice"), "/kick x"))
	s.Equal(1, first)
}

func (s *DispatcherSuite) TestUnregisterIsIdempotent() {
	_ = s.dispatcher.Register("kick", func(context.Context, model.PlayerView, string) {})
	s.dispatcher.Unregister("kick")
	s.dispatcher.Unregister("kick")

	s.False(s.dispatcher.Dispatch(s.ctx, s.player("Alice"), "/kick x"))

	// Token is free for re-registration after unregister
	s.NoError(s.dispatcher.Register("kick", func(context.Context, model.PlayerView, string) {}))
}

func (s *DispatcherSuite) TestCustomPrefix() {
	d := New("!", testutil.NopLogger())
	invoked := false
	_ = d.Register("ping", func(context.Context, model.PlayerView, string) {
		invoked = true
	})

	s.False(d.Dispatch(s.ctx, s.player("Alice"), "/ping"))
	s.True(d.Dispatch(s.ctx, s.player("Alice"), "!ping"))
	s.True(invoked)
}
