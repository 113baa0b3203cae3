package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lmehner/blockworld/internal/config"
	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/testutil"
)

// IntegrationSuite exercises the fully wired application against the
// loopback console.
type IntegrationSuite struct {
	suite.Suite
	app *App
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.ctx = context.Background()

	var err error
	s.app, err = New(s.ctx, config.Config{
		StorageType:   StorageTypeMemory,
		CommandPrefix: "/",
		ServerName:    "testworld",
		OwnerName:     "Steve",
	}, Options{Logger: testutil.NopLogger()})
	s.Require().NoError(err)
}

func (s *IntegrationSuite) TearDownTest() {
	_ = s.app.Close()
}

func (s *IntegrationSuite) TestOwnerSeededFromLoopbackOverview() {
	s.Eventually(func() bool {
		return s.app.World.Player("steve").IsOwner
	}, 2*time.Second, 5*time.Millisecond)
}

func (s *IntegrationSuite) TestJoinFlowsThroughToWorld() {
	s.app.Broker.Join("Alice", "10.0.0.1")
	s.Eventually(func() bool {
		return s.app.World.Player("alice").JoinCount == 1
	}, 2*time.Second, 5*time.Millisecond)
	s.Contains(s.app.World.Online(), model.PlayerName("alice"))
}

func (s *IntegrationSuite) TestSendLoopsBackAsServerChat() {
	messages := make(chan model.MessageEvent, 1)
	s.app.World.OnMessageEvent(func(e model.MessageEvent) { messages <- e })

	s.Require().NoError(s.app.World.Send(s.ctx, "welcome"))

	select {
	case e := <-messages:
		s.Equal(model.PlayerName("server"), e.Player.Name)
		s.Equal("welcome", e.Text)
	case <-time.After(2 * time.Second):
		s.FailNow("sent message did not loop back")
	}

	// And it landed in the log tail
	logs, err := s.app.World.Logs(s.ctx, true)
	s.Require().NoError(err)
	s.Require().NotEmpty(logs)
	s.Contains(logs[len(logs)-1].Text, "welcome")
}

func (s *IntegrationSuite) TestListRoundTrip() {
	err := s.app.World.SetLists(s.ctx, model.ListUpdate{Adminlist: []string{"Alice"}})
	s.Require().NoError(err)

	lists, err := s.app.World.Lists(s.ctx, false)
	s.Require().NoError(err)
	s.Equal([]string{"Alice"}, lists.Adminlist)
	s.True(s.app.World.Player("alice").IsAdmin)
}
