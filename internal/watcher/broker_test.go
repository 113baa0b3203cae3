package watcher

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/testutil"
)

type recordingSub struct {
	mu     sync.Mutex
	events []string
	joined chan struct{}
}

func newRecordingSub() *recordingSub {
	return &recordingSub{joined: make(chan struct{}, 64)}
}

func (r *recordingSub) record(e string) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recordingSub) OnJoin(name, address string) {
	r.record("join:" + name + "@" + address)
	r.joined <- struct{}{}
}

func (r *recordingSub) OnLeave(name string)         { r.record("leave:" + name) }
func (r *recordingSub) OnMessage(name, text string) { r.record("msg:" + name + ":" + text) }
func (r *recordingSub) OnOther(raw string)          { r.record("other:" + raw) }

func (r *recordingSub) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type BrokerSuite struct {
	suite.Suite
	broker *Broker
	sub    *recordingSub
}

func TestBrokerSuite(t *testing.T) {
	suite.Run(t, new(BrokerSuite))
}

func (s *BrokerSuite) SetupTest() {
	s.broker = NewBroker(testutil.NopLogger())
	s.sub = newRecordingSub()
	s.broker.Subscribe(s.sub)
}

func (s *BrokerSuite) TearDownTest() {
	s.broker.Close()
}

func (s *BrokerSuite) waitForJoin() {
	select {
	case <-s.sub.joined:
	case <-time.After(time.Second):
		s.FailNow("timed out waiting for join delivery")
	}
}

func (s *BrokerSuite) TestDeliveryPreservesArrivalOrder() {
	s.broker.Join("Alice", "10.0.0.1")
	s.broker.Message("Alice", "hello")
	s.broker.Leave("Alice")
	s.broker.Close()

	s.Equal([]string{
		"join:Alice@10.0.0.1",
		"msg:Alice:hello",
		"leave:Alice",
	}, s.sub.recorded())
}

func (s *BrokerSuite) TestOnlineSetTracksJoinAndLeave() {
	s.broker.Join("Alice", "10.0.0.1")
	s.waitForJoin()
	s.True(s.broker.Online().Contains(model.Canonical("ALICE")))

	s.broker.Leave("alice")
	s.broker.Close()
	s.False(s.broker.Online().Contains("alice"))
}

func (s *BrokerSuite) TestOnlineSetIsUpdatedBeforeDelivery() {
	seen := make(chan bool, 1)
	s.broker.Subscribe(&funcSub{onJoin: func(name, _ string) {
		seen <- s.broker.Online().Contains(model.Canonical(name))
	}})

	s.broker.Join("Alice", "10.0.0.1")
	select {
	case online := <-seen:
		s.True(online)
	case <-time.After(time.Second):
		s.FailNow("timed out waiting for join delivery")
	}
}

func (s *BrokerSuite) TestOtherEventsDelivered() {
	s.broker.Other("garbled line")
	s.broker.Close()
	s.Equal([]string{"other:garbled line"}, s.sub.recorded())
}

func (s *BrokerSuite) TestOnlineNamesInsertionOrder() {
	s.broker.Join("Charlie", "10.0.0.3")
	s.broker.Join("Alice", "10.0.0.1")
	s.broker.Join("Bob", "10.0.0.2")
	s.broker.Close()

	s.Equal([]model.PlayerName{"charlie", "alice", "bob"}, s.broker.Online().Names())
}

// funcSub adapts a join callback into an Events subscriber
type funcSub struct {
	onJoin func(name, address string)
}

func (f *funcSub) OnJoin(name, address string) {
	if f.onJoin != nil {
		f.onJoin(name, address)
	}
}

func (f *funcSub) OnLeave(string)           {}
func (f *funcSub) OnMessage(string, string) {}
func (f *funcSub) OnOther(string)           {}
