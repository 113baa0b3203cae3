package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/lmehner/blockworld/internal/model"
	"github.com/lmehner/blockworld/internal/storage/memory"
	"github.com/lmehner/blockworld/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	storage  *memory.Storage
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.storage = memory.New()
	s.ctx = context.Background()

	var err error
	s.registry, err = New(s.ctx, s.storage, testutil.NopLogger())
	s.Require().NoError(err)
}

func (s *RegistrySuite) TestGetUnknownPlayerIsZeroValued() {
	record := s.registry.Get("Nobody")
	s.Equal(model.PlayerName("nobody"), record.Name)
	s.Equal(0, record.JoinCount)
	s.Empty(record.AddressHistory)
	s.False(record.IsOwner)
}

func (s *RegistrySuite) TestGetDoesNotInsert() {
	_ = s.registry.Get("Nobody")
	s.Empty(s.registry.Names())
}

func (s *RegistrySuite) TestRecordJoinCountsEveryJoin() {
	for i := 0; i < 5; i++ {
		s.registry.RecordJoin("Alice", "10.0.0.1")
	}
	s.Equal(5, s.registry.Get("alice").JoinCount)
}

func (s *RegistrySuite) TestRecordJoinIsCaseInsensitive() {
	s.registry.RecordJoin("Alice", "10.0.0.1")
	s.registry.RecordJoin("ALICE", "10.0.0.2")

	record := s.registry.Get("aLiCe")
	s.Equal(2, record.JoinCount)
	s.Equal("10.0.0.2", record.LastAddress)
}

func (s *RegistrySuite) TestAddressHistoryIsASet() {
	s.registry.RecordJoin("Alice", "10.0.0.1")
	s.registry.RecordJoin("Alice", "10.0.0.2")
	s.registry.RecordJoin("Alice", "10.0.0.1")

	record := s.registry.Get("alice")
	s.ElementsMatch([]string{"10.0.0.1", "10.0.0.2"}, record.AddressHistory)
	s.Equal("10.0.0.1", record.LastAddress)
}

func (s *RegistrySuite) TestMarkOwnerCreatesRecord() {
	s.registry.MarkOwner("Steve")

	record := s.registry.Get("steve")
	s.True(record.IsOwner)
	s.Equal(0, record.JoinCount)
}

func (s *RegistrySuite) TestMarkOwnerPreservesHistory() {
	s.registry.RecordJoin("Steve", "10.0.0.1")
	s.registry.MarkOwner("STEVE")

	record := s.registry.Get("steve")
	s.True(record.IsOwner)
	s.Equal(1, record.JoinCount)
}

func (s *RegistrySuite) TestMarkOwnerEmptyNameIsNoOp() {
	s.registry.MarkOwner("  ")
	s.Empty(s.registry.Names())
}

func (s *RegistrySuite) TestMutationsWriteThroughToStorage() {
	s.registry.RecordJoin("Alice", "10.0.0.1")

	stored, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1, stored.JoinCount)
}

func (s *RegistrySuite) TestHydratesFromStorage() {
	_ = s.storage.SavePlayer(s.ctx, &model.PlayerRecord{
		Name:      "alice",
		JoinCount: 7,
		IsOwner:   true,
	})

	registry, err := New(s.ctx, s.storage, testutil.NopLogger())
	s.Require().NoError(err)

	record := registry.Get("Alice")
	s.Equal(7, record.JoinCount)
	s.True(record.IsOwner)
}

func (s *RegistrySuite) TestGetReturnsSnapshot() {
	s.registry.RecordJoin("Alice", "10.0.0.1")

	record := s.registry.Get("alice")
	record.AddressHistory[0] = "tampered"
	record.JoinCount = 99

	fresh := s.registry.Get("alice")
	s.Equal("10.0.0.1", fresh.AddressHistory[0])
	s.Equal(1, fresh.JoinCount)
}
