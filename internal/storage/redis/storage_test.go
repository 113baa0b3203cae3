package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/lmehner/blockworld/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	record := &model.PlayerRecord{
		Name:           "alice",
		LastAddress:    "10.0.0.1",
		AddressHistory: []string{"10.0.0.1"},
		JoinCount:      3,
	}

	err := s.storage.SavePlayer(s.ctx, record)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(record.LastAddress, retrieved.LastAddress)
	s.Equal(3, retrieved.JoinCount)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSaveOverwritesExisting() {
	_ = s.storage.SavePlayer(s.ctx, &model.PlayerRecord{Name: "alice", JoinCount: 1})
	_ = s.storage.SavePlayer(s.ctx, &model.PlayerRecord{Name: "alice", JoinCount: 2})

	retrieved, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(2, retrieved.JoinCount)
}

func (s *StorageSuite) TestLoadPlayers() {
	_ = s.storage.SavePlayer(s.ctx, &model.PlayerRecord{Name: "alice", JoinCount: 1})
	_ = s.storage.SavePlayer(s.ctx, &model.PlayerRecord{Name: "bob", JoinCount: 5, IsOwner: true})

	players, err := s.storage.LoadPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
	s.Equal(5, players["bob"].JoinCount)
	s.True(players["bob"].IsOwner)
}

func (s *StorageSuite) TestLoadPlayersEmpty() {
	players, err := s.storage.LoadPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}
