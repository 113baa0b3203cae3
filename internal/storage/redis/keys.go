package redis

import (
	"fmt"

	"github.com/lmehner/blockworld/internal/model"
)

// Key prefix for all blockworld data
const keyPrefix = "blockworld"

// playerKey returns the Redis key for a PlayerRecord
func playerKey(name model.PlayerName) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, name)
}

// playerKeyPattern returns the SCAN pattern matching all player records
func playerKeyPattern() string {
	return fmt.Sprintf("%s:player:*", keyPrefix)
}
