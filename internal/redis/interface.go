package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories depend on. Both single
// node and cluster clients satisfy it.
type Client interface {
	redis.UniversalClient
}

// Nil is returned by Get when the key does not exist
const Nil = redis.Nil
