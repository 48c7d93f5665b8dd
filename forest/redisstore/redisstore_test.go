package redisstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/redis.v5"

	"github.com/pbanos/arbor/forest/foresttest"
	"github.com/pbanos/arbor/forest/json"
)

func TestKeyFor(t *testing.T) {
	rs := &redisStore{prefix: "arbor:forests"}
	assert.Equal(t, "arbor:forests:unsw-16", rs.keyFor("unsw-16"))
}

func TestCancelledContextSkipsRedis(t *testing.T) {
	rc := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	s := New(rc, "arbor", json.NewEncodeDecoder())
	defer s.Close(context.Background())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Get(ctx, "model")
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, context.Canceled, s.Put(ctx, "model", foresttest.ThreeTrees()))
	assert.Equal(t, context.Canceled, s.Delete(ctx, "model"))
}
