/*
Package redisstore provides an implementation of forest.Store backed
by a Redis database.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/pbanos/arbor/forest"
	"gopkg.in/redis.v5"
)

/*
EncodeDecoder is an interface for objects that allow encoding forests
into slices of bytes and decoding them back to forests.
*/
type EncodeDecoder interface {
	Encode(*forest.Forest) ([]byte, error)
	Decode([]byte) (*forest.Forest, error)
}

type redisStore struct {
	rc     *redis.Client
	prefix string
	encdec EncodeDecoder
}

// New builds a forest.Store backed by a redis DB that keeps every forest
// under the key "<prefix>:<name>".
func New(rc *redis.Client, prefix string, encdec EncodeDecoder) forest.Store {
	return &redisStore{rc, prefix, encdec}
}

func (rs *redisStore) Get(ctx context.Context, name string) (*forest.Forest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := rs.rc.Get(rs.keyFor(name)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("retrieving forest %q: %v", name, err)
	}
	f, err := rs.encdec.Decode([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("retrieving forest %q: %v", name, err)
	}
	return f, nil
}

func (rs *redisStore) Put(ctx context.Context, name string, f *forest.Forest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	data, err := rs.encdec.Encode(f)
	if err != nil {
		return fmt.Errorf("storing forest %q: encoding forest: %v", key, err)
	}
	_, err = rs.rc.Set(key, data, 0).Result()
	if err != nil {
		return fmt.Errorf("storing forest %q in redis: %v", key, err)
	}
	return nil
}

func (rs *redisStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	key := rs.keyFor(name)
	_, err := rs.rc.Del(key).Result()
	if err != nil {
		return fmt.Errorf("deleting forest %q from redis: %v", key, err)
	}
	return nil
}

func (rs *redisStore) Close(ctx context.Context) error {
	return rs.rc.Close()
}

func (rs *redisStore) keyFor(name string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, name)
}
