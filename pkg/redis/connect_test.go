package redis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/regform/pkg/redis"
)

func TestConnect_Disabled(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(t.Context(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
}

func TestConnect_BadURL(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(t.Context(), redis.Config{ConnectionURL: "http://localhost:6379"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}
