// Package redis connects a go-redis/v9 client from environment
// configuration and exposes a readiness probe for it.
package redis
