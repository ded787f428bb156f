// Package redis opens a go-redis client from a URL, retrying until the
// server answers PING.
package redis
