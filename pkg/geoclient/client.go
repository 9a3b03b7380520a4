// Package geoclient is a thin RESP client for geospatial servers
// speaking the Tile38 command family. It covers the two operations the
// benchmark drives, SET and INTERSECTS, in both the geo42 and Tile38
// dialects, and hands out dedicated connections so each caller owns
// its transport exclusively.
package geoclient

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures a Client.
type Option func(*redis.Options)

// WithTimeout overrides the dial/read/write timeouts (default 5s).
func WithTimeout(d time.Duration) Option {
	return func(o *redis.Options) {
		o.DialTimeout = d
		o.ReadTimeout = d
		o.WriteTimeout = d
	}
}

// Client connects to one target server.
type Client struct {
	rdb     *redis.Client
	dialect Dialect
	addr    string
}

// New creates a client for addr speaking the given dialect.
func New(addr string, dialect Dialect, opts ...Option) *Client {
	ro := &redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(ro)
	}
	return &Client{rdb: redis.NewClient(ro), dialect: dialect, addr: addr}
}

// Addr returns the target address.
func (c *Client) Addr() string { return c.addr }

// Ping checks reachability of the target.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Conn opens a dedicated connection, verified with a ping. The caller
// owns it exclusively and must Close it.
func (c *Client) Conn(ctx context.Context) (*Conn, error) {
	conn := c.rdb.Conn()
	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Conn{conn: conn, dialect: c.dialect}, nil
}

// Close releases the client and its idle connections.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Conn is a dedicated connection to one target. It is not safe for
// concurrent use; the benchmark gives each worker its own.
type Conn struct {
	conn    *redis.Conn
	dialect Dialect
}

// Set upserts one object's geometry into a collection. The geometry is
// a GeoJSON document. Idempotent by id.
func (s *Conn) Set(ctx context.Context, collection, id string, geometry []byte) error {
	cmd := redis.NewCmd(ctx, s.dialect.setArgs(collection, id, geometry)...)
	return s.conn.Process(ctx, cmd)
}

// Intersects returns the number of stored objects whose geometry
// intersects the query geometry. A non-positive limit falls back to
// the dialect default.
func (s *Conn) Intersects(ctx context.Context, collection string, geometry []byte, limit int) (int, error) {
	cmd := redis.NewCmd(ctx, s.dialect.intersectsArgs(collection, geometry, limit)...)
	if err := s.conn.Process(ctx, cmd); err != nil {
		return 0, err
	}
	res, err := cmd.Result()
	if err != nil {
		return 0, err
	}
	return resultCount(res), nil
}

// Close releases the connection.
func (s *Conn) Close() error {
	return s.conn.Close()
}
