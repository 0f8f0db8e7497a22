package supplysearch

import "go.uber.org/zap"

// clientConfig collects the settings applied by Options.
type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	keyPrefix string
	logger    *zap.Logger

	candidateLimit int
	scanLimit      int
	defaultLimit   int
	maxLimit       int
}

// Option configures the Client.
type Option func(*clientConfig)

// WithRedis sets the Redis address and password.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedisCluster sets multiple Redis addresses.
func WithRedisCluster(addrs []string, password string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
		c.password = password
	}
}

// WithUsername sets the Redis ACL username.
func WithUsername(username string) Option {
	return func(c *clientConfig) { c.username = username }
}

// WithDB selects a Redis logical database.
func WithDB(db int) Option {
	return func(c *clientConfig) { c.db = db }
}

// WithKeyPrefix namespaces every key the client writes. Defaults to "sl:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) { c.keyPrefix = prefix }
}

// WithLogger attaches a logger; a nop logger is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}

// WithSearchLimits bounds query execution: candidateLimit caps index
// candidates per query, defaultLimit and maxLimit bound page sizes.
func WithSearchLimits(candidateLimit, defaultLimit, maxLimit int) Option {
	return func(c *clientConfig) {
		c.candidateLimit = candidateLimit
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	}
}

// WithScanLimit caps the recent documents scanned per entity type when a
// query is served from the fallback path.
func WithScanLimit(n int) Option {
	return func(c *clientConfig) { c.scanLimit = n }
}
