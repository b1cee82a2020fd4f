package repository

// storeConfig collects construction options shared by the in-memory
// stores.
type storeConfig struct {
	shardCount int
}

// Option applies a configuration option to a store.
type Option func(*storeConfig)

// WithShardCount sets the number of shards in the match store.
func WithShardCount(n int) Option {
	return func(c *storeConfig) {
		if n > 0 {
			c.shardCount = n
		}
	}
}
