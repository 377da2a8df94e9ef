package reconciler

import "time"

// Config controls sync passes.
type Config struct {
	// IntervalSeconds is the period of scheduled passes. Zero disables the scheduler.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"900"`
	// Workers bounds concurrent store calls while syncing users and photos.
	Workers int `mapstructure:"workers" default:"8"`
	// FetchMetadata asks storage for width/height tags when the filename carries no size.
	FetchMetadata bool `mapstructure:"fetch_metadata" default:"false"`
	// PruneOnEmpty allows a listing with no galleries to delete every stored gallery.
	PruneOnEmpty bool `mapstructure:"prune_on_empty" default:"false"`
	// OnDemand lets the read path run a pass when the store has nothing to serve.
	OnDemand bool `mapstructure:"on_demand" default:"true"`
	// CacheTTLSeconds is how long a direct storage read is reused in degraded mode.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"60"`
}

// Interval returns the scheduler period.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}

// CacheTTL returns the degraded-mode cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c Config) workers() int {
	if c.Workers <= 0 {
		return 1
	}
	return c.Workers
}
