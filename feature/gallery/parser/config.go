package parser

// Config describes where galleries live in the bucket and how public URLs are built.
type Config struct {
	// BasePath is the first key segment every gallery object sits under.
	BasePath string `mapstructure:"base_path" default:"photos"`
	// PublicURL is the download host, e.g. https://f000.backblazeb2.com.
	PublicURL string `mapstructure:"public_url" default:"http://localhost:9000"`
	// URLBucket overrides the bucket name used in public URLs; the storage bucket when empty.
	URLBucket string `mapstructure:"url_bucket" default:""`
}

// Prefix is the listing prefix for BasePath.
func (c Config) Prefix() string {
	if c.BasePath == "" {
		return ""
	}
	return c.BasePath + "/"
}
