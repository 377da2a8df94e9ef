package storage

const (
	ProviderMinio = "minio"
	ProviderS3    = "s3"
)

// Config holds configuration for the storage provider.
type Config struct {
	// Provider selects the client implementation: minio or s3.
	Provider string `mapstructure:"provider" default:"minio"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket holding the gallery tree.
	Bucket string `mapstructure:"bucket" default:"gallery"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:"us-east-1"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the number of keys requested per listing page.
	PageSize int `mapstructure:"page_size" default:"1000"`
}

func (c Config) pageSize() int {
	if c.PageSize <= 0 || c.PageSize > 1000 {
		return 1000
	}
	return c.PageSize
}
