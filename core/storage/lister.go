package storage

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// NewLister builds the Lister selected by cfg.Provider.
func NewLister(ctx context.Context, cfg Config, client Client) (Lister, error) {
	switch cfg.Provider {
	case "", ProviderMinio:
		if client == nil {
			c, err := NewClient(cfg)
			if err != nil {
				return nil, err
			}
			client = c
		}
		return NewMinioLister(client, cfg.Bucket, cfg.PageSize), nil
	case ProviderS3:
		api, err := NewS3Client(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3Lister(api, cfg.Bucket, cfg.PageSize), nil
	default:
		return nil, fmt.Errorf("unknown storage provider: %s", cfg.Provider)
	}
}

func hasScheme(endpoint string) bool {
	return strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://")
}

func awshttpClient(timeout time.Duration) *http.Client {
	return &http.Client{Transport: newTransport(timeout)}
}
