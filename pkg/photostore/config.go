package photostore

import (
	"log"
	"os"
	"strings"
)

// Provider selects how the object-storage endpoint is addressed.
type Provider string

const (
	ProviderS3      Provider = "aws-s3"  // virtual-host style AWS URLs
	ProviderGeneric Provider = "generic" // path-style, S3-compatible services
)

// Config is the object-storage configuration, read from the environment once
// at process start and injected into the store. Never re-read per call.
type Config struct {
	Enabled         bool
	Provider        Provider
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PathPrefix      string
	PublicURL       string
}

// LoadConfig reads the OBS_* environment variables. When OBS_ENABLED is not
// "true", or the configuration is incomplete (missing bucket or credentials),
// object storage is disabled and photos fall back to inline encoding.
func LoadConfig() Config {
	if os.Getenv("OBS_ENABLED") != "true" {
		return Config{}
	}

	cfg := Config{
		Enabled:         true,
		Provider:        Provider(envOr("OBS_PROVIDER", string(ProviderS3))),
		Endpoint:        normalizeURL(os.Getenv("OBS_ENDPOINT")),
		Region:          envOr("OBS_REGION", "us-east-1"),
		Bucket:          os.Getenv("OBS_BUCKET"),
		AccessKeyID:     os.Getenv("OBS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("OBS_SECRET_ACCESS_KEY"),
		PathPrefix:      envOr("OBS_PATH_PREFIX", "office-health-checkup"),
		PublicURL:       normalizeURL(os.Getenv("OBS_PUBLIC_URL")),
	}
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		log.Println("object storage is enabled but configuration is incomplete, falling back to inline photos")
		return Config{}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// normalizeURL makes sure a configured URL carries a scheme.
func normalizeURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}
