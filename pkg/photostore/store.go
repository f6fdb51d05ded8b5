package photostore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Reference is where a stored photo ended up. Exactly one data location is
// populated: Base64 for inline storage, or URL+Key for object storage.
type Reference struct {
	FileName   string `json:"filename"`
	MimeType   string `json:"mimeType"`
	Size       int64  `json:"size"`
	PropertyID string `json:"propertyId"`
	Base64     string `json:"base64,omitempty"`
	URL        string `json:"url,omitempty"`
	Key        string `json:"obsKey,omitempty"`
}

// Store decides per photo whether bytes go to object storage or are encoded
// inline, based on the configuration it was built with.
type Store struct {
	cfg    Config
	client *minio.Client
}

// New builds a Store. The minio client is only constructed when object
// storage is enabled and fully configured.
func New(cfg Config) (*Store, error) {
	s := &Store{cfg: cfg}
	if !cfg.Enabled {
		return s, nil
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://s3." + cfg.Region + ".amazonaws.com"
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid object storage endpoint %q: %w", endpoint, err)
	}
	lookup := minio.BucketLookupDNS
	if cfg.Provider == ProviderGeneric {
		// S3-compatible services generally need path-style addressing.
		lookup = minio.BucketLookupPath
	}
	client, err := minio.New(u.Host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       u.Scheme != "http",
		Region:       cfg.Region,
		BucketLookup: lookup,
	})
	if err != nil {
		return nil, fmt.Errorf("object storage client: %w", err)
	}
	s.client = client
	return s, nil
}

// Enabled reports whether the remote path is available. Used by the upload
// capability probe so clients can pick an encoding strategy cheaply.
func (s *Store) Enabled() bool {
	return s.cfg.Enabled && s.client != nil
}

// Store validates the photo and stores it through exactly one path. The MIME
// allow-list and size ceiling are checked before any encoding or network
// work; violations surface as *ValidationError. A failed remote upload
// surfaces as *UploadError and never falls back to inline encoding.
func (s *Store) Store(ctx context.Context, data []byte, filename, contentType, propertyID string) (Reference, error) {
	if !allowedType(contentType) {
		return Reference{}, &ValidationError{
			Rule:    RuleType,
			Message: fmt.Sprintf("invalid file type %q, allowed: %s", contentType, strings.Join(allowedTypes, ", ")),
		}
	}
	if int64(len(data)) > MaxFileBytes {
		return Reference{}, &ValidationError{
			Rule:    RuleSize,
			Message: fmt.Sprintf("file size exceeds %dMB limit", MaxFileBytes/1024/1024),
		}
	}

	ref := Reference{
		FileName:   filename,
		MimeType:   contentType,
		Size:       int64(len(data)),
		PropertyID: propertyID,
	}

	if s.Enabled() {
		key := objectKey(s.cfg.PathPrefix, time.Now(), filename)
		_, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return Reference{}, &UploadError{Err: err}
		}
		ref.URL = s.publicURL(key)
		ref.Key = key
		return ref, nil
	}

	payload, outType := inlinePayload(data, contentType)
	ref.Base64 = payload
	ref.MimeType = outType
	return ref, nil
}

var keySanitizeRE = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// objectKey namespaces a stored photo: path prefix, a millisecond timestamp
// as the uniqueness token, and the sanitized original filename.
func objectKey(prefix string, now time.Time, filename string) string {
	sanitized := keySanitizeRE.ReplaceAllString(filename, "_")
	return fmt.Sprintf("%s/%d-%s", prefix, now.UnixMilli(), sanitized)
}

// publicURL resolves the URL a stored object is reachable at: an explicit
// public base wins, then the configured endpoint, then the AWS virtual-host
// form.
func (s *Store) publicURL(key string) string {
	if s.cfg.PublicURL != "" {
		return s.cfg.PublicURL + "/" + key
	}
	if s.cfg.Endpoint != "" {
		return s.cfg.Endpoint + "/" + s.cfg.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
