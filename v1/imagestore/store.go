package imagestore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Aleph-Alpha/multimodal-search/v1/logger"
	"github.com/Aleph-Alpha/multimodal-search/v1/observability"
)

var (
	// ErrEmptyObject is returned when Put is called without data.
	ErrEmptyObject = errors.New("imagestore: empty object")
	// ErrBucketMissing is returned when the bucket is absent and creation is disabled.
	ErrBucketMissing = errors.New("imagestore: bucket does not exist")
)

// objectAPI is the subset of *minio.Client used by Store.
type objectAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Store keeps raw images in an S3-compatible bucket under content-addressed keys.
type Store struct {
	api      objectAPI
	cfg      Config
	logger   logger.Logger
	observer observability.Observer
}

// NewStore connects to the object store. The bucket is not touched until
// EnsureBucket is called.
func NewStore(cfg Config, log logger.Logger) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("imagestore: connect %s: %w", cfg.Endpoint, err)
	}

	return newStore(client, cfg, log), nil
}

func newStore(api objectAPI, cfg Config, log logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{api: api, cfg: cfg, logger: log}
}

// WithObserver attaches an observer notified after every call.
func (s *Store) WithObserver(obs observability.Observer) *Store {
	s.observer = obs
	return s
}

// EnsureBucket verifies the bucket exists, creating it when allowed.
func (s *Store) EnsureBucket(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { s.observe("ensure_bucket", "", time.Since(start), err, 0) }()

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	exists, err := s.api.BucketExists(ctx, s.cfg.BucketName)
	if err != nil {
		return fmt.Errorf("imagestore: check bucket %s: %w", s.cfg.BucketName, err)
	}
	if exists {
		return nil
	}
	if !s.cfg.AccessBucketCreation {
		return fmt.Errorf("%w: %s", ErrBucketMissing, s.cfg.BucketName)
	}

	s.logger.InfoWithContext(ctx, "bucket does not exist, creating it", nil, map[string]interface{}{
		"bucket": s.cfg.BucketName,
		"region": s.cfg.Region,
	})
	err = s.api.MakeBucket(ctx, s.cfg.BucketName, minio.MakeBucketOptions{Region: s.cfg.Region})
	if err != nil {
		// Lost a creation race with another node.
		if code := minio.ToErrorResponse(err).Code; code == "BucketAlreadyOwnedByYou" || code == "BucketAlreadyExists" {
			return nil
		}
		return fmt.Errorf("imagestore: create bucket %s: %w", s.cfg.BucketName, err)
	}
	return nil
}

// Put stores data and returns its locator. Identical content maps to the same
// key and is uploaded once.
func (s *Store) Put(ctx context.Context, data []byte) (locator string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyObject
	}

	contentType := http.DetectContentType(data)
	key := s.cfg.KeyPrefix + ObjectKey(data, contentType)

	start := time.Now()
	uploaded := false
	defer func() {
		size := int64(0)
		if uploaded {
			size = int64(len(data))
		}
		s.observe("put", key, time.Since(start), err, size)
	}()

	ctx, cancel := s.callContext(ctx)
	defer cancel()

	_, err = s.api.StatObject(ctx, s.cfg.BucketName, key, minio.StatObjectOptions{})
	switch {
	case err == nil:
		return s.Locator(key), nil
	case minio.ToErrorResponse(err).Code != "NoSuchKey":
		return "", fmt.Errorf("imagestore: stat %s: %w", key, err)
	}

	_, err = s.api.PutObject(ctx, s.cfg.BucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("imagestore: put %s: %w", key, err)
	}
	uploaded = true

	s.logger.DebugWithContext(ctx, "image stored", nil, map[string]interface{}{
		"bucket": s.cfg.BucketName,
		"key":    key,
		"size":   len(data),
	})
	return s.Locator(key), nil
}

// Locator returns the address recorded for key.
func (s *Store) Locator(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	return "s3://" + s.cfg.BucketName + "/" + key
}

// ObjectKey returns the content-addressed key for data: the hex sha256 of the
// bytes plus an extension derived from contentType.
func ObjectKey(data []byte, contentType string) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + extension(contentType)
}

func extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/bmp":
		return ".bmp"
	default:
		return ".bin"
	}
}

func (s *Store) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.Timeout)
}

func (s *Store) observe(operation, key string, duration time.Duration, err error, size int64) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "imagestore",
		Operation:   operation,
		Resource:    s.cfg.BucketName,
		SubResource: key,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}
