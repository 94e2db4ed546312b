package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store keeps full responses as S3 objects. Staleness is judged from the
// object's LastModified against the configured TTL, so no sweeper is needed;
// a fresh Put simply overwrites the stale object.
type S3Store struct {
	S3     s3.Client
	Bucket string
	TTL    time.Duration
	Logger *slog.Logger
}

func NewS3Store(client s3.Client, bucket string, ttl time.Duration) *S3Store {
	return &S3Store{
		S3:     client,
		Bucket: bucket,
		TTL:    ttl,
		Logger: slog.Default(),
	}
}

// Key derives the object key for a resource and canonical filter set.
func Key(resourceType string, canonicalQuery string) string {
	digest := sha256.Sum256([]byte(resourceType + "?" + canonicalQuery))
	return hex.EncodeToString(digest[:]) + ".json"
}

func (s *S3Store) Get(ctx context.Context, resourceType string, canonicalQuery string) ([]byte, bool) {
	key := Key(resourceType, canonicalQuery)
	output, err := s.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.Logger.Debug("cache miss", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	defer output.Body.Close()
	if output.LastModified != nil && time.Since(*output.LastModified) > s.TTL {
		return nil, false
	}
	payload, err := io.ReadAll(output.Body)
	if err != nil {
		s.Logger.Warn("failed to read cached payload", slog.String("key", key), slog.String("error", err.Error()))
		return nil, false
	}
	return payload, true
}

func (s *S3Store) Put(ctx context.Context, resourceType string, canonicalQuery string, payload []byte) {
	key := Key(resourceType, canonicalQuery)
	_, err := s.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		s.Logger.Warn("failed to write cache entry", slog.String("key", key), slog.String("error", err.Error()))
	}
}
