// Package spaces is the DigitalOcean Spaces backend: one object per
// record, with marker objects under parent prefixes serving the
// listings.
package spaces

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/fuad-daoud/discord-cache/logger/dlog"
)

// Config carries the Spaces connection settings.
type Config struct {
	Key      string
	Secret   string
	Endpoint string
	Region   string
	Bucket   string
}

// ConfigFromEnv reads SPACES_KEY, SPACES_SECRET, SPACES_ENDPOINT,
// SPACES_REGION and SPACES_BUCKET.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		Key:      os.Getenv("SPACES_KEY"),
		Secret:   os.Getenv("SPACES_SECRET"),
		Endpoint: os.Getenv("SPACES_ENDPOINT"),
		Region:   os.Getenv("SPACES_REGION"),
		Bucket:   os.Getenv("SPACES_BUCKET"),
	}
	if cfg.Key == "" || cfg.Secret == "" {
		return Config{}, errors.New("SPACES_KEY and SPACES_SECRET are not set")
	}
	if cfg.Bucket == "" {
		return Config{}, errors.New("SPACES_BUCKET is not set")
	}
	return cfg, nil
}

// Backend stores every record as one object in a Spaces bucket.
type Backend struct {
	client *s3.S3
	bucket string
}

// New builds the backend over one Spaces session.
func New(cfg Config) (*Backend, error) {
	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.Key, cfg.Secret, ""),
		Endpoint:         aws.String(cfg.Endpoint),
		S3ForcePathStyle: aws.Bool(false),
		Region:           aws.String(cfg.Region),
	}

	newSession, err := session.NewSession(s3Config)
	if err != nil {
		return nil, err
	}
	dlog.Info("Spaces session created", "endpoint", cfg.Endpoint, "bucket", cfg.Bucket)
	return &Backend{client: s3.New(newSession), bucket: cfg.Bucket}, nil
}

// getObject reads one object. Absence is reported via the second
// return, never as an error.
func (b *Backend) getObject(ctx context.Context, key string) ([]byte, bool, error) {
	out, err := b.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if requestFailure, ok := err.(awserr.RequestFailure); ok && requestFailure.StatusCode() == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, err
	}
	return body, true, nil
}

func (b *Backend) putObject(ctx context.Context, key string, body []byte) error {
	_, err := b.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
		ACL:    aws.String("private"),
	})
	return err
}

// deleteObject removes one object. Deleting an absent key succeeds.
func (b *Backend) deleteObject(ctx context.Context, key string) error {
	_, err := b.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	return err
}

// listKeys returns every object key under prefix.
func (b *Backend) listKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := b.client.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, lastPage bool) bool {
		for _, object := range page.Contents {
			keys = append(keys, aws.StringValue(object.Key))
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
