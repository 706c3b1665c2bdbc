package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/sirupsen/logrus"
)

type s3Store struct {
	s3Client *s3.Client
	bucket   string
	prefix   string
}

// Options configures how the S3 client is built. Zero values fall back to
// the SDK's default credential chain and endpoint resolution.
type Options struct {
	Prefix string

	// Endpoint points the client at an S3-compatible service and switches
	// to path-style addressing.
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewStore creates a new S3-based store.
func NewStore(ctx context.Context, bucketName string, opts Options) (*s3Store, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewStoreWithClient(client, bucketName, opts.Prefix), nil
}

// NewStoreWithClient wraps an already configured client.
func NewStoreWithClient(client *s3.Client, bucketName, prefix string) *s3Store {
	return &s3Store{
		s3Client: client,
		bucket:   bucketName,
		prefix:   strings.Trim(prefix, "/"),
	}
}

func (s *s3Store) objectKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("invalid key: must not be empty")
	}
	if s.prefix == "" {
		return key, nil
	}
	return s.prefix + "/" + key, nil
}

func (s *s3Store) GetItem(ctx context.Context, key string) (string, bool, error) {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return "", false, err
	}

	resp, err := s.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var nsk *s3types.NoSuchKey
		if errors.As(err, &nsk) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get item %s: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("failed to read item %s: %w", key, err)
	}
	return string(data), true, nil
}

func (s *s3Store) SetItem(ctx context.Context, key, value string) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}

	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        strings.NewReader(value),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to save item %s: %w", key, err)
	}
	logrus.WithFields(logrus.Fields{"key": key, "bucket": s.bucket}).Debug("Item uploaded")
	return nil
}

func (s *s3Store) RemoveItem(ctx context.Context, key string) error {
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}
	_, err = s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", key, err)
	}
	return nil
}
