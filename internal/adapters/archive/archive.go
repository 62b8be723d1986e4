// Package archive keeps a copy of uploaded résumés in an S3-compatible bucket.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
)

// ErrArchive wraps every upload failure.
var ErrArchive = errors.New("resume archive failed")

// ObjectPutter is the subset of *s3.Client used here.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config describes the bucket connection.
type Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Option applies a configuration option to the Archiver.
type Option func(*Archiver)

// WithLogger sets the archiver logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Archiver) {
		if l != nil {
			a.log = l
		}
	}
}

// WithClock overrides the time used for key prefixes.
func WithClock(now func() time.Time) Option {
	return func(a *Archiver) {
		if now != nil {
			a.now = now
		}
	}
}

// WithKeyID overrides the random component of object keys.
func WithKeyID(gen func() string) Option {
	return func(a *Archiver) {
		if gen != nil {
			a.newID = gen
		}
	}
}

// Archiver uploads résumé files.
type Archiver struct {
	client ObjectPutter
	bucket string
	log    logger.Logger
	now    func() time.Time
	newID  func() string
}

// New wraps an existing client.
func New(client ObjectPutter, bucket string, opts ...Option) *Archiver {
	a := &Archiver{
		client: client,
		bucket: bucket,
		log:    logger.Nop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.Named("archive")
	return a
}

// NewS3 builds an S3 client from cfg. Static credentials are used when both
// keys are set; otherwise the default AWS credential chain applies. A custom
// endpoint (R2, MinIO) switches to path-style addressing.
func NewS3(ctx context.Context, cfg Config, opts ...Option) (*Archiver, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrArchive)
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %w", ErrArchive, err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return New(client, cfg.Bucket, opts...), nil
}

// Key builds resumes/<yyyy>/<mm>/<id>-<filename>.
func (a *Archiver) Key(filename string) string {
	t := a.now().UTC()
	return fmt.Sprintf("resumes/%04d/%02d/%s-%s", t.Year(), int(t.Month()), a.newID(), sanitize(filename))
}

// Put uploads data and returns the object key.
func (a *Archiver) Put(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	key := a.Key(filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		a.log.Warn(ctx, "resume archive failed", logger.String("key", key), logger.Error(err))
		return "", fmt.Errorf("%w: put %s: %w", ErrArchive, key, err)
	}
	a.log.Debug(ctx, "resume archived", logger.String("key", key))
	return key, nil
}

func sanitize(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." || name == "/" {
		return "resume"
	}
	return name
}
