// Package archive uploads signed exports to S3-compatible object storage.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

// Settings holds the S3 connection parameters.
type Settings struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3Archive stores each export under a fresh date-partitioned key.
type S3Archive struct {
	settings Settings
	now      func() time.Time
}

func NewS3Archive(s Settings) *S3Archive {
	return &S3Archive{settings: s, now: time.Now}
}

// ObjectKey returns results/YYYY/MM/DD/<uuid>.json for t in UTC.
func ObjectKey(t time.Time) string {
	d := t.UTC()
	return fmt.Sprintf("results/%04d/%02d/%02d/%s.json", d.Year(), int(d.Month()), d.Day(), uuid.New())
}

func (a *S3Archive) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(a.settings.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			a.settings.User,
			a.settings.Password,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(a.settings.BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Store uploads data and returns the object key.
func (a *S3Archive) Store(ctx context.Context, data []byte) (string, error) {
	c, err := a.client(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 config: %w", err)
	}

	bucket := a.settings.Bucket
	key := ObjectKey(a.now())
	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return key, nil
}
