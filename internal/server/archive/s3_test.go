package archive

import (
	"context"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSeams(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	origPut := putObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
		putObject = origPut
	})
}

func testSettings() Settings {
	return Settings{
		User:         "minioadmin",
		Password:     "minioadmin",
		Bucket:       "exports",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000",
	}
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey(time.Date(2026, 3, 7, 23, 0, 0, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^results/2026/03/07/[0-9a-f-]{36}\.json$`), key)
	assert.NotEqual(t, key, ObjectKey(time.Date(2026, 3, 7, 23, 0, 0, 0, time.UTC)))
}

func TestStore_Success(t *testing.T) {
	stubSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		return aws.Config{}, nil
	}

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return &s3.Client{}
	}

	var gotBucket, gotKey, gotBody string
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotBucket = *in.Bucket
		gotKey = *in.Key
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		gotBody = string(b)
		return &s3.PutObjectOutput{}, nil
	}

	a := NewS3Archive(testSettings())
	a.now = func() time.Time { return time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC) }

	key, err := a.Store(context.Background(), []byte(`{"ok":true}`))
	require.NoError(t, err)
	assert.Equal(t, key, gotKey)
	assert.Equal(t, "exports", gotBucket)
	assert.Equal(t, `{"ok":true}`, gotBody)
	assert.Regexp(t, `^results/2026/10/16/`, key)
}

func TestStore_Errors(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		stubSeams(t)
		loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, errors.New("no region")
		}
		_, err := NewS3Archive(testSettings()).Store(context.Background(), nil)
		require.ErrorContains(t, err, "s3 config: no region")
	})

	t.Run("put", func(t *testing.T) {
		stubSeams(t)
		loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
			return aws.Config{}, nil
		}
		newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
			return &s3.Client{}
		}
		putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return nil, errors.New("access denied")
		}
		_, err := NewS3Archive(testSettings()).Store(context.Background(), []byte("{}"))
		require.ErrorContains(t, err, "access denied")
	})
}
