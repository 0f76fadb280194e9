package imagesource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/storyshare/internal/filex"
)

// BucketConfig points at an S3-compatible store such as MinIO.
type BucketConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

func (c BucketConfig) Enabled() bool {
	return c.Bucket != ""
}

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Bucket downloads images by object key.
type Bucket struct {
	client  objectGetter
	bucket  string
	workDir string
}

var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewBucket(ctx context.Context, cfg BucketConfig, workDir string) (*Bucket, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newBucket(client, cfg.Bucket, workDir), nil
}

func newBucket(client objectGetter, bucket, workDir string) *Bucket {
	return &Bucket{client: client, bucket: bucket, workDir: workDir}
}

// Fetch downloads key into the work directory and returns the local path.
func (b *Bucket) Fetch(ctx context.Context, key string) (_ string, err error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	ext := path.Ext(key)
	if ext == "" {
		ext = ".jpg"
	}
	dst := filex.TempImagePath(b.workDir, ext)

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dst, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	n, err := io.Copy(f, out.Body)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", key, err)
	}
	if n == 0 {
		return "", ErrEmptyImage
	}
	return dst, nil
}
