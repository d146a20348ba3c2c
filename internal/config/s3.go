// internal/config/s3.go
package config

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the client and bucket for raw payload archiving. Archiving
// is optional; Enabled reports whether a bucket was configured at all.
type S3Config struct {
	Client *s3.Client
	Bucket string
}

func (c *S3Config) Enabled() bool {
	return c != nil && c.Bucket != ""
}

// NewS3Config creates the archive S3 configuration from the environment.
// Returns a disabled config when ARCHIVE_BUCKET is unset.
func NewS3Config() (*S3Config, error) {
	bucket := os.Getenv("ARCHIVE_BUCKET")
	if bucket == "" {
		return &S3Config{}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	return &S3Config{
		Client: s3.NewFromConfig(cfg),
		Bucket: bucket,
	}, nil
}
