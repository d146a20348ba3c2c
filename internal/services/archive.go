package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"showscraper/internal/config"
)

// S3Archiver stores raw feed pages under raw/<venue>/<date>/page-<n>.json
// so a bad parse can be replayed against the payload that caused it.
type S3Archiver struct {
	uploader *manager.Uploader
	bucket   string
}

func NewS3Archiver(cfg *config.S3Config) *S3Archiver {
	return &S3Archiver{
		uploader: manager.NewUploader(cfg.Client),
		bucket:   cfg.Bucket,
	}
}

func (a *S3Archiver) Store(ctx context.Context, venue string, page int, payload []byte) error {
	key := fmt.Sprintf("raw/%s/%s/page-%d.json",
		slug(venue),
		time.Now().Format("2006-01-02"),
		page,
	)

	_, err := a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("archive %s page %d: %w", venue, page, err)
	}
	return nil
}

func slug(venue string) string {
	return strings.ToLower(strings.ReplaceAll(venue, " ", "-"))
}
