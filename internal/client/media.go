// Client for the S3-compatible media host holding avatars, tour covers,
// memory photos/videos and expense receipts.
//
// Environment (see config.MediaConfig):
//   - MEDIA_S3_ENDPOINT: host:port or full URL of the S3 endpoint
//   - MEDIA_S3_ACCESS_KEY / MEDIA_S3_SECRET_KEY: static credentials
//   - MEDIA_S3_BUCKET (default: wanderlog-media)
//   - MEDIA_S3_REGION (default: us-east-1)
//   - MEDIA_S3_DISABLE_TLS (bool; default false)
//   - MEDIA_S3_FORCE_PATH_STYLE (bool; default true)

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/wanderlog/backend/internal/config"
)

type MediaClient struct {
	api     *s3.Client
	bucket  string
	baseURL string
}

func NewMediaClient(ctx context.Context, cfg config.MediaConfig) (*MediaClient, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New("MEDIA_S3_ENDPOINT is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("MEDIA_S3_ACCESS_KEY and MEDIA_S3_SECRET_KEY are required")
	}

	disableTLS, _ := strconv.ParseBool(cfg.DisableTLS)
	forcePathStyle := true
	if v := strings.TrimSpace(cfg.ForcePathStyle); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			forcePathStyle = parsed
		}
	}

	scheme := "https"
	if disableTLS {
		scheme = "http"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = fmt.Sprintf("%s://%s", scheme, endpoint)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}),
	)
	if err != nil {
		return nil, err
	}

	api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = forcePathStyle
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &MediaClient{
		api:     api,
		bucket:  cfg.Bucket,
		baseURL: fmt.Sprintf("%s/%s", strings.TrimRight(endpoint, "/"), cfg.Bucket),
	}, nil
}

// Upload stores the object and returns the URL clients load it from.
func (c *MediaClient) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error) {
	if c == nil {
		return "", errors.New("nil media client")
	}

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        &c.bucket,
		Key:           &key,
		Body:          r,
		ContentLength: &size,
		ContentType:   &contentType,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", c.baseURL, key), nil
}

func (c *MediaClient) Delete(ctx context.Context, key string) error {
	if c == nil {
		return errors.New("nil media client")
	}
	if key == "" {
		return nil
	}

	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &c.bucket,
		Key:    &key,
	})
	return err
}
