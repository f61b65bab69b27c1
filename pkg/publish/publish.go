package publish

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// Publisher uploads rendered images to S3-compatible object storage
type Publisher struct {
	config Config
	client s3iface.S3API
	logger core.Logger
}

// NewPublisher creates a publisher with an S3 client built from config
func NewPublisher(config Config) (*Publisher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s3Config := &aws.Config{
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(config.Endpoint != ""),
	}
	if config.Endpoint != "" {
		s3Config.Endpoint = aws.String(config.Endpoint)
	}
	if config.AccessKey != "" {
		s3Config.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewPublisherWithClient(config, s3.New(sess)), nil
}

// NewPublisherWithClient creates a publisher around an existing S3 client
func NewPublisherWithClient(config Config, client s3iface.S3API) *Publisher {
	return &Publisher{config: config, client: client}
}

// SetLogger sets the logger used to report uploads
func (p *Publisher) SetLogger(logger core.Logger) {
	p.logger = logger
}

// Upload stores data under name and returns its public URL
func (p *Publisher) Upload(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := p.config.Key(name)
	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if p.logger != nil {
		p.logger.Printf("Uploaded %s to S3 (%d bytes)\n", key, size)
	}
	return p.config.URL(key), nil
}

// UploadFile stores a local file under its base name
func (p *Publisher) UploadFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.Upload(ctx, filepath.Base(path), data, ContentType(path))
}

// ContentType returns the MIME type for a rendered file name
func ContentType(path string) string {
	ext := filepath.Ext(path)
	if ext == ".ppm" {
		return "image/x-portable-pixmap"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
