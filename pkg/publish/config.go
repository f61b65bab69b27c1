package publish

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultRegion is used when S3_REGION is unset
const DefaultRegion = "us-east-1"

// Config holds the object storage settings for publishing renders
type Config struct {
	Bucket    string // S3_BUCKET
	Region    string // S3_REGION
	Endpoint  string // S3_ENDPOINT, empty for AWS itself
	AccessKey string // S3_ACCESS_KEY
	SecretKey string // S3_SECRET_KEY
	Prefix    string // S3_PREFIX, key prefix for every upload
	CDNURL    string // CDN_URL, public base URL in front of the bucket
}

// LoadEnv loads a .env file into the process environment.
// A missing file is not an error; variables already set are not overridden.
func LoadEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// ConfigFromEnv reads the publishing configuration from the environment
func ConfigFromEnv() Config {
	return Config{
		Bucket:    os.Getenv("S3_BUCKET"),
		Region:    getEnv("S3_REGION", DefaultRegion),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Prefix:    strings.Trim(os.Getenv("S3_PREFIX"), "/"),
		CDNURL:    strings.TrimSuffix(os.Getenv("CDN_URL"), "/"),
	}
}

// Validate reports missing settings
func (c Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("S3_BUCKET is not set")
	}
	if (c.AccessKey == "") != (c.SecretKey == "") {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must be set together")
	}
	return nil
}

// Key returns the object key for a file name, under the configured prefix
func (c Config) Key(name string) string {
	name = strings.TrimLeft(name, "/")
	if c.Prefix == "" {
		return name
	}
	return c.Prefix + "/" + name
}

// URL returns the public address of an object key
func (c Config) URL(key string) string {
	switch {
	case c.CDNURL != "":
		return fmt.Sprintf("%s/%s", c.CDNURL, key)
	case c.Endpoint != "":
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(c.Endpoint, "/"), c.Bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.Bucket, c.Region, key)
	}
}
