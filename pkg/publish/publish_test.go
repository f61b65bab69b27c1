package publish

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// fakeS3 records PutObject calls; every other S3API method panics via the nil embed
type fakeS3 struct {
	s3iface.S3API
	puts   []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.puts = append(f.puts, input)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestPublisher_Upload(t *testing.T) {
	fake := &fakeS3{}
	config := Config{Bucket: "renders", Region: "eu-west-1", Prefix: "weekend", CDNURL: "https://cdn.example.com"}
	p := NewPublisherWithClient(config, fake)

	url, err := p.Upload(context.Background(), "materials.ppm", []byte("P3\n1 1\n255\n0 0 0\n"), "image/x-portable-pixmap")
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if url != "https://cdn.example.com/weekend/materials.ppm" {
		t.Errorf("Unexpected URL: %s", url)
	}
	if len(fake.puts) != 1 {
		t.Fatalf("Expected 1 upload, got %d", len(fake.puts))
	}

	put := fake.puts[0]
	if aws.StringValue(put.Bucket) != "renders" || aws.StringValue(put.Key) != "weekend/materials.ppm" {
		t.Errorf("Unexpected destination: %s/%s", aws.StringValue(put.Bucket), aws.StringValue(put.Key))
	}
	if aws.Int64Value(put.ContentLength) != int64(len(fake.bodies[0])) {
		t.Errorf("Content length %d does not match body %d", aws.Int64Value(put.ContentLength), len(fake.bodies[0]))
	}
	if aws.StringValue(put.ContentType) != "image/x-portable-pixmap" {
		t.Errorf("Unexpected content type: %s", aws.StringValue(put.ContentType))
	}
}

func TestPublisher_UploadError(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	p := NewPublisherWithClient(Config{Bucket: "renders"}, fake)

	_, err := p.Upload(context.Background(), "a.png", []byte{1}, "image/png")
	if err == nil || !errors.Is(err, fake.err) {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestPublisher_UploadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	fake := &fakeS3{}
	p := NewPublisherWithClient(Config{Bucket: "renders", Region: "us-east-1"}, fake)

	url, err := p.UploadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}
	if url != "https://renders.s3.us-east-1.amazonaws.com/render.png" {
		t.Errorf("Unexpected URL: %s", url)
	}
	if string(fake.bodies[0]) != "png-bytes" {
		t.Errorf("Unexpected body: %q", fake.bodies[0])
	}
	if aws.StringValue(fake.puts[0].ContentType) != "image/png" {
		t.Errorf("Unexpected content type: %s", aws.StringValue(fake.puts[0].ContentType))
	}

	if _, err := p.UploadFile(context.Background(), filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestNewPublisher_RequiresBucket(t *testing.T) {
	if _, err := NewPublisher(Config{Region: DefaultRegion}); err == nil {
		t.Error("Expected error without bucket")
	}
}
