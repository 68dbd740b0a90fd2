package upload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/shif-works/conduit/pkg/config"
)

// UnsupportedTypeError is returned for uploads that are not JPEG or PNG
type UnsupportedTypeError struct {
	ContentType string
}

func (e UnsupportedTypeError) Error() string {
	return fmt.Sprintf("invalid file type %q, only JPEG and PNG are allowed", e.ContentType)
}

// ObjectPutter is the S3 surface the service consumes; satisfied by
// *s3.Client.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Service uploads images to the public bucket
type Service struct {
	client        ObjectPutter
	bucket        string
	publicBaseURL string
}

// NewService creates a new upload service
func NewService(client ObjectPutter, bucket, publicBaseURL string) *Service {
	return &Service{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}
}

// NewClient builds an S3 client from configuration. A BaseEndpoint
// override points it at an S3-compatible store instead of AWS.
func NewClient(ctx context.Context, cfg config.S3Config) (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
		}
	})
	return client, nil
}

// Upload stores the image under a random key with public-read access and
// returns its public URL.
func (s *Service) Upload(ctx context.Context, contentType string, body io.Reader) (string, error) {
	if contentType != "image/jpeg" && contentType != "image/png" {
		return "", UnsupportedTypeError{ContentType: contentType}
	}

	key := randomKey()
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("putting object: %w", err)
	}

	return s.publicBaseURL + "/" + key, nil
}

// Keys stay in [0-9a-f] so resulting URLs match the image-URL check on
// article creation.
func randomKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
