package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dropDatabas3/gymcore/internal/observability/logger"
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // MinIO / LocalStack
	AccessKey string
	SecretKey string
	PathStyle bool
	// PublicBase es el prefijo de las URLs devueltas (CDN). Vacío => URL del bucket.
	PublicBase string
}

// S3 sube con el manager de aws-sdk-go-v2 (multipart automático).
type S3 struct {
	client     *s3.Client
	uploader   *manager.Uploader
	bucket     string
	publicBase string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("objectstore: s3 bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("objectstore: load aws config: %w", err)
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return &S3{
		client:     client,
		uploader:   manager.NewUploader(client),
		bucket:     cfg.Bucket,
		publicBase: publicBaseFor(cfg),
	}, nil
}

func publicBaseFor(cfg S3Config) string {
	switch {
	case cfg.PublicBase != "":
		return cfg.PublicBase
	case cfg.Endpoint != "" && cfg.PathStyle:
		return joinURL(cfg.Endpoint, cfg.Bucket)
	case cfg.Endpoint != "":
		return cfg.Endpoint
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
}

func (s *S3) Name() string { return "s3" }

func (s *S3) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := Key(folder, filename)
	if contentType == "" {
		contentType = ContentType(filename)
	}
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	log := logger.From(ctx).With(logger.Component("objectstore.s3"), logger.String("bucket", s.bucket), logger.String("key", key))
	if _, err := s.uploader.Upload(ctx, in); err != nil {
		log.Error("s3 upload failed", logger.Err(err))
		return "", fmt.Errorf("objectstore: s3 upload: %w", err)
	}
	log.Info("s3 upload ok")
	return joinURL(s.publicBase, key), nil
}

func (s *S3) Delete(ctx context.Context, url string) error {
	key, ok := keyFromURL(s.publicBase, url)
	if !ok {
		return fmt.Errorf("%w: url outside bucket", ErrInvalidFile)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.From(ctx).Error("s3 delete failed", logger.Component("objectstore.s3"), logger.String("key", key), logger.Err(err))
		return fmt.Errorf("objectstore: s3 delete: %w", err)
	}
	return nil
}
