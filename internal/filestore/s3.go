package filestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/magabrotheeeer/healthmate/internal/config"
)

// s3API подмножество клиента S3, которое используется хранилищем.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 хранит файлы в бакете S3-совместимого хранилища.
type S3 struct {
	client    s3API
	bucket    string
	publicURL string
	now       func() time.Time
}

// NewS3 создаёт клиента по статическим ключам. Без ключей используется
// стандартная цепочка провайдеров AWS.
func NewS3(ctx context.Context, cfg config.S3Storage) (*S3, error) {
	const op = "filestore.NewS3"

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3WithClient(client, cfg), nil
}

func newS3WithClient(client s3API, cfg config.S3Storage) *S3 {
	publicURL := strings.TrimRight(cfg.PublicURL, "/")
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return &S3{client: client, bucket: cfg.Bucket, publicURL: publicURL, now: time.Now}
}

// Save загружает объект и возвращает его публичный URL.
func (s *S3) Save(ctx context.Context, name string, content []byte, contentType string) (StoredFile, error) {
	const op = "filestore.S3.Save"
	key := "reports/" + ObjectName(name, s.now())

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return StoredFile{}, fmt.Errorf("%s: %w", op, err)
	}
	return StoredFile{URL: s.publicURL + "/" + key, ID: key}, nil
}

// Delete удаляет объект по ключу.
func (s *S3) Delete(ctx context.Context, file StoredFile) error {
	const op = "filestore.S3.Delete"
	if file.ID == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidName)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(file.ID),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
