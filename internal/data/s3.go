package data

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"royalslots/internal/conf"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-kratos/kratos/v2/log"
)

const (
	maxRetries     = 3
	retryDelay     = time.Second
	uploadTimeout  = 30 * time.Second
	presignExpires = time.Hour * 24 * 3
)

type S3Bucket struct {
	client *s3.Client
	bucket string
	region string
	logger *log.Helper
}

// NewS3Bucket 未配置 s3 时返回 nil，导出功能随之关闭
func NewS3Bucket(c *conf.Data, logger log.Logger) (*S3Bucket, func(), error) {
	l := log.NewHelper(logger)

	sc := c.GetS3()
	if sc == nil || sc.Bucket == "" {
		l.Warn("s3 not configured, history export disabled")
		return nil, func() {}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(sc.Region),
		config.WithCredentialsProvider(aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     sc.AccessKeyId,
				SecretAccessKey: sc.SecretAccessKey,
			}, nil
		})),
	)
	if err != nil {
		l.Errorf("failed loading AWS config: %v", err)
		return nil, nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if sc.Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.Endpoint)
			o.UsePathStyle = true
		}
	})
	if sc.Endpoint != "" {
		l.Infof("Using custom S3 endpoint: %s", sc.Endpoint)
	}

	cleanup := func() {
		l.Info("S3 uploader closed")
	}
	return &S3Bucket{
		client: client,
		bucket: sc.Bucket,
		region: sc.Region,
		logger: l,
	}, cleanup, nil
}

// UploadBytes 通过预签名 PUT 上传，成功后返回预签名 GET 链接
func (r *dataRepo) UploadBytes(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	s := r.data.s3Bucket
	if s == nil {
		return "", fmt.Errorf("s3 not configured")
	}
	if bucket == "" {
		bucket = s.bucket
	}
	presignClient := s3.NewPresignClient(s.client)

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryDelay * time.Duration(i)):
			}
			s.logger.Infof("Retry upload %d/%d: %s", i, maxRetries-1, key)
		}

		if err := s.put(ctx, presignClient, bucket, key, contentType, data); err != nil {
			lastErr = err
			s.logger.Warnf("Upload attempt %d/%d failed: %v", i+1, maxRetries, err)
			continue
		}

		get, err := presignClient.PresignGetObject(ctx,
			&s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			},
			s3.WithPresignExpires(presignExpires),
		)
		if err != nil {
			lastErr = fmt.Errorf("failed to generate presigned GET URL: %w", err)
			continue
		}

		s.logger.Infof("S3 upload success: bucket=%s, key=%s", bucket, key)
		return get.URL, nil
	}

	return "", fmt.Errorf("upload failed after %d attempts: %w", maxRetries, lastErr)
}

func (s *S3Bucket) put(ctx context.Context, pc *s3.PresignClient, bucket, key, contentType string, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	put, err := pc.PresignPutObject(ctx,
		&s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			ContentType: aws.String(contentType),
		},
		s3.WithPresignExpires(presignExpires),
	)
	if err != nil {
		return fmt.Errorf("presign PUT: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, put.URL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
