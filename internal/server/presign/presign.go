// Package presign implements the presign issuer: given a file name and
// content type it constructs a time-limited signed PUT URL for the object
// store and the stable public URL the object will be served from. Signing
// is a local cryptographic transform; nothing is written to storage at
// issuance time.
package presign

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pixeldrop/pixeldrop/internal/common"
	"github.com/pixeldrop/pixeldrop/internal/server/config"
)

// Expiry is the fixed validity window of every issued upload URL.
const Expiry = 300 * time.Second

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	timeNow = time.Now
)

// Request is a proposed upload: the object's name and declared MIME type.
type Request struct {
	FileName    string
	ContentType string
}

// Grant authorizes exactly one PUT of one object. UploadURL expires after
// Expiry; PublicURL lives as long as the object does. The same Key is
// embedded in both.
type Grant struct {
	UploadURL string
	PublicURL string
	Key       string
}

type Service struct {
	config *config.Config
}

func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// Issue validates req and constructs a Grant.
//
// Failure modes, matched with errors.Is:
//   - common.ErrNotConfigured: any storage setting is missing.
//   - common.ErrInvalidInput: empty fields or a non-image content type.
//     The content-type check is a declared-type allowlist, not a sniff.
//   - common.ErrSigning: the signing process failed; the cause is preserved.
func (s *Service) Issue(ctx context.Context, req Request) (*Grant, error) {
	if s.config.S3AccessKeyID == "" || s.config.S3SecretAccessKey == "" ||
		s.config.S3Bucket == "" || s.config.S3BaseEndpoint == "" || s.config.PublicBaseURL == "" {
		return nil, fmt.Errorf("%w: incomplete storage settings", common.ErrNotConfigured)
	}

	if req.FileName == "" || req.ContentType == "" {
		return nil, fmt.Errorf("%w: fileName and contentType are required", common.ErrInvalidInput)
	}
	if !strings.HasPrefix(req.ContentType, "image/") {
		return nil, fmt.Errorf("%w: only image files are allowed", common.ErrInvalidInput)
	}

	key := s.deriveKey(req.FileName)

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSigning, err)
	}

	bucket := s.config.S3Bucket
	contentType := req.ContentType

	signed, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(Expiry))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSigning, err)
	}

	return &Grant{
		UploadURL: signed.URL,
		PublicURL: strings.TrimRight(s.config.PublicBaseURL, "/") + "/" + key,
		Key:       key,
	}, nil
}

func (s *Service) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKeyID,
			s.config.S3SecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// deriveKey applies the configured collision policy to the file name.
// Unknown policies fall back to exact-name, the original behavior.
func (s *Service) deriveKey(fileName string) string {
	switch s.config.KeyPolicy {
	case config.KeyPolicyTimestamp:
		return fmt.Sprintf("%d-%s", timeNow().UnixMilli(), fileName)
	case config.KeyPolicyRandom:
		d := timeNow()
		return fmt.Sprintf("%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), path.Ext(fileName))
	default:
		return fileName
	}
}
