package presign

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"github.com/pixeldrop/pixeldrop/internal/common"
	"github.com/pixeldrop/pixeldrop/internal/server/config"
)

func testConfig() *config.Config {
	return &config.Config{
		S3AccessKeyID:     "AKIA",
		S3SecretAccessKey: "shh",
		S3Region:          "auto",
		S3BaseEndpoint:    "http://127.0.0.1:9000",
		S3Bucket:          "images",
		PublicBaseURL:     "https://img.example.com",
		KeyPolicy:         config.KeyPolicyExact,
	}
}

// stubSigner replaces the AWS factory chain so Issue never touches the
// network. The fake signed URL embeds bucket and key the way a real one
// does, and the presign options are captured for assertions.
func stubSigner(t *testing.T) *struct {
	lastInput *s3.PutObjectInput
	lastOpts  s3.PresignOptions
	calls     int
} {
	t.Helper()

	captured := &struct {
		lastInput *s3.PutObjectInput
		lastOpts  s3.PresignOptions
		calls     int
	}{}

	origLoad, origNewS3, origNewPre, origPut := loadDefaultAWSConfig, newS3ClientFromConfig, newS3PresignClient, presignPutObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client { return &s3.Client{} }
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient { return &s3.PresignClient{} }
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		captured.calls++
		captured.lastInput = in
		for _, fn := range optFns {
			fn(&captured.lastOpts)
		}
		return &v4.PresignedHTTPRequest{
			URL:    "http://127.0.0.1:9000/" + *in.Bucket + "/" + *in.Key + "?X-Amz-Signature=abc",
			Method: "PUT",
		}, nil
	}

	return captured
}

func TestIssue_Success_ExactKey(t *testing.T) {
	captured := stubSigner(t)
	svc := NewService(testConfig())

	grant, err := svc.Issue(context.Background(), Request{FileName: "cat.png", ContentType: "image/png"})
	require.NoError(t, err)

	require.Equal(t, "cat.png", grant.Key)
	require.Equal(t, "https://img.example.com/cat.png", grant.PublicURL)
	require.Contains(t, grant.UploadURL, "/images/cat.png")

	// The same key is embedded in both URLs.
	require.Contains(t, grant.UploadURL, grant.Key)
	require.True(t, strings.HasSuffix(grant.PublicURL, "/"+grant.Key))

	require.Equal(t, "cat.png", *captured.lastInput.Key)
	require.Equal(t, "images", *captured.lastInput.Bucket)
	require.Equal(t, "image/png", *captured.lastInput.ContentType)
}

func TestIssue_FixedExpiry(t *testing.T) {
	captured := stubSigner(t)
	svc := NewService(testConfig())

	_, err := svc.Issue(context.Background(), Request{FileName: "cat.png", ContentType: "image/png"})
	require.NoError(t, err)

	require.Equal(t, 300*time.Second, captured.lastOpts.Expires)
}

func TestIssue_InvalidInput(t *testing.T) {
	captured := stubSigner(t)
	svc := NewService(testConfig())

	tests := []struct {
		name string
		req  Request
	}{
		{"empty file name", Request{FileName: "", ContentType: "image/png"}},
		{"empty content type", Request{FileName: "cat.png", ContentType: ""}},
		{"non-image content type", Request{FileName: "notes.txt", ContentType: "text/plain"}},
		{"image substring but wrong prefix", Request{FileName: "x", ContentType: "application/image/png"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grant, err := svc.Issue(context.Background(), tc.req)
			require.ErrorIs(t, err, common.ErrInvalidInput)
			require.Nil(t, grant)
		})
	}

	// No signed URL was produced for any rejected request.
	require.Zero(t, captured.calls)
}

func TestIssue_MissingConfiguration(t *testing.T) {
	stubSigner(t)

	mutations := map[string]func(*config.Config){
		"access key": func(c *config.Config) { c.S3AccessKeyID = "" },
		"secret key": func(c *config.Config) { c.S3SecretAccessKey = "" },
		"bucket":     func(c *config.Config) { c.S3Bucket = "" },
		"endpoint":   func(c *config.Config) { c.S3BaseEndpoint = "" },
		"public url": func(c *config.Config) { c.PublicBaseURL = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig()
			mutate(cfg)
			_, err := NewService(cfg).Issue(context.Background(), Request{FileName: "cat.png", ContentType: "image/png"})
			require.ErrorIs(t, err, common.ErrNotConfigured)
		})
	}
}

func TestIssue_SigningErrorPreservesCause(t *testing.T) {
	stubSigner(t)
	orig := presignPutObject
	t.Cleanup(func() { presignPutObject = orig })
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-put-fail")
	}

	_, err := NewService(testConfig()).Issue(context.Background(), Request{FileName: "cat.png", ContentType: "image/png"})
	require.ErrorIs(t, err, common.ErrSigning)
	require.Contains(t, err.Error(), "presign-put-fail")
}

func TestIssue_ClientFactoryErrorIsSigningError(t *testing.T) {
	stubSigner(t)
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := NewService(testConfig()).Issue(context.Background(), Request{FileName: "cat.png", ContentType: "image/png"})
	require.ErrorIs(t, err, common.ErrSigning)
	require.Contains(t, err.Error(), "load-fail")
}

func TestIssue_DoubleIssuanceIndependent(t *testing.T) {
	captured := stubSigner(t)
	svc := NewService(testConfig())

	g1, err := svc.Issue(context.Background(), Request{FileName: "cat.png", ContentType: "image/png"})
	require.NoError(t, err)
	g2, err := svc.Issue(context.Background(), Request{FileName: "cat.png", ContentType: "image/png"})
	require.NoError(t, err)

	// Two grants for the same request are both produced; neither call
	// mutates storage or invalidates the other.
	require.Equal(t, 2, captured.calls)
	require.Equal(t, g1.Key, g2.Key)
	require.Equal(t, g1.PublicURL, g2.PublicURL)
}

func TestDeriveKey_Policies(t *testing.T) {
	origNow := timeNow
	t.Cleanup(func() { timeNow = origNow })
	timeNow = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}

	t.Run("timestamp prefixes unix millis", func(t *testing.T) {
		cfg := testConfig()
		cfg.KeyPolicy = config.KeyPolicyTimestamp
		key := NewService(cfg).deriveKey("cat.png")
		require.Equal(t, "1788091200000-cat.png", key)
	})

	t.Run("random uses date path and keeps extension", func(t *testing.T) {
		cfg := testConfig()
		cfg.KeyPolicy = config.KeyPolicyRandom
		key := NewService(cfg).deriveKey("cat.png")
		require.True(t, strings.HasPrefix(key, "2026/08/30/"))
		require.True(t, strings.HasSuffix(key, ".png"))
		require.NotContains(t, key, "cat")

		// Two derivations never collide.
		require.NotEqual(t, key, NewService(cfg).deriveKey("cat.png"))
	})

	t.Run("unknown policy falls back to exact", func(t *testing.T) {
		cfg := testConfig()
		cfg.KeyPolicy = "bogus"
		require.Equal(t, "cat.png", NewService(cfg).deriveKey("cat.png"))
	})
}
