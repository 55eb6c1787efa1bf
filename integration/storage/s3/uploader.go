package s3

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/Chrissankov/gymshark-ecommerce/core/imageref"
)

var _ imageref.Encoder = (*ImageUploader)(nil)

// Client is the subset of the S3 API the uploader calls.
type Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
}

// Config for the uploader.
type Config struct {
	Bucket         string `env:"S3_BUCKET"`
	Region         string `env:"S3_REGION"`
	AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"S3_SECRET_KEY"`
	Endpoint       string `env:"S3_ENDPOINT"` // S3-compatible services
	BaseURL        string `env:"S3_BASE_URL"` // CDN or public base; derived when empty
	ForcePathStyle bool   `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
	KeyPrefix      string `env:"S3_KEY_PREFIX" envDefault:"products/"`
	MaxBytes       int64  `env:"IMAGE_MAX_BYTES" envDefault:"2097152"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// Option configures an ImageUploader.
type Option func(*options)

type options struct {
	client        Client
	httpClient    *http.Client
	uploadTimeout time.Duration
	newKey        func() string
}

// WithClient injects a pre-built S3 client.
func WithClient(c Client) Option {
	return func(o *options) { o.client = c }
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithUploadTimeout bounds each PutObject call.
func WithUploadTimeout(d time.Duration) Option {
	return func(o *options) { o.uploadTimeout = d }
}

// WithKeyGenerator replaces the uuid object name generator.
func WithKeyGenerator(fn func() string) Option {
	return func(o *options) { o.newKey = fn }
}

// ImageUploader stores uploads as public objects.
type ImageUploader struct {
	client         Client
	bucket         string
	region         string
	endpoint       string
	baseURL        string
	forcePathStyle bool
	prefix         string
	maxBytes       int64
	uploadTimeout  time.Duration
	newKey         func() string
}

// New builds an uploader, loading the AWS config unless WithClient is given.
func New(ctx context.Context, cfg Config, opts ...Option) (*ImageUploader, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	o := &options{newKey: uuid.NewString}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
		}

		awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client = s3aws.NewFromConfig(awsCfg, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = imageref.DefaultMaxBytes
	}

	return &ImageUploader{
		client:         client,
		bucket:         cfg.Bucket,
		region:         cfg.Region,
		endpoint:       cfg.Endpoint,
		baseURL:        cfg.BaseURL,
		forcePathStyle: cfg.ForcePathStyle,
		prefix:         strings.TrimPrefix(cfg.KeyPrefix, "/"),
		maxBytes:       maxBytes,
		uploadTimeout:  o.uploadTimeout,
		newKey:         o.newKey,
	}, nil
}

// Encode uploads u and returns its public URL.
func (u *ImageUploader) Encode(ctx context.Context, up imageref.Upload) (string, error) {
	contentType, err := imageref.Validate(up, u.maxBytes)
	if err != nil {
		return "", err
	}

	if u.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.uploadTimeout)
		defer cancel()
	}

	key := u.prefix + u.newKey() + extension(contentType, up.Filename)
	_, err = u.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(up.Data),
		ContentLength: aws.Int64(int64(len(up.Data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", classifyS3Error(err, "upload image")
	}
	return u.URL(key), nil
}

// URL returns the public URL of key.
func (u *ImageUploader) URL(key string) string {
	key = strings.TrimPrefix(key, "/")

	if u.baseURL != "" {
		return strings.TrimSuffix(u.baseURL, "/") + "/" + key
	}

	if u.endpoint != "" {
		endpoint := strings.TrimSuffix(u.endpoint, "/")
		scheme := "https://"
		if after, ok := strings.CutPrefix(endpoint, "http://"); ok {
			scheme = "http://"
			endpoint = after
		} else if after, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = after
		}
		if u.forcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", scheme, endpoint, u.bucket, key)
		}
		return fmt.Sprintf("%s%s.%s/%s", scheme, u.bucket, endpoint, key)
	}

	if u.forcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", u.region, u.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}

func extension(contentType, filename string) string {
	if ext := strings.ToLower(path.Ext(filename)); ext != "" && mime.TypeByExtension(ext) == contentType {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}
