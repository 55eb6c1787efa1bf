package imageref

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// DefaultMaxBytes bounds uploads accepted by DataURIEncoder.
const DefaultMaxBytes int64 = 2 << 20

// Upload is a selected image file.
type Upload struct {
	Filename    string
	ContentType string // optional; sniffed from Data when empty
	Data        []byte
}

// Encoder produces an image reference for an upload.
type Encoder interface {
	Encode(ctx context.Context, u Upload) (string, error)
}

// EncoderFunc adapts a function to Encoder.
type EncoderFunc func(ctx context.Context, u Upload) (string, error)

func (f EncoderFunc) Encode(ctx context.Context, u Upload) (string, error) {
	return f(ctx, u)
}

// Config for the default encoder.
type Config struct {
	MaxBytes int64 `env:"IMAGE_MAX_BYTES" envDefault:"2097152"`
}

// DataURIEncoder embeds the image as a base64 data URI.
type DataURIEncoder struct {
	maxBytes int64
}

// EncoderOption configures a DataURIEncoder.
type EncoderOption func(*DataURIEncoder)

// WithMaxBytes overrides DefaultMaxBytes. Non-positive values are ignored.
func WithMaxBytes(n int64) EncoderOption {
	return func(e *DataURIEncoder) {
		if n > 0 {
			e.maxBytes = n
		}
	}
}

// NewDataURIEncoder returns an encoder with DefaultMaxBytes.
func NewDataURIEncoder(opts ...EncoderOption) *DataURIEncoder {
	e := &DataURIEncoder{maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewDataURIEncoderFromConfig builds an encoder from cfg.
func NewDataURIEncoderFromConfig(cfg Config) *DataURIEncoder {
	return NewDataURIEncoder(WithMaxBytes(cfg.MaxBytes))
}

// Encode returns "data:<mime>;base64,<payload>".
func (e *DataURIEncoder) Encode(ctx context.Context, u Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	contentType, err := Validate(u, e.maxBytes)
	if err != nil {
		return "", err
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(u.Data), nil
}

// Validate checks size and content and returns the image MIME type.
// The sniffed type wins over a declared one.
func Validate(u Upload, maxBytes int64) (string, error) {
	if len(u.Data) == 0 {
		return "", ErrEmptyUpload
	}
	if maxBytes > 0 && int64(len(u.Data)) > maxBytes {
		return "", fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(u.Data), maxBytes)
	}

	contentType := http.DetectContentType(u.Data)
	if !strings.HasPrefix(contentType, "image/") {
		declared := strings.TrimSpace(strings.SplitN(u.ContentType, ";", 2)[0])
		// http.DetectContentType does not recognize SVG.
		if declared != "image/svg+xml" || !strings.HasPrefix(contentType, "text/") {
			return "", fmt.Errorf("%w: %s", ErrNotImage, contentType)
		}
		contentType = declared
	}
	return contentType, nil
}
