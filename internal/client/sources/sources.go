// Package sources opens the files a user uploads as resources. A location
// is either a local path or an s3://bucket/key URL.
package sources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const s3Scheme = "s3://"

var ErrInvalidLocation = errors.New("invalid source location")

type objectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Source is an opened upload. The caller closes Body.
type Source struct {
	Name string
	Size int64
	Body io.ReadCloser
}

type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// Opener resolves locations. The S3 client is built on first use.
type Opener struct {
	opts S3Options

	once  sync.Once
	s3    objectGetter
	s3Err error
}

func NewOpener(opts S3Options) *Opener {
	return &Opener{opts: opts}
}

func (o *Opener) Open(ctx context.Context, location string) (*Source, error) {
	if strings.HasPrefix(location, s3Scheme) {
		return o.openS3(ctx, location)
	}
	return openLocal(location)
}

func openLocal(p string) (*Source, error) {
	if p == "" {
		return nil, ErrInvalidLocation
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidLocation, p)
	}
	return &Source{Name: filepath.Base(p), Size: info.Size(), Body: f}, nil
}

// ParseS3 splits s3://bucket/key.
func ParseS3(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidLocation, location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%w: want s3://bucket/key, got %s", ErrInvalidLocation, location)
	}
	return bucket, key, nil
}

func (o *Opener) openS3(ctx context.Context, location string) (*Source, error) {
	bucket, key, err := ParseS3(location)
	if err != nil {
		return nil, err
	}

	client, err := o.client(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", location, err)
	}

	return &Source{Name: path.Base(key), Size: aws.ToInt64(out.ContentLength), Body: out.Body}, nil
}

func (o *Opener) client(ctx context.Context) (objectGetter, error) {
	o.once.Do(func() {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(o.opts.Region)}
		if o.opts.AccessKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(o.opts.AccessKey, o.opts.SecretKey, "")))
		}

		cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
		if err != nil {
			o.s3Err = fmt.Errorf("load aws config: %w", err)
			return
		}

		o.s3 = newS3ClientFromConfig(cfg, func(so *s3.Options) {
			if o.opts.Endpoint != "" {
				so.BaseEndpoint = aws.String(o.opts.Endpoint)
				so.UsePathStyle = true
			}
		})
	})
	return o.s3, o.s3Err
}
