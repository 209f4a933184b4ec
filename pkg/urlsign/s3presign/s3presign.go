// Package s3presign issues presigned URLs for S3-compatible endpoints by
// delegating to the AWS SDK's SigV4 presigner. It implements the same
// urlsign.URLIssuer capability as the native signer, so callers can mount
// either behind one interface. Presigning is a local computation; no request
// is sent to the endpoint.
package s3presign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tendant/gcs-urlsign/pkg/urlsign"
)

// Config options for the S3 presigner
type Config struct {
	Region          string // AWS region
	AccessKeyID     string // Access key ID
	SecretAccessKey string // Secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (default: false)
	ExpiresIn       int    // Default validity window in seconds (default: 300)
}

// Presigner issues SigV4-presigned URLs. It satisfies urlsign.URLIssuer.
type Presigner struct {
	presign   *s3.PresignClient
	expiresIn time.Duration
}

// New creates an S3 presigner from config.
func New(config Config) (*Presigner, error) {
	if config.Region == "" {
		config.Region = "us-east-1"
	}
	if config.ExpiresIn == 0 {
		config.ExpiresIn = int(urlsign.DefaultExpiry / time.Second)
	}

	var awsCfg aws.Config
	var err error

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			)),
		)
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(config.Region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var s3Options []func(*s3.Options)
	if config.Endpoint != "" {
		s3Options = append(s3Options, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = config.UsePathStyle
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Options...)

	return &Presigner{
		presign:   s3.NewPresignClient(client),
		expiresIn: time.Duration(config.ExpiresIn) * time.Second,
	}, nil
}

// IssueURL presigns method on the located object. Supported methods are GET
// and PUT; anything else is an error.
func (p *Presigner) IssueURL(ctx context.Context, method string, loc urlsign.ResourceLocator, expiresIn time.Duration) (string, error) {
	if expiresIn == 0 {
		expiresIn = p.expiresIn
	}

	switch method {
	case "GET", "":
		req, err := p.presign.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(loc.Bucket),
			Key:    aws.String(loc.Object),
		}, s3.WithPresignExpires(expiresIn))
		if err != nil {
			return "", fmt.Errorf("failed to presign GET: %w", err)
		}
		return req.URL, nil
	case "PUT":
		req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
			Bucket: aws.String(loc.Bucket),
			Key:    aws.String(loc.Object),
		}, s3.WithPresignExpires(expiresIn))
		if err != nil {
			return "", fmt.Errorf("failed to presign PUT: %w", err)
		}
		return req.URL, nil
	default:
		return "", errors.New("s3presign: unsupported method " + method)
	}
}
