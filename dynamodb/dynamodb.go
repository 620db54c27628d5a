// Package dynamodb resolves actor references against an actor catalog kept
// in DynamoDB.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultMaxAttempts = 5

type Options struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	SessionToken string
	MaxAttempts  int
}

func (o Options) validate() error {
	if strings.TrimSpace(o.Region) == "" {
		return errors.New("dynamodb: region is required")
	}
	hasStatic := o.AccessKey != "" || o.SecretKey != "" || o.SessionToken != ""
	if hasStatic && (o.AccessKey == "" || o.SecretKey == "") {
		return errors.New("dynamodb: access key and secret key must be set together")
	}
	return nil
}

func (o Options) loadOptions() []func(*awscfg.LoadOptions) error {
	attempts := o.MaxAttempts
	if attempts <= 0 {
		attempts = defaultMaxAttempts
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(strings.TrimSpace(o.Region)),
		awscfg.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), attempts)
		}),
	}
	if o.AccessKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, o.SessionToken),
		))
	}
	return opts
}

// NewClient builds a DynamoDB client. Endpoint overrides the AWS endpoint,
// which is how DynamoDB Local is reached.
func NewClient(ctx context.Context, opts Options) (*dynamodb.Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts.loadOptions()...)
	if err != nil {
		return nil, fmt.Errorf("dynamodb: load aws config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	}), nil
}

func validateTable(table string) error {
	if strings.TrimSpace(table) == "" {
		return errors.New("dynamodb: table name is required")
	}
	return nil
}
