package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"
)

// SecretFetcher returns the raw payload of a named secret.
type SecretFetcher interface {
	FetchSecret(ctx context.Context, secretID, versionStage string) (string, error)
}

// LoadEnv pulls secrets from AWS Secrets Manager (if configured) and then loads
// a local .env file. Containers can source JWT_SECRET and API_TOKEN from the
// secret store while local development keeps using .env.
func LoadEnv(ctx context.Context, logger *slog.Logger) {
	if secretID := secretIDFromEnv(); secretID != "" {
		fetcher, err := NewAWSSecretFetcher(ctx, os.Getenv("AWS_SECRETS_MANAGER_REGION"))
		if err != nil {
			logger.WarnContext(ctx, "skipping secrets manager load", "error", err)
		} else if err := ApplySecret(ctx, fetcher, secretID, logger); err != nil {
			logger.WarnContext(ctx, "skipping secrets manager load", "secret_id", secretID, "error", err)
		}
	}
	loadDotEnv(logger)
}

func secretIDFromEnv() string {
	if id := os.Getenv("AWS_SECRETS_MANAGER_SECRET_ID"); id != "" {
		return id
	}
	return os.Getenv("AWS_SECRET_ID")
}

func loadDotEnv(logger *slog.Logger) {
	envFile := os.Getenv("ENV_FILE_PATH")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.Debug("no .env file loaded, using process environment", "path", envFile)
	}
}

// ApplySecret fetches a JSON object secret and exports each key as an
// environment variable. Variables already set win unless
// AWS_SECRETS_MANAGER_OVERWRITE is true.
func ApplySecret(ctx context.Context, fetcher SecretFetcher, secretID string, logger *slog.Logger) error {
	versionStage := os.Getenv("AWS_SECRETS_MANAGER_VERSION_STAGE")
	if versionStage == "" {
		versionStage = "AWSCURRENT"
	}
	overwrite := strings.EqualFold(os.Getenv("AWS_SECRETS_MANAGER_OVERWRITE"), "true")

	payload, err := fetcher.FetchSecret(ctx, secretID, versionStage)
	if err != nil {
		return fmt.Errorf("fetching secret %s: %w", secretID, err)
	}

	var kv map[string]any
	if err := json.Unmarshal([]byte(payload), &kv); err != nil {
		return fmt.Errorf("parsing secret %s as JSON: %w", secretID, err)
	}

	applied := 0
	for key, val := range kv {
		if !overwrite && os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, fmt.Sprint(val)); err != nil {
			return fmt.Errorf("setting env %s from secret: %w", key, err)
		}
		applied++
	}

	logger.InfoContext(ctx, "loaded env vars from secrets manager",
		"secret_id", secretID,
		"applied", applied,
		"overwrite", overwrite,
	)
	return nil
}

// AWSSecretFetcher reads secrets from AWS Secrets Manager.
type AWSSecretFetcher struct {
	client *secretsmanager.Client
}

// NewAWSSecretFetcher loads the default AWS credential chain.
func NewAWSSecretFetcher(ctx context.Context, region string) (*AWSSecretFetcher, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &AWSSecretFetcher{client: secretsmanager.NewFromConfig(cfg)}, nil
}

func (f *AWSSecretFetcher) FetchSecret(ctx context.Context, secretID, versionStage string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	}
	if versionStage != "" {
		input.VersionStage = aws.String(versionStage)
	}

	output, err := f.client.GetSecretValue(ctx, input)
	if err != nil {
		return "", err
	}

	switch {
	case output.SecretString != nil:
		return *output.SecretString, nil
	case len(output.SecretBinary) > 0:
		return string(output.SecretBinary), nil
	default:
		return "", fmt.Errorf("secret %s has no payload", secretID)
	}
}
