package aws_handler

import (
	"context"
	"fmt"
	"strings"

	"advisor/src/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

type SecretManager struct {
	svc secretsmanageriface.SecretsManagerAPI
}

func NewSecretManager(svc secretsmanageriface.SecretsManagerAPI) *SecretManager {
	return &SecretManager{svc: svc}
}

func (s *SecretManager) GetSecretValue(ctx context.Context, secretId string) (string, error) {
	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretId),
	}

	result, err := s.svc.GetSecretValueWithContext(ctx, input)
	if err != nil {
		return "", err
	}
	if result.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", secretId)
	}

	return *result.SecretString, nil
}

// ResolveJWTSecret returns the signing secret, preferring AWS Secrets Manager
// when auth.jwtSecretId is configured.
func ResolveJWTSecret(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.Auth.JWTSecretID == "" {
		if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
			return "", fmt.Errorf("auth.jwtSecret is empty and no auth.jwtSecretId is configured")
		}
		return cfg.Auth.JWTSecret, nil
	}

	handler, err := NewAWSHandler(cfg.Auth)
	if err != nil {
		return "", fmt.Errorf("failed to create AWS session: %w", err)
	}
	secret, err := handler.SecretManager.GetSecretValue(ctx, cfg.Auth.JWTSecretID)
	if err != nil {
		return "", fmt.Errorf("failed to read JWT secret %s: %w", cfg.Auth.JWTSecretID, err)
	}
	return secret, nil
}
