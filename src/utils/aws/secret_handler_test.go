package aws_handler_test

import (
	"context"
	"testing"

	"advisor/src/config"
	aws_handler "advisor/src/utils/aws"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type secretsManagerMock struct {
	secretsmanageriface.SecretsManagerAPI
	secrets map[string]string
}

func (m *secretsManagerMock) GetSecretValueWithContext(_ aws.Context, input *secretsmanager.GetSecretValueInput, _ ...request.Option) (*secretsmanager.GetSecretValueOutput, error) {
	value, ok := m.secrets[*input.SecretId]
	if !ok {
		return nil, assert.AnError
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
}

func TestGetSecretValue(t *testing.T) {
	manager := aws_handler.NewSecretManager(&secretsManagerMock{secrets: map[string]string{"advisor/jwt": "s3cret"}})

	value, err := manager.GetSecretValue(context.Background(), "advisor/jwt")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)

	_, err = manager.GetSecretValue(context.Background(), "missing")
	assert.Error(t, err)
}

func TestResolveJWTSecretFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "local-secret"

	secret, err := aws_handler.ResolveJWTSecret(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "local-secret", secret)

	cfg.Auth.JWTSecret = " "
	_, err = aws_handler.ResolveJWTSecret(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNewAWSHandler(t *testing.T) {
	_, err := aws_handler.NewAWSHandler(config.AuthConfig{AWSRegion: " "})
	assert.ErrorIs(t, err, aws_handler.ErrMissingRegion)

	handler, err := aws_handler.NewAWSHandler(config.AuthConfig{AWSRegion: "ap-south-1"})
	require.NoError(t, err)
	assert.NotNil(t, handler.SecretManager)
}

func TestResolveJWTSecretRequiresRegion(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecretID = "advisor/jwt"

	_, err := aws_handler.ResolveJWTSecret(context.Background(), cfg)
	assert.ErrorIs(t, err, aws_handler.ErrMissingRegion)
}
