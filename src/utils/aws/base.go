package aws_handler

import (
	"errors"
	"strings"

	"advisor/src/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
)

var ErrMissingRegion = errors.New("auth.awsRegion is required when auth.jwtSecretId is set")

type AWSHandler struct {
	SecretManager *SecretManager
}

// NewAWSHandler opens a session in the region configured under auth.awsRegion.
func NewAWSHandler(cfg config.AuthConfig) (*AWSHandler, error) {
	region := strings.TrimSpace(cfg.AWSRegion)
	if region == "" {
		return nil, ErrMissingRegion
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &AWSHandler{
		SecretManager: NewSecretManager(secretsmanager.New(sess)),
	}, nil
}
