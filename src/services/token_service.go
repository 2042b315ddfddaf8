package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

const (
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"

	claimUserID    = "user_id"
	claimTokenType = "token_type"
	claimJTI       = "jti"
)

var ErrInvalidToken = errors.New("Token is invalid or expired")

type TokenServiceI interface {
	IssuePair(userARN int64) (access string, refresh string, err error)
	IssueAccess(userARN int64) (string, error)
	Verify(token, tokenType string) (int64, error)
}

// TokenService signs HS256 tokens whose user_id claim is the user's ARN.
type TokenService struct {
	auth            *jwtauth.JWTAuth
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

func NewTokenService(secret string, accessLifetime, refreshLifetime time.Duration) *TokenService {
	return &TokenService{
		auth:            jwtauth.New("HS256", []byte(secret), nil),
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
	}
}

func (s *TokenService) IssuePair(userARN int64) (string, string, error) {
	access, err := s.issue(userARN, AccessTokenType, s.accessLifetime)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.issue(userARN, RefreshTokenType, s.refreshLifetime)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (s *TokenService) IssueAccess(userARN int64) (string, error) {
	return s.issue(userARN, AccessTokenType, s.accessLifetime)
}

func (s *TokenService) issue(userARN int64, tokenType string, lifetime time.Duration) (string, error) {
	claims := map[string]interface{}{
		claimUserID:    userARN,
		claimTokenType: tokenType,
		claimJTI:       uuid.NewString(),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, lifetime)

	_, token, err := s.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}
	return token, nil
}

// Verify checks signature, expiry and token type and returns the ARN carried
// in the user_id claim.
func (s *TokenService) Verify(tokenString, tokenType string) (int64, error) {
	token, err := jwtauth.VerifyToken(s.auth, tokenString)
	if err != nil {
		return 0, ErrInvalidToken
	}

	gotType, _ := token.Get(claimTokenType)
	if cast.ToString(gotType) != tokenType {
		return 0, ErrInvalidToken
	}

	userID, ok := token.Get(claimUserID)
	if !ok {
		return 0, ErrInvalidToken
	}
	arn, err := cast.ToInt64E(userID)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return arn, nil
}
