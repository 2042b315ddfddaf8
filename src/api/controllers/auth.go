package controllers

import (
	"context"
	"errors"
	"strings"

	"advisor/src/clients/amfi"
	"advisor/src/models"
	"advisor/src/repositories"
	"advisor/src/schemas"
	"advisor/src/services"
	"advisor/src/utils"

	"github.com/go-playground/validator/v10"
)

const (
	SignupSuccessMessage  = "User created successfully"
	EmailMismatchMessage  = "Email does not match the email registered with AMFI for this ARN."
	ARNNotFoundMessage    = "ARN number not found in AMFI website."
	UserNotFoundMessage   = "User Dont Exist"
	AuthMissingMessage    = "Authorization header missing or invalid"
	EmailNotFoundMessage  = "Email Does not Exist."
	WrongPasswordMessage  = "Password Is incorrect."
	InactiveUserMessage   = "User account is disabled."
	DuplicateEmailMessage = "user with this email already exists."
	DuplicateARNMessage   = "user with this arn number already exists."
)

type AuthControllerI interface {
	Signup(ctx context.Context, req *schemas.SignupRequest) (*schemas.MessageResponse, error)
	Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.TokenResponse, error)
	RefreshToken(ctx context.Context, req *schemas.RefreshRequest) (*schemas.AccessTokenResponse, error)
	GetAllUsers(ctx context.Context) (*schemas.UsersResponse, error)
	GetUserFromToken(ctx context.Context, token string) (*models.User, error)
}

type AuthController struct {
	UserRepo     repositories.UserRepository
	AMFIClient   amfi.AMFIServiceClientI
	TokenService services.TokenServiceI
	validate     *validator.Validate
}

func NewAuthController(userRepo repositories.UserRepository, amfiClient amfi.AMFIServiceClientI, tokenService services.TokenServiceI) *AuthController {
	return &AuthController{
		UserRepo:     userRepo,
		AMFIClient:   amfiClient,
		TokenService: tokenService,
		validate:     newValidator(),
	}
}

// Signup creates a user once the ARN is found on the AMFI registry and the
// registered email matches the one supplied.
func (c *AuthController) Signup(ctx context.Context, req *schemas.SignupRequest) (*schemas.MessageResponse, error) {
	req.Email = NormalizeEmail(req.Email)
	if err := c.validate.Struct(req); err != nil {
		return nil, utils.BadRequest(validationMessage(err))
	}

	if _, err := c.UserRepo.GetByEmail(ctx, req.Email); err == nil {
		return nil, utils.BadRequest(DuplicateEmailMessage)
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}
	if _, err := c.UserRepo.GetByARN(ctx, req.ARNNumber); err == nil {
		return nil, utils.BadRequest(DuplicateARNMessage)
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	details, err := c.AMFIClient.LookupARN(ctx, req.ARNNumber)
	if errors.Is(err, amfi.ErrARNNotFound) {
		return nil, utils.NotFound(ARNNotFoundMessage)
	} else if err != nil {
		return nil, err
	}
	if !strings.EqualFold(strings.TrimSpace(details.Email), req.Email) {
		return nil, utils.BadRequest(EmailMismatchMessage)
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		ARNNumber: req.ARNNumber,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashed,
		IsActive:  true,
	}
	if err := c.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, utils.BadRequest(DuplicateEmailMessage)
		}
		return nil, err
	}

	utils.LoggerFromContext(ctx).WithField("arn", user.ARNNumber).Info("User signed up")
	return &schemas.MessageResponse{Message: SignupSuccessMessage}, nil
}

func (c *AuthController) Login(ctx context.Context, req *schemas.LoginRequest) (*schemas.TokenResponse, error) {
	req.Email = NormalizeEmail(req.Email)
	if err := c.validate.Struct(req); err != nil {
		return nil, utils.BadRequest(validationMessage(err))
	}

	user, err := c.UserRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, utils.BadRequest(EmailNotFoundMessage)
	} else if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, utils.BadRequest(InactiveUserMessage)
	}
	if !services.CheckPassword(user.Password, req.Password) {
		return nil, utils.BadRequest(WrongPasswordMessage)
	}

	access, refresh, err := c.TokenService.IssuePair(user.ARNNumber)
	if err != nil {
		return nil, err
	}
	return &schemas.TokenResponse{Refresh: refresh, Access: access}, nil
}

func (c *AuthController) RefreshToken(ctx context.Context, req *schemas.RefreshRequest) (*schemas.AccessTokenResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, utils.BadRequest(validationMessage(err))
	}

	arn, err := c.TokenService.Verify(req.Refresh, services.RefreshTokenType)
	if err != nil {
		return nil, utils.Unauthorized(err.Error())
	}
	access, err := c.TokenService.IssueAccess(arn)
	if err != nil {
		return nil, err
	}
	return &schemas.AccessTokenResponse{Access: access}, nil
}

func (c *AuthController) GetAllUsers(ctx context.Context) (*schemas.UsersResponse, error) {
	users, err := c.UserRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	response := &schemas.UsersResponse{Success: make([]schemas.UserResponse, 0, len(users))}
	for _, u := range users {
		response.Success = append(response.Success, schemas.UserResponse{
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			ARNNumber: u.ARNNumber,
		})
	}
	return response, nil
}

// GetUserFromToken resolves the user behind an access token.
func (c *AuthController) GetUserFromToken(ctx context.Context, token string) (*models.User, error) {
	arn, err := c.TokenService.Verify(token, services.AccessTokenType)
	if err != nil {
		return nil, utils.Unauthorized(err.Error())
	}
	user, err := c.UserRepo.GetByARN(ctx, arn)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return nil, utils.NotFound(UserNotFoundMessage)
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizeEmail trims the address and lower-cases its domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + "@" + strings.ToLower(email[at+1:])
}
