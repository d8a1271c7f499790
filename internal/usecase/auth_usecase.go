package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/auth"
	"simhire-backend/pkg/logger"
	"simhire-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type authUsecase struct {
	userRepo domain.UserRepository
	issuer   *auth.Issuer
	denylist domain.TokenDenylist
	guard    domain.LoginGuard
	validate *validator.Validate
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	issuer *auth.Issuer,
	denylist domain.TokenDenylist,
	guard domain.LoginGuard,
	validate *validator.Validate,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		issuer:   issuer,
		denylist: denylist,
		guard:    guard,
		validate: validate,
	}
}

func (u *authUsecase) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResult, error) {
	if err := validation.Struct(u.validate, &req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		Role:         req.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Role == domain.RoleCompany {
		user.CompanyName = optionalString(req.CompanyName)
	}

	// Repository returns a 409 AppError on duplicate email
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, repoError(err, "User not found")
	}

	logger.Log.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role)
	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	if err := validation.Struct(u.validate, &req); err != nil {
		return nil, err
	}
	email := strings.ToLower(req.Email)

	blocked, err := u.guard.IsBlocked(ctx, email)
	if err != nil {
		logger.Log.WarnContext(ctx, "login guard unavailable", "error", err)
	}
	if blocked {
		return nil, errTooManyAttempts
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, u.failedLogin(ctx, email)
	}

	if err := u.guard.Reset(ctx, email); err != nil {
		logger.Log.WarnContext(ctx, "login guard reset failed", "error", err)
	}
	return u.issue(user)
}

var errTooManyAttempts = apperror.New(http.StatusTooManyRequests, "Too many failed login attempts. Please try again later.", nil)

// failedLogin counts the failure and hides whether the email exists
func (u *authUsecase) failedLogin(ctx context.Context, email string) error {
	blocked, err := u.guard.RecordFailure(ctx, email)
	if err != nil {
		logger.Log.WarnContext(ctx, "login guard unavailable", "error", err)
	}
	if blocked {
		return errTooManyAttempts
	}
	return apperror.Unauthorized("Invalid email or password")
}

func (u *authUsecase) issue(user *domain.User) (*domain.AuthResult, error) {
	token, exp, err := u.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "User not found")
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, id string, req domain.ProfileUpdate) (*domain.User, error) {
	if err := validation.Struct(u.validate, &req); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "User not found")
	}

	user.Name = req.Name
	if user.Role == domain.RoleCompany && req.CompanyName != "" {
		user.CompanyName = optionalString(req.CompanyName)
	}
	user.UpdatedAt = time.Now()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, repoError(err, "User not found")
	}
	return user, nil
}

// Logout revokes the token id until the token's own expiry.
func (u *authUsecase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	if err := u.denylist.Revoke(ctx, tokenID, expiresAt); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
