package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/auth"
	"github.com/LARRYDMO/Job-portal-website/pkg/logger"
	"github.com/LARRYDMO/Job-portal-website/pkg/security"
)

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(sub auth.Subject) (string, error)
}

type authUsecase struct {
	userRepo  domain.UserRepository
	tokens    TokenIssuer
	guard     domain.LoginGuard
	secLogger *security.SecurityLogger
}

func NewAuthUsecase(userRepo domain.UserRepository, tokens TokenIssuer, guard domain.LoginGuard, secLogger *security.SecurityLogger) domain.AuthUsecase {
	if secLogger == nil {
		secLogger = security.DefaultLogger()
	}
	return &authUsecase{
		userRepo:  userRepo,
		tokens:    tokens,
		guard:     guard,
		secLogger: secLogger,
	}
}

func (u *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return nil, apperror.BadRequest("Name, email and password are required")
	}
	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, apperror.BadRequest("Role must be Candidate or Employer")
	}

	existing, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.EmailExists()
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: auth.HashPassword(input.Password),
		Role:         role,
	}
	// Company name is only kept for employers
	if role == domain.RoleEmployer && input.CompanyName != nil {
		if name := strings.TrimSpace(*input.CompanyName); name != "" {
			user.CompanyName = &name
		}
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.EmailExists()
		}
		return nil, apperror.Internal(err)
	}

	u.secLogger.Log(ctx, security.SecurityEvent{
		Event:        security.EventUserRegistered,
		SubjectType:  "user_id",
		SubjectValue: security.HashValue(user.ID),
		Details:      map[string]interface{}{"role": string(user.Role)},
	})
	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, attempt domain.LoginAttempt) (*domain.AuthResult, error) {
	blocked, err := u.guard.IsBlocked(ctx, attempt.Email, attempt.IP)
	if err != nil {
		// guard errors fail open
		logger.Log.Warn("Login guard unavailable", "error", err)
	}
	if blocked {
		u.secLogger.LogLoginBlocked(ctx, attempt.Email, attempt.IP, attempt.UserAgent, attempt.RequestID)
		return nil, apperror.TooManyRequests("Too many failed login attempts. Please try again later.")
	}

	user, err := u.userRepo.GetByEmail(ctx, attempt.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}
	if user == nil || !auth.VerifyPassword(attempt.Password, user.PasswordHash) {
		if err := u.guard.RecordFailure(ctx, attempt.Email, attempt.IP, attempt.UserAgent, attempt.RequestID); err != nil {
			logger.Log.Warn("Failed to record login failure", "error", err)
		}
		return nil, apperror.InvalidCredentials()
	}

	if err := u.guard.Clear(ctx, attempt.Email, attempt.IP); err != nil {
		logger.Log.Warn("Failed to clear login failures", "error", err)
	}
	u.secLogger.LogLoginSuccess(ctx, user.ID, attempt.IP, attempt.UserAgent, attempt.RequestID)
	return u.issue(user)
}

func (u *authUsecase) Me(ctx context.Context, caller domain.Identity) (*domain.User, error) {
	if !caller.IsAuthenticated() {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	user, err := u.userRepo.GetByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func (u *authUsecase) issue(user *domain.User) (*domain.AuthResult, error) {
	token, err := u.tokens.Issue(auth.Subject{
		ID:    user.ID,
		Name:  user.Name,
		Role:  string(user.Role),
		Email: user.Email,
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{
		Token: token,
		User: domain.UserSummary{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			Role:        user.Role,
			CompanyName: user.CompanyName,
		},
	}, nil
}
