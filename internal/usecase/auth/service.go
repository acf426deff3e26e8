package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"device-checkout/internal/config"
	domainUser "device-checkout/internal/domain/user"
	"device-checkout/internal/logger"
	appErrors "device-checkout/pkg/errors"
	"device-checkout/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles operator authentication. Tokens are JWTs backed by a
// session row: logout, password reset and deactivation all revoke by
// deleting sessions, so a signed token alone never suffices.
type Service struct {
	userRepo    domainUser.Repository
	sessionRepo domainUser.SessionRepository
	cfg         *config.AuthConfig
}

// NewService creates a new auth service
func NewService(userRepo domainUser.Repository, sessionRepo domainUser.SessionRepository, cfg *config.AuthConfig) *Service {
	return &Service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
	}
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.Active {
		return nil, domainUser.ErrUserInactive
	}
	if !utils.CheckPassword(u.PasswordHash, req.Password) {
		logger.Warn("Failed login attempt",
			zap.String("username", req.Username),
			zap.String("event", "login_failed"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	// Opportunistic cleanup; expired rows also get rejected on lookup.
	_ = s.sessionRepo.DeleteExpired(ctx)

	ttl := s.sessionTTL(u.IsAdmin)
	token, err := utils.GenerateToken(u.ID, u.IsAdmin, s.cfg.JWTSecret, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	session := &domainUser.Session{
		UserID:    u.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	lastLogin := u.LastLogin
	if err := s.userRepo.UpdateLastLogin(ctx, u.ID); err != nil {
		return nil, err
	}

	logger.Info("User logged in",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
		zap.Bool("is_admin", u.IsAdmin),
		zap.String("event", "user_logged_in"),
	)

	return &LoginResponse{
		Username:  u.Username,
		IsAdmin:   u.IsAdmin,
		LastLogin: lastLogin,
		Token:     token,
	}, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// Resolve authenticates a bearer token: valid signature, live session
// row, active user.
func (s *Service) Resolve(ctx context.Context, token string) (*domainUser.User, error) {
	if _, err := utils.ValidateToken(token, s.cfg.JWTSecret); err != nil {
		return nil, appErrors.ErrInvalidToken
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domainUser.ErrSessionNotFound) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, err
	}
	if session.Expired(time.Now()) {
		_ = s.sessionRepo.DeleteByToken(ctx, token)
		return nil, appErrors.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return nil, appErrors.ErrInvalidToken
		}
		return nil, err
	}
	if !u.Active {
		return nil, domainUser.ErrUserInactive
	}

	return u, nil
}

func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &domainUser.User{
		Username:     utils.SanitizeString(req.Username),
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      req.IsAdmin,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.Info("User created",
		zap.String("user_id", u.ID.String()),
		zap.String("username", u.Username),
		zap.Bool("is_admin", u.IsAdmin),
		zap.String("event", "user_created"),
	)

	return ToUserResponse(u), nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// ResetPassword replaces the hash and revokes every session of the user.
func (s *Service) ResetPassword(ctx context.Context, userID uuid.UUID, req *ResetPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.NewAppError("WEAK_PASSWORD", err.Error(), nil)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	if err := s.sessionRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}

	logger.Info("Password reset",
		zap.String("user_id", userID.String()),
		zap.String("event", "password_reset"),
	)

	return nil
}

// SetActive toggles an account; deactivation revokes its sessions.
func (s *Service) SetActive(ctx context.Context, userID uuid.UUID, req *UpdateStatusRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if err := s.userRepo.UpdateActive(ctx, userID, *req.Active); err != nil {
		return err
	}
	if !*req.Active {
		if err := s.sessionRepo.DeleteByUser(ctx, userID); err != nil {
			return err
		}
	}

	logger.Info("User status updated",
		zap.String("user_id", userID.String()),
		zap.Bool("active", *req.Active),
		zap.String("event", "user_status_updated"),
	)

	return nil
}

func (s *Service) sessionTTL(isAdmin bool) time.Duration {
	if isAdmin {
		return time.Duration(s.cfg.AdminSessionMinutes) * time.Minute
	}
	return time.Duration(s.cfg.KioskSessionMinutes) * time.Minute
}
