package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"billboard-watch/internal/data/entity"
	"billboard-watch/internal/data/repository"
	"billboard-watch/internal/dto/request"
	"billboard-watch/internal/dto/response"
	"billboard-watch/pkg/token"
	"billboard-watch/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (*response.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, tokenValue, password string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	RefreshToken(ctx context.Context, tokenValue string) (*response.TokenResponse, error)
	VerifyEmail(ctx context.Context, tokenValue string) error
}

type authService struct {
	repo   *repository.Repository
	tokens *token.Service
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *token.Service,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		config: config,
		log:    log,
	}
}

// normalizeEmail lower-cases and trims so lookups are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	// 1. Check email not taken
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	// 2. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Generate the email verification token
	verificationToken, err := utils.GenerateSecureToken()
	if err != nil {
		s.log.Error("Failed to generate verification token", zap.Error(err))
		return nil, fmt.Errorf("generate verification token: %w", err)
	}

	// 4. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:                  email,
		PasswordHash:           hashedPassword,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Phone:                  req.Phone,
		Role:                   entity.RoleUser,
		IsActive:               true,
		IsEmailVerified:        false,
		EmailVerificationToken: &verificationToken,
	}

	// 5. Save user. The unique index backs the pre-check under races.
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("create user: %w", err)
	}

	// 6. Issue session token (auto login after register)
	sessionToken, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.AuthResponse{
		User:  response.UserToResponse(user),
		Token: sessionToken,
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	// 1. Find user with the hash opted in
	user, err := s.repo.User.FindByEmailWithPassword(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	// 2. Check account is active
	if !user.IsActive {
		s.log.Warn("Inactive account tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountInactive
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	// 4. Update last login
	now := time.Now()
	if err := s.repo.User.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn("Failed to update last login",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		// Not fatal for the login itself
	}
	user.LastLogin = &now

	// 5. Issue session token
	sessionToken, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.AuthResponse{
		User:  response.UserToResponse(user),
		Token: sessionToken,
	}, nil
}

// ForgotPassword always succeeds from the caller's point of view. Whether
// the email exists must not be observable in the response.
func (s *authService) ForgotPassword(ctx context.Context, email string) (*response.ForgotPasswordResponse, error) {
	email = normalizeEmail(email)

	user, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		s.log.Error("Failed to find user for reset", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return &response.ForgotPasswordResponse{}, nil
	}

	resetToken, err := utils.GenerateSecureToken()
	if err != nil {
		s.log.Error("Failed to generate reset token", zap.Error(err))
		return nil, fmt.Errorf("generate reset token: %w", err)
	}

	expires := time.Now().Add(time.Duration(s.config.Reset.ExpiryMinutes) * time.Minute)
	if err := s.repo.User.SetResetToken(ctx, user.ID, resetToken, expires); err != nil {
		s.log.Error("Failed to store reset token",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("store reset token: %w", err)
	}

	s.log.Info("Password reset requested",
		zap.String("user_id", user.ID.String()),
		zap.String("email", email))

	resp := &response.ForgotPasswordResponse{}
	if !s.config.IsProduction() {
		// Dev convenience while email delivery is out of scope
		resp.ResetToken = resetToken
	}

	return resp, nil
}

func (s *authService) ResetPassword(ctx context.Context, tokenValue, password string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	// Match-and-clear in one store call; never issued, already consumed and
	// expired all land in the same failure.
	user, err := s.repo.User.ConsumeResetToken(ctx, tokenValue, hashedPassword)
	if err != nil {
		s.log.Error("Failed to consume reset token", zap.Error(err))
		return fmt.Errorf("consume reset token: %w", err)
	}
	if user == nil {
		return ErrTokenInvalid
	}

	s.log.Info("Password reset", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.repo.User.FindByIDWithPassword(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		s.log.Warn("Wrong current password", zap.String("user_id", userID.String()))
		return ErrWrongPassword
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.User.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		s.log.Error("Failed to update password",
			zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

// RefreshToken issues a fresh token for a valid presented token. The old
// token is not invalidated; it expires on its own schedule.
func (s *authService) RefreshToken(ctx context.Context, tokenValue string) (*response.TokenResponse, error) {
	claims, err := s.tokens.Verify(tokenValue)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			s.log.Warn("Refresh with expired token")
			return nil, ErrTokenExpired
		}
		s.log.Warn("Refresh with invalid token")
		return nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to find user for refresh",
			zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, ErrTokenInvalid
	}
	if !user.IsActive {
		s.log.Warn("Refresh for inactive account", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountInactive
	}

	newToken, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &response.TokenResponse{Token: newToken}, nil
}

func (s *authService) VerifyEmail(ctx context.Context, tokenValue string) error {
	user, err := s.repo.User.ConsumeVerificationToken(ctx, tokenValue)
	if err != nil {
		s.log.Error("Failed to consume verification token", zap.Error(err))
		return fmt.Errorf("consume verification token: %w", err)
	}
	if user == nil {
		return ErrTokenInvalid
	}

	s.log.Info("Email verified", zap.String("user_id", user.ID.String()))
	return nil
}
