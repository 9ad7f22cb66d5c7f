// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/launchkit/launchkit/internal/auth"
	"github.com/launchkit/launchkit/internal/domain"
	"github.com/launchkit/launchkit/internal/repository/user"
	mailsvc "github.com/launchkit/launchkit/internal/services/mail"
)

const welcomeMailTimeout = 10 * time.Second

type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	mailer       mailsvc.Provider
	logger       Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, mailer mailsvc.Provider, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		mailer:       mailer,
		logger:       logger,
	}
}

// Login authenticates a user and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		s.logger.Warn("login attempt with empty credentials",
			"has_email", email != "",
			"has_password", password != "")
		return nil, "", errors.New("email and password are required")
	}

	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("login failed - user not found",
			"email", maskEmail(email))
		return nil, "", errors.New("invalid credentials")
	}

	if err := u.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password",
			"email", maskEmail(email),
			"user_id", u.ID)
		return nil, "", errors.New("invalid credentials")
	}

	token, err := auth.GenerateJWT(u.ID, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Error("session token generation failed",
			"error", err,
			"user_id", u.ID)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful",
		"email", maskEmail(email),
		"user_id", u.ID)

	return u, token, nil
}

// Register creates a new account and sends the welcome email. The email is
// best effort: a mail failure is logged and the signup still succeeds.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	if err := s.validateRegistrationInput(email, password); err != nil {
		s.logger.Warn("registration validation failed",
			"email", maskEmail(email),
			"error", err.Error())
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		s.logger.Warn("registration failed - email already exists",
			"email", maskEmail(email),
			"existing_user_id", existing.ID)
		return nil, errors.New("an account with this email already exists")
	}

	u := &domain.User{
		Email: email,
		Name:  name,
	}
	if err := u.HashPassword(password); err != nil {
		s.logger.Error("password hashing failed",
			"error", err,
			"email", maskEmail(email))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := u.IsValid(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		s.logger.Error("user creation failed",
			"error", err,
			"email", maskEmail(email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered successfully",
		"email", maskEmail(email),
		"user_id", created.ID)

	go s.sendWelcomeEmail(created)

	return created, nil
}

func (s *AuthService) sendWelcomeEmail(u *domain.User) {
	ctx, cancel := context.WithTimeout(context.Background(), welcomeMailTimeout)
	defer cancel()

	name := u.Name
	if name == "" {
		name = "there"
	}
	msg := mailsvc.Message{
		To:      u.Email,
		Subject: "Welcome aboard",
		Body: fmt.Sprintf(`Hi %s,

Thanks for signing up. Your account is ready.

**Getting started**

- Open a new conversation and ask the assistant anything
- Save notes as you go and search them later

Reply to this email if anything looks off.`, name),
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Warn("welcome email failed",
			"user_id", u.ID,
			"error", err)
	}
}

func (s *AuthService) validateRegistrationInput(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("email validation: invalid email address")
	}
	if len(password) < 8 {
		return fmt.Errorf("password validation: password must be at least 8 characters")
	}
	return nil
}

// ValidateJWTToken validates a session token and returns the user ID.
func (s *AuthService) ValidateJWTToken(tokenString string) (uint, error) {
	if tokenString == "" {
		s.logger.Warn("token validation attempted with empty token")
		return 0, errors.New("empty token")
	}

	userID, err := auth.ValidateToken(tokenString, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Warn("token validation failed", "error", err)
		return 0, err
	}
	return userID, nil
}
