package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/moviedb/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSessionTTL is the lifetime of a session token when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// AuthService handles registration, login, password recovery and session
// tokens.
type AuthService struct {
	users         domain.UserRepository
	sessionSecret []byte
	bcryptCost    int
	sessionTTL    time.Duration
	attempts      *TokenBucket // nil disables throttling
}

// NewAuthService creates a new AuthService. A nil limiter disables attempt
// throttling.
func NewAuthService(users domain.UserRepository, sessionSecret string, bcryptCost int, sessionTTL time.Duration, limiter *TokenBucket) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &AuthService{
		users:         users,
		sessionSecret: []byte(sessionSecret),
		bcryptCost:    bcryptCost,
		sessionTTL:    sessionTTL,
		attempts:      limiter,
	}
}

// Register creates a new user account after validating inputs. The
// recovery answer is stored as entered.
func (s *AuthService) Register(ctx context.Context, username, password, confirmPassword, recoveryAnswer string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" || strings.TrimSpace(recoveryAnswer) == "" {
		return nil, fmt.Errorf("%w: username, password, and recovery answer are required", domain.ErrInvalidInput)
	}

	if password != confirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:         username,
		PasswordHash:     hash,
		RecoveryQuestion: domain.RecoveryQuestion,
		RecoveryAnswer:   recoveryAnswer,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate checks a username and password and returns the user ID.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if !s.allow(username) {
		return 0, domain.ErrTooManyAttempts
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrInvalidCredentials
		}
		return 0, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return 0, domain.ErrInvalidCredentials
	}

	s.reset(username)
	return user.ID, nil
}

// Login authenticates the user and opens a session carrying a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	userID, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	sess, err := s.newSession(user)
	if err != nil {
		return nil, fmt.Errorf("issue session: %w", err)
	}

	slog.Info("user logged in", "user_id", user.ID)
	return sess, nil
}

// ValidateToken parses and validates a session token string.
// Returns the user ID from the sub claim.
func (s *AuthService) ValidateToken(tokenString string) (int64, error) {
	userID, _, err := s.parseToken(tokenString)
	return userID, err
}

// Resume validates a session token and reloads the session it describes.
func (s *AuthService) Resume(ctx context.Context, tokenString string) (*domain.Session, error) {
	userID, exp, err := s.parseToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &domain.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Token:     tokenString,
		ExpiresAt: exp,
	}, nil
}

// VerifyRecovery checks the recovery answer for a username and returns the
// user ID the password may be reset for.
func (s *AuthService) VerifyRecovery(ctx context.Context, username, answer string) (int64, error) {
	username = strings.TrimSpace(username)
	if !s.allow(username) {
		return 0, domain.ErrTooManyAttempts
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrInvalidRecovery
		}
		return 0, fmt.Errorf("get user: %w", err)
	}

	if user.RecoveryAnswer == "" || !strings.EqualFold(user.RecoveryAnswer, answer) {
		return 0, domain.ErrInvalidRecovery
	}

	s.reset(username)
	return user.ID, nil
}

// ResetPassword overwrites the user's password. It does not ask for the
// old password; callers gate it behind VerifyRecovery.
func (s *AuthService) ResetPassword(ctx context.Context, userID int64, newPassword, confirmPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if newPassword != confirmPassword {
		return fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}

	hash, err := s.hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	slog.Info("password reset", "user_id", userID)
	return nil
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password must be at most 72 bytes", domain.ErrInvalidInput)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) newSession(user *domain.User) (*domain.Session, error) {
	now := time.Now()
	exp := now.Add(s.sessionTTL)
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.sessionSecret)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Token:     token,
		ExpiresAt: time.Unix(exp.Unix(), 0),
	}, nil
}

func (s *AuthService) parseToken(tokenString string) (int64, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.sessionSecret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, time.Time{}, domain.ErrUnauthorized
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, time.Time{}, domain.ErrUnauthorized
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, time.Time{}, domain.ErrUnauthorized
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0, time.Time{}, domain.ErrUnauthorized
	}

	return userID, exp.Time, nil
}

func (s *AuthService) allow(username string) bool {
	if s.attempts == nil {
		return true
	}
	return s.attempts.Allow(username)
}

func (s *AuthService) reset(username string) {
	if s.attempts != nil {
		s.attempts.Reset(username)
	}
}
