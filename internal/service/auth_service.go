package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/MateoKaloshi/MotoLine/internal/domain/entity"
	"github.com/MateoKaloshi/MotoLine/internal/platform/logger"
	"github.com/MateoKaloshi/MotoLine/internal/repository"
)

// Claims is the JWT payload issued at login.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
	Address     string
}

type UpdateProfileInput struct {
	FirstName   *string
	LastName    *string
	PhoneNumber *string
	Address     *string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*UserView, error)
	// Login returns a signed bearer token and the authenticated user.
	Login(ctx context.Context, email, password string) (string, *UserView, error)
	// Logout revokes the token for its remaining lifetime.
	Logout(ctx context.Context, token string) error
	// Authenticate validates a bearer token and returns the user id it
	// was issued for.
	Authenticate(ctx context.Context, token string) (string, error)
	Profile(ctx context.Context, userID string) (*UserView, error)
	// UpdateProfile changes contact fields only; blank inputs are
	// ignored and at least one field must remain.
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*UserView, error)
	ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error
	// ChangeEmail verifies the current address before switching to the
	// new one.
	ChangeEmail(ctx context.Context, userID, current, newEmail string) (*UserView, error)
}

type authService struct {
	users    repository.UserRepository
	revoked  repository.RevokedTokenRepository
	secret   []byte
	tokenTTL time.Duration
	log      logger.Logger
}

func NewAuthService(
	users repository.UserRepository,
	revoked repository.RevokedTokenRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	log logger.Logger,
) AuthService {
	return &authService{
		users:    users,
		revoked:  revoked,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
		log:      log,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*UserView, error) {
	if input.Email == "" || input.Password == "" {
		return nil, ErrEmailPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Password:    string(hash),
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
	}

	id, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.ID = id

	view := toUserView(user)
	return &view, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *UserView, error) {
	if email == "" || password == "" {
		return "", nil, ErrEmailPasswordRequired
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	view := toUserView(user)
	return token, &view, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		// An expired or malformed token needs no revocation entry.
		return nil
	}

	ttl := s.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.revoked.Revoke(ctx, token, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	revoked, err := s.revoked.IsRevoked(ctx, token)
	if err != nil {
		return "", fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return "", ErrTokenRevoked
	}

	claims, err := s.parseToken(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *authService) Profile(ctx context.Context, userID string) (*UserView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	view := toUserView(user)
	return &view, nil
}

// emailPattern matches the loose shape checks applied at signup and
// email change; real validation happens by delivering mail.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *authService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*UserView, error) {
	params := repository.UpdateProfileParams{
		FirstName:   nonBlank(input.FirstName),
		LastName:    nonBlank(input.LastName),
		PhoneNumber: nonBlank(input.PhoneNumber),
		Address:     nonBlank(input.Address),
	}
	if params.FirstName == nil && params.LastName == nil && params.PhoneNumber == nil && params.Address == nil {
		return nil, ErrNoProfileFields
	}

	user, err := s.users.UpdateProfile(ctx, userID, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	view := toUserView(user)
	return &view, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID, current, newPassword, confirm string) error {
	if current == "" || newPassword == "" || confirm == "" {
		return ErrPasswordFieldsMissing
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *authService) ChangeEmail(ctx context.Context, userID, current, newEmail string) (*UserView, error) {
	current = strings.TrimSpace(current)
	newEmail = strings.TrimSpace(newEmail)
	if current == "" || newEmail == "" {
		return nil, ErrEmailFieldsMissing
	}
	if !emailPattern.MatchString(current) || !emailPattern.MatchString(newEmail) {
		return nil, ErrInvalidEmail
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !strings.EqualFold(user.Email, current) {
		return nil, ErrWrongCurrentEmail
	}
	if strings.EqualFold(user.Email, newEmail) {
		return nil, ErrSameEmail
	}

	updated, err := s.users.UpdateEmail(ctx, userID, newEmail)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrAlreadyExists):
			return nil, ErrEmailInUse
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, fmt.Errorf("update email: %w", err)
		}
	}
	view := toUserView(updated)
	return &view, nil
}

// nonBlank keeps a field only when it carries visible content.
func nonBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *authService) parseToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
