package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/kendall-kelly/order-tracking-api/config"
	"github.com/kendall-kelly/order-tracking-api/logger"
	"github.com/kendall-kelly/order-tracking-api/metrics"
	"github.com/kendall-kelly/order-tracking-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenType is the token kind label returned by Login
const TokenType = "bearer"

// Token is the result of a successful login
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenClaims is the signed payload of an access token.
// The subject is the username.
type TokenClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// CustomClaims contains the non-registered claims checked during verification.
type CustomClaims struct {
	Role models.Role `json:"role"`
}

// Validate rejects tokens carrying an unknown role
func (c *CustomClaims) Validate(ctx context.Context) error {
	if !c.Role.Valid() {
		return fmt.Errorf("unknown role %q", c.Role)
	}
	return nil
}

// AuthService registers users, checks credentials and issues/verifies session tokens
type AuthService struct {
	db           *gorm.DB
	cfg          *config.Config
	validator    *validator.Validator
	now          func() time.Time
	passwordCost int
}

// AuthOption customises an AuthService
type AuthOption func(*AuthService)

// WithClock overrides the clock used when issuing tokens
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) {
		s.now = now
	}
}

// WithPasswordCost overrides the bcrypt cost used for new hashes
func WithPasswordCost(cost int) AuthOption {
	return func(s *AuthService) {
		s.passwordCost = cost
	}
}

// NewAuthService creates an auth service bound to db and the signing settings in cfg
func NewAuthService(db *gorm.DB, cfg *config.Config, opts ...AuthOption) (*AuthService, error) {
	if cfg == nil || cfg.JWTSecret == "" {
		return nil, errors.New("auth service requires a JWT secret")
	}

	secret := []byte(cfg.JWTSecret)
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return secret, nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		cfg.JWTIssuer,
		[]string{cfg.JWTAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	s := &AuthService{
		db:           db,
		cfg:          cfg,
		validator:    jwtValidator,
		now:          time.Now,
		passwordCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register creates a new user with a hashed password
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := input.Validate(); err != nil {
		return nil, validationError(err)
	}

	if _, err := s.GetUserByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError("Failed to look up user", err)
	}

	hash, err := HashPassword(input.Password, s.passwordCost)
	if err != nil {
		return nil, internalError("Failed to create user", err)
	}

	user := &models.User{
		Username: input.Username,
		Password: hash,
		Role:     input.Role,
	}
	if err := s.insertUser(ctx, user); err != nil {
		return nil, err
	}

	metrics.UsersRegistered.WithLabelValues(string(user.Role)).Inc()
	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// insertUser writes user in its own transaction; a unique violation rolls it back
func (s *AuthService) insertUser(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return internalError("Failed to create user", err)
}

// Authenticate verifies a username/password pair.
// Unknown usernames and wrong passwords fail with the same error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUserByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internalError("Failed to look up user", err)
		}
		burnPasswordCheck(password)
		return nil, ErrInvalidCredentials
	}

	if !CheckPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the user and issues a signed access token
func (s *AuthService) Login(ctx context.Context, username, password string) (*Token, error) {
	user, err := s.Authenticate(ctx, username, password)
	metrics.LoginAttempts.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		logger.WithCtx(ctx).Info("login rejected", "reason", err.Error())
		return nil, err
	}

	accessToken, err := s.IssueToken(user)
	if err != nil {
		return nil, internalError("Failed to issue token", err)
	}

	logger.WithCtx(ctx).Info("user logged in", "user_id", user.ID)
	return &Token{AccessToken: accessToken, TokenType: TokenType}, nil
}

// IssueToken signs a token binding the user's username and role, valid for the configured window
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	issuedAt := s.now()
	claims := TokenClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			Issuer:    s.cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{s.cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.cfg.AccessTokenTTL())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

// ResolveCurrentUser verifies the token and loads the user it was issued to
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	raw, err := s.validator.ValidateToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken.wrap(err)
	}

	claims, ok := raw.(*validator.ValidatedClaims)
	if !ok || claims.RegisteredClaims.Subject == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.GetUserByUsername(ctx, claims.RegisteredClaims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken.wrap(err)
		}
		return nil, internalError("Failed to look up user", err)
	}
	return user, nil
}

// RequireAdmin resolves the token and rejects non-admin users
func (s *AuthService) RequireAdmin(ctx context.Context, token string) (*models.User, error) {
	user, err := s.ResolveCurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrAdminRequired
	}
	return user, nil
}

// GetUserByUsername returns gorm.ErrRecordNotFound when no user matches
func (s *AuthService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// isUniqueViolation works with both PostgreSQL and SQLite
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "unique")
}
