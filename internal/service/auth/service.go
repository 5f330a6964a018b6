package auth

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/avoronov/library-catalog/internal/errs"
	"github.com/avoronov/library-catalog/internal/model"
	"github.com/avoronov/library-catalog/internal/repository"
)

type Config struct {
	Secret     string        `envconfig:"JWT_SECRET" required:"true" json:"-"`
	AccessTTL  time.Duration `envconfig:"JWT_ACCESS_TTL" default:"15m"`
	RefreshTTL time.Duration `envconfig:"JWT_REFRESH_TTL" default:"168h"`
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID int64  `json:"user_id"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// Service issues, refreshes, verifies and revokes bearer tokens.
// Revoked refresh tokens live in an in-process denylist until their natural
// expiry; tokens never hit the database.
type Service struct {
	cfg  Config
	repo repository.UserRepository
	log  *zap.Logger

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewService(repo repository.UserRepository, cfg Config, log *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		repo:    repo,
		log:     log.Named("auth"),
		revoked: make(map[string]time.Time),
	}
}

func (s *Service) Issue(ctx context.Context, email, password string) (model.TokenPair, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.TokenPair{}, errs.ErrUnauthorized
		}
		return model.TokenPair{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.TokenPair{}, errs.ErrUnauthorized
	}

	access, err := s.sign(user.ID, TokenTypeAccess, s.cfg.AccessTTL, "")
	if err != nil {
		return model.TokenPair{}, err
	}
	refresh, err := s.sign(user.ID, TokenTypeRefresh, s.cfg.RefreshTTL, uuid.NewString())
	if err != nil {
		return model.TokenPair{}, err
	}
	return model.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parse(refreshToken)
	if err != nil || claims.Type != TokenTypeRefresh {
		return "", errs.ErrUnauthorized
	}
	if s.isRevoked(claims.ID) {
		return "", errs.ErrUnauthorized
	}
	return s.sign(claims.UserID, TokenTypeAccess, s.cfg.AccessTTL, "")
}

func (s *Service) Verify(token string) error {
	if _, err := s.parse(token); err != nil {
		return errs.ErrUnauthorized
	}
	return nil
}

func (s *Service) Revoke(refreshToken string) error {
	claims, err := s.parse(refreshToken)
	if err != nil || claims.Type != TokenTypeRefresh || claims.ID == "" {
		return errs.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for jti, exp := range s.revoked {
		if exp.Before(now) {
			delete(s.revoked, jti)
		}
	}
	s.revoked[claims.ID] = claims.ExpiresAt.Time
	return nil
}

func (s *Service) Resolve(ctx context.Context, accessToken string) (model.User, error) {
	claims, err := s.parse(accessToken)
	if err != nil || claims.Type != TokenTypeAccess {
		return model.User{}, errs.ErrUnauthorized
	}
	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.User{}, errs.ErrUnauthorized
		}
		return model.User{}, err
	}
	return user, nil
}

func (s *Service) sign(userID int64, tokenType string, ttl time.Duration, jti string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        jti,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *Service) parse(tokenString string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errs.ErrUnauthorized
	}
	return claims, nil
}

func (s *Service) isRevoked(jti string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[jti]
	return ok && exp.After(time.Now())
}

const (
	passwordMinLen = 8
	passwordMaxLen = 128
)

// ValidatePassword enforces the password-strength rules shared by
// registration and password change.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen {
		return errs.NewValidation("password", fmt.Sprintf("must be at least %d characters", passwordMinLen))
	}
	if len(password) > passwordMaxLen {
		return errs.NewValidation("password", fmt.Sprintf("must be at most %d characters", passwordMaxLen))
	}
	numeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return errs.NewValidation("password", "must not be entirely numeric")
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
