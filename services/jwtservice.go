package services

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"personalhub/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenService struct {
	db  *gorm.DB
	cfg TokenConfig
}

func NewTokenService(db *gorm.DB, cfg TokenConfig) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 60 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "personalhub"
	}
	return &TokenService{db: db, cfg: cfg}
}

func (s *TokenService) CreateAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &model.AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	}
	if s.cfg.AccessSecret == "" {
		return "", ErrMissingSecret
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.AccessSecret))
}

func (s *TokenService) createRefreshToken(userID uint, tokenID string, expiresAt time.Time) (string, error) {
	claims := &model.RefreshClaims{
		UserID:  userID,
		TokenID: tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	if s.cfg.RefreshSecret == "" {
		return "", ErrMissingSecret
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.RefreshSecret))
}

// HashRefreshToken runs sha256 first so bcrypt's 72 byte limit never truncates the token.
func HashRefreshToken(token string) (string, error) {
	hash := sha256.Sum256([]byte(token))
	hashedToken, err := bcrypt.GenerateFromPassword(hash[:], bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedToken), nil
}

func compareRefreshToken(hashed, token string) error {
	hash := sha256.Sum256([]byte(token))
	return bcrypt.CompareHashAndPassword([]byte(hashed), hash[:])
}

// Issue creates an access token and a stored refresh token for the user.
func (s *TokenService) Issue(ctx context.Context, user *model.User) (*TokenPair, error) {
	access, err := s.CreateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	tokenID := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.RefreshTTL)
	refresh, err := s.createRefreshToken(user.ID, tokenID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}
	hashed, err := HashRefreshToken(refresh)
	if err != nil {
		return nil, fmt.Errorf("hash refresh token: %w", err)
	}
	record := model.RefreshToken{
		UserID:    user.ID,
		TokenID:   tokenID,
		TokenHash: hashed,
		ExpiresAt: expiresAt,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// hmacKey refuses an empty secret, with which anyone could sign a valid token.
func hmacKey(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if secret == "" {
			return nil, ErrMissingSecret
		}
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}
}

func (s *TokenService) ParseAccessToken(tokenString string) (*model.AccessClaims, error) {
	claims := &model.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(s.cfg.AccessSecret))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (s *TokenService) ParseRefreshToken(tokenString string) (*model.RefreshClaims, error) {
	claims := &model.RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(s.cfg.RefreshSecret))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == 0 || claims.TokenID == "" {
		return nil, errors.New("invalid refresh token claims")
	}
	return claims, nil
}

// Rotate revokes the presented refresh token and issues a new pair.
func (s *TokenService) Rotate(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}

	var pair *TokenPair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record model.RefreshToken
		err := tx.Where("token_id = ? AND user_id = ?", claims.TokenID, claims.UserID).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCredentials
		}
		if err != nil {
			return err
		}
		if record.Revoked || time.Now().After(record.ExpiresAt) {
			return fmt.Errorf("%w: refresh token revoked or expired", ErrInvalidCredentials)
		}
		if err := compareRefreshToken(record.TokenHash, refreshToken); err != nil {
			return fmt.Errorf("%w: refresh token mismatch", ErrInvalidCredentials)
		}
		res := tx.Model(&model.RefreshToken{}).
			Where("id = ? AND revoked = ?", record.ID, false).
			Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: refresh token already used", ErrInvalidCredentials)
		}

		var user model.User
		if err := tx.First(&user, claims.UserID).Error; err != nil {
			return err
		}
		if !user.Active {
			return ErrForbidden
		}
		pair, err = NewTokenService(tx, s.cfg).Issue(ctx, &user)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Revoke invalidates every refresh token of the user.
func (s *TokenService) Revoke(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&model.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error
}
