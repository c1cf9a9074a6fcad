package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// JWTConfig defines JWT configuration settings
type JWTConfig struct {
	SecretKey      string
	AccessTokenExp time.Duration
	TokenIssuer    string
}

// JWTService handles JWT operations
type JWTService struct {
	config JWTConfig
}

// NewJWTService creates a new JWT service
func NewJWTService(config JWTConfig) *JWTService {
	return &JWTService{
		config: config,
	}
}

// Claims defines JWT token content
type Claims struct {
	UserID   int64  `json:"userId"`
	Email    string `json:"email,omitempty"`
	RoleType string `json:"roleType"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs a token for the given user. Accounts live outside this
// service; the operator CLI and tests use it to mint tokens.
func (s *JWTService) GenerateAccessToken(userID int64, email string, role models.RoleType) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.config.AccessTokenExp)

	claims := &Claims{
		UserID:   userID,
		Email:    email,
		RoleType: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.TokenIssuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken parses and verifies a token
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.TokenIssuer != "" {
		options = append(options, jwt.WithIssuer(s.config.TokenIssuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.SecretKey), nil
	}, options...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, apperrors.ErrInvalidFormat
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, apperrors.ErrTokenInvalid
}

// ExtractBearerToken extracts the token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", apperrors.ErrInvalidFormat
	}

	if token, ok := strings.CutPrefix(authHeader, "Bearer"); ok {
		token = strings.TrimSpace(token)
		if token == "" {
			return "", apperrors.ErrInvalidFormat
		}
		return token, nil
	}

	// raw token, as pasted into Swagger UI
	return authHeader, nil
}

// ValidateAndExtractClaims validates a token and checks the claims this service relies on
func (s *JWTService) ValidateAndExtractClaims(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	switch models.RoleType(claims.RoleType) {
	case models.RoleStudent, models.RoleInstructor, models.RoleAdmin:
	default:
		return nil, apperrors.ErrTokenInvalid
	}
	if claims.UserID <= 0 {
		return nil, apperrors.ErrTokenInvalid
	}

	return claims, nil
}
