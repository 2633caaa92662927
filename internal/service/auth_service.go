package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"stakehub/internal/config"
	"stakehub/internal/model"
)

// TokenTTL is how long a login token stays valid
const TokenTTL = 24 * time.Hour

// ownerNamespace seeds the name-based owner ids so a username always maps
// to the same owner across restarts.
var ownerNamespace = uuid.MustParse("6f1c3b0e-4d51-4c0a-9a57-2f0d8f1e6b21")

// AuthService issues and validates owner tokens
type AuthService struct {
	username  string
	password  string
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		username:  cfg.Username,
		password:  cfg.Password,
		jwtSecret: []byte(cfg.JWTSecret),
		now:       time.Now,
	}
}

// OwnerID returns the stable owner id for a username
func OwnerID(username string) string {
	return uuid.NewSHA1(ownerNamespace, []byte(username)).String()
}

// Login validates credentials and returns a signed token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username == "" || username != s.username || password != s.password {
		return nil, ErrInvalidCredentials
	}

	ownerID := OwnerID(username)
	now := s.now()

	claims := &model.OwnerClaims{
		OwnerID:  ownerID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:   tokenString,
		OwnerID: ownerID,
	}, nil
}

// ValidateToken validates an owner JWT and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*model.OwnerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.OwnerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.OwnerClaims)
	if !ok || !token.Valid || claims.OwnerID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
