package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"time"
	"todolist/config"
	"todolist/shared/constant"
	"todolist/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
)

// Claims identify one login session. RegisteredClaims.ID is the session id
// kept in the server-side registry.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Token is a signed session token and when it stops being valid.
type Token struct {
	Value     string
	SessionID string
	ExpiresAt time.Time
}

type JWT interface {
	GenerateSessionToken(userID, username string) (*Token, error)
	ValidateToken(tokenString string) (*Claims, error)
	TTL() time.Duration
}

type Service struct {
	config *config.Config
	secret []byte
	ttl    time.Duration
}

// New creates the session token service. An empty SESSION_SECRET is replaced
// with a random per-process secret, which invalidates sessions on restart.
func New(cfg *config.Config) JWT {
	secret := cfg.Session.Secret
	if secret == "" {
		log.Warn().Msg("SESSION_SECRET is empty, using a random secret for this process")

		secret = uuid.NewString() + uuid.NewString()
	}

	return &Service{
		config: cfg,
		secret: []byte(secret),
		ttl:    time.Duration(cfg.Session.ExpireMin*constant.MinutesToSeconds) * time.Second,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// GenerateSessionToken signs a new token with a fresh session id.
func (s *Service) GenerateSessionToken(userID, username string) (*Token, error) {
	now := timezone.Now()
	expiresAt := now.Add(s.ttl)
	sessionID := uuid.New().String()

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.App.Name,
			Subject:   userID,
			ID:        sessionID,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		Value:     signedToken,
		SessionID: sessionID,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateToken verifies the signature, expiry and issuer of a session
// token.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	}, jwt.WithIssuer(s.config.App.Name), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" || claims.ID == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}
