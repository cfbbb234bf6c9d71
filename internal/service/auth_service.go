package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vigilo-exam/vigilo-backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// Common auth errors.
var (
	ErrSessionInvalidated = errors.New("token superseded by a newer session")
	ErrProctorDisabled    = errors.New("proctor access is not configured")
	ErrProctorKeyInvalid  = errors.New("invalid proctor key")
)

// Claims extends JWT standard claims with the participant handle supplied by
// the external identity provider. The provider signs tokens with the shared
// HS256 secret; this service only validates them.
type Claims struct {
	jwt.RegisteredClaims
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name,omitempty"`
}

// AuthService validates participant tokens, enforces the single-device
// session lock, and checks the proctor key.
type AuthService struct {
	cfg *config.Config
	rdb *redis.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb}
}

// GenerateParticipantToken creates a JWT for a participant and registers its
// jti as the participant's one active session. A later token for the same
// participant supersedes this one — the newest device wins, which keeps a
// single writer per session status record.
func (s *AuthService) GenerateParticipantToken(ctx context.Context, participantID, name string) (string, error) {
	jti := uuid.New().String()
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   participantID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		ParticipantID: participantID,
		Name:          name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	sessionKey := config.CacheKey.ParticipantSessionKey(participantID)
	if err := s.rdb.Set(ctx, sessionKey, jti, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.ParticipantID == "" {
		return nil, errors.New("token missing participant id")
	}
	return claims, nil
}

// VerifyActiveDevice checks that the token's jti is still the participant's
// registered session. A missing registration self-heals (tokens issued before
// a Redis flush stay usable); a mismatch means a newer device took over.
func (s *AuthService) VerifyActiveDevice(ctx context.Context, claims *Claims) error {
	sessionKey := config.CacheKey.ParticipantSessionKey(claims.ParticipantID)

	current, err := s.rdb.Get(ctx, sessionKey).Result()
	if errors.Is(err, redis.Nil) {
		if err := s.rdb.Set(ctx, sessionKey, claims.ID, time.Until(claims.ExpiresAt.Time)).Err(); err != nil {
			return fmt.Errorf("register session: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}

	if current != claims.ID {
		return ErrSessionInvalidated
	}
	return nil
}

// VerifyProctorKey compares a presented key against the configured bcrypt
// hash. An empty hash disables proctor access entirely.
func (s *AuthService) VerifyProctorKey(key string) error {
	if s.cfg.ProctorKeyHash == "" {
		return ErrProctorDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.ProctorKeyHash), []byte(key)); err != nil {
		return ErrProctorKeyInvalid
	}
	return nil
}
