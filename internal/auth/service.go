package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const DefaultTokenTTL = 24 * time.Hour

// Service issues and validates board tokens. A board token's subject is the
// id of the one board it grants access to.
type Service struct {
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(jwtSecret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// IssueBoardToken signs a token granting access to boardID.
func (s *Service) IssueBoardToken(boardID string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": boardID,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken checks the signature and expiry of tokenString and returns
// the board id it grants.
func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	boardID, ok := claims["sub"].(string)
	if !ok || boardID == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return boardID, nil
}

// Authorize validates tokenString and checks it was issued for boardID.
func (s *Service) Authorize(tokenString, boardID string) error {
	granted, err := s.ValidateToken(tokenString)
	if err != nil {
		return err
	}
	if granted != boardID {
		return fmt.Errorf("%w: token is for another board", ErrInvalidToken)
	}
	return nil
}
