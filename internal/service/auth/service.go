package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"ops-dashboard/internal/domain"
	"ops-dashboard/internal/repository"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Service resolves bearer tokens issued elsewhere into the user they speak
// for. Token issuance is not handled here.
type Service interface {
	ValidateAccessToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type service struct {
	userRepo repository.UserRepository
	secret   []byte
}

func NewService(userRepo repository.UserRepository, secret string) Service {
	return &service{
		userRepo: userRepo,
		secret:   []byte(secret),
	}
}

func (s *service) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *service) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
