package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/caixa/internal/models"
	"github.com/terraincognita07/caixa/internal/services"
)

type authClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildToken(session models.Session, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}
	now := handler.now()

	claims := authClaims{
		Email: session.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseToken(raw string) (*authClaims, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now))
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(handler.now()) {
		return nil, errors.New("token expired")
	}
	return claims, nil
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (models.Session, error) {
	rawToken := strings.TrimSpace(c.Cookies(authCookieName))
	if rawToken == "" {
		return models.Session{}, fmt.Errorf("%w: missing auth cookie", services.ErrNotAuthenticated)
	}
	claims, err := handler.parseToken(rawToken)
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", services.ErrNotAuthenticated, err)
	}

	session, found, err := handler.accounts.CurrentSession()
	if err != nil {
		return models.Session{}, err
	}
	if !found || services.NormalizeEmail(session.Email) != services.NormalizeEmail(claims.Email) {
		return models.Session{}, fmt.Errorf("%w: session ended", services.ErrNotAuthenticated)
	}
	return session, nil
}
