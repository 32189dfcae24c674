package authorization

import (
	"strings"
	"time"

	"booking_service/domain"
	"booking_service/errors"

	"github.com/cristalhq/jwt/v4"
)

// TokenLifetime is how long an issued access token stays valid.
const TokenLifetime = 7 * 24 * time.Hour

// GenerateJWT encodes the account id and email plus an expiry into a signed
// HS256 token.
func GenerateJWT(account *domain.Account, key []byte) (string, error) {
	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		return "", err
	}

	builder := jwt.NewBuilder(signer)
	claims := &domain.Claims{
		UserID:    account.ID,
		Email:     account.Email,
		ExpiresAt: time.Now().Add(TokenLifetime),
	}

	token, err := builder.Build(claims)
	if err != nil {
		return "", err
	}

	return token.String(), nil
}

// ValidateToken checks signature, payload shape and expiry. Every failure maps
// to the same ErrInvalidToken, the caller learns nothing about which check broke.
func ValidateToken(tokenString string, key []byte) (*domain.Claims, error) {
	verifier, err := jwt.NewVerifierHS(jwt.HS256, key)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse([]byte(tokenString), verifier)
	if err != nil {
		return nil, errors.ErrInvalidToken
	}

	var claims domain.Claims
	if err := jwt.ParseClaims(token.Bytes(), verifier, &claims); err != nil {
		return nil, errors.ErrInvalidToken
	}

	if claims.UserID == "" || !claims.ExpiresAt.After(time.Now()) {
		return nil, errors.ErrInvalidToken
	}

	return &claims, nil
}

// ExtractBearerToken pulls the token out of an Authorization header value.
// Returns the empty string when the header is missing or not a bearer scheme.
func ExtractBearerToken(authHeader string) string {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
