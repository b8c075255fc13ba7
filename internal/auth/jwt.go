package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/inkpress-dev/inkpress/internal/models"
)

// TokenTTL is how long an access token stays valid after issuance.
const TokenTTL = 8 * time.Hour

var (
	jwtSecret   []byte
	jwtIssuer   string
	jwtAudience string
)

// Claims carried by an access token. The subject registered claim holds
// the decimal user id and is the only identity key the server reads.
type Claims struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	jwt.RegisteredClaims
}

func InitJWT(secret, issuer, audience string) error {
	if secret == "" {
		return fmt.Errorf("JWT secret must not be empty")
	}

	jwtSecret = []byte(secret)
	jwtIssuer = issuer
	jwtAudience = audience

	return nil
}

func GenerateJWT(user models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		Email:       user.Email,
		DisplayName: user.DisplayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    jwtIssuer,
			Audience:  jwt.ClaimStrings{jwtAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// VerifyJWT validates signature, issuer, audience and lifetime. Any
// failure leaves the caller unauthenticated, there is no partial trust.
func VerifyJWT(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtIssuer),
		jwt.WithAudience(jwtAudience),
		jwt.WithExpirationRequired(),
	)

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	return claims, nil
}

// UserIDFromClaims parses the subject claim back into a user id.
func UserIDFromClaims(claims *Claims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 64)

	if err != nil {
		return 0, fmt.Errorf("invalid subject claim: %w", err)
	}

	return uint(id), nil
}
