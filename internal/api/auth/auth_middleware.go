package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gocache "github.com/patrickmn/go-cache"

	"github.com/bboom-app/bboom-api/config"
	"github.com/bboom-app/bboom-api/internal/api"
)

// Typed context keys for authenticated identity
type contextKey string

const UserIDKey contextKey = "userID"
const UsernameKey contextKey = "username"

// claimsCacheTTL bounds how long a verified token skips re-parsing. Must stay
// well under the access-token TTL.
const claimsCacheTTL = time.Minute

// NewClaimsCache builds the cache used by Authenticate for verified claims.
func NewClaimsCache() *gocache.Cache {
	return gocache.New(claimsCacheTTL, 5*time.Minute)
}

// Authenticate validates the bearer access token and stows the caller's
// identity in the request context. Every unauthenticated-access case answers
// 401.
func Authenticate(logger *slog.Logger, jwtCfg config.JWTConfig, claimsCache *gocache.Cache) func(next http.Handler) http.Handler {
	secretKey := []byte(jwtCfg.SecretKey)
	if len(secretKey) == 0 {
		panic("JWT secret key cannot be empty")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			l := logger.With(slog.String("middleware", "Authenticate"))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.DetailResponse(w, r, http.StatusUnauthorized, MsgCredentialsNotProvided)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				api.DetailResponse(w, r, http.StatusUnauthorized, MsgTokenNotValid)
				return
			}
			tokenString := headerParts[1]

			claims, err := verifyToken(tokenString, secretKey, jwtCfg, claimsCache)
			if err != nil {
				l.WarnContext(ctx, "Token validation failed", slog.Any("error", err))
				api.DetailResponse(w, r, http.StatusUnauthorized, MsgTokenNotValid)
				return
			}

			ctx = context.WithValue(ctx, UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifyToken parses and validates an access token, consulting the short-TTL
// cache of already-verified claims first. Cached entries still honor the exp
// claim.
func verifyToken(tokenString string, secretKey []byte, jwtCfg config.JWTConfig, claimsCache *gocache.Cache) (*Claims, error) {
	if claimsCache != nil {
		if cached, ok := claimsCache.Get(tokenString); ok {
			claims := cached.(*Claims)
			if claims.ExpiresAt != nil && time.Now().Before(claims.ExpiresAt.Time) {
				return claims, nil
			}
			claimsCache.Delete(tokenString)
		}
	}

	claims := &Claims{}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(jwtCfg.Issuer),
		jwt.WithExpirationRequired(),
	}
	if jwtCfg.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(jwtCfg.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("parse access token: %w", err)
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}

	if claimsCache != nil {
		claimsCache.Set(tokenString, claims, gocache.DefaultExpiration)
	}
	return claims, nil
}

// GetUserIDFromContext returns the authenticated user's ID set by Authenticate.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUsernameFromContext returns the authenticated username set by Authenticate.
func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
