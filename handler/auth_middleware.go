package handler

import (
	"context"
	"go-game-api/common"
	"go-game-api/model"
	"go-game-api/repository"
	"go-game-api/service"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserKey       contextKey = "user"
	TokenFreshKey contextKey = "tokenFresh"
)

// AuthMiddleware is the authentication gate. It never rejects a request on
// its own: with no usable bearer token the request simply continues
// anonymous, since some routes under it are public. A signature-valid token
// has its subject resolved to a user and attached to the context even when
// the token is already expired — that is what lets the refresh endpoint
// accept an expired access token. Whether the token was still fresh is
// recorded separately for RequireFreshToken.
func AuthMiddleware(tokens *service.TokenService, userRepo repository.IUserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			token, err := tokens.ParseToken(headerParts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.GetUserByID(token.Claims.UserID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			ctx = context.WithValue(ctx, TokenFreshKey, token.Valid())

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests whose subject the gate could not resolve. It
// does not care whether the access token is expired; the refresh and logout
// endpoints sit behind this one.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			err := common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
			err.Send(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireFreshToken additionally demands an unexpired access token. All
// ordinary protected endpoints use this.
func RequireFreshToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := UserFromContext(r.Context())
		fresh, _ := r.Context().Value(TokenFreshKey).(bool)
		if !ok || !fresh {
			err := common.NewAppError(http.StatusUnauthorized, "Invalid or expired token", nil)
			err.Send(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// UserFromContext returns the gate-resolved user, if any.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(UserKey).(*model.User)
	return user, ok
}
