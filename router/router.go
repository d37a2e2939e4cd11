package router

import (
	"go-game-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "go-game-api/docs"
)

// NewRouter builds the route table. The auth gate runs in front of every
// /api/user route; it only attaches identity, so public routes under it stay
// public. Refresh and logout accept an expired access token, the other
// protected routes do not.
func NewRouter(userHandler *handler.UserHandler, authHandler *handler.AuthHandler, gate func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	eh := handler.ErrorHandlingMiddleware

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Public routes.
	mux.Handle("POST /api/user/signup", gate(eh(userHandler.Signup)))
	mux.Handle("GET /api/user/signup/email/{email}", gate(eh(userHandler.DuplicateEmail)))
	mux.Handle("GET /api/user/signup/nickname/{nickname}", gate(eh(userHandler.DuplicateNickname)))
	mux.Handle("POST /api/user/login", gate(eh(authHandler.Login)))
	mux.Handle("GET /api/user/oauth2/kakao", gate(eh(authHandler.KakaoLogin)))
	mux.Handle("GET /api/user/ranking", gate(eh(userHandler.Ranking)))

	// Session routes: identity must resolve, expiry does not matter.
	mux.Handle("GET /api/user/refresh", gate(handler.RequireUser(eh(authHandler.Refresh))))
	mux.Handle("GET /api/user/logout", gate(handler.RequireUser(eh(authHandler.Logout))))

	// Protected routes: a fresh access token is required.
	mux.Handle("GET /api/user/profile", gate(handler.RequireFreshToken(eh(userHandler.GetProfile))))
	mux.Handle("PUT /api/user/profile", gate(handler.RequireFreshToken(eh(userHandler.UpdateProfile))))
	mux.Handle("PUT /api/user/game/{experience}", gate(handler.RequireFreshToken(eh(userHandler.UpdateExperience))))

	return mux
}
