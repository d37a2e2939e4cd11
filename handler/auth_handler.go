package handler

import (
	"encoding/json"
	"go-game-api/common"
	"go-game-api/logger"
	"go-game-api/model"
	"go-game-api/service"
	"net/http"
	"time"
)

// RefreshTokenCookie is the name of the session cookie that carries the
// refresh token. The access token is never put in a cookie; it travels in
// the response body and the client holds it in memory.
const RefreshTokenCookie = "refresh_token"

const cookiePath = "/api"

// AuthHandler holds dependencies for session-related handlers.
type AuthHandler struct {
	authService   *service.AuthService
	oauthService  *service.OAuthService
	refreshExpiry time.Duration
}

func NewAuthHandler(authService *service.AuthService, oauthService *service.OAuthService, refreshExpiry time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		oauthService:  oauthService,
		refreshExpiry: refreshExpiry,
	}
}

// setRefreshCookie deletes any existing refresh cookie before setting the
// new one. The max-age division by 60 is load-bearing: game clients expect
// this exact value.
func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	h.deleteRefreshCookie(w)
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     cookiePath,
		MaxAge:   int(h.refreshExpiry.Seconds()) / 60,
		HttpOnly: true,
	})
}

func (h *AuthHandler) deleteRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     cookiePath,
		MaxAge:   -1,
		HttpOnly: true,
	})
}

func loginResponse(user *model.User, accessToken string) *model.LoginResponse {
	return &model.LoginResponse{
		Nickname:    user.Nickname,
		Picture:     user.Picture,
		Level:       user.Level,
		Experience:  user.Experience,
		AccessToken: accessToken,
		Message:     model.MessageSuccess,
	}
}

// Login godoc
// @Summary      Password login
// @Description  Authenticates email/password and opens a session. The refresh token is set as a cookie; the access token is returned in the body.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login body model.LoginRequest true "Login credentials"
// @Success      200  {object}  model.LoginResponse
// @Failure      404  {object}  common.AppError "No account with these credentials"
// @Router       /api/user/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	user, pair, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return common.FromError(err)
	}

	h.setRefreshCookie(w, pair.RefreshToken)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(loginResponse(user, pair.AccessToken))
	return nil
}

// KakaoLogin godoc
// @Summary      Kakao login
// @Description  Exchanges a Kakao authorization code for a session, creating the local account on first login.
// @Tags         auth
// @Produce      json
// @Param        code query string true "Kakao authorization code"
// @Success      200  {object}  model.LoginResponse
// @Failure      400  {object}  common.AppError "Invalid or expired authorization code"
// @Router       /api/user/oauth2/kakao [get]
func (h *AuthHandler) KakaoLogin(w http.ResponseWriter, r *http.Request) *common.AppError {
	code := r.URL.Query().Get("code")
	if code == "" {
		return common.NewAppError(http.StatusBadRequest, "Missing authorization code", nil)
	}

	user, pair, err := h.oauthService.KakaoLogin(r.Context(), code)
	if err != nil {
		return common.FromError(err)
	}

	h.setRefreshCookie(w, pair.RefreshToken)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(loginResponse(user, pair.AccessToken))
	return nil
}

// Refresh godoc
// @Summary      Reissue access token
// @Description  Mints a new access token when the refresh cookie holds the current session's refresh token. The presented access token may be expired.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.RefreshTokenResponse
// @Failure      401  {object}  common.AppError "Missing, expired or mismatched refresh token"
// @Router       /api/user/refresh [get]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	var cookieToken string
	if cookie, err := r.Cookie(RefreshTokenCookie); err == nil {
		cookieToken = cookie.Value
	}

	accessToken, err := h.authService.Refresh(user, cookieToken)
	if err != nil {
		return common.FromError(err)
	}

	logger.Log.WithField("user_id", user.ID).Info("Access token reissued")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(&model.RefreshTokenResponse{
		AccessToken: accessToken,
		Message:     model.MessageSuccess,
	})
	return nil
}

// Logout godoc
// @Summary      Logout
// @Description  Clears the stored refresh token and deletes the refresh cookie.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.SuccessResponse
// @Failure      401  {object}  common.AppError "Authentication required"
// @Router       /api/user/logout [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	if err := h.authService.Logout(user); err != nil {
		return common.FromError(err)
	}

	h.deleteRefreshCookie(w)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(&model.SuccessResponse{Message: model.MessageSuccess})
	return nil
}
