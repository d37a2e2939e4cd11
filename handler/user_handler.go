package handler

import (
	"encoding/json"
	"go-game-api/common"
	"go-game-api/logger"
	"go-game-api/model"
	"go-game-api/service"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Signup godoc
// @Summary      Create a new account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        signup body model.SignupRequest true "New account details"
// @Success      200  {object}  model.SuccessResponse
// @Failure      409  {object}  common.AppError "Email or nickname already in use"
// @Router       /api/user/signup [post]
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignupRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	logger.Log.WithFields(logrus.Fields{
		"email":    req.Email,
		"nickname": req.Nickname,
	}).Info("Signup request received")

	if err := h.service.Signup(&req); err != nil {
		return common.FromError(err)
	}

	writeJSON(w, http.StatusOK, &model.SuccessResponse{Message: model.MessageSuccess})
	return nil
}

// DuplicateEmail godoc
// @Summary      Check email availability
// @Tags         users
// @Produce      json
// @Param        email path string true "Email to check"
// @Success      200  {object}  model.SuccessResponse
// @Failure      409  {object}  common.AppError "Email already in use"
// @Router       /api/user/signup/email/{email} [get]
func (h *UserHandler) DuplicateEmail(w http.ResponseWriter, r *http.Request) *common.AppError {
	email := r.PathValue("email")

	if err := h.service.DuplicateEmail(email); err != nil {
		return common.FromError(err)
	}

	writeJSON(w, http.StatusOK, &model.SuccessResponse{Message: model.MessageSuccess})
	return nil
}

// DuplicateNickname godoc
// @Summary      Check nickname availability
// @Tags         users
// @Produce      json
// @Param        nickname path string true "Nickname to check"
// @Success      200  {object}  model.SuccessResponse
// @Failure      409  {object}  common.AppError "Nickname already in use"
// @Router       /api/user/signup/nickname/{nickname} [get]
func (h *UserHandler) DuplicateNickname(w http.ResponseWriter, r *http.Request) *common.AppError {
	nickname := r.PathValue("nickname")

	if err := h.service.DuplicateNickname(nickname); err != nil {
		return common.FromError(err)
	}

	writeJSON(w, http.StatusOK, &model.SuccessResponse{Message: model.MessageSuccess})
	return nil
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.ProfileResponse
// @Failure      401  {object}  common.AppError "Invalid or missing token"
// @Router       /api/user/profile [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	profile, err := h.service.GetProfile(user.ID)
	if err != nil {
		return common.FromError(err)
	}

	writeJSON(w, http.StatusOK, profile)
	return nil
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        profile body model.UpdateProfileRequest true "Fields to change"
// @Success      200  {object}  model.SuccessResponse
// @Failure      401  {object}  common.AppError "Invalid or missing token"
// @Failure      409  {object}  common.AppError "Nickname already in use"
// @Router       /api/user/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	var req model.UpdateProfileRequest
	if !common.ValidateAndDecode(w, r, &req) {
		return nil
	}

	if err := h.service.UpdateProfile(user, &req); err != nil {
		return common.FromError(err)
	}

	writeJSON(w, http.StatusOK, &model.SuccessResponse{Message: model.MessageSuccess})
	return nil
}

// UpdateExperience godoc
// @Summary      Apply a game result
// @Description  Adds the experience earned in a finished game and recomputes the level.
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Param        experience path int true "Experience gained"
// @Success      200  {object}  model.ExperienceResponse
// @Failure      400  {object}  common.AppError "Experience is not a number"
// @Failure      401  {object}  common.AppError "Invalid or missing token"
// @Router       /api/user/game/{experience} [put]
func (h *UserHandler) UpdateExperience(w http.ResponseWriter, r *http.Request) *common.AppError {
	user, ok := UserFromContext(r.Context())
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Authentication required", nil)
	}

	gained, err := strconv.Atoi(r.PathValue("experience"))
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid experience in URL path", err)
	}

	res, err := h.service.AddExperience(user, gained)
	if err != nil {
		return common.FromError(err)
	}

	writeJSON(w, http.StatusOK, res)
	return nil
}

// Ranking godoc
// @Summary      Real-time top-ten ranking
// @Tags         game
// @Produce      json
// @Success      200  {array}  model.RankingEntry
// @Router       /api/user/ranking [get]
func (h *UserHandler) Ranking(w http.ResponseWriter, r *http.Request) *common.AppError {
	entries, err := h.service.GetTopUsers()
	if err != nil {
		return common.FromError(err)
	}

	writeJSON(w, http.StatusOK, entries)
	return nil
}
