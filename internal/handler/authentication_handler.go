package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"image-sharing-server/internal/model/requestresponse"
	"image-sharing-server/internal/ports"
	"image-sharing-server/internal/security"
	"image-sharing-server/internal/service"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
}

func NewAuthenticationHandler(authenticationService *service.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Возвращает пару access/refresh токенов по email и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный email или пароль"
// @Failure 403 {object} requestresponse.ErrorResponse "Пользователь заблокирован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		sendErrorResponse(w, 400, "email и password обязательны")
		return
	}

	tokens, err := h.AuthenticationService.Login(ctx, req.Email, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrUserBanned):
			sendErrorResponse(w, http.StatusForbidden, "пользователь заблокирован")
		case errors.Is(err, service.ErrInvalidCredentials):
			sendErrorResponse(w, http.StatusUnauthorized, "не удалось проверить учетные данные")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.LoginResponse{}
	resp.Response.AccessToken = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken
	resp.Response.TokenType = tokens.TokenType

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// RefreshToken godoc
// @Summary Обновление пары токенов
// @Description Принимает refresh-токен в заголовке Authorization и выпускает новую пару.
// @Description Предъявленный токен обязан совпадать с сохраненным на пользователе.
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer refresh-токен"
// @Success 200 {object} requestresponse.RefreshTokenResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный refresh токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/refresh_token [get]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	refreshToken, err := security.BearerToken(r)
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "пустой или неверный заголовок Authorization")
		return
	}

	tokens, err := h.AuthenticationService.RefreshTokens(ctx, refreshToken)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrInvalidCredentials) {
			sendErrorResponse(w, http.StatusUnauthorized, "не удалось обновить токены")
		} else {
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.RefreshTokenResponse{}
	resp.Response.AccessToken = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken
	resp.Response.TokenType = tokens.TokenType

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Вносит текущий access-токен в черный список. Токен перестает
// @Description приниматься немедленно, даже если его подпись еще действительна.
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.LogoutResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	accessToken, err := security.AccessTokenFromContext(ctx)
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не удалось проверить учетные данные")
		return
	}

	if err := h.AuthenticationService.Logout(ctx, accessToken); err != nil {
		log.Println(err)
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.LogoutResponse{}
	resp.Response.Message = "Successfully logged out"

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Me godoc
// @Summary Текущий пользователь
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/me [get]
func (h *AuthenticationHandler) Me(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := security.UserFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.UUID = user.UUID
	resp.Response.Username = user.Username
	resp.Response.Email = user.Email
	resp.Response.Role = string(user.Role)

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
