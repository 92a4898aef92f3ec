package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/model/requestresponse"
	"image-sharing-server/internal/ports"
	"image-sharing-server/internal/security"
	"image-sharing-server/internal/service"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService}
}

// Signup godoc
// @Summary Регистрация нового пользователя
// @Description Создает пользователя с ролью user. Первый зарегистрированный
// @Description пользователь получает роль admin.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.SignupRequest true "Тело запроса"
// @Success 201 {object} requestresponse.SignupResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Невалидные username, email или пароль"
// @Failure 409 {object} requestresponse.ErrorResponse "Username или email уже заняты"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/users/signup [post]
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	user, err := h.UserService.Signup(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrAlreadyExists):
			sendErrorResponse(w, http.StatusConflict, "пользователь с таким username или email уже существует")
		case strings.Contains(err.Error(), "username"),
			strings.Contains(err.Error(), "email"),
			strings.Contains(err.Error(), "пароль"):
			sendErrorResponse(w, 400, "bad request")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.SignupResponse{}
	resp.Response.User = user
	resp.Response.Detail = "User successfully created"

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// GetUser godoc
// @Summary Получение пользователя по username
// @Tags Users
// @Produce json
// @Param username path string true "Username пользователя"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/{username} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	username := chi.URLParam(r, "username")

	user, err := h.UserService.GetByUsername(r.Context(), username)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrNotFound) {
			sendErrorResponse(w, 404, "пользователь не найден")
		} else {
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.UserResponse{Response: user}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// ListUsers godoc
// @Summary Список пользователей
// @Description Курсорная пагинация. Доступно только администратору.
// @Tags Users
// @Produce json
// @Param cursor query string false "Курсор следующей страницы"
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cursor := r.URL.Query().Get("cursor")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, nextCursor, err := h.UserService.ListUsers(r.Context(), cursor, limit)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListUsersResponse{}
	resp.Response.Users = users
	resp.Response.NextCursor = nextCursor

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// ChangeRole godoc
// @Summary Смена роли пользователя
// @Description Доступно только администратору. Нельзя снять роль с последнего администратора.
// @Tags Users
// @Accept json
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param body body requestresponse.ChangeRoleRequest true "Новая роль: admin, moderator или user"
// @Success 200 {object} requestresponse.UserResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неизвестная роль"
// @Failure 403 {object} requestresponse.ErrorResponse "Последний администратор"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/users/{uuid}/role [patch]
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	targetUUID := chi.URLParam(r, "uuid")

	var req requestresponse.ChangeRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	err := h.UserService.ChangeRole(r.Context(), targetUUID, model.Role(req.Role))
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrLastAdmin):
			sendErrorResponse(w, http.StatusForbidden, "нельзя снять роль с последнего администратора")
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(w, 404, "пользователь не найден")
		case errors.Is(err, service.ErrForbidden):
			sendErrorResponse(w, http.StatusForbidden, "операция запрещена")
		default:
			sendErrorResponse(w, 400, "неизвестная роль")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(map[string]string{"detail": "role updated"})
}

// SetBanned godoc
// @Summary Блокировка или разблокировка пользователя
// @Description Доступно только администратору. Заблокированный пользователь не может
// @Description войти, а его действующие access-токены перестают приниматься.
// @Tags Users
// @Produce json
// @Param uuid path string true "UUID пользователя"
// @Param banned query bool true "true для блокировки, false для разблокировки"
// @Success 200 {object} map[string]string
// @Failure 403 {object} requestresponse.ErrorResponse "Последний администратор"
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/users/{uuid}/ban [patch]
func (h *UserHandler) SetBanned(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	targetUUID := chi.URLParam(r, "uuid")
	banned, err := strconv.ParseBool(r.URL.Query().Get("banned"))
	if err != nil {
		sendErrorResponse(w, 400, "параметр banned обязателен: true или false")
		return
	}

	if err := h.UserService.SetBanned(r.Context(), targetUUID, banned); err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrLastAdmin):
			sendErrorResponse(w, http.StatusForbidden, "нельзя заблокировать последнего администратора")
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(w, 404, "пользователь не найден")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(map[string]string{"detail": "ban status updated"})
}

// UpdateInformation godoc
// @Summary Обновление информации профиля
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.UpdateInformationRequest true "Тело запроса"
// @Success 200 {object} map[string]string
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/me/information [patch]
func (h *UserHandler) UpdateInformation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := userFromRequest(w, r)
	if err != nil {
		return
	}

	var req requestresponse.UpdateInformationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.UserService.UpdateInformation(r.Context(), user.UUID, req.Information); err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(map[string]string{"detail": "information updated"})
}

// userFromRequest достает аутентифицированного пользователя из контекста запроса
func userFromRequest(w http.ResponseWriter, r *http.Request) (*model.User, error) {
	user, err := security.UserFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return nil, err
	}
	return user, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(400)
		json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
			Error: requestresponse.ErrorDetail{
				Code: 400,
				Text: "invalid request body",
			},
		})
		return err
	}
	return nil
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}
