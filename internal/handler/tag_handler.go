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
	"image-sharing-server/internal/service"
)

type TagHandler struct {
	ports.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService}
}

// CreateTag godoc
// @Summary Создание тега
// @Tags Tags
// @Accept json
// @Produce json
// @Param body body requestresponse.TagRequest true "Тело запроса"
// @Success 201 {object} requestresponse.TagResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 409 {object} requestresponse.ErrorResponse "Тег уже существует"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/tags [post]
func (h *TagHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.TagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	tag, err := h.TagService.CreateTag(r.Context(), req.Name)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrAlreadyExists):
			sendErrorResponse(w, http.StatusConflict, "тег уже существует")
		case strings.Contains(err.Error(), "имя тега"):
			sendErrorResponse(w, 400, "некорректное имя тега")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.TagResponse{Response: tag}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// ListTags godoc
// @Summary Список всех тегов
// @Description С параметром name возвращает один тег с этим именем.
// @Tags Tags
// @Produce json
// @Param name query string false "Точное имя тега"
// @Success 200 {object} requestresponse.ListTagsResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/tags [get]
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if name := r.URL.Query().Get("name"); name != "" {
		tag, err := h.TagService.GetTagByName(r.Context(), name)
		if err != nil {
			log.Println(err)
			if errors.Is(err, service.ErrNotFound) {
				sendErrorResponse(w, 404, "тег не найден")
			} else {
				sendErrorResponse(w, 500, "внутренняя ошибка сервера")
			}
			return
		}

		resp := requestresponse.ListTagsResponse{Response: []model.Tag{*tag}}

		w.WriteHeader(200)
		json.NewEncoder(w).Encode(resp)
		return
	}

	tags, err := h.TagService.ListTags(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListTagsResponse{Response: tags}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetTag godoc
// @Summary Получение тега по ID
// @Tags Tags
// @Produce json
// @Param id path int true "ID тега"
// @Success 200 {object} requestresponse.TagResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/tags/{id} [get]
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tagID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный ID тега")
		return
	}

	tag, err := h.TagService.GetTag(r.Context(), tagID)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrNotFound) {
			sendErrorResponse(w, 404, "тег не найден")
		} else {
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.TagResponse{Response: tag}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateTag godoc
// @Summary Переименование тега
// @Description Доступно только модератору и администратору.
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path int true "ID тега"
// @Param body body requestresponse.TagRequest true "Тело запроса"
// @Success 200 {object} requestresponse.TagResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/tags/{id} [patch]
func (h *TagHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tagID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный ID тега")
		return
	}

	var req requestresponse.TagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	tag, err := h.TagService.UpdateTag(r.Context(), tagID, req.Name)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(w, 404, "тег не найден")
		case errors.Is(err, service.ErrAlreadyExists):
			sendErrorResponse(w, http.StatusConflict, "тег уже существует")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.TagResponse{Response: tag}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteTag godoc
// @Summary Удаление тега
// @Description Доступно только модератору и администратору.
// @Tags Tags
// @Produce json
// @Param id path int true "ID тега"
// @Success 200 {object} map[string]string
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/tags/{id} [delete]
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	tagID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный ID тега")
		return
	}

	if err := h.TagService.DeleteTag(r.Context(), tagID); err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrNotFound) {
			sendErrorResponse(w, 404, "тег не найден")
		} else {
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(map[string]string{"detail": "tag deleted"})
}
