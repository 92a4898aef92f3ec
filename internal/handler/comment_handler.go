package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"image-sharing-server/internal/model/requestresponse"
	"image-sharing-server/internal/ports"
	"image-sharing-server/internal/service"
)

type CommentHandler struct {
	ports.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService}
}

// CreateComment godoc
// @Summary Создание комментария к изображению
// @Tags Comments
// @Accept json
// @Produce json
// @Param body body requestresponse.CommentRequest true "Тело запроса"
// @Success 201 {object} requestresponse.CommentResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Пустой текст комментария"
// @Failure 404 {object} requestresponse.ErrorResponse "Изображение не найдено"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/comments [post]
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := userFromRequest(w, r)
	if err != nil {
		return
	}

	var req requestresponse.CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	comment, err := h.CommentService.CreateComment(r.Context(), user, req.ImageUUID, req.Comment)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(w, 404, "изображение не найдено")
		case strings.Contains(err.Error(), "пустой комментарий"):
			sendErrorResponse(w, 400, "текст комментария не может быть пустым")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.CommentResponse{Response: comment}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// ListComments godoc
// @Summary Комментарии изображения
// @Tags Comments
// @Produce json
// @Param uuid path string true "UUID изображения"
// @Success 200 {object} requestresponse.ListCommentsResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/images/{uuid}/comments [get]
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	imageUUID := chi.URLParam(r, "uuid")

	comments, err := h.CommentService.ListCommentsForImage(r.Context(), imageUUID)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListCommentsResponse{Response: comments}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateComment godoc
// @Summary Редактирование комментария
// @Description Доступно автору комментария, модератору и администратору.
// @Tags Comments
// @Accept json
// @Produce json
// @Param id path int true "ID комментария"
// @Param body body requestresponse.CommentRequest true "Тело запроса"
// @Success 200 {object} requestresponse.CommentResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/comments/{id} [patch]
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := userFromRequest(w, r)
	if err != nil {
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный ID комментария")
		return
	}

	var req requestresponse.CommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	comment, err := h.CommentService.UpdateComment(r.Context(), user, commentID, req.Comment)
	if err != nil {
		log.Println(err)
		writeCommentError(w, err)
		return
	}

	resp := requestresponse.CommentResponse{Response: comment}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteComment godoc
// @Summary Удаление комментария
// @Description Доступно только модератору и администратору.
// @Tags Comments
// @Produce json
// @Param id path int true "ID комментария"
// @Success 200 {object} map[string]string
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := userFromRequest(w, r)
	if err != nil {
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		sendErrorResponse(w, 400, "некорректный ID комментария")
		return
	}

	if err := h.CommentService.DeleteComment(r.Context(), user, commentID); err != nil {
		log.Println(err)
		writeCommentError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(map[string]string{"detail": "comment deleted"})
}

func writeCommentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		sendErrorResponse(w, http.StatusForbidden, "операция запрещена")
	case errors.Is(err, service.ErrNotFound):
		sendErrorResponse(w, 404, "комментарий не найден")
	default:
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
	}
}
