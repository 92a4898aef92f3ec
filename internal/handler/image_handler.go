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

type ImageHandler struct {
	ports.ImageService
}

func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService}
}

// UploadImage godoc
// @Summary Загрузка нового изображения
// @Description Принимает файл изображения через multipart/form-data вместе с
// @Description описанием и тегами. Файл загружается в S3 по pre-signed URL.
// @Tags Images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Файл изображения"
// @Param description formData string false "Описание изображения"
// @Param tags formData string false "Теги через запятую"
// @Success 201 {object} requestresponse.ImageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Файл не найден в запросе"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/images [post]
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := userFromRequest(w, r)
	if err != nil {
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		sendErrorResponse(w, 400, "неверный формат запроса")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		sendErrorResponse(w, 400, "файл не найден в запросе")
		return
	}
	defer file.Close()

	description := r.FormValue("description")
	tags := splitTags(r.FormValue("tags"))

	image, err := h.ImageService.UploadImage(r.Context(), user, header.Filename, description, tags, file, header.Size)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "не удалось загрузить изображение")
		return
	}

	resp := requestresponse.ImageResponse{Response: image}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// GetImage godoc
// @Summary Получение изображения по UUID
// @Tags Images
// @Produce json
// @Param uuid path string true "UUID изображения"
// @Success 200 {object} requestresponse.ImageResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/images/{uuid} [get]
func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	imageUUID := chi.URLParam(r, "uuid")

	image, err := h.ImageService.GetImage(r.Context(), imageUUID)
	if err != nil {
		log.Println(err)
		if errors.Is(err, service.ErrNotFound) {
			sendErrorResponse(w, 404, "изображение не найдено")
		} else {
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ImageResponse{Response: image}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// ListImages godoc
// @Summary Список изображений
// @Description Фильтрация по владельцу и тегу, ограничение размера выборки.
// @Tags Images
// @Produce json
// @Param owner query string false "UUID владельца"
// @Param tag query string false "Имя тега"
// @Param limit query int false "Размер выборки (по умолчанию 20, максимум 100)"
// @Success 200 {object} requestresponse.ListImagesResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/images [get]
func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ownerUUID := r.URL.Query().Get("owner")
	tag := r.URL.Query().Get("tag")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	images, err := h.ImageService.ListImages(r.Context(), ownerUUID, tag, limit)
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.ListImagesResponse{}
	resp.Response.Images = images

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateImage godoc
// @Summary Обновление описания и тегов изображения
// @Description Доступно владельцу, модератору и администратору.
// @Tags Images
// @Accept json
// @Produce json
// @Param uuid path string true "UUID изображения"
// @Param body body requestresponse.UpdateImageRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ImageResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/images/{uuid} [patch]
func (h *ImageHandler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := userFromRequest(w, r)
	if err != nil {
		return
	}

	imageUUID := chi.URLParam(r, "uuid")

	var req requestresponse.UpdateImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	image, err := h.ImageService.UpdateImage(r.Context(), user, imageUUID, req.Description, req.Tags)
	if err != nil {
		log.Println(err)
		writeImageError(w, err)
		return
	}

	resp := requestresponse.ImageResponse{Response: image}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// DeleteImage godoc
// @Summary Удаление изображения
// @Description Доступно владельцу, модератору и администратору. Удаляет запись,
// @Description объект в S3 и кэш.
// @Tags Images
// @Produce json
// @Param uuid path string true "UUID изображения"
// @Success 200 {object} map[string]string
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/images/{uuid} [delete]
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := userFromRequest(w, r)
	if err != nil {
		return
	}

	imageUUID := chi.URLParam(r, "uuid")

	if err := h.ImageService.DeleteImage(r.Context(), user, imageUUID); err != nil {
		log.Println(err)
		writeImageError(w, err)
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(map[string]string{"detail": "image deleted"})
}

// TransformImage godoc
// @Summary Трансформация изображения
// @Description Отправляет изображение во внешний сервис трансформаций и сохраняет
// @Description результат как новое изображение. Поддерживаются операции: resize,
// @Description recolor, crop_face, sign, expand_16_9, expand_9_16, vignette, black_white.
// @Tags Images
// @Accept json
// @Produce json
// @Param uuid path string true "UUID исходного изображения"
// @Param body body requestresponse.TransformRequest true "Параметры трансформации"
// @Success 201 {object} requestresponse.ImageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неизвестная операция"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/images/{uuid}/transform [post]
func (h *ImageHandler) TransformImage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, err := userFromRequest(w, r)
	if err != nil {
		return
	}

	imageUUID := chi.URLParam(r, "uuid")

	var req requestresponse.TransformRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	transformation := model.Transformation{
		Operation: req.Operation,
		Width:     req.Width,
		Height:    req.Height,
		Object:    req.Object,
		Color:     req.Color,
		Text:      req.Text,
	}

	image, err := h.ImageService.TransformImage(r.Context(), user, imageUUID, transformation)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrForbidden):
			sendErrorResponse(w, http.StatusForbidden, "операция запрещена")
		case errors.Is(err, service.ErrNotFound):
			sendErrorResponse(w, 404, "изображение не найдено")
		case strings.Contains(err.Error(), "неизвестная операция"):
			sendErrorResponse(w, 400, "неизвестная операция трансформации")
		default:
			sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.ImageResponse{Response: image}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func writeImageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		sendErrorResponse(w, http.StatusForbidden, "операция запрещена")
	case errors.Is(err, service.ErrNotFound):
		sendErrorResponse(w, 404, "изображение не найдено")
	default:
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
	}
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
