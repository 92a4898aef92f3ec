package requestresponse

import "image-sharing-server/internal/model"

// ImageResponse : успешный ответ с данными изображения
type ImageResponse struct {
	Response *model.Image `json:"response"`
}

// ListImagesResponse : список изображений
type ListImagesResponse struct {
	Response struct {
		Images []model.Image `json:"images"`
	} `json:"response"`
}

// UpdateImageRequest : тело запроса на обновление описания и тегов
type UpdateImageRequest struct {
	Description string   `json:"description" example:"закат над морем"`
	Tags        []string `json:"tags" example:"sunset,sea"`
}

// TransformRequest : тело запроса на удаленную трансформацию
type TransformRequest struct {
	Operation string `json:"operation" example:"resize"`
	Width     int    `json:"width,omitempty" example:"200"`
	Height    int    `json:"height,omitempty" example:"200"`
	Object    string `json:"object,omitempty" example:"sky"`
	Color     string `json:"color,omitempty" example:"purple"`
	Text      string `json:"text,omitempty" example:"my watermark"`
}

// CommentRequest : тело запроса на создание/обновление комментария
type CommentRequest struct {
	ImageUUID string `json:"image_uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Comment   string `json:"comment" example:"отличный кадр"`
}

// CommentResponse : успешный ответ с комментарием
type CommentResponse struct {
	Response *model.Comment `json:"response"`
}

// ListCommentsResponse : список комментариев
type ListCommentsResponse struct {
	Response []model.Comment `json:"response"`
}

// TagRequest : тело запроса на создание/обновление тега
type TagRequest struct {
	Name string `json:"name" example:"sunset"`
}

// TagResponse : успешный ответ с тегом
type TagResponse struct {
	Response *model.Tag `json:"response"`
}

// ListTagsResponse : список тегов
type ListTagsResponse struct {
	Response []model.Tag `json:"response"`
}
