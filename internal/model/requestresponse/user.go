package requestresponse

import "image-sharing-server/internal/model"

// SignupRequest : тело запроса регистрации
type SignupRequest struct {
	Username string `json:"username" example:"newuser123"`
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd!"`
}

// SignupResponse : успешный ответ на регистрацию
type SignupResponse struct {
	Response struct {
		User   *model.User `json:"user"`
		Detail string      `json:"detail" example:"User successfully created"`
	} `json:"response"`
}

// UserResponse : успешный ответ с данными пользователя
type UserResponse struct {
	Response *model.User `json:"response"`
}

// ListUsersResponse : список пользователей с курсорной пагинацией
type ListUsersResponse struct {
	Response struct {
		Users      []*model.User `json:"users"`
		NextCursor string        `json:"next_cursor,omitempty"`
	} `json:"response"`
}

// ChangeRoleRequest : тело запроса на смену роли
type ChangeRoleRequest struct {
	Role string `json:"role" example:"moderator"`
}

// UpdateInformationRequest : тело запроса на обновление профиля
type UpdateInformationRequest struct {
	Information string `json:"information" example:"Фотограф-любитель"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"for example: invalid email or password"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
