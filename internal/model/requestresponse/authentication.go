package requestresponse

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// LoginResponse : ответ на успешную аутентификацию
type LoginResponse struct {
	Response struct {
		AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
		RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
		TokenType    string `json:"token_type" example:"bearer"`
	} `json:"response"`
}

// RefreshTokenResponse : ответ на успешное обновление пары токенов
type RefreshTokenResponse struct {
	Response struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type" example:"bearer"`
	} `json:"response"`
}

// LogoutResponse : подтверждение выхода из системы
type LogoutResponse struct {
	Response struct {
		Message string `json:"message" example:"Successfully logged out"`
	} `json:"response"`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	Response struct {
		UUID     string `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
		Username string `json:"username" example:"user1"`
		Email    string `json:"email" example:"user@example.com"`
		Role     string `json:"role" example:"user"`
	} `json:"response"`
}
