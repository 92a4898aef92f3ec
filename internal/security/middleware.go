package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"image-sharing-server/internal/model"
)

type contextKey string

const (
	// UserContextKey : под этим ключом middleware кладет *model.User в контекст запроса
	UserContextKey contextKey = "user"

	// AccessTokenContextKey : сырой bearer-токен, нужен только обработчику logout
	AccessTokenContextKey contextKey = "access_token"
)

// IdentityResolver разрешает личность пользователя по access-токену.
// Реализуется сервисом аутентификации: подпись, scope, черный список, поиск пользователя.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, accessToken string) (*model.User, error)
}

// AuthenticationMiddleware извлекает bearer-токен и разрешает личность пользователя.
// Любой отказ отдается как 401 без уточнения причины
func AuthenticationMiddleware(resolver IdentityResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token, err := BearerToken(request)
			if err != nil {
				http.Error(writer, "не удалось проверить учетные данные", http.StatusUnauthorized)
				return
			}

			user, err := resolver.ResolveIdentity(request.Context(), token)
			if err != nil {
				http.Error(writer, "не удалось проверить учетные данные", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(request.Context(), UserContextKey, user)
			ctx = context.WithValue(ctx, AccessTokenContextKey, token)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// BearerToken достает токен из заголовка Authorization
func BearerToken(request *http.Request) (string, error) {
	authorizationHeader := request.Header.Get("Authorization")
	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return "", fmt.Errorf("пустой или неверный заголовок Authorization")
	}
	return strings.TrimPrefix(authorizationHeader, "Bearer "), nil
}

// UserFromContext возвращает пользователя, положенного middleware в контекст
func UserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(UserContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return user, nil
}

// AccessTokenFromContext возвращает сырой access-токен текущего запроса
func AccessTokenFromContext(ctx context.Context) (string, error) {
	token, ok := ctx.Value(AccessTokenContextKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("access-токен не найден в контексте")
	}
	return token, nil
}
