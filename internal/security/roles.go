package security

import (
	"errors"
	"net/http"

	"image-sharing-server/internal/model"
)

// ErrOperationForbidden : пользователь аутентифицирован, но роли недостаточно
var ErrOperationForbidden = errors.New("операция запрещена")

// RolesAccess : политика доступа по набору разрешенных ролей.
// Чистая проверка без I/O, используется и как guard маршрутов, и напрямую в сервисах
type RolesAccess struct {
	allowedRoles []model.Role
}

func NewRolesAccess(allowedRoles ...model.Role) *RolesAccess {
	return &RolesAccess{allowedRoles: allowedRoles}
}

// Check возвращает ErrOperationForbidden, если роль пользователя не входит в разрешенные
func (access *RolesAccess) Check(user *model.User) error {
	for _, role := range access.allowedRoles {
		if user.Role == role {
			return nil
		}
	}
	return ErrOperationForbidden
}

// Middleware отклоняет запрос с 403, если роль разрешенного пользователя не подходит.
// Ставится после AuthenticationMiddleware
func (access *RolesAccess) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user, err := UserFromContext(request.Context())
		if err != nil {
			http.Error(writer, "не удалось проверить учетные данные", http.StatusUnauthorized)
			return
		}

		if err := access.Check(user); err != nil {
			http.Error(writer, "operation forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(writer, request)
	})
}
