package security_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/security"
)

type stubResolver struct {
	user *model.User
	err  error
}

func (s *stubResolver) ResolveIdentity(ctx context.Context, accessToken string) (*model.User, error) {
	return s.user, s.err
}

// 1. Запрос без заголовка Authorization
func TestAuthenticationMiddleware_NoHeader(t *testing.T) {
	mw := security.AuthenticationMiddleware(&stubResolver{user: &model.User{UUID: "u1"}})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("обработчик не должен вызываться")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 2. Любой отказ резолвера отдается как 401
func TestAuthenticationMiddleware_ResolverRejects(t *testing.T) {
	mw := security.AuthenticationMiddleware(&stubResolver{err: security.ErrInvalidToken})
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("обработчик не должен вызываться")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer bad-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 3. Успешное разрешение кладет пользователя и токен в контекст
func TestAuthenticationMiddleware_Success(t *testing.T) {
	resolved := &model.User{UUID: "u1", Role: model.RoleUser}
	mw := security.AuthenticationMiddleware(&stubResolver{user: resolved})

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := security.UserFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, "u1", user.UUID)

		token, err := security.AccessTokenFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, "good-token", token)

		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// 4. Политика ролей: проверка набора
func TestRolesAccess_Check(t *testing.T) {
	adminOnly := security.NewRolesAccess(model.RoleAdmin)

	assert.NoError(t, adminOnly.Check(&model.User{Role: model.RoleAdmin}))
	assert.ErrorIs(t, adminOnly.Check(&model.User{Role: model.RoleModerator}), security.ErrOperationForbidden)
	assert.ErrorIs(t, adminOnly.Check(&model.User{Role: model.RoleUser}), security.ErrOperationForbidden)
}

// 5. Guard маршрута: недостаточная роль дает 403
func TestRolesAccess_Middleware(t *testing.T) {
	adminOnly := security.NewRolesAccess(model.RoleAdmin)
	handler := adminOnly.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	asRole := func(role model.Role) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/", nil)
		ctx := context.WithValue(req.Context(), security.UserContextKey, &model.User{UUID: "u1", Role: role})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		return rec
	}

	assert.Equal(t, http.StatusOK, asRole(model.RoleAdmin).Code)
	assert.Equal(t, http.StatusForbidden, asRole(model.RoleUser).Code)

	// без аутентификации вообще
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
