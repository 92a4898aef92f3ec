package service_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"image-sharing-server/internal/model"
	"image-sharing-server/internal/security"
	"image-sharing-server/internal/service"
)

// ===== MOCKS =====

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUUID(ctx context.Context, uuid string) (*model.User, error) {
	args := m.Called(ctx, uuid)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, uuid string, refreshToken sql.NullString) error {
	args := m.Called(ctx, uuid, refreshToken)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, uuid string, role model.Role) error {
	args := m.Called(ctx, uuid, role)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateBanned(ctx context.Context, uuid string, banned bool) error {
	args := m.Called(ctx, uuid, banned)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateInformation(ctx context.Context, uuid string, information string) error {
	args := m.Called(ctx, uuid, information)
	return args.Error(0)
}

func (m *MockUserRepository) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) CountAdmins(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, cursor, limit)
	if users, ok := args.Get(0).([]*model.User); ok {
		return users, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

// MockRevokedTokenRepository
type MockRevokedTokenRepository struct {
	mock.Mock
}

func (m *MockRevokedTokenRepository) Add(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

func (m *MockRevokedTokenRepository) Contains(ctx context.Context, accessToken string) (bool, error) {
	args := m.Called(ctx, accessToken)
	return args.Bool(0), args.Error(1)
}

func (m *MockRevokedTokenRepository) Purge(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockJWTService
type MockJWTService struct {
	mock.Mock
}

func (m *MockJWTService) CreateAccessToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) CreateRefreshToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) GenerateTokensPair(email string) (*model.TokensPair, error) {
	args := m.Called(email)
	if tokens, ok := args.Get(0).(*model.TokensPair); ok {
		return tokens, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockJWTService) DecodeToken(tokenStr string, expectedScope string) (*security.Claims, error) {
	args := m.Called(tokenStr, expectedScope)
	if claims, ok := args.Get(0).(*security.Claims); ok {
		return claims, args.Error(1)
	}
	return nil, args.Error(1)
}

// ===== HELPERS =====

func newTestAuthService() (*service.AuthenticationService, *MockUserRepository, *MockRevokedTokenRepository, *MockJWTService) {
	mockUserRepo := new(MockUserRepository)
	mockTokenRepo := new(MockRevokedTokenRepository)
	mockJWTService := new(MockJWTService)

	svc := service.NewAuthenticationService(mockUserRepo, mockTokenRepo, mockJWTService)

	return svc, mockUserRepo, mockTokenRepo, mockJWTService
}

func claimsFor(email, scope string) *security.Claims {
	return &security.Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: email,
		},
	}
}

// ===== TESTS =====

// 1. Пользователь не найден
func TestLogin_UserNotFound(t *testing.T) {
	svc, mockUserRepo, _, _ := newTestAuthService()
	ctx := context.Background()

	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(nil, sql.ErrNoRows)

	_, err := svc.Login(ctx, "test@example.com", "pass")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockUserRepo.AssertExpectations(t)
}

// 2. Заблокированный пользователь получает отдельную ошибку
func TestLogin_BannedUser(t *testing.T) {
	svc, mockUserRepo, _, _ := newTestAuthService()
	ctx := context.Background()

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", Email: "test@example.com", PasswordHash: hash, Banned: true}

	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(user, nil)

	_, err := svc.Login(ctx, "test@example.com", "goodpass")

	assert.ErrorIs(t, err, service.ErrUserBanned)
	mockUserRepo.AssertExpectations(t)
}

// 3. Неверный пароль
func TestLogin_WrongPassword(t *testing.T) {
	svc, mockUserRepo, _, _ := newTestAuthService()
	ctx := context.Background()

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", Email: "test@example.com", PasswordHash: hash}

	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(user, nil)

	_, err := svc.Login(ctx, "test@example.com", "badpass")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockUserRepo.AssertExpectations(t)
}

// 4. Ошибка сохранения refresh токена: пара наружу не уходит
func TestLogin_SaveRefreshTokenError(t *testing.T) {
	svc, mockUserRepo, _, mockJWTService := newTestAuthService()
	ctx := context.Background()

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", Email: "test@example.com", PasswordHash: hash}
	tokens := &model.TokensPair{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer"}

	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(user, nil)
	mockJWTService.On("GenerateTokensPair", "test@example.com").
		Return(tokens, nil)
	mockUserRepo.On("UpdateRefreshToken", ctx, "u1", sql.NullString{String: "ref", Valid: true}).
		Return(errors.New("db error"))

	pair, err := svc.Login(ctx, "test@example.com", "goodpass")

	assert.Error(t, err)
	assert.Nil(t, pair)
	mockUserRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

// 5. Успешный логин
func TestLogin_Success(t *testing.T) {
	svc, mockUserRepo, _, mockJWTService := newTestAuthService()
	ctx := context.Background()

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", Email: "test@example.com", PasswordHash: hash}
	tokens := &model.TokensPair{AccessToken: "acc", RefreshToken: "ref", TokenType: "bearer"}

	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(user, nil)
	mockJWTService.On("GenerateTokensPair", "test@example.com").
		Return(tokens, nil)
	mockUserRepo.On("UpdateRefreshToken", ctx, "u1", sql.NullString{String: "ref", Valid: true}).
		Return(nil)

	pair, err := svc.Login(ctx, "test@example.com", "goodpass")

	assert.NoError(t, err)
	assert.Equal(t, "acc", pair.AccessToken)
	assert.Equal(t, "ref", pair.RefreshToken)
	mockUserRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

// 5a. Сбой хранилища при поиске пользователя не выдается за неверные учетные данные
func TestLogin_RepositoryErrorIsNotInvalidCredentials(t *testing.T) {
	svc, mockUserRepo, _, _ := newTestAuthService()
	ctx := context.Background()

	dbErr := errors.New("connection refused")
	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(nil, dbErr)

	_, err := svc.Login(ctx, "test@example.com", "pass")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	assert.ErrorIs(t, err, dbErr)
	mockUserRepo.AssertExpectations(t)
}

// 5b. Неверный пароль заблокированного пользователя: статус блокировки не раскрывается
func TestLogin_WrongPasswordBannedUser(t *testing.T) {
	svc, mockUserRepo, _, _ := newTestAuthService()
	ctx := context.Background()

	hash, _ := security.HashPassword("goodpass")
	user := &model.User{UUID: "u1", Email: "test@example.com", PasswordHash: hash, Banned: true}

	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(user, nil)

	_, err := svc.Login(ctx, "test@example.com", "badpass")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	assert.NotErrorIs(t, err, service.ErrUserBanned)
	mockUserRepo.AssertExpectations(t)
}

// 6. Refresh с невалидным токеном
func TestRefreshTokens_InvalidToken(t *testing.T) {
	svc, _, _, mockJWTService := newTestAuthService()
	ctx := context.Background()

	mockJWTService.On("DecodeToken", "bad-token", security.ScopeRefresh).
		Return(nil, security.ErrInvalidToken)

	_, err := svc.RefreshTokens(ctx, "bad-token")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockJWTService.AssertExpectations(t)
}

// 7. Refresh с токеном, не совпадающим с сохраненным: сессия закрывается
func TestRefreshTokens_MismatchClearsStoredToken(t *testing.T) {
	svc, mockUserRepo, _, mockJWTService := newTestAuthService()
	ctx := context.Background()

	user := &model.User{
		UUID:         "u1",
		Email:        "test@example.com",
		RefreshToken: sql.NullString{String: "stored-token", Valid: true},
	}

	mockJWTService.On("DecodeToken", "other-token", security.ScopeRefresh).
		Return(claimsFor("test@example.com", security.ScopeRefresh), nil)
	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(user, nil)
	mockUserRepo.On("UpdateRefreshToken", ctx, "u1", sql.NullString{}).
		Return(nil)

	_, err := svc.RefreshTokens(ctx, "other-token")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockUserRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

// 7a. Сбой хранилища при refresh тоже поднимается наружу
func TestRefreshTokens_RepositoryErrorIsNotInvalidCredentials(t *testing.T) {
	svc, mockUserRepo, _, mockJWTService := newTestAuthService()
	ctx := context.Background()

	dbErr := errors.New("connection refused")
	mockJWTService.On("DecodeToken", "refresh-token", security.ScopeRefresh).
		Return(claimsFor("test@example.com", security.ScopeRefresh), nil)
	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(nil, dbErr)

	_, err := svc.RefreshTokens(ctx, "refresh-token")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrInvalidCredentials)
	assert.ErrorIs(t, err, dbErr)
	mockUserRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

// 8. Успешный refresh: новая пара сохраняется на пользователе
func TestRefreshTokens_Success(t *testing.T) {
	svc, mockUserRepo, _, mockJWTService := newTestAuthService()
	ctx := context.Background()

	user := &model.User{
		UUID:         "u1",
		Email:        "test@example.com",
		RefreshToken: sql.NullString{String: "old-refresh", Valid: true},
	}
	tokens := &model.TokensPair{AccessToken: "new-acc", RefreshToken: "new-ref", TokenType: "bearer"}

	mockJWTService.On("DecodeToken", "old-refresh", security.ScopeRefresh).
		Return(claimsFor("test@example.com", security.ScopeRefresh), nil)
	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(user, nil)
	mockJWTService.On("GenerateTokensPair", "test@example.com").
		Return(tokens, nil)
	mockUserRepo.On("UpdateRefreshToken", ctx, "u1", sql.NullString{String: "new-ref", Valid: true}).
		Return(nil)

	pair, err := svc.RefreshTokens(ctx, "old-refresh")

	assert.NoError(t, err)
	assert.Equal(t, "new-acc", pair.AccessToken)
	mockUserRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

// 9. Logout вносит токен в черный список
func TestLogout_AddsToBlacklist(t *testing.T) {
	svc, _, mockTokenRepo, _ := newTestAuthService()
	ctx := context.Background()

	mockTokenRepo.On("Add", ctx, "some-access-token").Return(nil)

	err := svc.Logout(ctx, "some-access-token")

	assert.NoError(t, err)
	mockTokenRepo.AssertExpectations(t)
}

// 10. Отозванный токен не проходит разрешение личности
func TestResolveIdentity_RevokedToken(t *testing.T) {
	svc, _, mockTokenRepo, mockJWTService := newTestAuthService()
	ctx := context.Background()

	mockJWTService.On("DecodeToken", "revoked-token", security.ScopeAccess).
		Return(claimsFor("test@example.com", security.ScopeAccess), nil)
	mockTokenRepo.On("Contains", ctx, "revoked-token").Return(true, nil)

	_, err := svc.ResolveIdentity(ctx, "revoked-token")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockTokenRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}

// 11. Валидный токен, но пользователь уже удален
func TestResolveIdentity_UserDeleted(t *testing.T) {
	svc, mockUserRepo, mockTokenRepo, mockJWTService := newTestAuthService()
	ctx := context.Background()

	mockJWTService.On("DecodeToken", "valid-token", security.ScopeAccess).
		Return(claimsFor("ghost@example.com", security.ScopeAccess), nil)
	mockTokenRepo.On("Contains", ctx, "valid-token").Return(false, nil)
	mockUserRepo.On("FindByEmail", ctx, "ghost@example.com").
		Return(nil, sql.ErrNoRows)

	_, err := svc.ResolveIdentity(ctx, "valid-token")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockUserRepo.AssertExpectations(t)
}

// 12. Валидный токен заблокированного пользователя
func TestResolveIdentity_BannedUser(t *testing.T) {
	svc, mockUserRepo, mockTokenRepo, mockJWTService := newTestAuthService()
	ctx := context.Background()

	user := &model.User{UUID: "u1", Email: "test@example.com", Banned: true}

	mockJWTService.On("DecodeToken", "valid-token", security.ScopeAccess).
		Return(claimsFor("test@example.com", security.ScopeAccess), nil)
	mockTokenRepo.On("Contains", ctx, "valid-token").Return(false, nil)
	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(user, nil)

	_, err := svc.ResolveIdentity(ctx, "valid-token")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockUserRepo.AssertExpectations(t)
}

// 13. Успешное разрешение личности
func TestResolveIdentity_Success(t *testing.T) {
	svc, mockUserRepo, mockTokenRepo, mockJWTService := newTestAuthService()
	ctx := context.Background()

	user := &model.User{UUID: "u1", Email: "test@example.com", Role: model.RoleUser}

	mockJWTService.On("DecodeToken", "valid-token", security.ScopeAccess).
		Return(claimsFor("test@example.com", security.ScopeAccess), nil)
	mockTokenRepo.On("Contains", ctx, "valid-token").Return(false, nil)
	mockUserRepo.On("FindByEmail", ctx, "test@example.com").
		Return(user, nil)

	resolved, err := svc.ResolveIdentity(ctx, "valid-token")

	assert.NoError(t, err)
	assert.Equal(t, "u1", resolved.UUID)
	mockUserRepo.AssertExpectations(t)
	mockTokenRepo.AssertExpectations(t)
	mockJWTService.AssertExpectations(t)
}
